package lint_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sygnea/pkg/lint"
	"github.com/goliatone/go-sygnea/pkg/render"
	"github.com/goliatone/go-sygnea/pkg/renderers/signature"
	"github.com/goliatone/go-sygnea/pkg/testsupport"
)

func rules(issues []lint.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Rule)
	}
	return out
}

func TestCheckFlagsUnsupportedMarkup(t *testing.T) {
	markup := `<style>.a{}</style>
<div class="card" style="display: flex; position: absolute">
  <a href="javascript:void(0)">x</a>
  <a>empty</a>
  <img src="logo.png">
  <span style="background-image: url(bg.png)"></span>
</div>`

	issues, err := lint.Check(markup)
	if err != nil {
		t.Fatalf("check: %v", err)
	}

	want := []string{
		lint.RuleElement,
		lint.RuleClass,
		lint.RuleLayout,
		lint.RulePosition,
		lint.RuleLinkScheme,
		lint.RuleLinkMissing,
		lint.RuleImageAlt,
		lint.RuleBackground,
	}
	if diff := cmp.Diff(want, rules(issues)); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
	if !lint.HasErrors(issues) {
		t.Fatal("expected errors")
	}
	if issues[4].Path != "div > a" {
		t.Fatalf("unexpected path %q", issues[4].Path)
	}
}

func TestCheckCleanMarkup(t *testing.T) {
	issues, err := lint.Check(`<div style="color: #333;"><a href="https://example.com">site</a><a href="mailto:a@b.c">mail</a></div>`)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
	if lint.Max(issues) != "" {
		t.Fatalf("expected empty max severity")
	}
}

func TestBuiltInTemplatesHaveNoErrors(t *testing.T) {
	renderers, err := signature.NewAll()
	if err != nil {
		t.Fatalf("new renderers: %v", err)
	}
	for _, r := range renderers {
		html, err := r.Render(testsupport.Context(), testsupport.SampleProfile(), render.RenderOptions{})
		if err != nil {
			t.Fatalf("%s: render: %v", r.Name(), err)
		}
		issues, err := lint.Check(string(html))
		if err != nil {
			t.Fatalf("%s: check: %v", r.Name(), err)
		}
		if lint.Max(issues) == lint.SeverityError || lint.Max(issues) == lint.SeverityWarning {
			t.Errorf("%s: unexpected issues %v", r.Name(), issues)
		}
	}
}

func TestParseStyle(t *testing.T) {
	got, err := lint.ParseStyle("Color: #FFF; ; font-family: 'Segoe UI', sans-serif;broken")
	if err != nil {
		t.Fatalf("parse style: %v", err)
	}
	want := []lint.Declaration{
		{Property: "color", Value: "#FFF"},
		{Property: "font-family", Value: "'Segoe UI', sans-serif"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("declarations mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStyleQuotedSemicolonAndImportant(t *testing.T) {
	got, err := lint.ParseStyle(`background: url("a;b.png") no-repeat; color: red !important`)
	if err != nil {
		t.Fatalf("parse style: %v", err)
	}
	want := []lint.Declaration{
		{Property: "background", Value: `url("a;b.png") no-repeat`},
		{Property: "color", Value: "red", Important: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("declarations mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckBackgroundURLWithSemicolon(t *testing.T) {
	issues, err := lint.Check(`<div style="background: url('x;y.png'); color: #000">x</div>`)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(issues) != 1 || issues[0].Rule != lint.RuleBackground {
		t.Fatalf("expected a single background issue, got %v", issues)
	}
}

func TestSummary(t *testing.T) {
	issues := []lint.Issue{
		{Severity: lint.SeverityInfo},
		{Severity: lint.SeverityWarning},
		{Severity: lint.SeverityWarning},
	}
	want := map[lint.Severity]int{lint.SeverityInfo: 1, lint.SeverityWarning: 2}
	if diff := cmp.Diff(want, lint.Summary(issues)); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	if lint.Max(issues) != lint.SeverityWarning {
		t.Fatalf("unexpected max %q", lint.Max(issues))
	}
}
