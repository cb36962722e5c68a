package signature_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-sygnea/pkg/profile"
	"github.com/goliatone/go-sygnea/pkg/render"
	"github.com/goliatone/go-sygnea/pkg/renderers/signature"
	"github.com/goliatone/go-sygnea/pkg/testsupport"
)

func renderAll(t *testing.T, p profile.Profile, options render.RenderOptions) map[string]string {
	t.Helper()

	renderers, err := signature.NewAll()
	if err != nil {
		t.Fatalf("new renderers: %v", err)
	}

	out := make(map[string]string, len(renderers))
	for _, r := range renderers {
		html, err := r.Render(testsupport.Context(), p, options)
		if err != nil {
			t.Fatalf("render %s: %v", r.Name(), err)
		}
		out[r.Name()] = string(html)
	}
	return out
}

func TestRegisterKeepsDisplayOrder(t *testing.T) {
	registry := render.NewRegistry()
	if err := signature.Register(registry); err != nil {
		t.Fatalf("register: %v", err)
	}

	want := []string{"minimal", "professional", "creative", "compact", "modern", "executive"}
	if diff := cmp.Diff(want, registry.List()); diff != "" {
		t.Fatalf("registry order mismatch (-want +got):\n%s", diff)
	}

	templates := registry.Templates()
	if templates[3].Name != "Compact" || templates[3].Description != "Space-efficient design" {
		t.Fatalf("unexpected compact descriptor: %+v", templates[3])
	}
}

func TestNewUnknownVariant(t *testing.T) {
	_, err := signature.New("retro")
	if !errors.Is(err, render.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestRenderSampleProfileContainsEveryField(t *testing.T) {
	for id, html := range renderAll(t, testsupport.SampleProfile(), render.RenderOptions{}) {
		for _, want := range []string{
			"Alex Johnson",
			"Senior Product Designer",
			`href="https://alexjohnson.design"`,
			`href="https://twitter.com/alexjohnson"`,
			`href="https://linkedin.com/in/alexjohnson"`,
			`href="https://instagram.com/alexjohnson.design"`,
		} {
			if !strings.Contains(html, want) {
				t.Errorf("%s: expected %q in output", id, want)
			}
		}
	}
}

func TestRenderUsesInlineStylesOnly(t *testing.T) {
	for id, html := range renderAll(t, testsupport.SampleProfile(), render.RenderOptions{}) {
		if strings.Contains(html, "<style") {
			t.Errorf("%s: output contains a style block", id)
		}
		if strings.Contains(html, "class=") {
			t.Errorf("%s: output contains class attributes", id)
		}
		if !strings.Contains(html, `style="`) {
			t.Errorf("%s: output has no inline styles", id)
		}
	}
}

func TestRenderBlankWebsiteOmitsBlock(t *testing.T) {
	p := testsupport.SampleProfile()
	p.Website = "   "

	for id, html := range renderAll(t, p, render.RenderOptions{}) {
		if strings.Contains(html, `href="https://alexjohnson.design"`) || strings.Contains(html, ">alexjohnson.design<") {
			t.Errorf("%s: website block rendered for blank website", id)
		}
		for _, href := range testsupport.AnchorHrefs(html) {
			if href == "https://" {
				t.Errorf("%s: empty website href rendered", id)
			}
		}
	}
}

func TestRenderWithoutSocialLinks(t *testing.T) {
	p := testsupport.BareProfile()

	renderers, err := signature.NewAll()
	if err != nil {
		t.Fatalf("new renderers: %v", err)
	}
	for _, r := range renderers {
		fragment, err := r.SocialFragment(testsupport.Context(), p, render.RenderOptions{})
		if err != nil {
			t.Fatalf("%s: social fragment: %v", r.Name(), err)
		}
		if fragment != "" {
			t.Errorf("%s: expected empty social fragment, got %q", r.Name(), fragment)
		}

		html, err := r.Render(testsupport.Context(), p, render.RenderOptions{})
		if err != nil {
			t.Fatalf("%s: render: %v", r.Name(), err)
		}
		if hrefs := testsupport.AnchorHrefs(string(html)); len(hrefs) != 0 {
			t.Errorf("%s: expected no anchors, got %v", r.Name(), hrefs)
		}
		if !strings.Contains(string(html), "Ada Lovelace") {
			t.Errorf("%s: name missing", r.Name())
		}
	}
}

func TestCompactTwitterOnly(t *testing.T) {
	r, err := signature.New("compact")
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	html, err := r.Render(testsupport.Context(), testsupport.TwitterOnlyProfile(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	hrefs := testsupport.AnchorHrefs(string(html))
	want := []string{"https://alexjohnson.design", "https://twitter.com/alexjohnson"}
	if diff := cmp.Diff(want, hrefs); diff != "" {
		t.Fatalf("anchors mismatch (-want +got):\n%s", diff)
	}
	if n := testsupport.CountAnchorsWithPrefix(string(html), "https://twitter.com/"); n != 1 {
		t.Fatalf("expected exactly one twitter anchor, got %d", n)
	}
}

func TestWhitespaceHandleProducesNoSocialAnchors(t *testing.T) {
	p := testsupport.SampleProfile()
	p.Social = map[string]string{"twitter": "  "}

	for id, html := range renderAll(t, p, render.RenderOptions{}) {
		if n := testsupport.CountAnchorsWithPrefix(html, "https://twitter.com/"); n != 0 {
			t.Errorf("%s: expected no twitter anchors, got %d", id, n)
		}
		if hrefs := testsupport.AnchorHrefs(html); len(hrefs) != 1 {
			t.Errorf("%s: expected only the website anchor, got %v", id, hrefs)
		}
	}
}

func TestSocialLinksFollowPlatformOrder(t *testing.T) {
	p := testsupport.BareProfile().
		WithSocial("facebook", "ada").
		WithSocial("github", "ada").
		WithSocial("twitter", "ada").
		WithSocial("myspace", "ada")

	r, err := signature.New("minimal")
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	fragment, err := r.SocialFragment(testsupport.Context(), p, render.RenderOptions{})
	if err != nil {
		t.Fatalf("social fragment: %v", err)
	}

	want := []string{"https://twitter.com/ada", "https://github.com/ada", "https://facebook.com/ada"}
	if diff := cmp.Diff(want, testsupport.AnchorHrefs(fragment)); diff != "" {
		t.Fatalf("social order mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEscapesUserText(t *testing.T) {
	p := testsupport.BareProfile()
	p.Name = `<script>alert("x")</script>`

	for id, html := range renderAll(t, p, render.RenderOptions{}) {
		if strings.Contains(html, "<script>") {
			t.Errorf("%s: user text was not escaped", id)
		}
		if !strings.Contains(html, "&lt;script&gt;") {
			t.Errorf("%s: escaped name missing", id)
		}
	}
}

func TestRenderIsPure(t *testing.T) {
	p := testsupport.SampleProfile()
	before := p.Clone()

	first := renderAll(t, p, render.RenderOptions{})
	second := renderAll(t, p, render.RenderOptions{})

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("render not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, p); diff != "" {
		t.Fatalf("profile mutated (-before +after):\n%s", diff)
	}
}

func TestRenderIsPureForCaseVariantHandles(t *testing.T) {
	r, err := signature.New("compact")
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	p := testsupport.BareProfile()
	p.Social = map[string]string{"twitter": "ada", "Twitter": "lovelace"}

	for i := 0; i < 50; i++ {
		html, err := r.Render(testsupport.Context(), p, render.RenderOptions{})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		hrefs := testsupport.AnchorHrefs(string(html))
		if diff := cmp.Diff([]string{"https://twitter.com/ada"}, hrefs); diff != "" {
			t.Fatalf("iteration %d: hrefs mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestRenderAppliesThemeTokens(t *testing.T) {
	options := render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "sygnea",
			Variant: "custom",
			Tokens:  map[string]string{"name": "#ab0000"},
		},
	}

	r, err := signature.New("executive")
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	html, err := r.Render(testsupport.Context(), testsupport.SampleProfile(), options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), "color: #ab0000;") {
		t.Fatalf("expected themed name colour in output:\n%s", html)
	}

	plain, err := r.Render(testsupport.Context(), testsupport.SampleProfile(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(plain), "#ab0000") {
		t.Fatal("theme tokens leaked into a render without theme")
	}
}

func TestVariantsReturnsCopies(t *testing.T) {
	first := signature.Variants()
	first[0].Tokens["text"] = "#000000"

	second := signature.Variants()
	if second[0].Tokens["text"] == "#000000" {
		t.Fatal("variant tokens share state between calls")
	}
}

type stubTemplateRenderer struct {
	calls []string
}

func (s *stubTemplateRenderer) RenderTemplate(name string, _ map[string]any, _ ...io.Writer) (string, error) {
	s.calls = append(s.calls, name)
	return "  <div>" + name + "</div>\n", nil
}

func TestRendererWithTemplateRenderer(t *testing.T) {
	stub := &stubTemplateRenderer{}
	r, err := signature.New("professional", signature.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	html, err := r.Render(testsupport.Context(), testsupport.SampleProfile(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(html) != "<div>templates/professional</div>" {
		t.Fatalf("unexpected output %q", html)
	}

	want := []string{"templates/social/professional", "templates/professional"}
	if diff := cmp.Diff(want, stub.calls); diff != "" {
		t.Fatalf("template calls mismatch (-want +got):\n%s", diff)
	}
}

func TestWithSocialStyleBadge(t *testing.T) {
	r, err := signature.New("minimal", signature.WithSocialStyle(signature.SocialBadge))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	fragment, err := r.SocialFragment(testsupport.Context(), testsupport.TwitterOnlyProfile(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("social fragment: %v", err)
	}
	if !strings.Contains(fragment, "border-radius: 50%") || !strings.Contains(fragment, `title="Twitter"`) {
		t.Fatalf("expected badge markup, got %q", fragment)
	}

	if _, err := signature.New("minimal", signature.WithSocialStyle("neon")); err == nil {
		t.Fatal("expected unknown social style to fail")
	}
}
