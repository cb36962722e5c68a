package sanitize

import (
	"strings"
	"testing"
)

func TestHTMLStripsScriptsAndClasses(t *testing.T) {
	in := `<div class="sig" style="color: #333333;"><script>alert(1)</script><span onclick="x()">Ada</span></div>`
	out := HTML(in)

	for _, banned := range []string{"<script", "alert(1)", "class=", "onclick"} {
		if strings.Contains(out, banned) {
			t.Fatalf("expected %q removed, got %s", banned, out)
		}
	}
	if !strings.Contains(out, "Ada") || !strings.Contains(out, "color") {
		t.Fatalf("expected content and styles kept, got %s", out)
	}
}

func TestHTMLFiltersLinkSchemes(t *testing.T) {
	in := `<a href="javascript:alert(1)">bad</a><a href="https://github.com/ada">gh</a><a href="mailto:ada@example.com">mail</a>`
	out := HTML(in)

	if strings.Contains(out, "javascript:") {
		t.Fatalf("javascript link kept: %s", out)
	}
	if !strings.Contains(out, `href="https://github.com/ada"`) || !strings.Contains(out, `href="mailto:ada@example.com"`) {
		t.Fatalf("safe links removed: %s", out)
	}
}

func TestHTMLDropsUnsafeStyleValues(t *testing.T) {
	out := HTML(`<div style="background: url(https://evil.test/x.png)">x</div>`)
	if strings.Contains(out, "url(") {
		t.Fatalf("url() style kept: %s", out)
	}
}

func TestHTMLDropsStyleBlocks(t *testing.T) {
	out := HTML(`<style>.a{color:red}</style><div>ok</div>`)
	if strings.Contains(out, "<style") || strings.Contains(out, "color:red") {
		t.Fatalf("style block kept: %s", out)
	}
}

func TestSafeStyleValue(t *testing.T) {
	cases := map[string]bool{
		"#333333":                   true,
		"0 8px":                     true,
		"-apple-system, 'Segoe UI'": true,
		"none !important":           true,
		"url(x)":                    false,
		"expression(alert(1))":      false,
		"red; background: url(x)":   false,
	}
	for value, want := range cases {
		if got := safeStyleValue(value); got != want {
			t.Errorf("safeStyleValue(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestHTMLEmpty(t *testing.T) {
	if HTML("   ") != "" {
		t.Fatal("expected empty output")
	}
}
