package sygnea

import (
	"context"
	"io/fs"
	"strings"
	"testing"
)

func TestGenerateHTML(t *testing.T) {
	html, err := GenerateHTML(context.Background(), DefaultProfile(), "executive")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(html), "Georgia") {
		t.Fatalf("expected executive layout, got %s", html)
	}
}

func TestGenerateTextWithPalette(t *testing.T) {
	text, err := GenerateText(context.Background(), Profile{Name: "Ada"}, WithPalette("mono"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "Ada" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestGenerateBothFormats(t *testing.T) {
	result, err := Generate(context.Background(), DefaultProfile(), "creative", WithPalette("ocean"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Palette != "ocean" || !strings.Contains(result.HTML, "#0284c7") {
		t.Fatalf("ocean palette not applied: %+v", result)
	}
	if result.Payload().Text != result.Text {
		t.Fatal("payload text mismatch")
	}
}

func TestTemplatesAndEmbeddedFS(t *testing.T) {
	if got := len(Templates()); got != 6 {
		t.Fatalf("expected six templates, got %d", got)
	}
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/compact.tpl"); err != nil {
		t.Fatalf("expected compact template: %v", err)
	}
	if _, err := fs.ReadFile(PreviewTemplates(), "templates/page.tpl"); err != nil {
		t.Fatalf("expected preview page template: %v", err)
	}
}
