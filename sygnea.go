// Package sygnea renders email signatures from a contact profile. The root
// package re-exports the pieces most callers need; the sub-packages under pkg/
// hold the renderers, palettes and export helpers.
package sygnea

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-sygnea/pkg/orchestrator"
	"github.com/goliatone/go-sygnea/pkg/profile"
	"github.com/goliatone/go-sygnea/pkg/render"
)

// Profile is the contact data rendered into a signature.
type Profile = profile.Profile

// Request describes a single signature render.
type Request = orchestrator.Request

// Result carries the HTML and plain-text exports of one render.
type Result = orchestrator.Result

// RenderOptions describes per-request overrides renderers understand.
type RenderOptions = render.RenderOptions

// Template is the display metadata of a signature template.
type Template = render.Template

// DefaultProfile returns the sample profile shown before the user types.
func DefaultProfile() Profile {
	return profile.Default()
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate renders p with the named template and returns both export formats.
func Generate(ctx context.Context, p Profile, templateName string, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Profile:  p,
		Template: templateName,
	})
}

// GenerateHTML renders p with the named template. It is the simplest entry
// point for callers that just want HTML output.
func GenerateHTML(ctx context.Context, p Profile, templateName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Render(ctx, orchestrator.Request{
		Profile:  p,
		Template: templateName,
	}, render.FormatHTML)
}

// GenerateText returns the plain-text export of p.
func GenerateText(ctx context.Context, p Profile, options ...orchestrator.Option) (string, error) {
	gen := orchestrator.New(options...)
	out, err := gen.Render(ctx, orchestrator.Request{Profile: p}, render.FormatText)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Templates lists the built-in templates in display order.
func Templates() []Template {
	return orchestrator.New().Templates()
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// palette choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithPalette selects the default palette variant.
func WithPalette(variant string) orchestrator.Option {
	return orchestrator.WithDefaultPalette(variant)
}
