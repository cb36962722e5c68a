package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the profile.
type RenderOptions struct {
	// Theme carries the resolved palette for the template. Renderers fall back
	// to their built-in colours when nil or when a token is missing.
	Theme *theme.RendererConfig
}

// Token returns the named palette token or fallback.
func (o RenderOptions) Token(name, fallback string) string {
	if o.Theme == nil || o.Theme.Tokens == nil {
		return fallback
	}
	if value, ok := o.Theme.Tokens[name]; ok && value != "" {
		return value
	}
	return fallback
}
