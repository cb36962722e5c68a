package palette

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// RendererConfig flattens a selection into what renderers consume: base
// tokens overlaid with variant tokens, a CSS custom property per token, merged
// partials and an asset resolver.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	m := selection.Manifest
	variant, hasVariant := m.Variants[selection.Variant]

	tokens := copyTokens(m.Tokens)
	partials := copyTokens(m.Templates)
	files := copyTokens(m.Assets.Files)
	if hasVariant {
		for k, v := range variant.Tokens {
			tokens[k] = v
		}
		for k, v := range variant.Templates {
			partials[k] = v
		}
		for k, v := range variant.Assets.Files {
			files[k] = v
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for k, v := range tokens {
		cssVars[CSSVar(k)] = v
	}

	prefix := strings.TrimSuffix(m.Assets.Prefix, "/")
	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok {
				return ""
			}
			if prefix == "" {
				return file
			}
			return prefix + "/" + strings.TrimPrefix(file, "/")
		},
	}
}

// CSSVar names the custom property for token, e.g. accent_end becomes
// --accent-end.
func CSSVar(token string) string {
	return "--" + strings.ReplaceAll(strings.TrimSpace(token), "_", "-")
}
