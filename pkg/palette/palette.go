// Package palette exposes the signature colour schemes as go-theme manifests.
// Every signature template has a manifest of its own, named after the template,
// with a neutral base palette and a small set of variants.
package palette

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-sygnea/pkg/renderers/signature"
)

const (
	// VariantDefault selects the manifest base tokens.
	VariantDefault = "default"
	// VariantMono is a greyscale palette that survives aggressive client
	// colour rewriting.
	VariantMono = "mono"
	// VariantOcean swaps the neutral accents for blues.
	VariantOcean = "ocean"

	manifestVersion = "1.0.0"
)

var (
	ErrThemeNotFound   = errors.New("palette: theme not found")
	ErrVariantNotFound = errors.New("palette: variant not found")
	ErrInvalidToken    = errors.New("palette: invalid colour token")
)

var hexColour = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var monoTokens = map[string]string{
	signature.TokenText:       "#222222",
	signature.TokenName:       "#000000",
	signature.TokenMuted:      "#555555",
	signature.TokenLink:       "#333333",
	signature.TokenAccent:     "#333333",
	signature.TokenAccentEnd:  "#777777",
	signature.TokenSurface:    "#ffffff",
	signature.TokenOutline:    "#dddddd",
	signature.TokenDivider:    "#eeeeee",
	signature.TokenSocialText: "#555555",
}

var oceanTokens = map[string]string{
	signature.TokenName:       "#0b3d63",
	signature.TokenLink:       "#0369a1",
	signature.TokenAccent:     "#0284c7",
	signature.TokenAccentEnd:  "#38bdf8",
	signature.TokenOutline:    "#bae6fd",
	signature.TokenDivider:    "#e0f2fe",
	signature.TokenSocialText: "#0c4a6e",
}

// Manifests returns one manifest per signature template, in display order.
func Manifests() []*theme.Manifest {
	variants := signature.Variants()
	out := make([]*theme.Manifest, 0, len(variants))
	for _, v := range variants {
		out = append(out, &theme.Manifest{
			Name:    v.ID,
			Version: manifestVersion,
			Tokens:  v.Tokens,
			Variants: map[string]theme.Variant{
				VariantMono:  {Tokens: copyTokens(monoTokens)},
				VariantOcean: {Tokens: copyTokens(oceanTokens)},
			},
		})
	}
	return out
}

// RegisterAll adds the built-in manifests to a go-theme registry.
func RegisterAll(registry interface {
	Register(*theme.Manifest) error
}) error {
	if registry == nil {
		return errors.New("palette: registry is nil")
	}
	for _, m := range Manifests() {
		if err := registry.Register(m); err != nil {
			return fmt.Errorf("palette: register %s: %w", m.Name, err)
		}
	}
	return nil
}

// Validate checks that every token in m and its variants is a hex colour.
func Validate(m *theme.Manifest) error {
	if m == nil {
		return errors.New("palette: manifest is nil")
	}
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("palette: manifest name is required")
	}
	if err := validateTokens(m.Name, m.Tokens); err != nil {
		return err
	}
	for name, variant := range m.Variants {
		if err := validateTokens(m.Name+"/"+name, variant.Tokens); err != nil {
			return err
		}
	}
	return nil
}

func validateTokens(scope string, tokens map[string]string) error {
	keys := make([]string, 0, len(tokens))
	for k := range tokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !hexColour.MatchString(tokens[k]) {
			return fmt.Errorf("%w: %s %s=%q", ErrInvalidToken, scope, k, tokens[k])
		}
	}
	return nil
}

// VariantNames lists the variants of m, default first and the rest sorted.
func VariantNames(m *theme.Manifest) []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.Variants))
	for name := range m.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{VariantDefault}, names...)
}

func copyTokens(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
