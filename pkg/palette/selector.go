package palette

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// Selector resolves a template name and palette variant into a go-theme
// selection. It is safe for concurrent use.
type Selector struct {
	mu        sync.RWMutex
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector builds a selector holding manifests. Invalid manifests are
// rejected.
func NewSelector(manifests ...*theme.Manifest) (*Selector, error) {
	s := &Selector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, m := range manifests {
		if err := s.Add(m); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// DefaultSelector holds the built-in manifests.
func DefaultSelector() *Selector {
	s, err := NewSelector(Manifests()...)
	if err != nil {
		panic(err)
	}
	return s
}

// Add registers or replaces a manifest.
func (s *Selector) Add(m *theme.Manifest) error {
	if err := Validate(m); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifests[m.Name] = m
	return nil
}

// Names lists the known manifests, sorted.
func (s *Selector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Manifest returns the manifest registered under name.
func (s *Selector) Manifest(name string) (*theme.Manifest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.manifests[strings.TrimSpace(name)]
	return m, ok
}

// Select implements theme.ThemeSelector. An empty variant selects the base
// palette. Query options are accepted for interface compatibility.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	m, ok := s.Manifest(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = VariantDefault
	}
	if variant != VariantDefault {
		if _, ok := m.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %s/%s", ErrVariantNotFound, m.Name, variant)
		}
	}

	return &theme.Selection{
		Theme:    m.Name,
		Variant:  variant,
		Manifest: m,
	}, nil
}

// Resolve selects name/variant and derives the renderer configuration.
func (s *Selector) Resolve(name, variant string) (*theme.RendererConfig, error) {
	selection, err := s.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return RendererConfig(selection), nil
}
