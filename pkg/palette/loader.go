package palette

import (
	"fmt"
	"os"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

type manifestFile struct {
	Name     string                       `yaml:"name"`
	Version  string                       `yaml:"version"`
	Tokens   map[string]string            `yaml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants"`
}

// ParseManifest decodes a palette document:
//
//	name: minimal
//	tokens:
//	  accent: "#ff6600"
//	variants:
//	  mono:
//	    accent: "#333333"
//
// Tokens missing from the document are filled from the built-in manifest of
// the same name, when there is one.
func ParseManifest(data []byte) (*theme.Manifest, error) {
	var doc manifestFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("palette: decode manifest: %w", err)
	}

	m := &theme.Manifest{
		Name:     doc.Name,
		Version:  doc.Version,
		Tokens:   map[string]string{},
		Variants: map[string]theme.Variant{},
	}
	if m.Version == "" {
		m.Version = manifestVersion
	}
	if base := builtin(doc.Name); base != nil {
		m.Tokens = copyTokens(base.Tokens)
		for name, v := range base.Variants {
			m.Variants[name] = theme.Variant{Tokens: copyTokens(v.Tokens)}
		}
	}
	for k, v := range doc.Tokens {
		m.Tokens[k] = v
	}
	for name, tokens := range doc.Variants {
		merged := copyTokens(m.Variants[name].Tokens)
		for k, v := range tokens {
			merged[k] = v
		}
		m.Variants[name] = theme.Variant{Tokens: merged}
	}

	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadManifestFile reads and parses a palette document from disk.
func LoadManifestFile(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("palette: read %s: %w", path, err)
	}
	return ParseManifest(data)
}

func builtin(name string) *theme.Manifest {
	for _, m := range Manifests() {
		if m.Name == name {
			return m
		}
	}
	return nil
}
