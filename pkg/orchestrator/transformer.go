package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-sygnea/pkg/profile"
	"github.com/goliatone/go-sygnea/pkg/social"
)

// Transformer adjusts a profile before it is rendered. The orchestrator hands
// transformers a copy, so callers' profiles are never changed.
type Transformer interface {
	Transform(ctx context.Context, p *profile.Profile) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, p *profile.Profile) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, p *profile.Profile) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, p)
}

// PresetTransformer applies a team preset loaded from YAML or JSON. Defaults
// fill blank fields; overrides always win:
//
//	defaults:
//	  website: acme.example
//	  socialLinks:
//	    linkedin: acme
//	overrides:
//	  position: Acme Design Team
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Defaults  presetFields `json:"defaults" yaml:"defaults"`
	Overrides presetFields `json:"overrides" yaml:"overrides"`
}

type presetFields struct {
	Name     string            `json:"name" yaml:"name"`
	Position string            `json:"position" yaml:"position"`
	Website  string            `json:"website" yaml:"website"`
	Social   map[string]string `json:"socialLinks" yaml:"socialLinks"`
}

// NewPresetTransformer parses a preset document. YAML is a superset of JSON,
// so either format is accepted.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	for _, links := range []map[string]string{document.Defaults.Social, document.Overrides.Social} {
		for id := range links {
			if _, ok := social.Lookup(id); !ok {
				return nil, fmt.Errorf("preset transformer: unknown platform %q", id)
			}
		}
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies defaults then overrides onto p.
func (t *PresetTransformer) Transform(ctx context.Context, p *profile.Profile) error {
	if p == nil {
		return errors.New("preset transformer: profile is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d := t.document.Defaults
	p.Name = fillBlank(p.Name, d.Name)
	p.Position = fillBlank(p.Position, d.Position)
	p.Website = fillBlank(p.Website, d.Website)
	for id, handle := range d.Social {
		if p.Social == nil {
			p.Social = make(map[string]string, len(d.Social))
		}
		p.Social[id] = fillBlank(p.Social[id], handle)
	}

	o := t.document.Overrides
	p.Name = override(p.Name, o.Name)
	p.Position = override(p.Position, o.Position)
	p.Website = override(p.Website, o.Website)
	if len(o.Social) > 0 {
		p.Social = mergeStringMap(p.Social, o.Social)
	}
	return nil
}

func fillBlank(current, fallback string) string {
	if strings.TrimSpace(current) == "" {
		return fallback
	}
	return current
}

func override(current, value string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return current
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
