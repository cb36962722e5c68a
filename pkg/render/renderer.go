package render

import (
	"context"

	"github.com/goliatone/go-sygnea/pkg/profile"
)

// Renderer converts a contact profile into a signature representation. Render
// must not mutate the profile and must be deterministic for a given profile
// and options pair.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, p profile.Profile, options RenderOptions) ([]byte, error)
}

// Describer is implemented by renderers that carry display metadata.
type Describer interface {
	Describe() Template
}

// Template is the display metadata for a signature variant.
type Template struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

func describe(r Renderer) Template {
	if d, ok := r.(Describer); ok {
		return d.Describe()
	}
	return Template{ID: r.Name(), Name: r.Name()}
}
