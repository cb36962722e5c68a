// Package preview renders the browser page that shows a signature inside a
// mock email, next to a picker of every available template.
package preview

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-sygnea/pkg/render"
	rendertemplate "github.com/goliatone/go-sygnea/pkg/render/template"
	gotemplate "github.com/goliatone/go-sygnea/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded page templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// Card is one entry of the template picker.
type Card struct {
	Template  render.Template
	Signature string
	Href      string
	Selected  bool
}

// View is everything the page shows. Signature and every Card.Signature must
// come from the same renderers used for export.
type View struct {
	Selected  render.Template
	Signature string
	Text      string
	Palette   string
	// Sample marks that the built-in profile is shown because the user has
	// not entered a name yet.
	Sample bool
	Cards  []Card
}

type Option func(*Previewer)

// WithTemplateRenderer replaces the page engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(p *Previewer) {
		if renderer != nil {
			p.templates = renderer
		}
	}
}

// Previewer renders preview pages.
type Previewer struct {
	templates rendertemplate.TemplateRenderer
}

func New(options ...Option) (*Previewer, error) {
	p := &Previewer{}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	if p.templates == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
		if err != nil {
			return nil, fmt.Errorf("preview: configure template renderer: %w", err)
		}
		p.templates = engine
	}
	return p, nil
}

// Render produces the full HTML page.
func (p *Previewer) Render(ctx context.Context, view View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cards := make([]map[string]any, 0, len(view.Cards))
	for _, card := range view.Cards {
		cards = append(cards, map[string]any{
			"id":          card.Template.ID,
			"name":        card.Template.Name,
			"description": card.Template.Description,
			"signature":   card.Signature,
			"href":        card.Href,
			"selected":    card.Selected,
		})
	}

	title := "Signature preview"
	if view.Selected.Name != "" {
		title = view.Selected.Name + " - " + title
	}

	out, err := p.templates.RenderTemplate("templates/page", map[string]any{
		"title": title,
		"selected": map[string]any{
			"id":          view.Selected.ID,
			"name":        view.Selected.Name,
			"description": view.Selected.Description,
		},
		"signature": view.Signature,
		"text":      view.Text,
		"palette":   view.Palette,
		"sample":    view.Sample,
		"cards":     cards,
	})
	if err != nil {
		return nil, fmt.Errorf("preview: render page: %w", err)
	}
	return []byte(out), nil
}
