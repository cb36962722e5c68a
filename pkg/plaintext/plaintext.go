// Package plaintext derives the text/plain form of a signature. It reads the
// same normalised fields as the HTML renderers so both formats always agree on
// which values are present.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/aymerick/raymond"

	"github.com/goliatone/go-sygnea/pkg/profile"
	"github.com/goliatone/go-sygnea/pkg/render"
)

// DefaultLayout prints name, position, website and a single line of social
// handles. Lines that render empty are dropped.
const DefaultLayout = `{{{name}}}
{{{position}}}
{{#if website}}Website: {{{website}}}{{/if}}
{{#each social}}{{{platform}}}: {{{handle}}}{{#unless @last}}{{{../separator}}}{{/unless}}{{/each}}
`

// DefaultSeparator joins social handles on one line.
const DefaultSeparator = " | "

// Option configures a Formatter.
type Option func(*Formatter)

// WithLayout replaces the handlebars layout.
func WithLayout(layout string) Option {
	return func(f *Formatter) {
		if strings.TrimSpace(layout) != "" {
			f.layout = layout
		}
	}
}

// WithLayoutFile reads the handlebars layout from disk when the formatter is
// built.
func WithLayoutFile(path string) Option {
	return func(f *Formatter) {
		f.layoutPath = strings.TrimSpace(path)
	}
}

// WithSeparator changes the string placed between social handles.
func WithSeparator(sep string) Option {
	return func(f *Formatter) {
		f.separator = sep
	}
}

// Formatter renders profiles to plain text.
type Formatter struct {
	layout     string
	layoutPath string
	separator  string

	once sync.Once
	tpl  *raymond.Template
	err  error
}

var _ render.Renderer = (*Formatter)(nil)

// New builds a formatter. The layout is parsed eagerly so a broken custom
// layout fails at construction.
func New(options ...Option) (*Formatter, error) {
	f := &Formatter{
		layout:    DefaultLayout,
		separator: DefaultSeparator,
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.layoutPath != "" {
		data, err := os.ReadFile(f.layoutPath)
		if err != nil {
			return nil, fmt.Errorf("plaintext: read layout: %w", err)
		}
		f.layout = string(data)
	}
	if _, err := f.template(); err != nil {
		return nil, err
	}
	return f, nil
}

// Default is a formatter using DefaultLayout. It panics only if the built-in
// layout fails to parse.
func Default() *Formatter {
	f, err := New()
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Formatter) template() (*raymond.Template, error) {
	f.once.Do(func() {
		tpl, err := raymond.Parse(f.layout)
		if err != nil {
			f.err = fmt.Errorf("plaintext: parse layout: %w", err)
			return
		}
		tpl.RegisterHelper("upper", func(s string) string {
			return strings.ToUpper(s)
		})
		tpl.RegisterHelper("lower", func(s string) string {
			return strings.ToLower(s)
		})
		f.tpl = tpl
	})
	return f.tpl, f.err
}

func (f *Formatter) Name() string {
	return "plaintext"
}

func (f *Formatter) ContentType() string {
	return render.FormatText.ContentType()
}

// Render satisfies render.Renderer.
func (f *Formatter) Render(ctx context.Context, p profile.Profile, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := f.Format(p)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// Format renders p to text.
func (f *Formatter) Format(p profile.Profile) (string, error) {
	return f.FormatFields(profile.Extract(p))
}

// FormatFields renders already extracted fields.
func (f *Formatter) FormatFields(fields profile.Fields) (string, error) {
	tpl, err := f.template()
	if err != nil {
		return "", err
	}

	result, err := tpl.Exec(layoutContext(fields, f.separator))
	if err != nil {
		return "", fmt.Errorf("plaintext: execute layout: %w", err)
	}
	return compact(result), nil
}

func layoutContext(fields profile.Fields, separator string) map[string]any {
	social := make([]map[string]string, 0, len(fields.Social))
	for _, link := range fields.Social {
		social = append(social, map[string]string{
			"platform": link.Platform.ID,
			"name":     link.Platform.DisplayName,
			"handle":   link.Handle,
			"url":      link.URL,
		})
	}
	return map[string]any{
		"name":       fields.Name,
		"position":   fields.Position,
		"website":    fields.Website,
		"websiteUrl": fields.WebsiteURL,
		"social":     social,
		"separator":  separator,
	}
}

// compact trims every line and drops the empty ones.
func compact(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
