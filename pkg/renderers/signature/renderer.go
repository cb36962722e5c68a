package signature

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-sygnea/pkg/profile"
	"github.com/goliatone/go-sygnea/pkg/render"
	rendertemplate "github.com/goliatone/go-sygnea/pkg/render/template"
	gotemplate "github.com/goliatone/go-sygnea/pkg/render/template/gotemplate"
	"github.com/goliatone/go-sygnea/pkg/social"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	socialStyle      SocialStyle
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must use the same layout as the embedded one (templates/<id>.tpl and
// templates/social/<style>.tpl).
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir overrides bundled templates with files found under path.
// Templates missing from path still come from the bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSocialStyle replaces the social style every variant would otherwise use.
func WithSocialStyle(style SocialStyle) Option {
	return func(cfg *config) {
		cfg.socialStyle = style
	}
}

// Renderer renders one signature variant to inline-styled HTML.
type Renderer struct {
	variant   Variant
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)
var _ render.Describer = (*Renderer)(nil)

// New constructs the renderer for the variant id.
func New(id string, options ...Option) (*Renderer, error) {
	variant, ok := LookupVariant(id)
	if !ok {
		return nil, fmt.Errorf("signature renderer: variant %q: %w", id, render.ErrTemplateNotFound)
	}
	cfg, engine, err := buildEngine(options)
	if err != nil {
		return nil, err
	}
	return &Renderer{variant: cfg.apply(variant), templates: engine}, nil
}

// NewAll constructs every variant in display order sharing one engine.
func NewAll(options ...Option) ([]*Renderer, error) {
	cfg, engine, err := buildEngine(options)
	if err != nil {
		return nil, err
	}
	out := make([]*Renderer, 0, len(variants))
	for _, variant := range Variants() {
		out = append(out, &Renderer{variant: cfg.apply(variant), templates: engine})
	}
	return out, nil
}

// Register adds every variant to registry in display order.
func Register(registry *render.Registry, options ...Option) error {
	if registry == nil {
		return fmt.Errorf("signature renderer: registry is nil")
	}
	renderers, err := NewAll(options...)
	if err != nil {
		return err
	}
	for _, r := range renderers {
		if err := registry.Register(r); err != nil {
			return fmt.Errorf("signature renderer: %w", err)
		}
	}
	return nil
}

func buildEngine(options []Option) (config, rendertemplate.TemplateRenderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.socialStyle != "" && !ValidSocialStyle(cfg.socialStyle) {
		return cfg, nil, fmt.Errorf("signature renderer: unknown social style %q", cfg.socialStyle)
	}
	if cfg.templateRenderer != nil {
		return cfg, cfg.templateRenderer, nil
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine, err := gotemplate.New(
		gotemplate.WithFS(cfg.templateFS),
		gotemplate.WithOverlayDir(cfg.templatesDir),
	)
	if err != nil {
		return cfg, nil, fmt.Errorf("signature renderer: configure template renderer: %w", err)
	}
	return cfg, engine, nil
}

func (cfg config) apply(v Variant) Variant {
	if cfg.socialStyle == "" {
		return v
	}
	v.Social = cfg.socialStyle
	if cfg.socialStyle == SocialBadge {
		v.Separator = ""
	}
	return v
}

func (r *Renderer) Name() string {
	return r.variant.ID
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Describe returns the picker metadata for the variant.
func (r *Renderer) Describe() render.Template {
	return render.Template{
		ID:          r.variant.ID,
		Name:        r.variant.Name,
		Description: r.variant.Description,
	}
}

// Variant returns the variant definition backing the renderer.
func (r *Renderer) Variant() Variant {
	return r.variant
}

// Render produces the signature HTML. Website and social blocks are omitted
// when the profile has nothing to show for them.
func (r *Renderer) Render(ctx context.Context, p profile.Profile, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("signature renderer: template renderer is nil")
	}

	fields := profile.Extract(p)
	tokens := r.tokens(options)

	links, err := r.socialFragment(fields, tokens)
	if err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate("templates/"+r.variant.ID, map[string]any{
		"name":         fields.Name,
		"position":     fields.Position,
		"website":      fields.Website,
		"website_url":  fields.WebsiteURL,
		"social_links": links,
		"tokens":       tokens,
	})
	if err != nil {
		return nil, fmt.Errorf("signature renderer: render %s: %w", r.variant.ID, err)
	}
	return []byte(strings.TrimSpace(result)), nil
}

// SocialFragment renders only the social links block. It is empty when the
// profile has no non-blank handles.
func (r *Renderer) SocialFragment(ctx context.Context, p profile.Profile, options render.RenderOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return r.socialFragment(profile.Extract(p), r.tokens(options))
}

func (r *Renderer) socialFragment(fields profile.Fields, tokens map[string]string) (string, error) {
	if !fields.HasSocial() {
		return "", nil
	}

	links := make([]map[string]string, 0, len(fields.Social))
	for _, link := range fields.Social {
		links = append(links, linkContext(link))
	}

	result, err := r.templates.RenderTemplate("templates/social/"+string(r.variant.Social), map[string]any{
		"links":     links,
		"separator": r.variant.Separator,
		"tokens":    tokens,
	})
	if err != nil {
		return "", fmt.Errorf("signature renderer: render social links: %w", err)
	}
	return strings.TrimSpace(result), nil
}

func (r *Renderer) tokens(options render.RenderOptions) map[string]string {
	out := make(map[string]string, len(r.variant.Tokens))
	for name, fallback := range r.variant.Tokens {
		out[name] = options.Token(name, fallback)
	}
	return out
}

func linkContext(link social.Link) map[string]string {
	glyph := link.Platform.Glyph
	if glyph == "" {
		glyph = social.FallbackGlyph(link.Platform.ID)
	}
	return map[string]string{
		"id":     link.Platform.ID,
		"name":   link.Platform.DisplayName,
		"url":    link.URL,
		"color":  link.Platform.Color,
		"glyph":  glyph,
		"handle": link.Handle,
	}
}
