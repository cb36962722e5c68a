package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-sygnea/pkg/clipboard"
	"github.com/goliatone/go-sygnea/pkg/palette"
	"github.com/goliatone/go-sygnea/pkg/plaintext"
	"github.com/goliatone/go-sygnea/pkg/preview"
	"github.com/goliatone/go-sygnea/pkg/profile"
	"github.com/goliatone/go-sygnea/pkg/render"
	"github.com/goliatone/go-sygnea/pkg/renderers/signature"
	"github.com/goliatone/go-sygnea/pkg/sanitize"
)

const defaultTemplateName = signature.DefaultVariant

// TextFormatter derives the plain-text export from extracted fields.
type TextFormatter interface {
	FormatFields(fields profile.Fields) (string, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultTemplate overrides the template used when a request omits one.
func WithDefaultTemplate(name string) Option {
	return func(o *Orchestrator) {
		o.defaultTemplate = strings.TrimSpace(name)
	}
}

// WithSignatureOptions forwards options to the built-in signature renderers
// when the orchestrator builds its own registry.
func WithSignatureOptions(options ...signature.Option) Option {
	return func(o *Orchestrator) {
		o.signatureOptions = append(o.signatureOptions, options...)
	}
}

// WithThemeSelector resolves palettes through selector. Pass nil to render
// every template with its built-in colours.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.selector = selector
		o.selectorSpecified = true
	}
}

// WithDefaultPalette selects the palette variant used when a request omits
// one.
func WithDefaultPalette(variant string) Option {
	return func(o *Orchestrator) {
		o.defaultPalette = strings.TrimSpace(variant)
	}
}

// WithTextFormatter replaces the plain-text formatter.
func WithTextFormatter(formatter TextFormatter) Option {
	return func(o *Orchestrator) {
		o.text = formatter
	}
}

// WithSanitize runs rendered HTML through the signature sanitiser.
func WithSanitize(enabled bool) Option {
	return func(o *Orchestrator) {
		o.sanitize = enabled
	}
}

// WithTransformer registers a Transformer that adjusts the profile before
// rendering.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

// WithPreviewer injects the preview page renderer.
func WithPreviewer(p *preview.Previewer) Option {
	return func(o *Orchestrator) {
		o.previewer = p
	}
}

// WithLogger sets the logger used for non-fatal diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the full pipeline from contact profile to rendered
// signature. It applies sensible defaults (the six built-in templates, their
// palettes and the default text layout) while remaining open to dependency
// injection for advanced callers.
type Orchestrator struct {
	registry          *render.Registry
	defaultTemplate   string
	signatureOptions  []signature.Option
	selector          theme.ThemeSelector
	selectorSpecified bool
	defaultPalette    string
	text              TextFormatter
	sanitize          bool
	transformers      []Transformer
	previewer         *preview.Previewer
	logger            *zap.Logger
	initialiseErr     error
	defaultsApplied   bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers can
// start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultTemplate: defaultTemplateName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single signature render.
type Request struct {
	// Profile is the user's contact data. A profile without a name renders the
	// built-in sample profile instead.
	Profile profile.Profile

	// Template names the template to use. If empty, the orchestrator falls
	// back to the configured default template.
	Template string

	// Palette selects a palette variant of the template. Empty means the
	// configured default palette.
	Palette string

	// RenderOptions carries per-request options. A Theme set here bypasses
	// palette selection.
	RenderOptions render.RenderOptions
}

// Result is one rendered signature in both export formats.
type Result struct {
	Template render.Template `json:"template"`
	HTML     string          `json:"html"`
	Text     string          `json:"text"`
	// Sample reports that the built-in profile was rendered.
	Sample  bool   `json:"sample"`
	Palette string `json:"palette,omitempty"`
}

// Payload converts r into a clipboard payload.
func (r Result) Payload() clipboard.Payload {
	return clipboard.Payload{HTML: r.HTML, Text: r.Text}
}

// Generate resolves the profile, renders the HTML signature and derives the
// plain-text version from the same fields.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if err := o.ready(ctx); err != nil {
		return Result{}, err
	}

	p, sample, err := o.resolveProfile(ctx, req.Profile)
	if err != nil {
		return Result{}, err
	}

	renderer, err := o.rendererFor(req.Template)
	if err != nil {
		return Result{}, err
	}

	options, paletteName, err := o.renderOptions(renderer.Name(), req)
	if err != nil {
		return Result{}, err
	}

	output, err := renderer.Render(ctx, p, options)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	html := string(output)
	if o.sanitize {
		html = sanitize.HTML(html)
	}

	text, err := o.text.FormatFields(profile.Extract(p))
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: derive text: %w", err)
	}

	return Result{
		Template: describe(renderer),
		HTML:     html,
		Text:     text,
		Sample:   sample,
		Palette:  paletteName,
	}, nil
}

// Render returns a single export format.
func (o *Orchestrator) Render(ctx context.Context, req Request, format render.Format) ([]byte, error) {
	result, err := o.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	switch format {
	case render.FormatHTML:
		return []byte(result.HTML), nil
	case render.FormatText:
		return []byte(result.Text), nil
	default:
		return nil, fmt.Errorf("orchestrator: %w: %q", render.ErrUnsupportedFormat, format)
	}
}

// Templates lists the registered templates in display order.
func (o *Orchestrator) Templates() []render.Template {
	if o.registry == nil {
		return nil
	}
	return o.registry.Templates()
}

// Gallery renders req against every registered template, in display order.
func (o *Orchestrator) Gallery(ctx context.Context, req Request) ([]Result, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	names := o.registry.List()
	out := make([]Result, 0, len(names))
	for _, name := range names {
		item := req
		item.Template = name
		result, err := o.Generate(ctx, item)
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, nil
}

// Preview renders the preview page for req. href builds picker links for a
// template id; nil disables the picker.
func (o *Orchestrator) Preview(ctx context.Context, req Request, href func(templateID string) string) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	selected, err := o.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	view := preview.View{
		Selected:  selected.Template,
		Signature: selected.HTML,
		Text:      selected.Text,
		Palette:   selected.Palette,
		Sample:    selected.Sample,
	}

	if href != nil {
		gallery, err := o.Gallery(ctx, req)
		if err != nil {
			return nil, err
		}
		for _, item := range gallery {
			view.Cards = append(view.Cards, preview.Card{
				Template:  item.Template,
				Signature: item.HTML,
				Href:      href(item.Template.ID),
				Selected:  item.Template.ID == selected.Template.ID,
			})
		}
	}

	return o.previewer.Render(ctx, view)
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveProfile(ctx context.Context, in profile.Profile) (profile.Profile, bool, error) {
	p := in.Clone()
	for _, t := range o.transformers {
		if err := t.Transform(ctx, &p); err != nil {
			return profile.Profile{}, false, fmt.Errorf("orchestrator: transform profile: %w", err)
		}
	}
	if p.IsBlank() {
		return profile.Default(), true, nil
	}
	return p, false, nil
}

func (o *Orchestrator) renderOptions(templateID string, req Request) (render.RenderOptions, string, error) {
	options := req.RenderOptions
	if options.Theme != nil {
		return options, options.Theme.Variant, nil
	}
	if o.selector == nil {
		return options, "", nil
	}

	variant := strings.TrimSpace(req.Palette)
	requested := variant != ""
	if !requested {
		variant = o.defaultPalette
	}

	selection, err := o.selector.Select(templateID, variant)
	if err != nil {
		if requested {
			return options, "", fmt.Errorf("orchestrator: palette %q: %w", variant, err)
		}
		o.logger.Debug("palette unavailable, using built-in colours",
			zap.String("template", templateID),
			zap.String("palette", variant),
			zap.Error(err),
		)
		return options, "", nil
	}

	options.Theme = palette.RendererConfig(selection)
	return options, selection.Variant, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := strings.TrimSpace(name)
	if target == "" {
		target = o.defaultTemplate
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: template %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no templates registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: template %q: %w", names[0], err)
	}
	return renderer, nil
}

func describe(r render.Renderer) render.Template {
	if d, ok := r.(render.Describer); ok {
		return d.Describe()
	}
	return render.Template{ID: r.Name(), Name: r.Name()}
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.registry == nil {
		o.registry = render.NewRegistry()
		if err := signature.Register(o.registry, o.signatureOptions...); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default templates: %w", err)
		}
	}
	if o.defaultTemplate == "" {
		o.defaultTemplate = defaultTemplateName
	}
	if o.selector == nil && !o.selectorSpecified {
		o.selector = palette.DefaultSelector()
	}
	if o.text == nil {
		formatter, err := plaintext.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: text formatter: %w", err)
		} else {
			o.text = formatter
		}
	}
	if o.previewer == nil {
		previewer, err := preview.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: previewer: %w", err)
		} else {
			o.previewer = previewer
		}
	}

	o.defaultsApplied = true
}
