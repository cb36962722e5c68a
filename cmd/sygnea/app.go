package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-sygnea/internal/config"
	"github.com/goliatone/go-sygnea/internal/logging"
	"github.com/goliatone/go-sygnea/internal/prompt"
	"github.com/goliatone/go-sygnea/pkg/clipboard"
	"github.com/goliatone/go-sygnea/pkg/orchestrator"
	"github.com/goliatone/go-sygnea/pkg/palette"
	"github.com/goliatone/go-sygnea/pkg/plaintext"
	"github.com/goliatone/go-sygnea/pkg/profile"
	"github.com/goliatone/go-sygnea/pkg/renderers/signature"
	"github.com/goliatone/go-sygnea/pkg/validation"
)

// app carries flag values and the services built from them.
type app struct {
	out    io.Writer
	errOut io.Writer

	envFile     string
	profilePath string
	template    string
	palette     string
	socialStyle string
	sanitize    bool
	noColor     bool
	logLevel    string

	cfg    *config.Config
	logger *zap.Logger
	gen    *orchestrator.Orchestrator

	// Overridable in tests.
	driver  prompt.Driver
	backend func(cfg *config.Config) (clipboard.Backend, error)
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:     out,
		errOut:  errOut,
		backend: clipboardBackend,
	}
}

// setup loads configuration, applies flag overrides and builds the
// orchestrator. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("template") {
		cfg.Template = a.template
	}
	if flags.Changed("palette") {
		cfg.Palette = a.palette
	}
	if flags.Changed("social-style") {
		cfg.SocialStyle = a.socialStyle
	}
	if flags.Changed("sanitize") {
		cfg.Sanitize = a.sanitize
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: invalid config: %w", err)
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("configuration loaded", zap.Stringer("config", cfg))

	gen, err := buildOrchestrator(cfg, logger)
	if err != nil {
		return err
	}
	a.gen = gen
	return nil
}

func buildOrchestrator(cfg *config.Config, logger *zap.Logger) (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{
		orchestrator.WithDefaultTemplate(cfg.Template),
		orchestrator.WithDefaultPalette(cfg.Palette),
		orchestrator.WithSanitize(cfg.Sanitize),
		orchestrator.WithLogger(logger),
	}

	var sigOptions []signature.Option
	if cfg.SocialStyle != "" {
		style := signature.SocialStyle(cfg.SocialStyle)
		if !signature.ValidSocialStyle(style) {
			return nil, fmt.Errorf("unknown social style %q", cfg.SocialStyle)
		}
		sigOptions = append(sigOptions, signature.WithSocialStyle(style))
	}
	if cfg.TemplatesDir != "" {
		sigOptions = append(sigOptions, signature.WithTemplatesDir(cfg.TemplatesDir))
	}
	if len(sigOptions) > 0 {
		options = append(options, orchestrator.WithSignatureOptions(sigOptions...))
	}

	if cfg.TextLayout != "" {
		formatter, err := plaintext.New(plaintext.WithLayoutFile(cfg.TextLayout))
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTextFormatter(formatter))
	}

	if cfg.PaletteFile != "" {
		manifest, err := palette.LoadManifestFile(cfg.PaletteFile)
		if err != nil {
			return nil, err
		}
		selector := palette.DefaultSelector()
		if err := selector.Add(manifest); err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithThemeSelector(selector))
	}

	if cfg.PresetFile != "" {
		preset, err := loadPreset(cfg.PresetFile)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformer(preset))
	}

	return orchestrator.New(options...), nil
}

// loadProfile reads --profile, or returns an empty profile so the sample is
// rendered.
func (a *app) loadProfile() (profile.Profile, error) {
	if strings.TrimSpace(a.profilePath) == "" {
		return profile.Profile{}, nil
	}
	return profile.LoadFile(a.profilePath)
}

func (a *app) request(ctx context.Context) (orchestrator.Request, error) {
	if err := ctx.Err(); err != nil {
		return orchestrator.Request{}, err
	}
	p, err := a.loadProfile()
	if err != nil {
		return orchestrator.Request{}, err
	}
	a.checkProfile(p)
	return orchestrator.Request{
		Profile:  p,
		Template: a.cfg.Template,
		Palette:  a.cfg.Palette,
	}, nil
}

// checkProfile prints advisory validation issues. Rendering still proceeds.
func (a *app) checkProfile(p profile.Profile) {
	for _, issue := range validation.Profile(p).Issues {
		a.printWarning("%s", issue)
	}
}

func (a *app) sync() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
