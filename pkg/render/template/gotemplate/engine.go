// Package gotemplate renders pongo2 templates from an embedded bundle,
// optionally overridden file by file from a directory on disk.
package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-sygnea/pkg/render/template"
)

// Extension is appended to template names that omit it.
const Extension = ".tpl"

// Option configures an Engine.
type Option func(*config)

type config struct {
	files      fs.FS
	overlayDir string
	globals    pongo2.Context
}

// WithFS sets the template bundle.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithOverlayDir looks templates up in dir before the bundle, so a directory
// holding only templates/modern.tpl overrides that one template.
func WithOverlayDir(dir string) Option {
	return func(cfg *config) {
		cfg.overlayDir = strings.TrimSpace(dir)
	}
}

// WithGlobals exposes values to every template. Per-render data wins on key
// collisions.
func WithGlobals(globals map[string]any) Option {
	return func(cfg *config) {
		if len(globals) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = pongo2.Context{}
		}
		maps.Copy(cfg.globals, globals)
	}
}

// Engine satisfies template.TemplateRenderer using a pongo2 template set.
// Parsed templates are cached per path; autoescaping stays on so profile
// values never reach the output unescaped.
type Engine struct {
	mu    sync.RWMutex
	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine. At least one of WithFS or WithOverlayDir is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.files == nil && cfg.overlayDir == "" {
		return nil, errors.New("gotemplate: a template bundle or overlay directory is required")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.overlayDir != "" {
		info, err := os.Stat(cfg.overlayDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: overlay dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("gotemplate: overlay %s is not a directory", cfg.overlayDir)
		}
		loaders = append(loaders, pongo2.NewFSLoader(os.DirFS(cfg.overlayDir)))
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}

	set := pongo2.NewSet("sygnea", loaders...)
	if len(cfg.globals) > 0 {
		if set.Globals == nil {
			set.Globals = make(pongo2.Context)
		}
		set.Globals.Update(cfg.globals)
	}

	return &Engine{
		set:   set,
		cache: make(map[string]*pongo2.Template),
	}, nil
}

// RenderTemplate executes the named template.
func (e *Engine) RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := e.path(name)
	tpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(pongo2.Context(data), &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute %q: %w", path, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// Has reports whether a named template can be loaded.
func (e *Engine) Has(name string) bool {
	if e == nil || e.set == nil {
		return false
	}
	_, err := e.lookup(e.path(name))
	return err == nil
}

func (e *Engine) path(name string) string {
	if strings.HasSuffix(name, Extension) {
		return name
	}
	return name + Extension
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tpl, ok := e.cache[path]; ok {
		return tpl, nil
	}

	tpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", path, err)
	}
	e.cache[path] = tpl
	return tpl, nil
}
