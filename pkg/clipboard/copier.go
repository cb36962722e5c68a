package clipboard

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Strategy names how HTML exports reach the clipboard.
type Strategy string

const (
	// StrategyRich writes text/html and text/plain in one operation.
	StrategyRich Strategy = "rich"
	// StrategyStaged stages the HTML in a hidden temporary file and hands the
	// file to the backend as a single text/html item.
	StrategyStaged Strategy = "staged"
	// StrategyText writes the plain-text derivation only.
	StrategyText Strategy = "text"
)

// Option configures a Copier.
type Option func(*Copier)

// WithStagingDir sets where the staged strategy creates its temporary file.
func WithStagingDir(dir string) Option {
	return func(c *Copier) {
		c.stagingDir = strings.TrimSpace(dir)
	}
}

// WithStrategy forces a strategy. Forcing a strategy the backend cannot carry
// out is an error at construction.
func WithStrategy(s Strategy) Option {
	return func(c *Copier) {
		c.forced = s
	}
}

// Copier writes exports to a backend. The strategy is picked once in New.
type Copier struct {
	backend    Backend
	rich       RichWriter
	files      FileWriter
	strategy   Strategy
	forced     Strategy
	stagingDir string
}

// New inspects backend and picks the HTML strategy: rich when the backend can
// hold both items, staged when it can ingest a file, text otherwise.
func New(backend Backend, options ...Option) (*Copier, error) {
	if backend == nil || !backend.Available() {
		return nil, ErrUnavailable
	}
	c := &Copier{backend: backend}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}

	rich, richOK := supportsRich(backend)
	files, filesOK := supportsFiles(backend)
	switch c.forced {
	case StrategyRich:
		if !richOK {
			return nil, fmt.Errorf("clipboard: backend has no rich support: %w", ErrUnavailable)
		}
		c.rich, c.strategy = rich, StrategyRich
	case StrategyStaged:
		if !filesOK {
			return nil, fmt.Errorf("clipboard: backend cannot take a staged file: %w", ErrUnavailable)
		}
		c.files, c.strategy = files, StrategyStaged
	case StrategyText:
		c.strategy = StrategyText
	case "":
		switch {
		case richOK:
			c.rich, c.strategy = rich, StrategyRich
		case filesOK:
			c.files, c.strategy = files, StrategyStaged
		default:
			c.strategy = StrategyText
		}
	default:
		return nil, fmt.Errorf("clipboard: unknown strategy %q", c.forced)
	}
	return c, nil
}

// Strategy reports the strategy picked for HTML exports.
func (c *Copier) Strategy() Strategy {
	return c.strategy
}

// CopyHTML puts the HTML export on the clipboard.
func (c *Copier) CopyHTML(ctx context.Context, payload Payload) error {
	if strings.TrimSpace(payload.HTML) == "" {
		return ErrEmptyPayload
	}
	switch c.strategy {
	case StrategyRich:
		return c.rich.WriteItems(ctx, payload.Items())
	case StrategyStaged:
		return c.staged(ctx, payload.HTML)
	default:
		return c.CopyText(ctx, payload.Text)
	}
}

// CopyText puts a single text/plain item on the clipboard.
func (c *Copier) CopyText(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyPayload
	}
	return c.backend.WriteText(ctx, text)
}

// staged writes markup into a hidden temporary file, hands the file to the
// backend and removes it whether or not the copy succeeded.
func (c *Copier) staged(ctx context.Context, markup string) (err error) {
	file, err := os.CreateTemp(c.stagingDir, ".sygnea-staging-*.html")
	if err != nil {
		return fmt.Errorf("clipboard: create staging file: %w", err)
	}
	name := file.Name()
	defer func() {
		if rmErr := os.Remove(name); rmErr != nil && err == nil && !os.IsNotExist(rmErr) {
			err = fmt.Errorf("clipboard: remove staging file: %w", rmErr)
		}
	}()

	if _, err := file.WriteString(markup); err != nil {
		file.Close()
		return fmt.Errorf("clipboard: write staging file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("clipboard: close staging file: %w", err)
	}
	return c.files.WriteFile(ctx, MIMEHTML, name)
}

// Detect picks the best backend on this machine: a command tool that can take
// an HTML file, then the plain system clipboard. It returns nil when neither
// is usable.
func Detect() Backend {
	if cmd := NewCommand(nil, nil); cmd.SupportsFiles() {
		return cmd
	}
	if (System{}).Available() {
		return System{}
	}
	return nil
}
