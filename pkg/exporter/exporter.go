// Package exporter copies rendered signatures to the clipboard and tracks the
// transient per-format copy status shown to users.
package exporter

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-sygnea/pkg/clipboard"
	"github.com/goliatone/go-sygnea/pkg/render"
)

// Exporter pairs a clipboard copier with a status tracker.
type Exporter struct {
	copier  *clipboard.Copier
	tracker *Tracker
	logger  *zap.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithTracker(tracker *Tracker) Option {
	return func(e *Exporter) {
		if tracker != nil {
			e.tracker = tracker
		}
	}
}

func New(copier *clipboard.Copier, options ...Option) (*Exporter, error) {
	if copier == nil {
		return nil, fmt.Errorf("exporter: copier is required")
	}
	e := &Exporter{
		copier:  copier,
		tracker: NewTracker(),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// Tracker exposes the status tracker.
func (e *Exporter) Tracker() *Tracker {
	return e.tracker
}

// Copy writes payload in format and returns the resulting status. Failures
// are logged and reflected in the status; they are not returned as errors.
// The copy itself is not interruptible once started.
func (e *Exporter) Copy(ctx context.Context, format render.Format, payload clipboard.Payload) Status {
	var err error
	switch format {
	case render.FormatHTML:
		err = e.copier.CopyHTML(context.WithoutCancel(ctx), payload)
	case render.FormatText:
		err = e.copier.CopyText(context.WithoutCancel(ctx), payload.Text)
	default:
		err = fmt.Errorf("exporter: %w: %q", render.ErrUnsupportedFormat, format)
	}

	if err != nil {
		e.logger.Warn("copy failed",
			zap.String("format", string(format)),
			zap.String("strategy", string(e.copier.Strategy())),
			zap.Error(err),
		)
		if trackErr := e.tracker.Failed(format, err); trackErr != nil {
			e.logger.Debug("status transition rejected", zap.Error(trackErr))
		}
		return e.tracker.Status(format)
	}

	e.logger.Debug("copied signature",
		zap.String("format", string(format)),
		zap.String("strategy", string(e.copier.Strategy())),
	)
	if trackErr := e.tracker.Succeeded(format); trackErr != nil {
		e.logger.Debug("status transition rejected", zap.Error(trackErr))
	}
	return e.tracker.Status(format)
}
