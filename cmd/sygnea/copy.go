package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-sygnea/internal/config"
	"github.com/goliatone/go-sygnea/pkg/clipboard"
	"github.com/goliatone/go-sygnea/pkg/exporter"
	"github.com/goliatone/go-sygnea/pkg/render"
)

var errCopyFailed = errors.New("copy failed")

func newCopyCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy a signature to the clipboard",
		Long: `Copy a signature to the clipboard.

HTML copies carry both text/html and text/plain when the clipboard tool
supports MIME targets (wl-copy, xclip); otherwise the markup is staged
through a temporary file and copied as text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			req, err := a.request(cmd.Context())
			if err != nil {
				return err
			}
			result, err := a.gen.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			exp, copier, err := a.exporter()
			if err != nil {
				return err
			}
			a.printStep("copying %s signature (%s, %s strategy)", result.Template.ID, f, copier.Strategy())

			status := exp.Copy(cmd.Context(), f, result.Payload())
			if status.State == exporter.StateError {
				a.printError("%s copy failed: %s", f, status.Error)
				return errCopyFailed
			}
			a.printSuccess("%s signature copied", result.Template.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "clipboard format: html or text")
	return cmd
}

func (a *app) exporter() (*exporter.Exporter, *clipboard.Copier, error) {
	backend, err := a.backend(a.cfg)
	if err != nil {
		return nil, nil, err
	}
	copier, err := clipboard.New(backend,
		clipboard.WithStrategy(clipboard.Strategy(a.cfg.ClipboardStrategy)),
		clipboard.WithStagingDir(a.cfg.StagingDir),
	)
	if err != nil {
		return nil, nil, err
	}
	tracker := exporter.NewTracker(
		exporter.WithResetDelay(a.cfg.CopyResetDelay),
		exporter.WithListener(func(f render.Format, from, to exporter.State) {
			a.logger.Debug("copy status", zap.String("format", string(f)), zap.String("from", string(from)), zap.String("to", string(to)))
		}),
	)
	exp, err := exporter.New(copier, exporter.WithLogger(a.logger), exporter.WithTracker(tracker))
	if err != nil {
		return nil, nil, err
	}
	return exp, copier, nil
}

func clipboardBackend(cfg *config.Config) (clipboard.Backend, error) {
	var backend clipboard.Backend
	switch cfg.Clipboard {
	case config.ClipboardCommand:
		backend = clipboard.NewCommand(nil, nil)
	case config.ClipboardSystem:
		backend = clipboard.System{}
	case config.ClipboardMemory:
		backend = clipboard.NewMemory()
	default:
		backend = clipboard.Detect()
	}
	if backend == nil || !backend.Available() {
		return nil, fmt.Errorf("no clipboard tool found: %w", clipboard.ErrUnavailable)
	}
	return backend, nil
}
