package clipboard

import (
	"context"
	"fmt"

	atotto "github.com/atotto/clipboard"
)

// System is the operating system text clipboard.
type System struct{}

var _ Backend = System{}

// Available reports whether a clipboard utility was found.
func (System) Available() bool {
	return !atotto.Unsupported
}

func (s System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.Available() {
		return ErrUnavailable
	}
	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: write text: %w", err)
	}
	return nil
}
