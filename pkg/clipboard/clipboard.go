// Package clipboard writes rendered signatures to a clipboard. HTML exports
// carry both a text/html and a text/plain item so rich editors paste the
// formatted signature and plain editors paste the text summary.
package clipboard

import (
	"context"
	"errors"
)

// MIME types written to the clipboard.
const (
	MIMEHTML = "text/html"
	MIMEText = "text/plain"
)

var (
	// ErrUnavailable is returned when no usable clipboard backend exists.
	ErrUnavailable = errors.New("clipboard: unavailable")
	// ErrEmptyPayload is returned when there is nothing to copy.
	ErrEmptyPayload = errors.New("clipboard: empty payload")
)

// Item is a single MIME representation on the clipboard.
type Item struct {
	MIME string
	Data []byte
}

// Payload is what an HTML export puts on the clipboard.
type Payload struct {
	HTML string
	Text string
}

// Items returns the non-empty representations, HTML first.
func (p Payload) Items() []Item {
	var items []Item
	if p.HTML != "" {
		items = append(items, Item{MIME: MIMEHTML, Data: []byte(p.HTML)})
	}
	if p.Text != "" {
		items = append(items, Item{MIME: MIMEText, Data: []byte(p.Text)})
	}
	return items
}

// TextWriter writes a single text/plain payload.
type TextWriter interface {
	WriteText(ctx context.Context, text string) error
}

// RichWriter writes several MIME items in one operation.
type RichWriter interface {
	WriteItems(ctx context.Context, items []Item) error
}

// FileWriter puts the contents of a file on the clipboard as one MIME item.
type FileWriter interface {
	WriteFile(ctx context.Context, mime, path string) error
}

// RichCapable is implemented by backends whose rich support depends on the
// environment.
type RichCapable interface {
	SupportsRich() bool
}

// FileCapable is implemented by backends whose file support depends on the
// environment.
type FileCapable interface {
	SupportsFiles() bool
}

// Backend is the minimum a clipboard must do.
type Backend interface {
	TextWriter
	Available() bool
}

func supportsRich(b Backend) (RichWriter, bool) {
	rich, ok := b.(RichWriter)
	if !ok {
		return nil, false
	}
	if capable, ok := b.(RichCapable); ok && !capable.SupportsRich() {
		return nil, false
	}
	return rich, true
}

func supportsFiles(b Backend) (FileWriter, bool) {
	files, ok := b.(FileWriter)
	if !ok {
		return nil, false
	}
	if capable, ok := b.(FileCapable); ok && !capable.SupportsFiles() {
		return nil, false
	}
	return files, true
}
