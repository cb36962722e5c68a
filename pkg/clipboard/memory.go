package clipboard

import (
	"context"
	"os"
	"sync"
)

// Memory is an in-process clipboard. It backs tests and the HTTP server,
// where the browser owns the real clipboard.
type Memory struct {
	mu    sync.Mutex
	items []Item
	// Fail, when set, is returned by every write.
	Fail error
	// TextOnly hides rich and file support.
	TextOnly bool
	writes   int
}

var (
	_ Backend     = (*Memory)(nil)
	_ RichWriter  = (*Memory)(nil)
	_ RichCapable = (*Memory)(nil)
	_ FileWriter  = (*Memory)(nil)
	_ FileCapable = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Available() bool { return true }

func (m *Memory) SupportsRich() bool { return !m.TextOnly }

func (m *Memory) SupportsFiles() bool { return !m.TextOnly }

// WriteFile reads path and stores it as a single item.
func (m *Memory) WriteFile(ctx context.Context, mime, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return m.WriteItems(ctx, []Item{{MIME: mime, Data: data}})
}

func (m *Memory) WriteText(ctx context.Context, text string) error {
	return m.WriteItems(ctx, []Item{{MIME: MIMEText, Data: []byte(text)}})
}

func (m *Memory) WriteItems(ctx context.Context, items []Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.Fail != nil {
		return m.Fail
	}
	m.items = make([]Item, len(items))
	for i, item := range items {
		m.items[i] = Item{MIME: item.MIME, Data: append([]byte(nil), item.Data...)}
	}
	return nil
}

// Items returns a copy of the current clipboard contents.
func (m *Memory) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Get returns the data stored for mime.
func (m *Memory) Get(mime string) (string, bool) {
	for _, item := range m.Items() {
		if item.MIME == mime {
			return string(item.Data), true
		}
	}
	return "", false
}

// Writes counts write attempts, failed ones included.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
