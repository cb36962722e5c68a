package social

import (
	"sort"
	"strings"
)

// Link is a resolved social link ready for formatting.
type Link struct {
	Platform Platform
	Handle   string
	URL      string
}

// Resolve filters handles down to known platforms with a non-blank handle and
// returns them in platform table order. Whitespace-only handles count as
// blank; unknown platform keys are ignored.
//
// Keys match platform ids case-insensitively. When several keys name the same
// platform, the exact lower-case id wins, otherwise the first key in sorted
// order.
func Resolve(handles map[string]string) []Link {
	if len(handles) == 0 {
		return nil
	}

	keys := make([]string, 0, len(handles))
	for key := range handles {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	normalised := make(map[string]string, len(handles))
	exact := make(map[string]bool, len(handles))
	for _, key := range keys {
		trimmed := strings.TrimSpace(handles[key])
		if trimmed == "" {
			continue
		}
		id := strings.ToLower(strings.TrimSpace(key))
		if exact[id] {
			continue
		}
		if key == id {
			normalised[id] = trimmed
			exact[id] = true
			continue
		}
		if _, seen := normalised[id]; !seen {
			normalised[id] = trimmed
		}
	}

	var links []Link
	for _, p := range platforms {
		handle, ok := normalised[p.ID]
		if !ok {
			continue
		}
		links = append(links, Link{
			Platform: p,
			Handle:   handle,
			URL:      p.URL(handle),
		})
	}
	return links
}
