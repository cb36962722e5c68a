package social

import "strings"

// Platform describes a social network a signature can link to. The table is
// read-only; adding a platform means adding an entry here and a glyph/icon
// pair so renderers and prompts stay consistent.
type Platform struct {
	ID          string `json:"id" yaml:"id"`
	DisplayName string `json:"name" yaml:"name"`
	BaseURL     string `json:"baseUrl" yaml:"baseUrl"`
	Color       string `json:"color" yaml:"color"`
	// Icon names the icon reference preview UIs can resolve (FontAwesome class).
	Icon string `json:"icon" yaml:"icon"`
	// Glyph is the Unicode symbol used inside email output, where icon fonts
	// and images are unreliable.
	Glyph string `json:"glyph" yaml:"glyph"`
}

// URL builds the profile URL for handle.
func (p Platform) URL(handle string) string {
	return p.BaseURL + strings.TrimSpace(handle)
}

var platforms = []Platform{
	{
		ID:          "twitter",
		DisplayName: "Twitter",
		BaseURL:     "https://twitter.com/",
		Color:       "#1DA1F2",
		Icon:        "fab fa-x-twitter",
		Glyph:       "𝕏",
	},
	{
		ID:          "linkedin",
		DisplayName: "LinkedIn",
		BaseURL:     "https://linkedin.com/in/",
		Color:       "#0077B5",
		Icon:        "fab fa-linkedin-in",
		Glyph:       "𝗶𝗻",
	},
	{
		ID:          "instagram",
		DisplayName: "Instagram",
		BaseURL:     "https://instagram.com/",
		Color:       "#E4405F",
		Icon:        "fab fa-instagram",
		Glyph:       "◉",
	},
	{
		ID:          "github",
		DisplayName: "GitHub",
		BaseURL:     "https://github.com/",
		Color:       "#333",
		Icon:        "fab fa-github",
		Glyph:       "⚡",
	},
	{
		ID:          "facebook",
		DisplayName: "Facebook",
		BaseURL:     "https://facebook.com/",
		Color:       "#1877F2",
		Icon:        "fab fa-facebook-f",
		Glyph:       "𝗳",
	},
}

var platformIndex = func() map[string]int {
	index := make(map[string]int, len(platforms))
	for i, p := range platforms {
		index[p.ID] = i
	}
	return index
}()

// Platforms returns the platform table in display order. The slice is a copy.
func Platforms() []Platform {
	out := make([]Platform, len(platforms))
	copy(out, platforms)
	return out
}

// IDs lists platform identifiers in display order.
func IDs() []string {
	out := make([]string, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, p.ID)
	}
	return out
}

// Lookup resolves a platform by identifier (case-insensitive).
func Lookup(id string) (Platform, bool) {
	idx, ok := platformIndex[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Platform{}, false
	}
	return platforms[idx], true
}

// FallbackGlyph is used for platforms without a dedicated symbol.
func FallbackGlyph(id string) string {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return ""
	}
	return strings.ToUpper(trimmed[:1])
}
