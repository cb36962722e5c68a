package signature

// SocialStyle selects how social links are drawn inside a signature.
type SocialStyle string

const (
	// SocialMinimal draws a small coloured glyph square followed by the
	// platform name in neutral text.
	SocialMinimal SocialStyle = "minimal"
	// SocialProfessional draws filled platform-coloured pills.
	SocialProfessional SocialStyle = "professional"
	// SocialCompact draws platform-coloured text with a small glyph square.
	SocialCompact SocialStyle = "compact"
	// SocialBadge draws round glyph-only badges.
	SocialBadge SocialStyle = "badge"
)

// SocialStyles lists the available social styles.
func SocialStyles() []SocialStyle {
	return []SocialStyle{SocialMinimal, SocialProfessional, SocialCompact, SocialBadge}
}

// ValidSocialStyle reports whether style names a known social style.
func ValidSocialStyle(style SocialStyle) bool {
	for _, s := range SocialStyles() {
		if s == style {
			return true
		}
	}
	return false
}

// Variant is one entry of the closed template set.
type Variant struct {
	ID          string
	Name        string
	Description string
	Social      SocialStyle
	// Separator is emitted between social links.
	Separator string
	// Tokens are the built-in palette values used when no theme overrides them.
	Tokens map[string]string
}

// Palette token names understood by every layout.
const (
	TokenText       = "text"
	TokenName       = "name"
	TokenMuted      = "muted"
	TokenLink       = "link"
	TokenAccent     = "accent"
	TokenAccentEnd  = "accent_end"
	TokenSurface    = "surface"
	TokenOutline    = "outline"
	TokenDivider    = "divider"
	TokenSocialText = "social_text"
)

var baseTokens = map[string]string{
	TokenText:       "#333333",
	TokenName:       "#333333",
	TokenMuted:      "#666666",
	TokenLink:       "#6b7280",
	TokenAccent:     "#6b7280",
	TokenAccentEnd:  "#9ca3af",
	TokenSurface:    "#ffffff",
	TokenOutline:    "#e5e7eb",
	TokenDivider:    "#f3f4f6",
	TokenSocialText: "#666666",
}

var variants = []Variant{
	{
		ID:          "minimal",
		Name:        "Minimal",
		Description: "Clean and simple design",
		Social:      SocialMinimal,
		Separator:   " ",
		Tokens:      withBase(nil),
	},
	{
		ID:          "professional",
		Name:        "Professional",
		Description: "Corporate and polished look",
		Social:      SocialProfessional,
		Separator:   " ",
		Tokens: withBase(map[string]string{
			TokenText:    "#212529",
			TokenName:    "#212529",
			TokenMuted:   "#6c757d",
			TokenSurface: "#f8f9fa",
			TokenOutline: "#e9ecef",
		}),
	},
	{
		ID:          "creative",
		Name:        "Creative",
		Description: "Artistic design with accent colors",
		Social:      SocialMinimal,
		Separator:   " ",
		Tokens: withBase(map[string]string{
			TokenName:  "#111827",
			TokenMuted: "#6b7280",
			TokenLink:  "#4b5563",
		}),
	},
	{
		ID:          "compact",
		Name:        "Compact",
		Description: "Space-efficient design",
		Social:      SocialCompact,
		Separator:   "",
		Tokens:      withBase(nil),
	},
	{
		ID:          "modern",
		Name:        "Modern",
		Description: "Clean card design with subtle shadow",
		Social:      SocialMinimal,
		Separator:   " ",
		Tokens: withBase(map[string]string{
			TokenText:  "#111827",
			TokenName:  "#111827",
			TokenMuted: "#6b7280",
			TokenLink:  "#4b5563",
		}),
	},
	{
		ID:          "executive",
		Name:        "Executive",
		Description: "Sophisticated design for leadership",
		Social:      SocialCompact,
		Separator:   "",
		Tokens: withBase(map[string]string{
			TokenText:   "#1f2937",
			TokenName:   "#111827",
			TokenMuted:  "#6b7280",
			TokenLink:   "#374151",
			TokenAccent: "#374151",
		}),
	},
}

func withBase(overrides map[string]string) map[string]string {
	out := make(map[string]string, len(baseTokens)+len(overrides))
	for k, v := range baseTokens {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Variants returns the template set in display order. Token maps are copies.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	for i, v := range variants {
		out[i] = v
		out[i].Tokens = withBase(v.Tokens)
	}
	return out
}

// LookupVariant resolves a variant by id.
func LookupVariant(id string) (Variant, bool) {
	for _, v := range variants {
		if v.ID == id {
			v.Tokens = withBase(v.Tokens)
			return v, true
		}
	}
	return Variant{}, false
}

// DefaultVariant is the template preselected by pickers.
const DefaultVariant = "minimal"
