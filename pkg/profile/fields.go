package profile

import (
	"strings"

	"github.com/goliatone/go-sygnea/pkg/social"
)

// Fields is the normalised view of a profile. Blank values are empty strings
// and the social list only contains links worth rendering.
type Fields struct {
	Name     string
	Position string
	// Website is the label shown to readers, without a scheme.
	Website string
	// WebsiteURL is the href, always carrying a scheme.
	WebsiteURL string
	Social     []social.Link
}

// Field keys reported by Fields.Present.
const (
	FieldName     = "name"
	FieldPosition = "position"
	FieldWebsite  = "website"
)

// Extract normalises p into Fields. It never mutates p.
func Extract(p Profile) Fields {
	label, href := normaliseWebsite(p.Website)
	return Fields{
		Name:       strings.TrimSpace(p.Name),
		Position:   strings.TrimSpace(p.Position),
		Website:    label,
		WebsiteURL: href,
		Social:     social.Resolve(p.Social),
	}
}

// HasWebsite reports whether a website block should be rendered.
func (f Fields) HasWebsite() bool {
	return f.Website != ""
}

// HasSocial reports whether any social link survived filtering.
func (f Fields) HasSocial() bool {
	return len(f.Social) > 0
}

// Present lists the non-blank field keys, social links as "social.<id>".
func (f Fields) Present() []string {
	var out []string
	if f.Name != "" {
		out = append(out, FieldName)
	}
	if f.Position != "" {
		out = append(out, FieldPosition)
	}
	if f.HasWebsite() {
		out = append(out, FieldWebsite)
	}
	for _, link := range f.Social {
		out = append(out, "social."+link.Platform.ID)
	}
	return out
}

func normaliseWebsite(raw string) (string, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ""
	}

	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "https://"):
		return strings.TrimSuffix(trimmed[len("https://"):], "/"), trimmed
	case strings.HasPrefix(lower, "http://"):
		return strings.TrimSuffix(trimmed[len("http://"):], "/"), trimmed
	default:
		return trimmed, "https://" + trimmed
	}
}
