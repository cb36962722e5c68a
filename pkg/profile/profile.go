package profile

import "strings"

// Profile is the user-entered identity rendered into a signature. Renderers
// treat it as read-only; callers replace it wholesale between renders.
type Profile struct {
	Name     string            `json:"name" yaml:"name"`
	Position string            `json:"position" yaml:"position"`
	Website  string            `json:"website" yaml:"website"`
	Social   map[string]string `json:"socialLinks,omitempty" yaml:"socialLinks,omitempty"`
}

// Default is the sample profile shown before the user enters any data.
func Default() Profile {
	return Profile{
		Name:     "Alex Johnson",
		Position: "Senior Product Designer",
		Website:  "alexjohnson.design",
		Social: map[string]string{
			"twitter":   "alexjohnson",
			"linkedin":  "alexjohnson",
			"instagram": "alexjohnson.design",
		},
	}
}

// IsBlank reports whether the user has not entered a name yet. The name is
// the signal the UI uses to switch from sample data to user data.
func (p Profile) IsBlank() bool {
	return strings.TrimSpace(p.Name) == ""
}

// OrDefault returns p, or the sample profile when p is blank.
func OrDefault(p Profile) Profile {
	if p.IsBlank() {
		return Default()
	}
	return p
}

// Clone returns a deep copy so callers can hand profiles across goroutines.
func (p Profile) Clone() Profile {
	out := p
	if p.Social != nil {
		out.Social = make(map[string]string, len(p.Social))
		for k, v := range p.Social {
			out.Social[k] = v
		}
	}
	return out
}

// WithSocial returns a copy of p with handle set for platform.
func (p Profile) WithSocial(platform, handle string) Profile {
	out := p.Clone()
	if out.Social == nil {
		out.Social = make(map[string]string)
	}
	out.Social[platform] = handle
	return out
}
