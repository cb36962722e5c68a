// Package validation reports problems in profile documents before they reach
// a renderer. Renderers tolerate every problem reported here; issues are
// advisory for interactive callers and strict for the HTTP API.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-sygnea/pkg/profile"
	"github.com/goliatone/go-sygnea/pkg/social"
)

// MaxTextLength bounds name and position.
const MaxTextLength = 200

// Issue represents a validation error with optional location metadata.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// Result captures validation outcomes.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Err folds the issues into one error, or nil when valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	errs := make([]error, 0, len(r.Issues))
	for _, issue := range r.Issues {
		errs = append(errs, errors.New(issue.String()))
	}
	return errors.Join(errs...)
}

// Schema checks a decoded JSON value against schema.
func Schema(schema *openapi3.Schema, value any) Result {
	if schema == nil {
		return Result{Issues: []Issue{{Message: "schema is not configured"}}}
	}
	err := schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return Result{Valid: true}
	}
	return Result{Issues: issuesFromError(err)}
}

// Profile checks field contents a schema cannot express: website syntax,
// social handles that already carry a URL or an @, and unknown platforms.
func Profile(p profile.Profile) Result {
	var issues []Issue
	add := func(field, format string, args ...any) {
		issues = append(issues, Issue{
			Path:    pointerFromField(field),
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(p.Name)); n > MaxTextLength {
		add("name", "must be at most %d characters", MaxTextLength)
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(p.Position)); n > MaxTextLength {
		add("position", "must be at most %d characters", MaxTextLength)
	}
	if website := strings.TrimSpace(p.Website); website != "" {
		if msg := checkWebsite(website); msg != "" {
			add("website", "%s", msg)
		}
	}

	keys := make([]string, 0, len(p.Social))
	for key := range p.Social {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		field := "socialLinks." + key
		if _, ok := social.Lookup(key); !ok {
			add(field, "unknown platform %q is ignored", key)
			continue
		}
		handle := strings.TrimSpace(p.Social[key])
		switch {
		case handle == "":
		case strings.ContainsAny(handle, " \t\n"):
			add(field, "handle must not contain spaces")
		case strings.HasPrefix(handle, "@"):
			add(field, "handle should not start with @")
		case strings.Contains(handle, "://"):
			add(field, "handle should not be a URL")
		}
	}

	return Result{Valid: len(issues) == 0, Issues: issues}
}

func checkWebsite(raw string) string {
	if strings.ContainsAny(raw, " \t\n") {
		return "must not contain spaces"
	}
	candidate := raw
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		if strings.Contains(raw, "://") {
			return "only http and https links are supported"
		}
		candidate = "https://" + raw
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Host == "" {
		return "is not a valid web address"
	}
	return ""
}

func issuesFromError(err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []Issue
		for _, inner := range multi {
			out = append(out, issuesFromError(inner)...)
		}
		return out
	}
	return []Issue{issueFromError(err)}
}

func issueFromError(err error) Issue {
	if err == nil {
		return Issue{Message: "unknown error"}
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		segments := schemaErr.JSONPointer()
		return Issue{
			Path:    pointerFromSegments(segments),
			Field:   strings.Join(segments, "."),
			Message: strings.TrimSpace(schemaErr.Reason),
		}
	}
	return Issue{Message: strings.TrimSpace(err.Error())}
}

func pointerFromSegments(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	escaped := make([]string, len(segments))
	for i, s := range segments {
		s = strings.ReplaceAll(s, "~", "~0")
		escaped[i] = strings.ReplaceAll(s, "/", "~1")
	}
	return "#/" + strings.Join(escaped, "/")
}

func pointerFromField(field string) string {
	return pointerFromSegments(strings.Split(field, "."))
}
