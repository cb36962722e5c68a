package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractNormalisesWebsite(t *testing.T) {
	cases := []struct {
		raw       string
		wantLabel string
		wantHref  string
	}{
		{raw: "alexjohnson.design", wantLabel: "alexjohnson.design", wantHref: "https://alexjohnson.design"},
		{raw: "  https://example.com/ ", wantLabel: "example.com", wantHref: "https://example.com/"},
		{raw: "http://example.org", wantLabel: "example.org", wantHref: "http://example.org"},
		{raw: "   ", wantLabel: "", wantHref: ""},
	}

	for _, tc := range cases {
		fields := Extract(Profile{Website: tc.raw})
		if fields.Website != tc.wantLabel || fields.WebsiteURL != tc.wantHref {
			t.Fatalf("website %q: got (%q, %q) want (%q, %q)", tc.raw, fields.Website, fields.WebsiteURL, tc.wantLabel, tc.wantHref)
		}
	}
}

func TestExtractPresent(t *testing.T) {
	fields := Extract(Profile{
		Name:     " Ada ",
		Position: "",
		Website:  "ada.dev",
		Social: map[string]string{
			"github":  "ada",
			"twitter": "  ",
		},
	})

	want := []string{"name", "website", "social.github"}
	if diff := cmp.Diff(want, fields.Present()); diff != "" {
		t.Fatalf("present fields mismatch (-want +got):\n%s", diff)
	}
	if fields.Name != "Ada" {
		t.Fatalf("name not trimmed: %q", fields.Name)
	}
}

func TestExtractDoesNotMutateInput(t *testing.T) {
	p := Profile{Name: "Ada", Social: map[string]string{"twitter": " ada "}}
	before := p.Clone()
	_ = Extract(p)
	if diff := cmp.Diff(before, p); diff != "" {
		t.Fatalf("profile mutated (-before +after):\n%s", diff)
	}
}

func TestOrDefault(t *testing.T) {
	if got := OrDefault(Profile{Name: "  "}); got.Name != "Alex Johnson" {
		t.Fatalf("expected default profile, got %+v", got)
	}
	if got := OrDefault(Profile{Name: "Ada"}); got.Name != "Ada" {
		t.Fatalf("expected user profile, got %+v", got)
	}
}

func TestWithSocialCopies(t *testing.T) {
	base := Profile{Name: "Ada"}
	next := base.WithSocial("github", "ada")
	if base.Social != nil {
		t.Fatalf("base profile mutated")
	}
	if next.Social["github"] != "ada" {
		t.Fatalf("social handle not set")
	}
}
