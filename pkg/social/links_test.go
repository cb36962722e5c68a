package social

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveOrdersByPlatformTable(t *testing.T) {
	links := Resolve(map[string]string{
		"github":  "octo",
		"twitter": "alex",
		"Unknown": "ignored",
	})

	var got []string
	for _, link := range links {
		got = append(got, link.Platform.ID+"="+link.URL)
	}
	want := []string{
		"twitter=https://twitter.com/alex",
		"github=https://github.com/octo",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("resolved links mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveDropsBlankHandles(t *testing.T) {
	links := Resolve(map[string]string{
		"twitter":  "  ",
		"linkedin": "",
		"github":   "\t",
	})
	if len(links) != 0 {
		t.Fatalf("expected no links for blank handles, got %+v", links)
	}
}

func TestResolveTrimsHandles(t *testing.T) {
	links := Resolve(map[string]string{"LinkedIn": "  alex  "})
	if len(links) != 1 {
		t.Fatalf("expected one link, got %d", len(links))
	}
	if links[0].Handle != "alex" {
		t.Fatalf("handle not trimmed: %q", links[0].Handle)
	}
	if links[0].URL != "https://linkedin.com/in/alex" {
		t.Fatalf("unexpected url: %s", links[0].URL)
	}
}

func TestResolveCaseVariantKeys(t *testing.T) {
	cases := []struct {
		name    string
		handles map[string]string
		want    string
	}{
		{"exact id wins", map[string]string{"twitter": "ada", "Twitter": "lovelace"}, "ada"},
		{"first sorted variant", map[string]string{"Twitter": "lovelace", "TWITTER": "ada"}, "ada"},
		{"blank exact id ignored", map[string]string{"twitter": " ", "Twitter": "lovelace"}, "lovelace"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				links := Resolve(tc.handles)
				if len(links) != 1 || links[0].Handle != tc.want {
					t.Fatalf("iteration %d: expected single %s link, got %+v", i, tc.want, links)
				}
			}
		})
	}
}

func TestLookup(t *testing.T) {
	p, ok := Lookup(" Instagram ")
	if !ok {
		t.Fatalf("expected instagram to resolve")
	}
	if p.Color != "#E4405F" {
		t.Fatalf("unexpected color %s", p.Color)
	}
	if _, ok := Lookup("myspace"); ok {
		t.Fatalf("expected unknown platform to miss")
	}
}

func TestPlatformsReturnsCopy(t *testing.T) {
	list := Platforms()
	list[0].DisplayName = "changed"
	if p, _ := Lookup("twitter"); p.DisplayName != "Twitter" {
		t.Fatalf("platform table mutated through copy")
	}
	if got := FallbackGlyph("mastodon"); got != "M" {
		t.Fatalf("fallback glyph: %q", got)
	}
}
