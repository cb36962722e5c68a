// Package sanitize restricts rendered signatures to the markup email clients
// accept: a handful of layout elements, inline styles and web or mail links.
package sanitize

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Elements lists the tags that survive sanitising.
var Elements = []string{
	"div", "span", "p", "table", "tbody", "tr", "td", "a", "br", "img", "strong", "b", "em",
}

// StyleProperties lists the CSS properties kept inside style attributes.
var StyleProperties = []string{
	"color", "background", "background-color",
	"border", "border-left", "border-top", "border-bottom", "border-right", "border-radius",
	"padding", "padding-left", "padding-top", "padding-right", "padding-bottom",
	"margin", "margin-left", "margin-top", "margin-right", "margin-bottom",
	"font-family", "font-size", "font-weight", "font-style",
	"line-height", "letter-spacing", "text-transform", "text-decoration", "text-align",
	"display", "vertical-align", "white-space", "border-collapse",
	"width", "height", "max-width", "box-shadow",
}

var styleValue = regexp.MustCompile(`^[#0-9A-Za-z%.,'" ()!\-]*$`)

// safeStyleValue accepts plain CSS values and rejects anything that can load
// a resource or run script.
func safeStyleValue(value string) bool {
	lower := strings.ToLower(value)
	if strings.Contains(lower, "url(") || strings.Contains(lower, "expression") || strings.Contains(lower, "javascript") {
		return false
	}
	return styleValue.MatchString(value)
}

// Policy returns the shared signature policy.
func Policy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements(Elements...)
		p.AllowAttrs("style").Globally()
		p.AllowStyles(StyleProperties...).MatchingHandler(safeStyleValue).Globally()

		p.AllowAttrs("href", "title").OnElements("a")
		p.AllowURLSchemes("http", "https", "mailto")
		p.RequireParseableURLs(true)

		p.AllowAttrs("src", "alt", "width", "height").OnElements("img")
		p.AllowAttrs("cellpadding", "cellspacing", "border", "width").OnElements("table")
		p.AllowAttrs("width", "valign", "align").OnElements("td")

		policy = p
	})
	return policy
}

// HTML sanitises rendered signature markup.
func HTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(Policy().Sanitize(trimmed))
}
