// Package lint inspects signature markup for constructs that common email
// clients drop or render inconsistently.
package lint

import (
	"fmt"
	"sort"
	"strings"

	cssparser "github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Severity ranks an issue.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

func (s Severity) rank() int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// Rule identifiers.
const (
	RuleElement     = "unsupported-element"
	RuleClass       = "class-attribute"
	RuleLayout      = "css-layout"
	RulePosition    = "css-position"
	RuleBackground  = "css-background-image"
	RuleGradient    = "css-gradient"
	RuleShadow      = "css-box-shadow"
	RuleLinkScheme  = "link-scheme"
	RuleLinkMissing = "link-href"
	RuleImageAlt    = "image-alt"
	RuleStyleSyntax = "css-syntax"
)

// Issue is a single finding. Path is a CSS-like path to the offending element.
type Issue struct {
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Path     string   `json:"path"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", i.Severity, i.Rule, i.Path, i.Message)
}

var blockedElements = map[atom.Atom]string{
	atom.Style:  "style blocks are stripped by most webmail clients",
	atom.Link:   "external stylesheets are not loaded",
	atom.Script: "scripts never run in email",
	atom.Iframe: "iframes are blocked",
	atom.Form:   "forms are disabled or stripped",
	atom.Object: "embedded objects are blocked",
	atom.Embed:  "embedded objects are blocked",
}

// Check parses markup as a body fragment and reports every issue in document
// order.
func Check(markup string) ([]Issue, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("lint: parse markup: %w", err)
	}

	var issues []Issue
	for _, n := range nodes {
		walk(n, "", &issues)
	}
	return issues, nil
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	return Max(issues) == SeverityError
}

// Max returns the highest severity in issues, or "" when there are none.
func Max(issues []Issue) Severity {
	var highest Severity
	for _, issue := range issues {
		if highest == "" || issue.Severity.rank() > highest.rank() {
			highest = issue.Severity
		}
	}
	return highest
}

// Summary counts issues per severity.
func Summary(issues []Issue) map[Severity]int {
	out := map[Severity]int{}
	for _, issue := range issues {
		out[issue.Severity]++
	}
	return out
}

func walk(n *html.Node, path string, issues *[]Issue) {
	if n.Type == html.ElementNode {
		path = joinPath(path, n.Data)
		checkElement(n, path, issues)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, path, issues)
	}
}

func joinPath(parent, tag string) string {
	if parent == "" {
		return tag
	}
	return parent + " > " + tag
}

func checkElement(n *html.Node, path string, issues *[]Issue) {
	if reason, blocked := blockedElements[n.DataAtom]; blocked {
		add(issues, SeverityError, RuleElement, path, "<"+n.Data+">: "+reason)
	}

	var href, alt string
	var hasHref, hasAlt bool
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "class":
			add(issues, SeverityWarning, RuleClass, path, "class attributes have no effect without a stylesheet")
		case "style":
			checkStyle(attr.Val, path, issues)
		case "href":
			href, hasHref = attr.Val, true
		case "alt":
			alt, hasAlt = attr.Val, true
		}
	}

	switch n.DataAtom {
	case atom.A:
		if !hasHref || strings.TrimSpace(href) == "" {
			add(issues, SeverityWarning, RuleLinkMissing, path, "link has no href")
		} else if scheme := linkScheme(href); scheme != "" && scheme != "http" && scheme != "https" && scheme != "mailto" && scheme != "tel" {
			add(issues, SeverityError, RuleLinkScheme, path, "link scheme "+scheme+": is blocked by mail clients")
		}
	case atom.Img:
		if !hasAlt || strings.TrimSpace(alt) == "" {
			add(issues, SeverityWarning, RuleImageAlt, path, "images are often blocked; add alt text")
		}
	}
}

func linkScheme(href string) string {
	trimmed := strings.TrimSpace(href)
	idx := strings.Index(trimmed, ":")
	if idx <= 0 {
		return ""
	}
	scheme := strings.ToLower(trimmed[:idx])
	if strings.ContainsAny(scheme, "/?#") {
		return ""
	}
	return scheme
}

// Declaration is one property/value pair of an inline style.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// ParseStyle parses an inline style attribute into declarations. Properties
// are lower-cased; values keep their case and lose the !important marker,
// which is reported in Important. Declarations without a property are
// skipped. On a syntax error the declarations parsed so far are returned
// along with the error.
func ParseStyle(style string) ([]Declaration, error) {
	parsed, err := cssparser.ParseDeclarations(style)
	out := make([]Declaration, 0, len(parsed))
	for _, decl := range parsed {
		prop := strings.ToLower(strings.TrimSpace(decl.Property))
		if prop == "" {
			continue
		}
		out = append(out, Declaration{
			Property:  prop,
			Value:     strings.TrimSpace(decl.Value),
			Important: decl.Important,
		})
	}
	if err != nil {
		return out, fmt.Errorf("lint: parse style: %w", err)
	}
	return out, nil
}

func checkStyle(style, path string, issues *[]Issue) {
	decls, err := ParseStyle(style)
	if err != nil {
		add(issues, SeverityWarning, RuleStyleSyntax, path, "style attribute could not be parsed; clients may drop it")
	}
	for _, decl := range decls {
		value := strings.ToLower(decl.Value)
		switch {
		case decl.Property == "display" && (strings.Contains(value, "flex") || strings.Contains(value, "grid")):
			add(issues, SeverityError, RuleLayout, path, "display: "+decl.Value+" is not supported by Outlook and Gmail app")
		case strings.HasPrefix(decl.Property, "grid") || strings.HasPrefix(decl.Property, "flex"):
			add(issues, SeverityError, RuleLayout, path, decl.Property+" is not supported by most email clients")
		case decl.Property == "position":
			add(issues, SeverityWarning, RulePosition, path, "position is stripped by most webmail clients")
		case decl.Property == "background-image" || strings.Contains(value, "url("):
			add(issues, SeverityWarning, RuleBackground, path, "background images are not shown in Outlook")
		case strings.Contains(value, "gradient("):
			add(issues, SeverityInfo, RuleGradient, path, "gradients fall back to the solid colour in Outlook")
		case decl.Property == "box-shadow":
			add(issues, SeverityInfo, RuleShadow, path, "box-shadow is ignored by Outlook")
		}
	}
}

func add(issues *[]Issue, severity Severity, rule, path, message string) {
	*issues = append(*issues, Issue{Severity: severity, Rule: rule, Path: path, Message: message})
}

// Rules lists every rule identifier, sorted.
func Rules() []string {
	out := []string{
		RuleElement, RuleClass, RuleLayout, RulePosition, RuleBackground,
		RuleGradient, RuleShadow, RuleLinkScheme, RuleLinkMissing, RuleImageAlt,
		RuleStyleSyntax,
	}
	sort.Strings(out)
	return out
}
