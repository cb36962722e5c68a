// Package template defines the template engine seam signature renderers and
// the preview page render through. The gotemplate subpackage provides the
// pongo2-backed implementation with on-disk overrides.
package template
