package template

import "io"

// TemplateRenderer executes a named template with a view context. The result
// is returned and also copied to every non-nil writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error)
}
