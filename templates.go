package sygnea

import (
	"io/fs"

	"github.com/goliatone/go-sygnea/pkg/preview"
	"github.com/goliatone/go-sygnea/pkg/renderers/signature"
)

// EmbeddedTemplates exposes the built-in signature templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return signature.TemplatesFS()
}

// PreviewTemplates exposes the preview page templates.
func PreviewTemplates() fs.FS {
	return preview.TemplatesFS()
}
