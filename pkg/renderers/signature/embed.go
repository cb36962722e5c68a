package signature

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl templates/social/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle so callers can reuse or
// override individual signature layouts.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
