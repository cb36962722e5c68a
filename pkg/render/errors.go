package render

import "errors"

var (
	// ErrTemplateNotFound is returned when a template id is not registered.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrUnsupportedFormat is returned for export formats other than html/text.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Format names an export representation.
type Format string

const (
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case FormatHTML, "":
		return FormatHTML, nil
	case FormatText, "txt", "plain":
		return FormatText, nil
	default:
		return "", errors.Join(ErrUnsupportedFormat, errors.New("format "+raw))
	}
}

// ContentType returns the MIME type used for f on clipboards and HTTP.
func (f Format) ContentType() string {
	if f == FormatText {
		return "text/plain; charset=utf-8"
	}
	return "text/html; charset=utf-8"
}
