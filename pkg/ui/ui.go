// Package ui renders command results as styled terminal output, plain text
// or YAML.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/kicadlib/pkg/errors"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result (reports, statuses, lists)
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// FormatAuto is resolved against output when it is a file.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		file, _ := output.(*os.File)
		return NewRenderer(Resolve(format, file), output)
	case FormatTerminal:
		return &textRenderer{w: output, styled: true}, nil
	case FormatText:
		return &textRenderer{w: output}, nil
	case FormatYAML:
		return &yamlRenderer{w: output}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
