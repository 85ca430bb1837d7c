// Package ui renders control listings, apply reports and runtime events
// for the command line, in text, JSON or XML.
package ui

import (
	"io"

	"github.com/arthur-debert/marionette/pkg/controls"
	"github.com/arthur-debert/marionette/pkg/dispatcher"
	"github.com/arthur-debert/marionette/pkg/errors"
	"github.com/arthur-debert/marionette/pkg/runtime"
)

// Output formats accepted by NewRenderer
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// ControlRow is one line of a control listing
type ControlRow struct {
	Path    string   `json:"path"`
	Kind    string   `json:"kind"`
	Value   string   `json:"value,omitempty"`
	Options []string `json:"options,omitempty"`
}

// Renderer writes command results in one output format
type Renderer interface {
	// RenderControls writes a control listing
	RenderControls(rows []ControlRow) error

	// RenderValue writes a single read-back value
	RenderValue(path, value string) error

	// RenderReport writes a batch application report
	RenderReport(report dispatcher.Report) error

	// RenderEvent writes one runtime event as it arrives
	RenderEvent(evt runtime.Event) error

	// RenderMessage writes a plain informational line
	RenderMessage(msg string) error

	// RenderError writes a failure
	RenderError(err error) error
}

// NewRenderer selects a renderer by format name
func NewRenderer(format string, w io.Writer) (Renderer, error) {
	switch format {
	case FormatText, "":
		return newTextRenderer(w), nil
	case FormatJSON:
		return newJSONRenderer(w), nil
	case FormatXML:
		return &xmlRenderer{w: w}, nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown output format %q", format)
}

// Rows flattens a registry into display rows, in path order
func Rows(reg *controls.Registry) []ControlRow {
	paths := reg.Paths()
	rows := make([]ControlRow, 0, len(paths))
	for _, p := range paths {
		h, ok := reg.Lookup(p)
		if !ok {
			continue
		}
		row := ControlRow{
			Path:    p.String(),
			Kind:    h.Kind().String(),
			Options: h.Options(),
		}
		if v, readable := h.Value(); readable {
			row.Value = v.Format()
		}
		rows = append(rows, row)
	}
	return rows
}
