package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/arthur-debert/marionette/pkg/dispatcher"
	"github.com/arthur-debert/marionette/pkg/runtime"
	"github.com/arthur-debert/marionette/pkg/ui/styles"
)

// textRenderer writes human-readable, styled output
type textRenderer struct {
	w io.Writer

	// plain disables styling, honoring NO_COLOR and CLICOLOR
	plain bool
}

func newTextRenderer(w io.Writer) *textRenderer {
	return &textRenderer{w: w, plain: termenv.EnvNoColor()}
}

func (r *textRenderer) style(name, s string) string {
	if r.plain {
		return s
	}
	return styles.Get(name).Render(s)
}

func (r *textRenderer) RenderControls(rows []ControlRow) error {
	if len(rows) == 0 {
		return r.RenderMessage("no controls registered")
	}

	for _, row := range rows {
		line := r.style("Path", row.Path) +
			"  " + r.style("Kind", row.Kind)
		if row.Value != "" {
			line += "  " + r.style("Value", row.Value)
		}
		if len(row.Options) > 0 {
			line += "  " + r.style("Muted", "["+strings.Join(row.Options, ", ")+"]")
		}
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *textRenderer) RenderValue(path, value string) error {
	_, err := fmt.Fprintf(r.w, "%s = %s\n",
		r.style("Path", path),
		r.style("Value", value))
	return err
}

func (r *textRenderer) RenderReport(report dispatcher.Report) error {
	for _, res := range report.Results {
		if res.OK {
			_, err := fmt.Fprintf(r.w, "%s %s = %s\n",
				r.style("Applied", "applied "),
				r.style("Path", res.Path),
				r.style("Value", res.Value.Format()))
			if err != nil {
				return err
			}
			continue
		}
		_, err := fmt.Fprintf(r.w, "%s %s: %v\n",
			r.style("Rejected", "rejected"),
			r.style("Path", res.Path),
			res.Err)
		if err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(r.w, "%d applied, %d rejected\n",
		report.Applied(), report.Rejected())
	return err
}

func (r *textRenderer) RenderEvent(evt runtime.Event) error {
	_, err := fmt.Fprintln(r.w, r.style("Event", formatEvent(evt)))
	return err
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, r.style("Muted", msg))
	return err
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.w, "%s %v\n", r.style("Rejected", "error"), err)
	return werr
}

func formatEvent(evt runtime.Event) string {
	switch e := evt.(type) {
	case runtime.CustomEvent:
		return fmt.Sprintf("event %s", e.Name)
	case runtime.OpenURLEvent:
		return fmt.Sprintf("open-url %s", e.URL)
	case runtime.StateChangeEvent:
		return fmt.Sprintf("state-change %s -> %s", e.StateMachine, e.State)
	}
	return fmt.Sprintf("unknown event %T", evt)
}
