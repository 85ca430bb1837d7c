package ui

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/marionette/pkg/dispatcher"
	"github.com/arthur-debert/marionette/pkg/runtime"
)

// jsonRenderer writes machine-readable JSON, one document per call
type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSONRenderer(w io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder}
}

// reportDTO flattens a dispatch report for serialization
type reportDTO struct {
	Applied  int         `json:"applied"`
	Rejected int         `json:"rejected"`
	Results  []resultDTO `json:"results"`
}

type resultDTO struct {
	Path  string `json:"path"`
	Value string `json:"value"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type eventDTO struct {
	Type         string `json:"type"`
	Name         string `json:"name,omitempty"`
	URL          string `json:"url,omitempty"`
	StateMachine string `json:"stateMachine,omitempty"`
	State        string `json:"state,omitempty"`
}

func toReportDTO(report dispatcher.Report) reportDTO {
	dto := reportDTO{
		Applied:  report.Applied(),
		Rejected: report.Rejected(),
		Results:  make([]resultDTO, 0, len(report.Results)),
	}
	for _, res := range report.Results {
		r := resultDTO{Path: res.Path, Value: res.Value.Format(), OK: res.OK}
		if res.Err != nil {
			r.Error = res.Err.Error()
		}
		dto.Results = append(dto.Results, r)
	}
	return dto
}

func toEventDTO(evt runtime.Event) eventDTO {
	switch e := evt.(type) {
	case runtime.CustomEvent:
		return eventDTO{Type: "custom", Name: e.Name}
	case runtime.OpenURLEvent:
		return eventDTO{Type: "openUrl", URL: e.URL}
	case runtime.StateChangeEvent:
		return eventDTO{Type: "stateChange", StateMachine: e.StateMachine, State: e.State}
	}
	return eventDTO{Type: "unknown"}
}

func (r *jsonRenderer) RenderControls(rows []ControlRow) error {
	if rows == nil {
		rows = []ControlRow{}
	}
	return r.encoder.Encode(rows)
}

func (r *jsonRenderer) RenderValue(path, value string) error {
	return r.encoder.Encode(map[string]string{"path": path, "value": value})
}

func (r *jsonRenderer) RenderReport(report dispatcher.Report) error {
	return r.encoder.Encode(toReportDTO(report))
}

func (r *jsonRenderer) RenderEvent(evt runtime.Event) error {
	return r.encoder.Encode(toEventDTO(evt))
}

func (r *jsonRenderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{"error": err.Error()})
}
