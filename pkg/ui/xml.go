package ui

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/arthur-debert/marionette/pkg/dispatcher"
	"github.com/arthur-debert/marionette/pkg/runtime"
)

// xmlRenderer writes machine-readable XML, one document per call
type xmlRenderer struct {
	w io.Writer
}

func (r *xmlRenderer) write(doc *etree.Document) error {
	doc.Indent(2)
	if _, err := doc.WriteTo(r.w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.w)
	return err
}

func newDocument(rootTag string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc, doc.CreateElement(rootTag)
}

func (r *xmlRenderer) RenderControls(rows []ControlRow) error {
	doc, root := newDocument("controls")
	for _, row := range rows {
		el := root.CreateElement("control")
		el.CreateAttr("path", row.Path)
		el.CreateAttr("kind", row.Kind)
		if row.Value != "" {
			el.CreateAttr("value", row.Value)
		}
		for _, opt := range row.Options {
			el.CreateElement("option").SetText(opt)
		}
	}
	return r.write(doc)
}

func (r *xmlRenderer) RenderValue(path, value string) error {
	doc, root := newDocument("control")
	root.CreateAttr("path", path)
	root.CreateAttr("value", value)
	return r.write(doc)
}

func (r *xmlRenderer) RenderReport(report dispatcher.Report) error {
	doc, root := newDocument("report")
	root.CreateAttr("applied", fmt.Sprint(report.Applied()))
	root.CreateAttr("rejected", fmt.Sprint(report.Rejected()))

	for _, res := range report.Results {
		el := root.CreateElement("result")
		el.CreateAttr("path", res.Path)
		el.CreateAttr("value", res.Value.Format())
		el.CreateAttr("ok", fmt.Sprint(res.OK))
		if res.Err != nil {
			el.CreateElement("error").SetText(res.Err.Error())
		}
	}
	return r.write(doc)
}

func (r *xmlRenderer) RenderEvent(evt runtime.Event) error {
	doc, root := newDocument("event")
	switch e := evt.(type) {
	case runtime.CustomEvent:
		root.CreateAttr("type", "custom")
		root.CreateAttr("name", e.Name)
	case runtime.OpenURLEvent:
		root.CreateAttr("type", "openUrl")
		root.CreateAttr("url", e.URL)
	case runtime.StateChangeEvent:
		root.CreateAttr("type", "stateChange")
		root.CreateAttr("stateMachine", e.StateMachine)
		root.CreateAttr("state", e.State)
	default:
		root.CreateAttr("type", "unknown")
	}
	return r.write(doc)
}

func (r *xmlRenderer) RenderMessage(msg string) error {
	doc, root := newDocument("message")
	root.SetText(msg)
	return r.write(doc)
}

func (r *xmlRenderer) RenderError(err error) error {
	doc, root := newDocument("error")
	root.SetText(err.Error())
	return r.write(doc)
}
