package paths

import (
	"strings"

	"github.com/arthur-debert/marionette/pkg/errors"
)

// Namespace identifies one of the three addressable control groups
type Namespace string

const (
	// NamespaceStateMachines addresses state-machine inputs
	NamespaceStateMachines Namespace = "stateMachines"

	// NamespaceViewModels addresses data-binding (view-model) fields
	NamespaceViewModels Namespace = "viewModels"

	// NamespaceImageAssets addresses image asset slots
	NamespaceImageAssets Namespace = "imageAssets"
)

// Namespaces lists the recognized namespaces in display order
var Namespaces = []Namespace{
	NamespaceStateMachines,
	NamespaceViewModels,
	NamespaceImageAssets,
}

// Valid reports whether ns is one of the three recognized namespaces
func (ns Namespace) Valid() bool {
	switch ns {
	case NamespaceStateMachines, NamespaceViewModels, NamespaceImageAssets:
		return true
	}
	return false
}

// ControlPath is the parsed form of a dotted control path string
type ControlPath struct {
	Namespace Namespace
	Container string
	Property  string
}

// Parse splits a dotted control path into its three segments.
// The namespace must be recognized and all segments must be non-empty.
func Parse(path string) (ControlPath, error) {
	parts := strings.Split(path, ".")
	if len(parts) != 3 {
		return ControlPath{}, errors.Newf(errors.ErrBadPath,
			"control path %q must have exactly three dot-separated segments", path)
	}

	ns := Namespace(parts[0])
	if !ns.Valid() {
		return ControlPath{}, errors.Newf(errors.ErrBadPath,
			"unrecognized namespace %q in control path %q", parts[0], path)
	}

	if parts[1] == "" || parts[2] == "" {
		return ControlPath{}, errors.Newf(errors.ErrBadPath,
			"control path %q has an empty segment", path)
	}

	return ControlPath{
		Namespace: ns,
		Container: parts[1],
		Property:  parts[2],
	}, nil
}

// String serializes the path back to its dotted form
func (p ControlPath) String() string {
	return string(p.Namespace) + "." + p.Container + "." + p.Property
}

// Join builds a dotted path string from its segments
func Join(ns Namespace, container, property string) string {
	return ControlPath{Namespace: ns, Container: container, Property: property}.String()
}
