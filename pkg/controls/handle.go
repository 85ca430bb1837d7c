package controls

import (
	"github.com/arthur-debert/marionette/pkg/runtime"
	"github.com/arthur-debert/marionette/pkg/values"
)

// HandleKind tags the property type behind a handle
type HandleKind int

const (
	// HandleBoolInput is a boolean state-machine input
	HandleBoolInput HandleKind = iota

	// HandleNumberInput is a numeric state-machine input
	HandleNumberInput

	// HandleTriggerInput is a one-shot state-machine input
	HandleTriggerInput

	// HandleStringField is a string view-model field
	HandleStringField

	// HandleColorField is a packed ARGB view-model field
	HandleColorField

	// HandleEnumField is an option-constrained view-model field
	HandleEnumField

	// HandleImageSlot is a replaceable image asset slot
	HandleImageSlot
)

// String returns the display name of the handle kind
func (k HandleKind) String() string {
	switch k {
	case HandleBoolInput:
		return "boolean input"
	case HandleNumberInput:
		return "number input"
	case HandleTriggerInput:
		return "trigger"
	case HandleStringField:
		return "string field"
	case HandleColorField:
		return "color field"
	case HandleEnumField:
		return "enum field"
	case HandleImageSlot:
		return "image slot"
	}
	return "unknown"
}

// Handle is an opaque, non-owning reference to one controllable value
// inside the runtime. Exactly one of the underlying references is set,
// matching the kind tag.
type Handle struct {
	kind  HandleKind
	input runtime.Input
	str   runtime.StringProperty
	color runtime.ColorProperty
	enum  runtime.EnumProperty
	asset runtime.Asset
}

// Kind returns the property type tag
func (h *Handle) Kind() HandleKind { return h.kind }

// Input returns the underlying state-machine input for input-kind handles
func (h *Handle) Input() runtime.Input { return h.input }

// StringField returns the underlying string field
func (h *Handle) StringField() runtime.StringProperty { return h.str }

// ColorField returns the underlying color field
func (h *Handle) ColorField() runtime.ColorProperty { return h.color }

// EnumField returns the underlying enum field
func (h *Handle) EnumField() runtime.EnumProperty { return h.enum }

// Asset returns the underlying image asset slot
func (h *Handle) Asset() runtime.Asset { return h.asset }

// Options returns the declared option set for enum-field handles
func (h *Handle) Options() []string {
	if h.kind != HandleEnumField {
		return nil
	}
	return h.enum.Options()
}

// Value reads the current value behind the handle. Triggers and image
// slots have no readable value and report ok = false.
func (h *Handle) Value() (values.Value, bool) {
	switch h.kind {
	case HandleBoolInput:
		return values.Bool(h.input.Bool()), true
	case HandleNumberInput:
		return values.Number(h.input.Number()), true
	case HandleStringField:
		return values.String(h.str.Get()), true
	case HandleColorField:
		return values.Color(h.color.Get()), true
	case HandleEnumField:
		return values.Enum(h.enum.Get()), true
	}
	return values.Value{}, false
}
