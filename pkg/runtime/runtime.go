// Package runtime declares the interfaces an animation runtime must expose
// for marionette to build a control registry over it.
//
// The runtime owns every object reachable through these interfaces: the
// loaded file, its state machines, the root view model and its fields, and
// all declared assets. marionette holds non-owning references and never
// creates, destroys or persists runtime objects. A registry built from an
// Instance must be discarded when that Instance is torn down.
package runtime

import "errors"

// ErrUnsupported signals that an enumeration call is not supported for the
// loaded file. Callers treat the affected property group as absent; this is
// never a fatal condition.
var ErrUnsupported = errors.New("capability unsupported for this file")

// InputKind tags a state-machine input's type
type InputKind int

const (
	// InputBoolean is an on/off input
	InputBoolean InputKind = iota

	// InputNumber is a numeric input
	InputNumber

	// InputTrigger is a one-shot input; it has no stored value
	InputTrigger
)

// String returns the display name of the input kind
func (k InputKind) String() string {
	switch k {
	case InputBoolean:
		return "boolean"
	case InputNumber:
		return "number"
	case InputTrigger:
		return "trigger"
	}
	return "unknown"
}

// Instance is a live, loaded representation of one file/artboard
type Instance interface {
	// Name identifies the loaded file or artboard
	Name() string

	// StateMachines enumerates the named state machines.
	// Returns ErrUnsupported when the file exposes none of this capability.
	StateMachines() ([]StateMachine, error)

	// ViewModel returns the root data-binding object.
	// Returns ErrUnsupported when the file has no view model.
	ViewModel() (ViewModel, error)

	// Assets enumerates the declared embedded assets.
	// Returns ErrUnsupported when asset enumeration is unavailable.
	Assets() ([]Asset, error)

	// OnEvent registers a listener for runtime events. The runtime invokes
	// the listener on its own schedule; listeners must not block.
	OnEvent(func(Event))
}

// StateMachine is a named graph of animation states and transition inputs
type StateMachine interface {
	Name() string

	// Inputs enumerates the machine's typed input handles
	Inputs() ([]Input, error)
}

// Input is one controllable state-machine input
type Input interface {
	Name() string
	Kind() InputKind

	// SetBool assigns a boolean-kind input
	SetBool(v bool) error

	// SetNumber assigns a number-kind input
	SetNumber(v float64) error

	// Fire invokes a trigger-kind input's one-shot action. The runtime
	// propagates the event to its state machine on its own schedule.
	Fire() error

	// Bool reads a boolean-kind input's current value
	Bool() bool

	// Number reads a number-kind input's current value
	Number() float64
}

// ViewModel is the runtime's typed, named property container bound to
// artboard elements. Field collections are enumerated per kind.
type ViewModel interface {
	Name() string

	// Strings enumerates the string-kind fields
	Strings() ([]StringProperty, error)

	// Colors enumerates the color-kind fields
	Colors() ([]ColorProperty, error)

	// Enums enumerates the enum-kind fields
	Enums() ([]EnumProperty, error)

	// Nested enumerates named sub-view-models, one per container
	Nested() ([]ViewModel, error)
}

// StringProperty is a single-line string field
type StringProperty interface {
	Name() string
	Get() string
	Set(v string) error
}

// ColorProperty is a packed ARGB color field.
// Byte order is alpha/red/green/blue from most to least significant.
type ColorProperty interface {
	Name() string
	Get() uint32
	Set(v uint32) error
}

// EnumProperty is a field constrained to a declared option set
type EnumProperty interface {
	Name() string
	Get() string

	// Options returns the declared option set
	Options() []string

	// Set assigns an option. Runtimes may reject values outside the set;
	// the dispatcher validates before calling regardless.
	Set(v string) error
}

// Asset is one declared embedded asset
type Asset interface {
	Name() string

	// IsImage reports whether the asset is an image slot
	IsImage() bool

	// ReplaceImage installs a decoded image on the slot. The runtime takes
	// its own reference; the caller releases img afterwards.
	ReplaceImage(img DecodedImage) error
}

// DecodedImage is the runtime's native decoded image representation
type DecodedImage interface {
	// Release drops the caller's reference once the image is installed
	Release()
}
