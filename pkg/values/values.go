// Package values defines the tagged value union carried by dispatch calls.
//
// Dispatch values are one of seven shapes: boolean, number, trigger-fire,
// string, color (packed ARGB), enum option or URI. Using a closed union
// instead of interface{} means shape mismatches surface as typed rejections
// instead of silent no-ops.
package values

import (
	"fmt"
	"math"
	"strings"

	"github.com/arthur-debert/marionette/pkg/errors"
)

// Kind identifies the shape of a Value
type Kind int

const (
	// KindBool is a boolean value for boolean-kind inputs
	KindBool Kind = iota

	// KindNumber is a numeric value for number-kind inputs
	KindNumber

	// KindTriggerFire requests a one-shot trigger firing; it carries no payload
	KindTriggerFire

	// KindString is a string value for string-kind fields
	KindString

	// KindColor is a 32-bit unsigned integer packed as alpha-red-green-blue,
	// most to least significant byte
	KindColor

	// KindEnum is a string drawn from an enum field's declared option set
	KindEnum

	// KindURI is a resource locator for image substitution
	KindURI
)

// String returns the display name of the kind
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindTriggerFire:
		return "trigger"
	case KindString:
		return "string"
	case KindColor:
		return "color"
	case KindEnum:
		return "enum"
	case KindURI:
		return "uri"
	}
	return "unknown"
}

// Value is an immutable tagged union over the seven dispatchable shapes
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	c    uint32
}

// Bool builds a boolean value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number builds a numeric value
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// TriggerFire builds a trigger-fire request
func TriggerFire() Value { return Value{kind: KindTriggerFire} }

// String builds a string value
func String(s string) Value { return Value{kind: KindString, s: s} }

// Color builds a packed ARGB color value
func Color(c uint32) Value { return Value{kind: KindColor, c: c} }

// Enum builds an enum option value
func Enum(s string) Value { return Value{kind: KindEnum, s: s} }

// URI builds a resource locator value
func URI(s string) Value { return Value{kind: KindURI, s: s} }

// Kind returns the value's shape tag
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean payload if the value is boolean-shaped
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsNumber returns the numeric payload if the value is number-shaped
func (v Value) AsNumber() (float64, bool) {
	return v.n, v.kind == KindNumber
}

// AsString returns the string payload for string-shaped values
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsEnum returns the option payload. A plain string is accepted as an enum
// option; the dispatcher validates it against the field's declared set.
func (v Value) AsEnum() (string, bool) {
	return v.s, v.kind == KindEnum || v.kind == KindString
}

// AsColor returns the packed ARGB payload. Numeric values are accepted when
// they are integral and within the unsigned 32-bit range; no clamping occurs.
func (v Value) AsColor() (uint32, bool) {
	switch v.kind {
	case KindColor:
		return v.c, true
	case KindNumber:
		if v.n < 0 || v.n > math.MaxUint32 || v.n != math.Trunc(v.n) {
			return 0, false
		}
		return uint32(v.n), true
	}
	return 0, false
}

// AsURI returns the locator payload. A plain string is accepted as a URI.
func (v Value) AsURI() (string, bool) {
	return v.s, v.kind == KindURI || v.kind == KindString
}

// Format renders the value for logs and CLI output
func (v Value) Format() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindNumber:
		return fmt.Sprintf("%g", v.n)
	case KindTriggerFire:
		return "fire"
	case KindColor:
		return fmt.Sprintf("0x%08X", v.c)
	case KindString, KindEnum, KindURI:
		return v.s
	}
	return ""
}

// Infer converts a dynamically typed value (snapshot files, CLI arguments)
// into a tagged Value. nil maps to a trigger fire; strings stay strings and
// are narrowed to enum or URI shapes at dispatch time.
func Infer(raw interface{}) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return TriggerFire(), nil
	case bool:
		return Bool(t), nil
	case int:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case float32:
		return Number(float64(t)), nil
	case float64:
		return Number(t), nil
	case string:
		return String(t), nil
	case Value:
		return t, nil
	}
	return Value{}, errors.Newf(errors.ErrInvalidInput,
		"cannot infer a dispatch value from %T", raw)
}

// EscapeNewlines replaces each literal newline with the two-character
// sequence backslash-n, matching the runtime's single-line string
// convention. No other characters are altered.
func EscapeNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}
