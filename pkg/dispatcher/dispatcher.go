// Package dispatcher forwards string-path updates to the matching property
// handle in a control registry.
//
// It is the single entry point for mutating runtime state: the CLI layer
// and batch snapshot application both funnel through Dispatch. Per the
// control contract, an unknown path is a false return, never a raised
// error, and no dispatch failure is fatal.
package dispatcher

import (
	"slices"

	"github.com/arthur-debert/marionette/pkg/controls"
	"github.com/arthur-debert/marionette/pkg/errors"
	"github.com/arthur-debert/marionette/pkg/logging"
	"github.com/arthur-debert/marionette/pkg/paths"
	"github.com/arthur-debert/marionette/pkg/runtime"
	"github.com/arthur-debert/marionette/pkg/values"
)

// ImageScheduler schedules asynchronous image substitutions. Satisfied by
// *imagesub.Substituter.
type ImageScheduler interface {
	Schedule(asset runtime.Asset, uri string)
}

// Dispatcher applies value updates to one control registry. It holds the
// registry for the lifetime of the underlying runtime instance; after a
// reload, build a new registry and a new Dispatcher.
type Dispatcher struct {
	registry *controls.Registry
	images   ImageScheduler
}

// New creates a dispatcher over a registry. images may be nil when image
// substitution is not needed; imageAssets dispatches are then rejected.
func New(registry *controls.Registry, images ImageScheduler) *Dispatcher {
	return &Dispatcher{registry: registry, images: images}
}

// Registry returns the registry this dispatcher applies updates to
func (d *Dispatcher) Registry() *controls.Registry { return d.registry }

// Dispatch applies a value to the control at the given dotted path.
// It returns true if a matching, type-valid handle was mutated (or an
// async substitution was scheduled), false otherwise. Failures are never
// raised; callers needing the rejection reason use DispatchErr.
func (d *Dispatcher) Dispatch(path string, v values.Value) bool {
	err := d.DispatchErr(path, v)
	if err != nil {
		logger := logging.GetLogger("dispatcher")
		logger.Debug().
			Str("path", path).
			Str("value", v.Format()).
			Err(err).
			Msg("Dispatch rejected")
		return false
	}
	return true
}

// DispatchErr is Dispatch with a coded error describing the rejection
func (d *Dispatcher) DispatchErr(path string, v values.Value) error {
	parsed, err := paths.Parse(path)
	if err != nil {
		return err
	}

	handle, ok := d.registry.Lookup(parsed)
	if !ok {
		return errors.Newf(errors.ErrUnknownPath, "no control at %q", path).
			WithDetail("path", path)
	}

	switch parsed.Namespace {
	case paths.NamespaceStateMachines:
		return d.applyInput(path, handle, v)
	case paths.NamespaceViewModels:
		return d.applyField(path, handle, v)
	case paths.NamespaceImageAssets:
		return d.applyImage(path, handle, v)
	}
	return errors.Newf(errors.ErrInternal, "unhandled namespace %q", parsed.Namespace)
}

func (d *Dispatcher) applyInput(path string, h *controls.Handle, v values.Value) error {
	switch h.Kind() {
	case controls.HandleBoolInput:
		b, ok := v.AsBool()
		if !ok {
			return errors.Newf(errors.ErrTypeMismatch,
				"%s is a boolean input, got %s", path, v.Kind())
		}
		return wrapSet(h.Input().SetBool(b), path)

	case controls.HandleNumberInput:
		n, ok := v.AsNumber()
		if !ok {
			return errors.Newf(errors.ErrTypeMismatch,
				"%s is a number input, got %s", path, v.Kind())
		}
		return wrapSet(h.Input().SetNumber(n), path)

	case controls.HandleTriggerInput:
		// triggers ignore the value and fire their one-shot action
		return wrapSet(h.Input().Fire(), path)
	}
	return errors.Newf(errors.ErrInternal, "%s: input handle with kind %s", path, h.Kind())
}

func (d *Dispatcher) applyField(path string, h *controls.Handle, v values.Value) error {
	switch h.Kind() {
	case controls.HandleStringField:
		s, ok := v.AsString()
		if !ok {
			return errors.Newf(errors.ErrTypeMismatch,
				"%s is a string field, got %s", path, v.Kind())
		}
		// the runtime stores single-line strings only
		return wrapSet(h.StringField().Set(values.EscapeNewlines(s)), path)

	case controls.HandleColorField:
		c, ok := v.AsColor()
		if !ok {
			return errors.Newf(errors.ErrTypeMismatch,
				"%s is a color field, needs a packed ARGB uint32, got %s", path, v.Kind())
		}
		return wrapSet(h.ColorField().Set(c), path)

	case controls.HandleEnumField:
		s, ok := v.AsEnum()
		if !ok {
			return errors.Newf(errors.ErrTypeMismatch,
				"%s is an enum field, got %s", path, v.Kind())
		}
		if !slices.Contains(h.Options(), s) {
			return errors.Newf(errors.ErrEnumInvalid,
				"%q is not in the option set of %s", s, path).
				WithDetail("options", h.Options())
		}
		return wrapSet(h.EnumField().Set(s), path)
	}
	return errors.Newf(errors.ErrInternal, "%s: field handle with kind %s", path, h.Kind())
}

func (d *Dispatcher) applyImage(path string, h *controls.Handle, v values.Value) error {
	uri, ok := v.AsURI()
	if !ok {
		return errors.Newf(errors.ErrTypeMismatch,
			"%s is an image slot, needs a URI, got %s", path, v.Kind())
	}
	if d.images == nil {
		return errors.Newf(errors.ErrInternal,
			"no image scheduler configured, cannot substitute %s", path)
	}

	// fetch/decode outcome is reported on the substituter's error channel,
	// decoupled from this call
	d.images.Schedule(h.Asset(), uri)
	return nil
}

func wrapSet(err error, path string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, errors.ErrInternal, "runtime rejected update of %s", path)
}
