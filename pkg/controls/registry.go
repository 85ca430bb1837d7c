package controls

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/marionette/pkg/logging"
	"github.com/arthur-debert/marionette/pkg/paths"
	"github.com/arthur-debert/marionette/pkg/runtime"
)

// ImageSlotProperty is the property segment image slots are addressed by
const ImageSlotProperty = "slot"

// Registry is the nested lookup of addressable runtime properties.
// It is immutable once built; lookups are safe from any goroutine.
type Registry struct {
	instance runtime.Instance
	groups   map[paths.Namespace]map[string]map[string]*Handle
}

// Build queries the runtime instance and assembles its control registry.
// Each capability group that fails to enumerate is omitted; a structurally
// valid (possibly empty) registry is always returned.
func Build(inst runtime.Instance) *Registry {
	logger := logging.GetLogger("controls")

	reg := &Registry{
		instance: inst,
		groups:   make(map[paths.Namespace]map[string]map[string]*Handle),
	}
	for _, ns := range paths.Namespaces {
		reg.groups[ns] = make(map[string]map[string]*Handle)
	}

	reg.buildStateMachines(logger)
	reg.buildViewModels(logger)
	reg.buildImageAssets(logger)

	logger.Debug().
		Str("instance", inst.Name()).
		Int("controls", reg.Len()).
		Msg("Control registry built")
	return reg
}

func (r *Registry) buildStateMachines(logger zerolog.Logger) {
	machines, err := r.instance.StateMachines()
	if err != nil {
		logger.Debug().Err(err).Msg("State machine enumeration unavailable, omitting group")
		return
	}

	for _, sm := range machines {
		inputs, err := sm.Inputs()
		if err != nil {
			logger.Debug().Err(err).Str("stateMachine", sm.Name()).
				Msg("Input enumeration unavailable, omitting machine")
			continue
		}

		for _, in := range inputs {
			var kind HandleKind
			switch in.Kind() {
			case runtime.InputBoolean:
				kind = HandleBoolInput
			case runtime.InputNumber:
				kind = HandleNumberInput
			case runtime.InputTrigger:
				kind = HandleTriggerInput
			default:
				continue
			}
			r.add(paths.NamespaceStateMachines, sm.Name(), in.Name(),
				&Handle{kind: kind, input: in})
		}
	}
}

func (r *Registry) buildViewModels(logger zerolog.Logger) {
	root, err := r.instance.ViewModel()
	if err != nil {
		logger.Debug().Err(err).Msg("View model unavailable, omitting group")
		return
	}

	nested, err := root.Nested()
	if err != nil {
		logger.Debug().Err(err).Msg("View model containers unavailable, omitting group")
		return
	}

	for _, vm := range nested {
		// each property-kind group fails independently
		if fields, err := vm.Strings(); err == nil {
			for _, f := range fields {
				r.add(paths.NamespaceViewModels, vm.Name(), f.Name(),
					&Handle{kind: HandleStringField, str: f})
			}
		} else {
			logger.Debug().Err(err).Str("viewModel", vm.Name()).
				Msg("String fields unavailable")
		}

		if fields, err := vm.Colors(); err == nil {
			for _, f := range fields {
				r.add(paths.NamespaceViewModels, vm.Name(), f.Name(),
					&Handle{kind: HandleColorField, color: f})
			}
		} else {
			logger.Debug().Err(err).Str("viewModel", vm.Name()).
				Msg("Color fields unavailable")
		}

		if fields, err := vm.Enums(); err == nil {
			for _, f := range fields {
				r.add(paths.NamespaceViewModels, vm.Name(), f.Name(),
					&Handle{kind: HandleEnumField, enum: f})
			}
		} else {
			logger.Debug().Err(err).Str("viewModel", vm.Name()).
				Msg("Enum fields unavailable")
		}
	}
}

func (r *Registry) buildImageAssets(logger zerolog.Logger) {
	assets, err := r.instance.Assets()
	if err != nil {
		logger.Debug().Err(err).Msg("Asset enumeration unavailable, omitting group")
		return
	}

	for _, a := range assets {
		if !a.IsImage() {
			continue
		}
		r.add(paths.NamespaceImageAssets, a.Name(), ImageSlotProperty,
			&Handle{kind: HandleImageSlot, asset: a})
	}
}

func (r *Registry) add(ns paths.Namespace, container, property string, h *Handle) {
	group := r.groups[ns]
	if group[container] == nil {
		group[container] = make(map[string]*Handle)
	}
	group[container][property] = h
}

// Instance returns the runtime instance this registry was built from
func (r *Registry) Instance() runtime.Instance { return r.instance }

// Lookup returns the handle at the given parsed path
func (r *Registry) Lookup(p paths.ControlPath) (*Handle, bool) {
	containers, ok := r.groups[p.Namespace]
	if !ok {
		return nil, false
	}
	props, ok := containers[p.Container]
	if !ok {
		return nil, false
	}
	h, ok := props[p.Property]
	return h, ok
}

// Len returns the total number of registered handles
func (r *Registry) Len() int {
	n := 0
	for _, containers := range r.groups {
		for _, props := range containers {
			n += len(props)
		}
	}
	return n
}

// Paths returns every registered control path in sorted order
func (r *Registry) Paths() []paths.ControlPath {
	out := make([]paths.ControlPath, 0, r.Len())
	for ns, containers := range r.groups {
		for container, props := range containers {
			for property := range props {
				out = append(out, paths.ControlPath{
					Namespace: ns,
					Container: container,
					Property:  property,
				})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Containers returns the sorted container names within a namespace
func (r *Registry) Containers(ns paths.Namespace) []string {
	containers := r.groups[ns]
	out := make([]string, 0, len(containers))
	for name := range containers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Properties returns the sorted property names within a container
func (r *Registry) Properties(ns paths.Namespace, container string) []string {
	props := r.groups[ns][container]
	out := make([]string, 0, len(props))
	for name := range props {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
