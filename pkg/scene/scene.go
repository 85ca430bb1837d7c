package scene

import (
	"sort"
	"sync"

	"github.com/arthur-debert/marionette/pkg/runtime"
)

// Scene is an in-memory runtime instance
type Scene struct {
	name     string
	machines []*Machine
	root     *ViewModel
	assets   []*Asset

	// capability groups declared unsupported by the scene file
	unsupported map[string]bool

	mu        sync.Mutex
	listeners []func(runtime.Event)
}

var _ runtime.Instance = (*Scene)(nil)

// Name identifies the scene
func (s *Scene) Name() string { return s.name }

// StateMachines enumerates the scene's state machines
func (s *Scene) StateMachines() ([]runtime.StateMachine, error) {
	if s.unsupported["stateMachines"] {
		return nil, runtime.ErrUnsupported
	}
	out := make([]runtime.StateMachine, 0, len(s.machines))
	for _, m := range s.machines {
		out = append(out, m)
	}
	return out, nil
}

// ViewModel returns the root data-binding object
func (s *Scene) ViewModel() (runtime.ViewModel, error) {
	if s.unsupported["viewModels"] {
		return nil, runtime.ErrUnsupported
	}
	return s.root, nil
}

// Assets enumerates the declared assets
func (s *Scene) Assets() ([]runtime.Asset, error) {
	if s.unsupported["assets"] {
		return nil, runtime.ErrUnsupported
	}
	out := make([]runtime.Asset, 0, len(s.assets))
	for _, a := range s.assets {
		out = append(out, a)
	}
	return out, nil
}

// OnEvent registers an event listener
func (s *Scene) OnEvent(fn func(runtime.Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// emit delivers an event to all registered listeners
func (s *Scene) emit(evt runtime.Event) {
	s.mu.Lock()
	listeners := make([]func(runtime.Event), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(evt)
	}
}

// Machine is a named state machine with typed inputs
type Machine struct {
	name   string
	inputs []*Input
}

var _ runtime.StateMachine = (*Machine)(nil)

// Name returns the machine name
func (m *Machine) Name() string { return m.name }

// Inputs enumerates the machine's inputs
func (m *Machine) Inputs() ([]runtime.Input, error) {
	out := make([]runtime.Input, 0, len(m.inputs))
	for _, in := range m.inputs {
		out = append(out, in)
	}
	return out, nil
}

// Input is one controllable input on a scene state machine
type Input struct {
	scene   *Scene
	machine string
	name    string
	kind    runtime.InputKind

	mu   sync.Mutex
	b    bool
	n    float64
	fired int

	// trigger side effects, emitted on Fire
	target string
	event  string
	url    string
}

var _ runtime.Input = (*Input)(nil)

// Name returns the input name
func (in *Input) Name() string { return in.name }

// Kind returns the input's type tag
func (in *Input) Kind() runtime.InputKind { return in.kind }

// SetBool assigns a boolean-kind input
func (in *Input) SetBool(v bool) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.b = v
	return nil
}

// SetNumber assigns a number-kind input
func (in *Input) SetNumber(v float64) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.n = v
	return nil
}

// Fire invokes a trigger input and emits the scene-declared side effects
func (in *Input) Fire() error {
	in.mu.Lock()
	in.fired++
	target, event, url := in.target, in.event, in.url
	in.mu.Unlock()

	if target != "" {
		in.scene.emit(runtime.StateChangeEvent{StateMachine: in.machine, State: target})
	}
	if event != "" {
		in.scene.emit(runtime.CustomEvent{Name: event})
	}
	if url != "" {
		in.scene.emit(runtime.OpenURLEvent{URL: url})
	}
	return nil
}

// Bool reads the current boolean value
func (in *Input) Bool() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.b
}

// Number reads the current numeric value
func (in *Input) Number() float64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.n
}

// FireCount reports how many times a trigger has fired
func (in *Input) FireCount() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.fired
}

// ViewModel is a scene data-binding container
type ViewModel struct {
	name    string
	strings []*StringField
	colors  []*ColorField
	enums   []*EnumField
	nested  []*ViewModel
}

var _ runtime.ViewModel = (*ViewModel)(nil)

// Name returns the container name
func (vm *ViewModel) Name() string { return vm.name }

// Strings enumerates string-kind fields
func (vm *ViewModel) Strings() ([]runtime.StringProperty, error) {
	out := make([]runtime.StringProperty, 0, len(vm.strings))
	for _, f := range vm.strings {
		out = append(out, f)
	}
	return out, nil
}

// Colors enumerates color-kind fields
func (vm *ViewModel) Colors() ([]runtime.ColorProperty, error) {
	out := make([]runtime.ColorProperty, 0, len(vm.colors))
	for _, f := range vm.colors {
		out = append(out, f)
	}
	return out, nil
}

// Enums enumerates enum-kind fields
func (vm *ViewModel) Enums() ([]runtime.EnumProperty, error) {
	out := make([]runtime.EnumProperty, 0, len(vm.enums))
	for _, f := range vm.enums {
		out = append(out, f)
	}
	return out, nil
}

// Nested enumerates named sub-containers
func (vm *ViewModel) Nested() ([]runtime.ViewModel, error) {
	out := make([]runtime.ViewModel, 0, len(vm.nested))
	for _, n := range vm.nested {
		out = append(out, n)
	}
	return out, nil
}

// StringField is a single-line string field
type StringField struct {
	name string
	mu   sync.Mutex
	v    string
}

var _ runtime.StringProperty = (*StringField)(nil)

func (f *StringField) Name() string { return f.name }

func (f *StringField) Get() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.v
}

func (f *StringField) Set(v string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.v = v
	return nil
}

// ColorField is a packed ARGB color field
type ColorField struct {
	name string
	mu   sync.Mutex
	v    uint32
}

var _ runtime.ColorProperty = (*ColorField)(nil)

func (f *ColorField) Name() string { return f.name }

func (f *ColorField) Get() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.v
}

func (f *ColorField) Set(v uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.v = v
	return nil
}

// EnumField is a field constrained to a declared option set
type EnumField struct {
	name    string
	options []string
	mu      sync.Mutex
	v       string
}

var _ runtime.EnumProperty = (*EnumField)(nil)

func (f *EnumField) Name() string { return f.name }

func (f *EnumField) Get() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.v
}

func (f *EnumField) Options() []string {
	out := make([]string, len(f.options))
	copy(out, f.options)
	return out
}

func (f *EnumField) Set(v string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.v = v
	return nil
}

// Asset is a declared scene asset
type Asset struct {
	name  string
	image bool

	mu        sync.Mutex
	installed runtime.DecodedImage
	replaced  int
}

var _ runtime.Asset = (*Asset)(nil)

func (a *Asset) Name() string { return a.name }

func (a *Asset) IsImage() bool { return a.image }

// ReplaceImage installs a decoded image on the slot
func (a *Asset) ReplaceImage(img runtime.DecodedImage) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.installed = img
	a.replaced++
	return nil
}

// Installed returns the currently installed image, if any
func (a *Asset) Installed() runtime.DecodedImage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.installed
}

// ReplaceCount reports how many images have been installed on the slot
func (a *Asset) ReplaceCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.replaced
}

// sortByName keeps enumeration order deterministic across loads
func sortByName[T interface{ Name() string }](items []T) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name() < items[j].Name()
	})
}
