// Package scene provides an in-memory runtime.Instance built from a
// declarative scene file.
//
// A scene file describes the controllable surface of a hypothetical loaded
// artboard: state machines with typed inputs, view-model containers with
// string/color/enum fields, and named assets. It is the reference runtime
// used by the CLI and the test suite; real engines integrate by implementing
// the pkg/runtime interfaces instead.
//
// Scene files are TOML or YAML:
//
//	name = "demo"
//
//	[stateMachines.MainSM.inputs.isVisible]
//	kind = "boolean"
//	value = false
//
//	[stateMachines.MainSM.inputs.advance]
//	kind = "trigger"
//	target = "Playing"
//
//	[viewModels.card.strings.title]
//	value = "Hello"
//
//	[viewModels.dropdown.enums.selectedOption]
//	value = "option1"
//	options = ["option1", "option2"]
//
//	[assets.hero]
//	image = true
//
// Trigger inputs may declare a target state (firing emits a state-change
// event), a custom event name, or a URL to open, so event consumers can be
// exercised without a real engine.
package scene
