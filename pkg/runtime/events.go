package runtime

// Event is a notification emitted by the runtime. Exactly three event
// classes exist: general custom events carrying a name, open-URL events
// carrying a URL, and state-change notifications carrying the state-machine
// name and the new state name.
type Event interface {
	event()
}

// CustomEvent is a general named event raised by the loaded file
type CustomEvent struct {
	Name string
}

// OpenURLEvent asks the host to open a URL
type OpenURLEvent struct {
	URL string
}

// StateChangeEvent reports a state machine entering a new state
type StateChangeEvent struct {
	StateMachine string
	State        string
}

func (CustomEvent) event()      {}
func (OpenURLEvent) event()     {}
func (StateChangeEvent) event() {}
