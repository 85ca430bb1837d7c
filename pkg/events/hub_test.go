package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/marionette/pkg/runtime"
)

// callbackInstance is the minimal runtime surface the hub needs
type callbackInstance struct {
	fn func(runtime.Event)
}

func (c *callbackInstance) Name() string { return "test" }
func (c *callbackInstance) StateMachines() ([]runtime.StateMachine, error) {
	return nil, runtime.ErrUnsupported
}
func (c *callbackInstance) ViewModel() (runtime.ViewModel, error) {
	return nil, runtime.ErrUnsupported
}
func (c *callbackInstance) Assets() ([]runtime.Asset, error) {
	return nil, runtime.ErrUnsupported
}
func (c *callbackInstance) OnEvent(fn func(runtime.Event)) { c.fn = fn }

func newHub() (*Hub, *callbackInstance) {
	inst := &callbackInstance{}
	return NewHub(inst), inst
}

func TestHubFanOut(t *testing.T) {
	hub, inst := newHub()
	defer hub.Close()

	a := hub.Subscribe(4)
	b := hub.Subscribe(4)

	inst.fn(runtime.CustomEvent{Name: "ping"})
	inst.fn(runtime.StateChangeEvent{StateMachine: "MainSM", State: "open"})

	for _, sub := range []*Subscription{a, b} {
		evt := <-sub.Events()
		assert.Equal(t, runtime.CustomEvent{Name: "ping"}, evt)

		evt = <-sub.Events()
		assert.Equal(t, runtime.StateChangeEvent{StateMachine: "MainSM", State: "open"}, evt)
	}
}

func TestHubDropsWhenFull(t *testing.T) {
	hub, inst := newHub()
	defer hub.Close()

	sub := hub.Subscribe(1)

	inst.fn(runtime.CustomEvent{Name: "first"})
	inst.fn(runtime.CustomEvent{Name: "second"})
	inst.fn(runtime.CustomEvent{Name: "third"})

	assert.Equal(t, 2, sub.Dropped())
	evt := <-sub.Events()
	assert.Equal(t, runtime.CustomEvent{Name: "first"}, evt)

	select {
	case <-sub.Events():
		t.Fatal("no further events should be buffered")
	default:
	}
}

func TestHubCancel(t *testing.T) {
	hub, inst := newHub()
	defer hub.Close()

	a := hub.Subscribe(4)
	b := hub.Subscribe(4)
	a.Cancel()

	inst.fn(runtime.OpenURLEvent{URL: "https://example.com"})

	_, open := <-a.Events()
	assert.False(t, open, "cancelled subscription channel must be closed")

	evt := <-b.Events()
	assert.Equal(t, runtime.OpenURLEvent{URL: "https://example.com"}, evt)

	// double cancel is a no-op
	a.Cancel()
}

func TestHubClose(t *testing.T) {
	hub, inst := newHub()
	sub := hub.Subscribe(4)

	hub.Close()

	_, open := <-sub.Events()
	assert.False(t, open)

	// publishing after close is discarded, not a panic
	inst.fn(runtime.CustomEvent{Name: "late"})

	late := hub.Subscribe(4)
	_, open = <-late.Events()
	assert.False(t, open, "subscribing after close yields a closed channel")

	hub.Close()
}

func TestHubWithScene(t *testing.T) {
	// the hub plugs directly into a live instance's OnEvent
	inst := &callbackInstance{}
	hub := NewHub(inst)
	defer hub.Close()
	require.NotNil(t, inst.fn)

	sub := hub.Subscribe(0)
	inst.fn(runtime.CustomEvent{Name: "wired"})
	assert.Equal(t, runtime.CustomEvent{Name: "wired"}, <-sub.Events())
	assert.Equal(t, 0, sub.Dropped())
}
