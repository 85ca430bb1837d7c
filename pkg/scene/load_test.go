package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/marionette/pkg/errors"
	"github.com/arthur-debert/marionette/pkg/runtime"
)

const demoScene = `
name = "demo"

[stateMachines.MainSM.inputs.isVisible]
kind = "boolean"
value = false

[stateMachines.MainSM.inputs.speed]
kind = "number"
value = 1.5

[stateMachines.MainSM.inputs.advance]
kind = "trigger"
target = "Playing"

[viewModels.card.strings.title]
value = "Hello"

[viewModels.card.colors.background]
value = 0xFF336699

[viewModels.dropdown.enums.selectedOption]
value = "option1"
options = ["option1", "option2"]

[assets.hero]
image = true

[assets.fontdata]
image = false
`

func TestParseTOML(t *testing.T) {
	sc, err := Parse([]byte(demoScene), ".toml")
	require.NoError(t, err)

	assert.Equal(t, "demo", sc.Name())

	machines, err := sc.StateMachines()
	require.NoError(t, err)
	require.Len(t, machines, 1)
	assert.Equal(t, "MainSM", machines[0].Name())

	inputs, err := machines[0].Inputs()
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	// enumeration is sorted by name
	assert.Equal(t, "advance", inputs[0].Name())
	assert.Equal(t, runtime.InputTrigger, inputs[0].Kind())
	assert.Equal(t, "isVisible", inputs[1].Name())
	assert.False(t, inputs[1].Bool())
	assert.Equal(t, "speed", inputs[2].Name())
	assert.Equal(t, 1.5, inputs[2].Number())

	vm, err := sc.ViewModel()
	require.NoError(t, err)
	nested, err := vm.Nested()
	require.NoError(t, err)
	require.Len(t, nested, 2)
	assert.Equal(t, "card", nested[0].Name())
	assert.Equal(t, "dropdown", nested[1].Name())

	colors, err := nested[0].Colors()
	require.NoError(t, err)
	require.Len(t, colors, 1)
	assert.Equal(t, uint32(0xFF336699), colors[0].Get())

	enums, err := nested[1].Enums()
	require.NoError(t, err)
	require.Len(t, enums, 1)
	assert.Equal(t, []string{"option1", "option2"}, enums[0].Options())

	assets, err := sc.Assets()
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.False(t, assets[0].IsImage())
	assert.Equal(t, "hero", assets[1].Name())
	assert.True(t, assets[1].IsImage())
}

func TestParseYAML(t *testing.T) {
	data := `
name: demo
stateMachines:
  MainSM:
    inputs:
      isVisible:
        kind: boolean
        value: true
viewModels:
  card:
    strings:
      title:
        value: Hi
`
	sc, err := Parse([]byte(data), ".yaml")
	require.NoError(t, err)

	machines, err := sc.StateMachines()
	require.NoError(t, err)
	require.Len(t, machines, 1)

	inputs, err := machines[0].Inputs()
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.True(t, inputs[0].Bool())
}

func TestParseEmptyScene(t *testing.T) {
	sc, err := Parse([]byte(`name = "empty"`), ".toml")
	require.NoError(t, err)

	machines, err := sc.StateMachines()
	require.NoError(t, err)
	assert.Empty(t, machines)

	vm, err := sc.ViewModel()
	require.NoError(t, err)
	nested, err := vm.Nested()
	require.NoError(t, err)
	assert.Empty(t, nested)
}

func TestParseUnsupportedGroups(t *testing.T) {
	data := `
name = "partial"
unsupported = ["viewModels", "assets"]

[stateMachines.SM.inputs.go]
kind = "trigger"
`
	sc, err := Parse([]byte(data), ".toml")
	require.NoError(t, err)

	_, err = sc.ViewModel()
	assert.ErrorIs(t, err, runtime.ErrUnsupported)

	_, err = sc.Assets()
	assert.ErrorIs(t, err, runtime.ErrUnsupported)

	machines, err := sc.StateMachines()
	require.NoError(t, err)
	assert.Len(t, machines, 1)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown input kind", `
[stateMachines.SM.inputs.x]
kind = "vector"
`},
		{"boolean with number value", `
[stateMachines.SM.inputs.x]
kind = "boolean"
value = 3
`},
		{"color out of range", `
[viewModels.c.colors.x]
value = 0x1FFFFFFFFF
`},
		{"enum without options", `
[viewModels.c.enums.x]
value = "a"
`},
		{"unknown unsupported group", `unsupported = ["textRuns"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), ".toml")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrSceneLoad), err.Error())
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.toml")
	require.NoError(t, os.WriteFile(path, []byte(demoScene), 0644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", sc.Name())

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.toml"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSceneLoad))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		bad := filepath.Join(dir, "demo.json")
		require.NoError(t, os.WriteFile(bad, []byte("{}"), 0644))
		_, err := Load(bad)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSceneLoad))
	})
}

func TestTriggerEvents(t *testing.T) {
	data := `
[stateMachines.MainSM.inputs.advance]
kind = "trigger"
target = "Playing"
event = "advanced"
url = "https://example.com"
`
	sc, err := Parse([]byte(data), ".toml")
	require.NoError(t, err)

	var events []runtime.Event
	sc.OnEvent(func(evt runtime.Event) {
		events = append(events, evt)
	})

	machines, err := sc.StateMachines()
	require.NoError(t, err)
	inputs, err := machines[0].Inputs()
	require.NoError(t, err)

	require.NoError(t, inputs[0].Fire())

	require.Len(t, events, 3)
	assert.Equal(t, runtime.StateChangeEvent{StateMachine: "MainSM", State: "Playing"}, events[0])
	assert.Equal(t, runtime.CustomEvent{Name: "advanced"}, events[1])
	assert.Equal(t, runtime.OpenURLEvent{URL: "https://example.com"}, events[2])
}

func TestAssetReplaceTracking(t *testing.T) {
	sc, err := Parse([]byte("[assets.hero]\nimage = true\n"), ".toml")
	require.NoError(t, err)

	assets, err := sc.Assets()
	require.NoError(t, err)
	hero := assets[0].(*Asset)

	assert.Nil(t, hero.Installed())
	assert.Equal(t, 0, hero.ReplaceCount())

	img := stubImage{}
	require.NoError(t, hero.ReplaceImage(img))
	assert.Equal(t, img, hero.Installed())
	assert.Equal(t, 1, hero.ReplaceCount())
}

type stubImage struct{}

func (stubImage) Release() {}
