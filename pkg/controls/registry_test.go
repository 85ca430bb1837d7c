package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/marionette/pkg/paths"
	"github.com/arthur-debert/marionette/pkg/scene"
	"github.com/arthur-debert/marionette/pkg/values"
)

const demoScene = `
name = "demo"

[stateMachines.MainSM.inputs.isVisible]
kind = "boolean"
value = false

[stateMachines.MainSM.inputs.speed]
kind = "number"
value = 2

[stateMachines.MainSM.inputs.advance]
kind = "trigger"

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

func buildDemo(t *testing.T) *Registry {
	t.Helper()
	sc, err := scene.Parse([]byte(demoScene), ".toml")
	require.NoError(t, err)
	return Build(sc)
}

func TestBuild(t *testing.T) {
	reg := buildDemo(t)

	// 3 inputs + 3 fields + 1 image slot; the non-image asset is skipped
	assert.Equal(t, 7, reg.Len())

	wantPaths := []string{
		"imageAssets.hero.slot",
		"stateMachines.MainSM.advance",
		"stateMachines.MainSM.isVisible",
		"stateMachines.MainSM.speed",
		"viewModels.card.background",
		"viewModels.card.title",
		"viewModels.dropdown.selectedOption",
	}
	var got []string
	for _, p := range reg.Paths() {
		got = append(got, p.String())
	}
	assert.Equal(t, wantPaths, got)
}

func TestLookup(t *testing.T) {
	reg := buildDemo(t)

	tests := []struct {
		path string
		kind HandleKind
	}{
		{"stateMachines.MainSM.isVisible", HandleBoolInput},
		{"stateMachines.MainSM.speed", HandleNumberInput},
		{"stateMachines.MainSM.advance", HandleTriggerInput},
		{"viewModels.card.title", HandleStringField},
		{"viewModels.card.background", HandleColorField},
		{"viewModels.dropdown.selectedOption", HandleEnumField},
		{"imageAssets.hero.slot", HandleImageSlot},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := paths.Parse(tt.path)
			require.NoError(t, err)

			h, ok := reg.Lookup(p)
			require.True(t, ok)
			assert.Equal(t, tt.kind, h.Kind())
		})
	}

	t.Run("unknown path", func(t *testing.T) {
		_, ok := reg.Lookup(paths.ControlPath{
			Namespace: paths.NamespaceStateMachines,
			Container: "MainSM",
			Property:  "missing",
		})
		assert.False(t, ok)
	})

	t.Run("unknown container", func(t *testing.T) {
		_, ok := reg.Lookup(paths.ControlPath{
			Namespace: paths.NamespaceViewModels,
			Container: "missing",
			Property:  "title",
		})
		assert.False(t, ok)
	})
}

func TestHandleValue(t *testing.T) {
	reg := buildDemo(t)

	lookup := func(path string) *Handle {
		p, err := paths.Parse(path)
		require.NoError(t, err)
		h, ok := reg.Lookup(p)
		require.True(t, ok)
		return h
	}

	v, ok := lookup("stateMachines.MainSM.isVisible").Value()
	require.True(t, ok)
	assert.Equal(t, values.Bool(false), v)

	v, ok = lookup("stateMachines.MainSM.speed").Value()
	require.True(t, ok)
	assert.Equal(t, values.Number(2), v)

	v, ok = lookup("viewModels.card.background").Value()
	require.True(t, ok)
	assert.Equal(t, values.Color(0xFF336699), v)

	_, ok = lookup("stateMachines.MainSM.advance").Value()
	assert.False(t, ok, "triggers have no readable value")

	_, ok = lookup("imageAssets.hero.slot").Value()
	assert.False(t, ok, "image slots have no readable value")
}

func TestHandleOptions(t *testing.T) {
	reg := buildDemo(t)

	p, err := paths.Parse("viewModels.dropdown.selectedOption")
	require.NoError(t, err)
	h, ok := reg.Lookup(p)
	require.True(t, ok)
	assert.Equal(t, []string{"option1", "option2"}, h.Options())

	p, err = paths.Parse("viewModels.card.title")
	require.NoError(t, err)
	h, ok = reg.Lookup(p)
	require.True(t, ok)
	assert.Nil(t, h.Options())
}

func TestBuildEmptyRuntime(t *testing.T) {
	sc, err := scene.Parse([]byte(`name = "empty"`), ".toml")
	require.NoError(t, err)

	reg := Build(sc)
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Paths())
	assert.Empty(t, reg.Containers(paths.NamespaceStateMachines))
}

func TestBuildPartialRegistry(t *testing.T) {
	data := `
name = "partial"
unsupported = ["viewModels", "assets"]

[stateMachines.SM.inputs.active]
kind = "boolean"
`
	sc, err := scene.Parse([]byte(data), ".toml")
	require.NoError(t, err)

	reg := Build(sc)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, []string{"SM"}, reg.Containers(paths.NamespaceStateMachines))
	assert.Empty(t, reg.Containers(paths.NamespaceViewModels))
	assert.Empty(t, reg.Containers(paths.NamespaceImageAssets))
}

func TestContainersAndProperties(t *testing.T) {
	reg := buildDemo(t)

	assert.Equal(t, []string{"card", "dropdown"}, reg.Containers(paths.NamespaceViewModels))
	assert.Equal(t, []string{"background", "title"},
		reg.Properties(paths.NamespaceViewModels, "card"))
	assert.Empty(t, reg.Properties(paths.NamespaceViewModels, "missing"))
}
