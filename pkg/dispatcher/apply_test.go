package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/marionette/pkg/errors"
	"github.com/arthur-debert/marionette/pkg/snapshot"
	"github.com/arthur-debert/marionette/pkg/values"
)

func parseSnapshot(t *testing.T, data string) *snapshot.Snapshot {
	t.Helper()
	snap, err := snapshot.Parse([]byte(data), ".toml")
	require.NoError(t, err)
	return snap
}

func TestApplyAllValid(t *testing.T) {
	d, _, sched := newDemo(t)

	snap := parseSnapshot(t, `
[stateMachines.MainSM]
isVisible = true
speed = 2.5
advance = true

[viewModels.card]
title = "Hello"
background = 0xFF336699

[imageAssets.hero]
slot = "https://example.com/cat.png"
`)

	report := d.Apply(snap)
	assert.Equal(t, 6, report.Applied())
	assert.Equal(t, 0, report.Rejected())

	assert.True(t, lookupInput(t, d, "stateMachines.MainSM.isVisible").Bool())
	assert.Equal(t, 2.5, lookupInput(t, d, "stateMachines.MainSM.speed").Number())
	assert.Len(t, sched.scheduled, 1)

	v, _ := lookupHandle(t, d, "viewModels.card.background").Value()
	c, _ := v.AsColor()
	assert.Equal(t, uint32(0xFF336699), c)
}

func TestApplyPartial(t *testing.T) {
	d, _, _ := newDemo(t)

	// one unknown path and one enum violation must not block the rest
	snap := parseSnapshot(t, `
[stateMachines.MainSM]
isVisible = true
missing = 42

[viewModels.dropdown]
selectedOption = "option3"

[viewModels.card]
title = "still applied"
`)

	report := d.Apply(snap)
	assert.Equal(t, 2, report.Applied())
	assert.Equal(t, 2, report.Rejected())
	assert.Len(t, report.Results, 4)

	assert.True(t, lookupInput(t, d, "stateMachines.MainSM.isVisible").Bool())

	v, _ := lookupHandle(t, d, "viewModels.card.title").Value()
	s, _ := v.AsString()
	assert.Equal(t, "still applied", s)

	// the enum field kept its prior value
	v, _ = lookupHandle(t, d, "viewModels.dropdown.selectedOption").Value()
	s, _ = v.AsEnum()
	assert.Equal(t, "option1", s)

	for _, res := range report.Results {
		switch res.Path {
		case "stateMachines.MainSM.missing":
			assert.False(t, res.OK)
			assert.True(t, errors.IsErrorCode(res.Err, errors.ErrUnknownPath))
		case "viewModels.dropdown.selectedOption":
			assert.False(t, res.OK)
			assert.True(t, errors.IsErrorCode(res.Err, errors.ErrEnumInvalid))
		default:
			assert.True(t, res.OK, res.Path)
			assert.NoError(t, res.Err)
		}
	}
}

func TestApplyEmptySnapshot(t *testing.T) {
	d, _, _ := newDemo(t)

	report := d.Apply(parseSnapshot(t, ""))
	assert.Empty(t, report.Results)
	assert.Equal(t, 0, report.Applied())
	assert.Equal(t, 0, report.Rejected())
}

func TestApplyRecordsDispatchedValues(t *testing.T) {
	d, _, _ := newDemo(t)

	snap := parseSnapshot(t, `
[stateMachines.MainSM]
speed = 4
`)
	report := d.Apply(snap)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "stateMachines.MainSM.speed", report.Results[0].Path)
	assert.Equal(t, values.Number(4), report.Results[0].Value)
}
