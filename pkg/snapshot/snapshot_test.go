package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/marionette/pkg/errors"
	"github.com/arthur-debert/marionette/pkg/values"
)

const demoSnapshot = `
[stateMachines.MainSM]
isVisible = true
speed = 2.5

[viewModels.card]
title = "Hello"
background = 0xFF336699

[imageAssets.hero]
slot = "https://example.com/cat.png"
`

func TestParseTOML(t *testing.T) {
	snap, err := Parse([]byte(demoSnapshot), ".toml")
	require.NoError(t, err)

	assert.Equal(t, 5, snap.Len())
	assert.Equal(t, []string{
		"imageAssets.hero.slot",
		"stateMachines.MainSM.isVisible",
		"stateMachines.MainSM.speed",
		"viewModels.card.background",
		"viewModels.card.title",
	}, snap.Paths())

	v, ok := snap.Value("stateMachines.MainSM.isVisible")
	require.True(t, ok)
	assert.Equal(t, values.Bool(true), v)

	v, ok = snap.Value("stateMachines.MainSM.speed")
	require.True(t, ok)
	assert.Equal(t, values.Number(2.5), v)

	v, ok = snap.Value("viewModels.card.background")
	require.True(t, ok)
	c, colorOK := v.AsColor()
	require.True(t, colorOK)
	assert.Equal(t, uint32(0xFF336699), c)

	_, ok = snap.Value("viewModels.card.missing")
	assert.False(t, ok)
}

func TestParseYAML(t *testing.T) {
	data := `
stateMachines:
  MainSM:
    isVisible: true
viewModels:
  card:
    title: Hi
`
	snap, err := Parse([]byte(data), ".yaml")
	require.NoError(t, err)

	assert.Equal(t, 2, snap.Len())
	v, ok := snap.Value("viewModels.card.title")
	require.True(t, ok)
	assert.Equal(t, values.String("Hi"), v)
}

func TestParseEmpty(t *testing.T) {
	snap, err := Parse([]byte(""), ".toml")
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
	assert.Empty(t, snap.Paths())
}

func TestParseErrors(t *testing.T) {
	t.Run("bad toml", func(t *testing.T) {
		_, err := Parse([]byte("= nope"), ".toml")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSnapshotLoad))
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := Parse([]byte("{}"), ".json")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSnapshotLoad))
	})
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.toml")
	require.NoError(t, os.WriteFile(path, []byte(demoSnapshot), 0644))

	snap, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Len())

	_, err = Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSnapshotLoad))
}
