package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesLoad(t *testing.T) {
	require.NoError(t, LoadFromData(embeddedStyles))

	names := Names()
	for _, want := range []string{"Header", "Path", "Kind", "Value", "Applied", "Rejected", "Event", "Muted"} {
		assert.Contains(t, names, want)
	}
}

func TestGetUnknownStyle(t *testing.T) {
	// unknown names render unstyled rather than failing
	out := Get("DoesNotExist").Render("plain")
	assert.Equal(t, "plain", out)
}

func TestLoadMalformedData(t *testing.T) {
	assert.Error(t, LoadFromData([]byte("styles: [not a map")))
}
