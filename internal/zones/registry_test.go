package zones

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vintry/internal/models"
)

func TestLoadEmbeddedRegistry(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	all := reg.All()
	require.Len(t, all, 9)

	// All() iterates in ID order.
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}

	assert.True(t, reg.Has("bold_red"))
	assert.Equal(t, models.ColorRed, reg.ColorOf("italian_red"))
	assert.Equal(t, models.ColorWhite, reg.ColorOf("crisp_white"))
	assert.Equal(t, models.ColorAny, reg.ColorOf("sparkling"))

	buffer := reg.Get("buffer")
	require.NotNil(t, buffer)
	assert.True(t, buffer.Buffer)
}

func TestColorOfUnknownZone(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	// Unknown zones read as "any" so adjacency checks fail open.
	assert.Equal(t, models.ColorAny, reg.ColorOf("no_such_zone"))
	assert.Nil(t, reg.Get("no_such_zone"))
	assert.False(t, reg.Has("no_such_zone"))
}

func TestParseRejectsBadRegistries(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "zones:\n  - name: X\n    color: red\n"},
		{"duplicate id", "zones:\n  - id: a\n    color: red\n  - id: a\n    color: red\n"},
		{"unknown color", "zones:\n  - id: a\n    color: blue\n"},
		{"malformed yaml", "zones: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
