package nameless

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	Adapter
	min, max int
}

func (f fakeAdapter) MinVersion() int { return f.min }
func (f fakeAdapter) MaxVersion() int { return f.max }

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2.1.3", 213},
		{"2.1.0", 210},
		{" 2.2.0 ", 220},
		{"2", 2},
	}
	for _, tt := range tests {
		got, err := ParseVersion(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseVersion("beta")
	assert.Error(t, err)
	_, err = ParseVersion("")
	assert.Error(t, err)
}

func TestRegistrySelect(t *testing.T) {
	older := fakeAdapter{min: 200, max: 209}
	newer := fakeAdapter{min: 210, max: 0}
	r := &Registry{adapters: []Adapter{newer, older}}

	assert.Equal(t, newer, r.Select(213))
	assert.Equal(t, newer, r.Select(210))
	assert.Equal(t, older, r.Select(205))
	assert.Equal(t, older, r.Select(209))

	// Open-ended range covers everything above its minimum.
	assert.Equal(t, newer, r.Select(999))

	// Nothing covers the version: fall back to the most recent adapter.
	assert.Equal(t, newer, r.Select(100))
}

func TestRegistryLatest(t *testing.T) {
	r := NewRegistry(http.DefaultClient)
	require.NotNil(t, r.Latest())
	assert.Equal(t, 210, r.Latest().MinVersion())
}
