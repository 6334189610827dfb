package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkerSetConsumeOnce(t *testing.T) {
	m := newMarkerSet()
	key := threadMessageKey("guild1", "7", 99)

	assert.False(t, m.Consume(key))

	m.Add(key)
	assert.True(t, m.Consume(key))
	// A marker is spent once consumed.
	assert.False(t, m.Consume(key))
}

func TestThreadMessageKey(t *testing.T) {
	assert.Equal(t, "guild1-7-99", threadMessageKey("guild1", "7", 99))
	assert.NotEqual(t,
		threadMessageKey("guild1", "7", 99),
		threadMessageKey("guild1", "79", 9))
}
