package nameless

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIError(t *testing.T) {
	err := newAPIError("nameless:cannot_find_user", "no such user", nil)
	assert.Equal(t, "nameless", err.Namespace)
	assert.Equal(t, "cannot_find_user", err.Code)
	assert.Equal(t, "nameless:cannot_find_user: no such user", err.Error())

	// No namespace separator leaves the namespace empty.
	err = newAPIError("some_error", "", nil)
	assert.Equal(t, "", err.Namespace)
	assert.Equal(t, "some_error", err.Code)
	assert.Equal(t, "some_error", err.Error())
}

func TestIsCode(t *testing.T) {
	err := newAPIError("nameless:validation_errors", "bad input", []string{"title too short"})
	assert.True(t, IsCode(err, "validation_errors"))
	assert.False(t, IsCode(err, "cannot_find_user"))

	// Matching survives wrapping.
	wrapped := fmt.Errorf("create suggestion: %w", err)
	assert.True(t, IsCode(wrapped, "validation_errors"))

	// Wrong namespace never matches.
	other := newAPIError("core:validation_errors", "", nil)
	assert.False(t, IsCode(other, "validation_errors"))

	assert.False(t, IsCode(fmt.Errorf("plain"), "validation_errors"))
	assert.False(t, IsCode(nil, "validation_errors"))
}
