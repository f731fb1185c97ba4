package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCategories(t *testing.T) {
	wrapped := fmt.Errorf("finding access point: %w", ErrAccessPointNotFound)

	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.ErrorIs(t, wrapped, ErrAccessPointNotFound)
	assert.False(t, errors.Is(wrapped, ErrConflict))
	assert.Equal(t, "Access point not found", Message(wrapped, "fallback"))
}

func TestMessageFallback(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
	assert.Equal(t, "fallback", Message(ErrNotFound, "fallback"))
}
