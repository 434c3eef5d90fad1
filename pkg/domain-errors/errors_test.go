package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("direct code matches", func(t *testing.T) {
		err := New(CodeConflict, "taken")
		assert.True(t, HasCode(err, CodeConflict))
		assert.False(t, HasCode(err, CodeNotFound))
	})

	t.Run("inner code found through wrapping", func(t *testing.T) {
		inner := New(CodeLimitReached, "limit")
		outer := Wrap(inner, CodeInternal, "save failed")
		assert.True(t, HasCode(outer, CodeLimitReached))
		assert.True(t, HasCode(fmt.Errorf("ctx: %w", outer), CodeInternal))
	})

	t.Run("plain errors have no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(cause, CodeUnavailable, "notes service unavailable")

	assert.Equal(t, "notes service unavailable: dial tcp: refused", err.Error())
	assert.True(t, Is(err, cause))
	assert.Equal(t, CodeUnavailable, CodeOf(err))
}
