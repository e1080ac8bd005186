package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	err := conflictError("insufficient stock for %s", "Gel")
	assert.Equal(t, "insufficient stock for Gel", err.Error())
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindConflict, KindOf(err))

	wrapped := fmt.Errorf("handler: %w", notFoundError("product %d not found", 7))
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, KindNotFound, KindOf(wrapped))

	assert.Equal(t, Kind(0), KindOf(errors.New("boom")))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("deadlock detected")
	err := &Error{Kind: KindConflict, Message: "failed to record sale", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to record sale: deadlock detected", err.Error())
	assert.Equal(t, "validation", KindValidation.String())
}
