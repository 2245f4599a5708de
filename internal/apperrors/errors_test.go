package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("open: %w", &ConnectError{Provider: "postgresql", Err: cause})

	assert.ErrorIs(t, err, ErrConnect)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrGeneration)
	assert.Contains(t, err.Error(), "postgresql")
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed")
	err := &GenerationError{Phase: "users", Code: "2067", Err: cause}

	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrConnect)
	assert.Equal(t, "seeding users failed (code 2067): UNIQUE constraint failed", err.Error())

	var genErr *GenerationError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &genErr))
	assert.Equal(t, "users", genErr.Phase)
}
