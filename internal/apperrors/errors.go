package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrConnect    = errors.New("database connection failed")
	ErrGeneration = errors.New("seed generation failed")
)

// ConnectError is returned before any mutation when the target database
// cannot be reached.
type ConnectError struct {
	Provider string
	Err      error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect to %s database: %v", e.Provider, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

func (e *ConnectError) Is(target error) bool { return target == ErrConnect }

// GenerationError is returned after the run's transaction has been rolled
// back. Code carries the SQLSTATE or driver error number when known.
type GenerationError struct {
	Phase string
	Code  string
	Err   error
}

func (e *GenerationError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("seeding %s failed (code %s): %v", e.Phase, e.Code, e.Err)
	}
	return fmt.Sprintf("seeding %s failed: %v", e.Phase, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }
