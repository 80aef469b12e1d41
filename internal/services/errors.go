package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal marks a failed data-store read or write.
	ErrInternal = errors.New("internal error")
	// ErrGeneration marks a failed call to the message generator.
	ErrGeneration = errors.New("message generation failed")
)

func internalError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}
