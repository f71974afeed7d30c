package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrProfileNotFound = fmt.Errorf("%w: profile", ErrNotFound)

	// Lifecycle errors
	ErrProfileNotReady = errors.New("profile not ready")
	ErrDatasetFailed   = errors.New("dataset processing failed")

	// Input errors
	ErrEmptyDataset     = errors.New("dataset has no columns")
	ErrUnsupportedInput = errors.New("unsupported input format")
)

// NewNotFoundError builds a not-found error carrying the resource and id
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// IsNotFoundError reports whether err is any not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
