package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// DatasetID identifies one stored dataset
type DatasetID ID

// String returns the string representation
func (id DatasetID) String() string { return ID(id).String() }

// NewDatasetID creates a new unique dataset identifier
func NewDatasetID() DatasetID {
	return DatasetID(NewID())
}

// ParseDatasetID parses a string into DatasetID. IDs are UUIDs; the
// postgres schema stores them in a UUID column, so anything else is
// rejected here instead of surfacing as a driver error.
func ParseDatasetID(s string) (DatasetID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("dataset ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("dataset ID must be a UUID: %w", err)
	}
	return DatasetID(s), nil
}
