package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	// Generate many IDs
	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	emptyID := ID("")
	if !emptyID.IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}

	nonEmptyID := ID("not-empty")
	if nonEmptyID.IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParseDatasetID tests dataset ID parsing
func TestParseDatasetID(t *testing.T) {
	tests := []struct {
		input    string
		expected DatasetID
		hasError bool
	}{
		{"0f8fad5b-d9cb-469f-a165-70867728950e", DatasetID("0f8fad5b-d9cb-469f-a165-70867728950e"), false},
		{"  0f8fad5b-d9cb-469f-a165-70867728950e  ", DatasetID("0f8fad5b-d9cb-469f-a165-70867728950e"), false},
		{"", "", true},
		{"   ", "", true},
		{"not-a-uuid", "", true},
	}

	for _, test := range tests {
		result, err := ParseDatasetID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestRowKeyEquality tests that identical payloads hash to identical keys
func TestRowKeyEquality(t *testing.T) {
	a := NewRowKey([]byte(`"n":25|"s":"NY"`))
	b := NewRowKey([]byte(`"n":25|"s":"NY"`))
	c := NewRowKey([]byte(`"n":26|"s":"NY"`))

	if a != b {
		t.Error("Expected equal payloads to produce equal row keys")
	}
	if a == c {
		t.Error("Expected different payloads to produce different row keys")
	}
	if Hash(a).IsEmpty() {
		t.Error("Expected non-empty row key")
	}
}
