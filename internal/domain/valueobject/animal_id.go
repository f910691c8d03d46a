package valueobject

import (
	"fmt"
	"strings"
)

// AnimalID identifies a single animal record. It is assigned once at creation time
// and never changes afterwards.
type AnimalID string

// NewAnimalID creates a new AnimalID with validation.
func NewAnimalID(id string) (AnimalID, error) {
	if id == "" {
		return "", fmt.Errorf("invalid animal ID: must not be empty")
	}
	if strings.ContainsAny(id, " \t\r\n") {
		return "", fmt.Errorf("invalid animal ID: %q contains whitespace", id)
	}
	return AnimalID(id), nil
}

// String returns the string representation of the ID.
func (id AnimalID) String() string {
	return string(id)
}
