package common

import (
	"strings"
	"unicode"

	"github.com/incognito1025/fauna-go/internal/domain/valueobject"
)

// MaxAnimalNameLength bounds the length of an animal name.
const MaxAnimalNameLength = 255

// ValidateAnimalName checks that a name can be stored and rendered on a single line.
func ValidateAnimalName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("name", "name is required")
	}
	if len(name) > MaxAnimalNameLength {
		return NewValidationError("name", "exceeds maximum length")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return NewValidationErrorWithValue("name", "contains control characters", name)
		}
	}
	return nil
}

// ParseAnimalID validates a user-supplied identifier.
func ParseAnimalID(raw string) (valueobject.AnimalID, error) {
	id, err := valueobject.NewAnimalID(raw)
	if err != nil {
		return "", NewValidationErrorWithValue("id", err.Error(), raw)
	}
	return id, nil
}
