// Package idgen provides short random identifiers for new animals.
package idgen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const maxLength = 32

// UUIDGenerator derives fixed-length lowercase hex identifiers from random UUIDs.
type UUIDGenerator struct {
	length int
}

// NewUUIDGenerator creates a generator producing IDs of the given length (1-32).
func NewUUIDGenerator(length int) (*UUIDGenerator, error) {
	if length < 1 || length > maxLength {
		return nil, fmt.Errorf("id length must be between 1 and %d, got %d", maxLength, length)
	}
	return &UUIDGenerator{length: length}, nil
}

// NewID returns a new random identifier.
func (g *UUIDGenerator) NewID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return hex[:g.length]
}
