package valueobject

import (
	"fmt"
	"strings"
)

// PointTable is the read-only reference table mapping an animal name to its point value.
// It is built once per invocation and never mutated afterwards.
type PointTable struct {
	points map[string]int
}

// NewPointTable creates a PointTable from the given mapping.
// The mapping is copied so later changes to the caller's map do not leak in.
func NewPointTable(points map[string]int) (PointTable, error) {
	copied := make(map[string]int, len(points))
	for name, value := range points {
		if strings.TrimSpace(name) == "" {
			return PointTable{}, fmt.Errorf("invalid point table: empty animal name")
		}
		copied[name] = value
	}
	return PointTable{points: copied}, nil
}

// Lookup returns the point value for name and whether the name is known.
func (t PointTable) Lookup(name string) (int, bool) {
	value, ok := t.points[name]
	return value, ok
}

// Contains reports whether name has an entry in the table.
func (t PointTable) Contains(name string) bool {
	_, ok := t.points[name]
	return ok
}

// Len returns the number of entries.
func (t PointTable) Len() int {
	return len(t.points)
}
