package entity

import (
	"github.com/incognito1025/fauna-go/internal/domain/valueobject"
)

// Animal represents a single record in the collection.
type Animal struct {
	id        valueobject.AnimalID
	name      string
	points    int
	hasPoints bool
}

// NewAnimal creates a new Animal entity, assigning points from the table.
// An unknown name yields an animal without points.
func NewAnimal(id valueobject.AnimalID, name string, table valueobject.PointTable) *Animal {
	points, ok := table.Lookup(name)
	return &Animal{
		id:        id,
		name:      name,
		points:    points,
		hasPoints: ok,
	}
}

// RestoreAnimal creates an Animal entity from stored data
func RestoreAnimal(id valueobject.AnimalID, name string, points *int) *Animal {
	a := &Animal{id: id, name: name}
	if points != nil {
		a.points = *points
		a.hasPoints = true
	}
	return a
}

// ID returns the animal ID
func (a *Animal) ID() valueobject.AnimalID {
	return a.id
}

// Name returns the animal name
func (a *Animal) Name() string {
	return a.name
}

// Points returns the point value and whether one was assigned.
func (a *Animal) Points() (int, bool) {
	return a.points, a.hasPoints
}

// PointsOrZero returns the point value, treating a missing value as zero.
func (a *Animal) PointsOrZero() int {
	if !a.hasPoints {
		return 0
	}
	return a.points
}

// PointsPtr returns the point value as a pointer, nil when absent.
func (a *Animal) PointsPtr() *int {
	if !a.hasPoints {
		return nil
	}
	p := a.points
	return &p
}

// Rename returns a copy of the animal with a new name and points recomputed from the table.
// The ID is carried over unchanged.
func (a *Animal) Rename(name string, table valueobject.PointTable) *Animal {
	return NewAnimal(a.id, name, table)
}
