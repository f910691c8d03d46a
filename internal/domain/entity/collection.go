package entity

import (
	"github.com/incognito1025/fauna-go/internal/domain/valueobject"
)

// Collection is the ordered set of animals that is loaded and saved as a whole.
// Operations never modify the receiver; they return a new Collection.
type Collection struct {
	animals []*Animal
}

// NewCollection creates a Collection holding the given animals in order.
func NewCollection(animals ...*Animal) Collection {
	copied := make([]*Animal, len(animals))
	copy(copied, animals)
	return Collection{animals: copied}
}

// Len returns the number of animals.
func (c Collection) Len() int {
	return len(c.animals)
}

// IsEmpty reports whether the collection holds no animals.
func (c Collection) IsEmpty() bool {
	return len(c.animals) == 0
}

// Animals returns the animals in collection order.
func (c Collection) Animals() []*Animal {
	out := make([]*Animal, len(c.animals))
	copy(out, c.animals)
	return out
}

// Append returns a new collection with animal added at the end.
func (c Collection) Append(animal *Animal) Collection {
	out := make([]*Animal, 0, len(c.animals)+1)
	out = append(out, c.animals...)
	out = append(out, animal)
	return Collection{animals: out}
}

// Find returns the first animal with the given ID.
func (c Collection) Find(id valueobject.AnimalID) (*Animal, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return nil, false
	}
	return c.animals[idx], true
}

// Contains reports whether an animal with the given ID exists.
func (c Collection) Contains(id valueobject.AnimalID) bool {
	return c.indexOf(id) >= 0
}

// Remove returns a new collection without the first animal matching id.
// When nothing matches the collection is returned unchanged and false is reported.
func (c Collection) Remove(id valueobject.AnimalID) (Collection, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return c, false
	}
	out := make([]*Animal, 0, len(c.animals)-1)
	out = append(out, c.animals[:idx]...)
	out = append(out, c.animals[idx+1:]...)
	return Collection{animals: out}, true
}

// Replace returns a new collection where the first animal matching id is swapped for
// the given animal. The replacement keeps its position.
func (c Collection) Replace(id valueobject.AnimalID, animal *Animal) (Collection, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return c, false
	}
	out := make([]*Animal, len(c.animals))
	copy(out, c.animals)
	out[idx] = animal
	return Collection{animals: out}, true
}

// Update renames the first animal matching id and recomputes its points.
func (c Collection) Update(id valueobject.AnimalID, name string, table valueobject.PointTable) (Collection, bool) {
	current, ok := c.Find(id)
	if !ok {
		return c, false
	}
	return c.Replace(id, current.Rename(name, table))
}

// TotalPoints sums the points of every animal; missing values count as zero.
func (c Collection) TotalPoints() int {
	total := 0
	for _, a := range c.animals {
		total += a.PointsOrZero()
	}
	return total
}

func (c Collection) indexOf(id valueobject.AnimalID) int {
	for i, a := range c.animals {
		if a.ID() == id {
			return i
		}
	}
	return -1
}
