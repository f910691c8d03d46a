package common

import (
	"strconv"
	"strings"

	"github.com/incognito1025/fauna-go/internal/domain/entity"
)

// RenderAnimalList formats one "<id> <name>" line per animal in collection order,
// joined by newlines. An empty collection renders as "".
func RenderAnimalList(collection entity.Collection) string {
	lines := make([]string, 0, collection.Len())
	for _, a := range collection.Animals() {
		lines = append(lines, a.ID().String()+" "+a.Name())
	}
	return strings.Join(lines, "\n")
}

// RenderAnimalDetail formats "<id> <name> <points> points"; missing points render as 0.
func RenderAnimalDetail(animal *entity.Animal) string {
	return animal.ID().String() + " " + animal.Name() + " " + strconv.Itoa(animal.PointsOrZero()) + " points"
}
