// Package animaljson converts collections to and from their stored JSON document form:
// an array of {"name", "id", "points"} objects, points omitted when unknown.
package animaljson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/incognito1025/fauna-go/internal/domain/entity"
	domainerrors "github.com/incognito1025/fauna-go/internal/domain/errors/domain"
	"github.com/incognito1025/fauna-go/internal/domain/valueobject"
)

// Record is the stored form of a single animal. Points are kept as a json.Number so
// integral values written as floats (10.0, 1e1) are accepted on read.
type Record struct {
	Name   string       `json:"name"`
	ID     string       `json:"id"`
	Points *json.Number `json:"points,omitempty"`
}

// Encode serializes the whole collection.
func Encode(collection entity.Collection) ([]byte, error) {
	records := make([]Record, 0, collection.Len())
	for _, a := range collection.Animals() {
		records = append(records, Record{
			Name:   a.Name(),
			ID:     a.ID().String(),
			Points: encodePoints(a.PointsPtr()),
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	return data, nil
}

// Decode parses a stored document. Empty or whitespace-only content, and a JSON null,
// decode to an empty collection.
func Decode(data []byte) (entity.Collection, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return entity.NewCollection(), nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return entity.Collection{}, fmt.Errorf("decode collection: %w", err)
	}

	animals := make([]*entity.Animal, 0, len(records))
	seen := make(map[valueobject.AnimalID]struct{}, len(records))
	for i, r := range records {
		id, err := valueobject.NewAnimalID(r.ID)
		if err != nil {
			return entity.Collection{}, fmt.Errorf("decode collection: record %d: %w", i, err)
		}
		if _, dup := seen[id]; dup {
			return entity.Collection{}, fmt.Errorf("decode collection: record %d: %w: %s", i, domainerrors.ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
		points, err := decodePoints(r.Points)
		if err != nil {
			return entity.Collection{}, fmt.Errorf("decode collection: record %d: %w", i, err)
		}
		animals = append(animals, entity.RestoreAnimal(id, r.Name, points))
	}
	return entity.NewCollection(animals...), nil
}

func encodePoints(points *int) *json.Number {
	if points == nil {
		return nil
	}
	n := json.Number(strconv.Itoa(*points))
	return &n
}

// decodePoints accepts any JSON number with an integral value.
func decodePoints(n *json.Number) (*int, error) {
	if n == nil {
		return nil, nil
	}
	if v, err := n.Int64(); err == nil {
		return intPoints(float64(v), n)
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("points %q: %w", n.String(), err)
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("points %q: not a whole number", n.String())
	}
	return intPoints(f, n)
}

func intPoints(f float64, n *json.Number) (*int, error) {
	if f > math.MaxInt32 || f < math.MinInt32 {
		return nil, fmt.Errorf("points %q: out of range", n.String())
	}
	v := int(f)
	return &v, nil
}
