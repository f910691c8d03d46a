package service

import (
	"context"
	"fmt"

	"github.com/incognito1025/fauna-go/internal/application/common"
	"github.com/incognito1025/fauna-go/internal/application/common/slogger"
	"github.com/incognito1025/fauna-go/internal/domain/entity"
	domainerrors "github.com/incognito1025/fauna-go/internal/domain/errors/domain"
	"github.com/incognito1025/fauna-go/internal/domain/valueobject"
	"github.com/incognito1025/fauna-go/internal/port/outbound"
)

// maxIDAttempts bounds regeneration when a fresh ID collides with an existing one.
const maxIDAttempts = 32

// AnimalService holds the record operations over an in-memory collection.
// Every operation takes a collection and returns the resulting one; nothing is persisted here.
type AnimalService struct {
	table  valueobject.PointTable
	ids    outbound.IDGenerator
	strict bool
}

// AnimalServiceOption configures an AnimalService.
type AnimalServiceOption func(*AnimalService)

// WithStrictNames makes Create and Update reject names missing from the point table.
func WithStrictNames(strict bool) AnimalServiceOption {
	return func(s *AnimalService) { s.strict = strict }
}

// NewAnimalService creates a new instance of AnimalService.
// The point table is shared read-only for the life of the service.
func NewAnimalService(table valueobject.PointTable, ids outbound.IDGenerator, opts ...AnimalServiceOption) *AnimalService {
	if ids == nil {
		panic("ids cannot be nil")
	}
	s := &AnimalService{table: table, ids: ids}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create appends a new animal with a fresh ID and points looked up from the table.
func (s *AnimalService) Create(ctx context.Context, collection entity.Collection, name string) (entity.Collection, *entity.Animal, error) {
	if err := common.ValidateAnimalName(name); err != nil {
		return collection, nil, common.WrapServiceError(common.OpCreateAnimal, err)
	}
	if err := s.checkName(ctx, name); err != nil {
		return collection, nil, common.WrapServiceError(common.OpCreateAnimal, err)
	}

	id, err := s.newID(collection)
	if err != nil {
		return collection, nil, common.WrapServiceError(common.OpGenerateAnimalID, err)
	}

	animal := entity.NewAnimal(id, name, s.table)
	slogger.Info(ctx, "Animal created", slogger.Fields2("id", id.String(), "name", name))
	return collection.Append(animal), animal, nil
}

// List renders the whole collection, one "<id> <name>" line per animal.
func (s *AnimalService) List(collection entity.Collection) string {
	return common.RenderAnimalList(collection)
}

// Find returns the animal with the given ID or ErrAnimalNotFound.
func (s *AnimalService) Find(collection entity.Collection, rawID string) (*entity.Animal, error) {
	id, err := common.ParseAnimalID(rawID)
	if err != nil {
		return nil, err
	}
	animal, ok := collection.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domainerrors.ErrAnimalNotFound, rawID)
	}
	return animal, nil
}

// Show renders a single animal as "<id> <name> <points> points".
func (s *AnimalService) Show(collection entity.Collection, rawID string) (string, error) {
	animal, err := s.Find(collection, rawID)
	if err != nil {
		return "", common.WrapServiceError(common.OpShowAnimal, err)
	}
	return common.RenderAnimalDetail(animal), nil
}

// Update renames an animal and recomputes its points. The ID and the collection length never change.
func (s *AnimalService) Update(ctx context.Context, collection entity.Collection, rawID, newName string) (entity.Collection, *entity.Animal, error) {
	id, err := common.ParseAnimalID(rawID)
	if err != nil {
		return collection, nil, common.WrapServiceError(common.OpUpdateAnimal, err)
	}
	if !collection.Contains(id) {
		return collection, nil, common.WrapServiceError(common.OpUpdateAnimal,
			fmt.Errorf("%w: %s", domainerrors.ErrAnimalNotFound, rawID))
	}
	if err := common.ValidateAnimalName(newName); err != nil {
		return collection, nil, common.WrapServiceError(common.OpUpdateAnimal, err)
	}
	if err := s.checkName(ctx, newName); err != nil {
		return collection, nil, common.WrapServiceError(common.OpUpdateAnimal, err)
	}

	updated, _ := collection.Update(id, newName, s.table)
	animal, _ := updated.Find(id)
	slogger.Info(ctx, "Animal updated", slogger.Fields2("id", rawID, "name", newName))
	return updated, animal, nil
}

// Destroy removes an animal from the collection.
func (s *AnimalService) Destroy(ctx context.Context, collection entity.Collection, rawID string) (entity.Collection, error) {
	id, err := common.ParseAnimalID(rawID)
	if err != nil {
		return collection, common.WrapServiceError(common.OpDestroyAnimal, err)
	}
	remaining, removed := collection.Remove(id)
	if !removed {
		return collection, common.WrapServiceError(common.OpDestroyAnimal,
			fmt.Errorf("%w: %s", domainerrors.ErrAnimalNotFound, rawID))
	}
	slogger.Info(ctx, "Animal removed", slogger.Field("id", rawID))
	return remaining, nil
}

// Total sums the points of every animal; animals without points contribute zero.
func (s *AnimalService) Total(collection entity.Collection) int {
	return collection.TotalPoints()
}

func (s *AnimalService) checkName(ctx context.Context, name string) error {
	if s.table.Contains(name) {
		return nil
	}
	if s.strict {
		return fmt.Errorf("%w: %q", domainerrors.ErrUnknownAnimal, name)
	}
	slogger.Warn(ctx, "Animal name not in point table; storing without points", slogger.Field("name", name))
	return nil
}

func (s *AnimalService) newID(collection entity.Collection) (valueobject.AnimalID, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := valueobject.NewAnimalID(s.ids.NewID())
		if err != nil {
			return "", err
		}
		if !collection.Contains(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", domainerrors.ErrDuplicateID, maxIDAttempts)
}
