package service

import (
	"context"
	"errors"
	"testing"

	"github.com/incognito1025/fauna-go/internal/domain/entity"
	domainerrors "github.com/incognito1025/fauna-go/internal/domain/errors/domain"
	"github.com/incognito1025/fauna-go/internal/domain/valueobject"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockIDGenerator is a mock implementation of outbound.IDGenerator.
type MockIDGenerator struct {
	mock.Mock
}

func (m *MockIDGenerator) NewID() string {
	args := m.Called()
	return args.String(0)
}

func newTestTable(t *testing.T) valueobject.PointTable {
	t.Helper()
	table, err := valueobject.NewPointTable(map[string]int{"fox": 10, "owl": 7})
	require.NoError(t, err)
	return table
}

func seededCollection() entity.Collection {
	ten := 10
	return entity.NewCollection(entity.RestoreAnimal("ab12", "fox", &ten))
}

func TestNewAnimalService_PanicsWithoutIDGenerator(t *testing.T) {
	assert.Panics(t, func() { NewAnimalService(valueobject.PointTable{}, nil) })
}

func TestAnimalService_Create(t *testing.T) {
	ids := &MockIDGenerator{}
	ids.On("NewID").Return("k9x2").Once()
	svc := NewAnimalService(newTestTable(t), ids)

	next, animal, err := svc.Create(context.Background(), entity.NewCollection(), "fox")
	require.NoError(t, err)

	assert.Equal(t, 1, next.Len())
	assert.Equal(t, "k9x2", animal.ID().String())
	assert.Equal(t, "fox", animal.Name())
	assert.Equal(t, 10, animal.PointsOrZero())

	found, ok := next.Find(animal.ID())
	require.True(t, ok)
	assert.Equal(t, "fox", found.Name())
	ids.AssertExpectations(t)
}

func TestAnimalService_CreateRegeneratesCollidingID(t *testing.T) {
	ids := &MockIDGenerator{}
	ids.On("NewID").Return("ab12").Twice()
	ids.On("NewID").Return("cd34").Once()
	svc := NewAnimalService(newTestTable(t), ids)

	next, animal, err := svc.Create(context.Background(), seededCollection(), "owl")
	require.NoError(t, err)

	assert.Equal(t, "cd34", animal.ID().String())
	assert.Equal(t, 2, next.Len())
	ids.AssertExpectations(t)
}

func TestAnimalService_CreateGivesUpAfterRepeatedCollisions(t *testing.T) {
	ids := &MockIDGenerator{}
	ids.On("NewID").Return("ab12")
	svc := NewAnimalService(newTestTable(t), ids)

	original := seededCollection()
	next, _, err := svc.Create(context.Background(), original, "owl")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateID))
	assert.Equal(t, original.Len(), next.Len())
}

func TestAnimalService_CreateUnknownName(t *testing.T) {
	t.Run("permissive stores without points", func(t *testing.T) {
		ids := &MockIDGenerator{}
		ids.On("NewID").Return("zz01")
		svc := NewAnimalService(newTestTable(t), ids)

		next, animal, err := svc.Create(context.Background(), entity.NewCollection(), "unicorn")
		require.NoError(t, err)
		_, hasPoints := animal.Points()
		assert.False(t, hasPoints)
		assert.Equal(t, 0, svc.Total(next))
	})

	t.Run("strict rejects", func(t *testing.T) {
		ids := &MockIDGenerator{}
		svc := NewAnimalService(newTestTable(t), ids, WithStrictNames(true))

		next, animal, err := svc.Create(context.Background(), entity.NewCollection(), "unicorn")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrUnknownAnimal))
		assert.Nil(t, animal)
		assert.True(t, next.IsEmpty())
		ids.AssertNotCalled(t, "NewID")
	})
}

func TestAnimalService_CreateInvalidName(t *testing.T) {
	svc := NewAnimalService(newTestTable(t), &MockIDGenerator{})

	_, _, err := svc.Create(context.Background(), entity.NewCollection(), "  ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestAnimalService_List(t *testing.T) {
	svc := NewAnimalService(newTestTable(t), &MockIDGenerator{})

	assert.Equal(t, "", svc.List(entity.NewCollection()))
	assert.Equal(t, "ab12 fox", svc.List(seededCollection()))
}

func TestAnimalService_Show(t *testing.T) {
	svc := NewAnimalService(newTestTable(t), &MockIDGenerator{})

	out, err := svc.Show(seededCollection(), "ab12")
	require.NoError(t, err)
	assert.Equal(t, "ab12 fox 10 points", out)

	_, err = svc.Show(seededCollection(), "zz99")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAnimalNotFound))
}

func TestAnimalService_Update(t *testing.T) {
	svc := NewAnimalService(newTestTable(t), &MockIDGenerator{})
	original := seededCollection()

	next, animal, err := svc.Update(context.Background(), original, "ab12", "owl")
	require.NoError(t, err)
	assert.Equal(t, "ab12", animal.ID().String())
	assert.Equal(t, "owl", animal.Name())
	assert.Equal(t, 7, animal.PointsOrZero())
	assert.Equal(t, original.Len(), next.Len())

	unchanged, _ := original.Find("ab12")
	assert.Equal(t, "fox", unchanged.Name())
}

func TestAnimalService_UpdateErrors(t *testing.T) {
	tests := []struct {
		name    string
		strict  bool
		id      string
		newName string
		target  error
	}{
		{name: "missing id", id: "zz99", newName: "owl", target: domainerrors.ErrAnimalNotFound},
		{name: "missing id wins over bad name", id: "zz99", newName: "", target: domainerrors.ErrAnimalNotFound},
		{name: "empty new name", id: "ab12", newName: "", target: domainerrors.ErrInvalidInput},
		{name: "strict unknown name", strict: true, id: "ab12", newName: "unicorn", target: domainerrors.ErrUnknownAnimal},
		{name: "empty id", id: "", newName: "owl", target: domainerrors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAnimalService(newTestTable(t), &MockIDGenerator{}, WithStrictNames(tt.strict))
			original := seededCollection()

			next, _, err := svc.Update(context.Background(), original, tt.id, tt.newName)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)

			animal, _ := next.Find("ab12")
			assert.Equal(t, "fox", animal.Name())
		})
	}
}

func TestAnimalService_Destroy(t *testing.T) {
	svc := NewAnimalService(newTestTable(t), &MockIDGenerator{})
	original := seededCollection()

	next, err := svc.Destroy(context.Background(), original, "ab12")
	require.NoError(t, err)
	assert.True(t, next.IsEmpty())

	same, err := svc.Destroy(context.Background(), original, "zz99")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAnimalNotFound))
	assert.Equal(t, original.Len(), same.Len())
}

func TestAnimalService_Total(t *testing.T) {
	svc := NewAnimalService(newTestTable(t), &MockIDGenerator{})
	five, three := 5, 3

	assert.Equal(t, 0, svc.Total(entity.NewCollection()))
	assert.Equal(t, 8, svc.Total(entity.NewCollection(
		entity.RestoreAnimal("a", "x", &five),
		entity.RestoreAnimal("b", "y", &three),
	)))
}
