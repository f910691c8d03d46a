package outbound

import (
	"context"

	"github.com/incognito1025/fauna-go/internal/domain/entity"
	"github.com/incognito1025/fauna-go/internal/domain/valueobject"
)

// AnimalStore defines the outbound port for whole-collection persistence.
// Load and Save always operate on the complete collection.
type AnimalStore interface {
	Load(ctx context.Context) (entity.Collection, error)
	Save(ctx context.Context, collection entity.Collection) error
}

// StoreInitializer is implemented by stores that can create an empty backing location.
// It reports whether anything was created.
type StoreInitializer interface {
	Init(ctx context.Context) (bool, error)
}

// PointTableSource defines the outbound port for loading the reference point table.
type PointTableSource interface {
	Load(ctx context.Context) (valueobject.PointTable, error)
}

// IDGenerator produces candidate identifiers for new animals.
type IDGenerator interface {
	NewID() string
}
