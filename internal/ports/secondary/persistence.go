// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/homeseed/internal/core/layout"
)

// FavoriteStore defines the write side of favorites persistence used by the
// ingestion pass. The pass never reads back from the store.
type FavoriteStore interface {
	// Insert persists a new placement record. The record's ID is already set.
	Insert(ctx context.Context, record *layout.PlacementRecord) error

	// Retract removes a previously inserted record.
	Retract(ctx context.Context, id int64) error
}

// FavoriteRepository extends FavoriteStore with the queries used by the CLI.
type FavoriteRepository interface {
	FavoriteStore

	// List retrieves favorites matching the given filters, ordered by ID.
	List(ctx context.Context, filters FavoriteFilters) ([]*layout.PlacementRecord, error)

	// DeleteAll removes every favorite and widget binding, returning the
	// number of favorites removed.
	DeleteAll(ctx context.Context) (int, error)
}

// FavoriteFilters contains filter options for querying favorites.
type FavoriteFilters struct {
	Container *layout.Container
	Kind      *layout.ItemKind
	Limit     int
}

// IDAllocator hands out placement identities. Identities are unique and are
// never handed out twice, even after a record is retracted.
type IDAllocator interface {
	NextID(ctx context.Context) (int64, error)
}

// WidgetHost allocates widget instance ids and binds them to providers.
type WidgetHost interface {
	// AllocateInstance reserves a new widget instance id.
	AllocateInstance(ctx context.Context) (int, error)

	// Bind attaches an allocated instance id to a provider component.
	Bind(ctx context.Context, instanceID int, provider layout.Component) error
}
