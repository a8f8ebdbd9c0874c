package primary

import (
	"context"

	"github.com/example/homeseed/internal/core/layout"
)

// FavoriteService defines the primary port for inspecting the favorites store.
type FavoriteService interface {
	// ListFavorites retrieves favorites matching the filters.
	ListFavorites(ctx context.Context, filters FavoriteFilters) ([]*Favorite, error)

	// ClearFavorites removes every favorite and widget binding.
	ClearFavorites(ctx context.Context) (int, error)
}

// FavoriteFilters contains filter options for listing favorites.
type FavoriteFilters struct {
	Container *layout.Container
	Kind      *layout.ItemKind
	Limit     int
}

// Favorite represents a persisted placement at the port boundary.
type Favorite struct {
	ID          int64
	Container   string
	Kind        string
	Screen      string
	Cell        string
	Span        string
	Title       string
	Intent      string
	AppWidgetID int
	CreatedAt   string
}
