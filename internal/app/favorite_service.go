package app

import (
	"context"
	"fmt"

	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/ports/primary"
	"github.com/example/homeseed/internal/ports/secondary"
)

// FavoriteServiceImpl implements the FavoriteService interface.
type FavoriteServiceImpl struct {
	favoriteRepo secondary.FavoriteRepository
}

// NewFavoriteService creates a new FavoriteService with injected dependencies.
func NewFavoriteService(favoriteRepo secondary.FavoriteRepository) *FavoriteServiceImpl {
	return &FavoriteServiceImpl{
		favoriteRepo: favoriteRepo,
	}
}

// ListFavorites retrieves favorites matching the filters.
func (s *FavoriteServiceImpl) ListFavorites(ctx context.Context, filters primary.FavoriteFilters) ([]*primary.Favorite, error) {
	records, err := s.favoriteRepo.List(ctx, secondary.FavoriteFilters{
		Container: filters.Container,
		Kind:      filters.Kind,
		Limit:     filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	favorites := make([]*primary.Favorite, len(records))
	for i, r := range records {
		favorites[i] = s.recordToFavorite(r)
	}
	return favorites, nil
}

// ClearFavorites removes every favorite and widget binding.
func (s *FavoriteServiceImpl) ClearFavorites(ctx context.Context) (int, error) {
	n, err := s.favoriteRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear favorites: %w", err)
	}
	return n, nil
}

// Helper methods

func (s *FavoriteServiceImpl) recordToFavorite(r *layout.PlacementRecord) *primary.Favorite {
	return &primary.Favorite{
		ID:          r.ID,
		Container:   r.Container.String(),
		Kind:        r.Kind.String(),
		Screen:      optionalInt(r.Position.Screen),
		Cell:        optionalInt(r.Position.CellX) + "," + optionalInt(r.Position.CellY),
		Span:        fmt.Sprintf("%dx%d", r.Span.X, r.Span.Y),
		Title:       r.Title,
		Intent:      r.Intent,
		AppWidgetID: r.AppWidgetID,
		CreatedAt:   r.CreatedAt,
	}
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

// Ensure FavoriteServiceImpl implements the interface
var _ primary.FavoriteService = (*FavoriteServiceImpl)(nil)
