package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/homeseed/internal/adapters/sqlite"
	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/ports/secondary"
)

func TestFavoriteRepository_InsertAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewFavoriteRepository(db)
	ctx := context.Background()

	shortcut := &layout.PlacementRecord{
		ID:          1,
		Container:   layout.ContainerDesktop,
		Kind:        layout.KindApplication,
		Position:    layout.Position{Screen: intp(0), CellX: intp(1), CellY: intp(3)},
		Span:        layout.Span{X: 1, Y: 1},
		Title:       "Camera",
		Intent:      layout.NewLauncherIntent(layout.NewComponent("com.example.camera", ".Main")).URI(),
		AppWidgetID: layout.NoAppWidgetID,
	}
	widget := &layout.PlacementRecord{
		ID:          2,
		Container:   layout.ContainerHotseat,
		Kind:        layout.KindAppWidget,
		Span:        layout.Span{X: 4, Y: 1},
		AppWidgetID: 7,
		Provider:    layout.NewComponent("com.example.search", ".SearchWidget"),
	}
	require.NoError(t, repo.Insert(ctx, shortcut))
	require.NoError(t, repo.Insert(ctx, widget))

	records, err := repo.List(ctx, secondary.FavoriteFilters{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	got := records[0]
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Camera", got.Title)
	assert.Equal(t, shortcut.Intent, got.Intent)
	assert.Equal(t, layout.KindApplication, got.Kind)
	require.NotNil(t, got.Position.CellY)
	assert.Equal(t, 3, *got.Position.CellY)
	assert.Equal(t, layout.NoAppWidgetID, got.AppWidgetID)
	assert.NotEmpty(t, got.CreatedAt)

	w := records[1]
	assert.Equal(t, layout.ContainerHotseat, w.Container)
	assert.Nil(t, w.Position.Screen)
	assert.Equal(t, 7, w.AppWidgetID)
	assert.Equal(t, widget.Provider, w.Provider)
	assert.Equal(t, layout.Span{X: 4, Y: 1}, w.Span)
}

func TestFavoriteRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewFavoriteRepository(db)
	ctx := context.Background()

	for i, c := range []layout.Container{layout.ContainerDesktop, layout.ContainerHotseat, layout.ContainerDesktop} {
		require.NoError(t, repo.Insert(ctx, &layout.PlacementRecord{
			ID: int64(i + 1), Container: c, Kind: layout.KindApplication,
			Span: layout.Span{X: 1, Y: 1}, AppWidgetID: layout.NoAppWidgetID,
		}))
	}
	require.NoError(t, repo.Insert(ctx, &layout.PlacementRecord{
		ID: 4, Container: layout.ContainerDesktop, Kind: layout.KindFolder,
		Span: layout.Span{X: 1, Y: 1}, AppWidgetID: layout.NoAppWidgetID,
	}))

	desktop := layout.ContainerDesktop
	records, err := repo.List(ctx, secondary.FavoriteFilters{Container: &desktop})
	require.NoError(t, err)
	assert.Len(t, records, 3)

	folderKind := layout.KindFolder
	records, err = repo.List(ctx, secondary.FavoriteFilters{Kind: &folderKind})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(4), records[0].ID)

	records, err = repo.List(ctx, secondary.FavoriteFilters{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestFavoriteRepository_Retract(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewFavoriteRepository(db)
	host := sqlite.NewWidgetHost(db)
	ctx := context.Background()

	seedFavorite(t, db, 1, "Keep")

	instance, err := host.AllocateInstance(ctx)
	require.NoError(t, err)
	provider := layout.NewComponent("com.example.weather", ".Widget")
	require.NoError(t, repo.Insert(ctx, &layout.PlacementRecord{
		ID: 2, Container: layout.ContainerDesktop, Kind: layout.KindAppWidget,
		Span: layout.Span{X: 2, Y: 2}, AppWidgetID: instance, Provider: provider,
	}))
	require.NoError(t, host.Bind(ctx, instance, provider))

	require.NoError(t, repo.Retract(ctx, 2))
	assert.Equal(t, 1, countRows(t, db, "favorites"))
	assert.Equal(t, 0, countRows(t, db, "appwidgets"))

	err = repo.Retract(ctx, 2)
	assert.ErrorContains(t, err, "not found")
}

func TestFavoriteRepository_NextIDNeverReuses(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewFavoriteRepository(db)
	ctx := context.Background()

	first, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	require.NoError(t, repo.Insert(ctx, &layout.PlacementRecord{
		ID: first, Container: layout.ContainerDesktop, Kind: layout.KindApplication,
		Span: layout.Span{X: 1, Y: 1}, AppWidgetID: layout.NoAppWidgetID,
	}))
	require.NoError(t, repo.Retract(ctx, first))

	second, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)
}

func TestFavoriteRepository_NextIDSkipsExistingRows(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewFavoriteRepository(db)

	// rows written by another process without touching the sequence
	seedFavorite(t, db, 41, "")

	next, err := repo.NextID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), next)
}

func TestFavoriteRepository_DeleteAll(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewFavoriteRepository(db)
	host := sqlite.NewWidgetHost(db)
	ctx := context.Background()

	seedFavorite(t, db, 1, "")
	seedFavorite(t, db, 2, "")
	require.NoError(t, host.Bind(ctx, 9, layout.NewComponent("com.example", ".W")))

	issued, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), issued)

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, countRows(t, db, "favorites"))
	assert.Equal(t, 0, countRows(t, db, "appwidgets"))

	// ids keep climbing after a clear
	next, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), next)
}
