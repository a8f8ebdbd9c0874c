// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/ports/secondary"
)

// FavoriteRepository implements secondary.FavoriteRepository with SQLite.
type FavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new SQLite favorite repository.
func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Insert persists a new placement record.
func (r *FavoriteRepository) Insert(ctx context.Context, record *layout.PlacementRecord) error {
	var title, intent, provider sql.NullString
	if record.Title != "" {
		title = sql.NullString{String: record.Title, Valid: true}
	}
	if record.Intent != "" {
		intent = sql.NullString{String: record.Intent, Valid: true}
	}
	if !record.Provider.IsZero() {
		provider = sql.NullString{String: record.Provider.FlattenToShortString(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (id, title, intent, container, screen, cell_x, cell_y,
			span_x, span_y, item_type, appwidget_id, appwidget_provider)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, title, intent, int64(record.Container),
		nullInt(record.Position.Screen), nullInt(record.Position.CellX), nullInt(record.Position.CellY),
		record.Span.X, record.Span.Y, int(record.Kind), record.AppWidgetID, provider,
	)
	if err != nil {
		return fmt.Errorf("failed to insert favorite %d: %w", record.ID, err)
	}

	return nil
}

// Retract removes a previously inserted favorite. Retracting a widget also
// releases its instance binding.
func (r *FavoriteRepository) Retract(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var widgetID int
	err = tx.QueryRowContext(ctx, "SELECT appwidget_id FROM favorites WHERE id = ?", id).Scan(&widgetID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("favorite %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to read favorite %d: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM favorites WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to retract favorite %d: %w", id, err)
	}
	if widgetID != layout.NoAppWidgetID {
		if _, err := tx.ExecContext(ctx, "DELETE FROM appwidgets WHERE appwidget_id = ?", widgetID); err != nil {
			return fmt.Errorf("failed to release widget %d: %w", widgetID, err)
		}
	}

	return tx.Commit()
}

// List retrieves favorites matching the given filters, ordered by ID.
func (r *FavoriteRepository) List(ctx context.Context, filters secondary.FavoriteFilters) ([]*layout.PlacementRecord, error) {
	query := `SELECT id, title, intent, container, screen, cell_x, cell_y, span_x, span_y,
		item_type, appwidget_id, appwidget_provider, created_at FROM favorites`

	var (
		where []string
		args  []any
	)
	if filters.Container != nil {
		where = append(where, "container = ?")
		args = append(args, int64(*filters.Container))
	}
	if filters.Kind != nil {
		where = append(where, "item_type = ?")
		args = append(args, int(*filters.Kind))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id ASC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var records []*layout.PlacementRecord
	for rows.Next() {
		var (
			title, intent, provider sql.NullString
			screen, cellX, cellY    sql.NullInt64
			container               int64
			kind                    int
			createdAt               time.Time
		)
		record := &layout.PlacementRecord{}
		if err := rows.Scan(&record.ID, &title, &intent, &container, &screen, &cellX, &cellY,
			&record.Span.X, &record.Span.Y, &kind, &record.AppWidgetID, &provider, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}

		record.Container = layout.Container(container)
		record.Kind = layout.ItemKind(kind)
		record.Title = title.String
		record.Intent = intent.String
		record.Position = layout.Position{
			Screen: intPtr(screen),
			CellX:  intPtr(cellX),
			CellY:  intPtr(cellY),
		}
		if provider.Valid {
			if c, err := layout.ParseComponent(provider.String); err == nil {
				record.Provider = c
			}
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)

		records = append(records, record)
	}

	return records, rows.Err()
}

// DeleteAll removes every favorite and widget binding.
func (r *FavoriteRepository) DeleteAll(ctx context.Context) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, "DELETE FROM favorites")
	if err != nil {
		return 0, fmt.Errorf("failed to clear favorites: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM appwidgets"); err != nil {
		return 0, fmt.Errorf("failed to clear widget bindings: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared favorites: %w", err)
	}

	return int(affected), tx.Commit()
}

// NextID hands out the next favorite identity. The high-water mark in the
// sequences table never moves backwards, so retracted ids are not reused.
func (r *FavoriteRepository) NextID(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.QueryRowContext(ctx,
		`UPDATE sequences
		SET value = MAX(value, (SELECT COALESCE(MAX(id), 0) FROM favorites)) + 1
		WHERE name = 'favorites'
		RETURNING value`,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate favorite id: %w", err)
	}
	return next, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// Ensure FavoriteRepository implements the interfaces
var (
	_ secondary.FavoriteRepository = (*FavoriteRepository)(nil)
	_ secondary.IDAllocator        = (*FavoriteRepository)(nil)
)
