package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/ports/secondary"
)

// WidgetHost implements secondary.WidgetHost with SQLite. Instance ids come
// from the appwidgets sequence; bindings live in the appwidgets table.
type WidgetHost struct {
	db *sql.DB
}

// NewWidgetHost creates a new SQLite widget host.
func NewWidgetHost(db *sql.DB) *WidgetHost {
	return &WidgetHost{db: db}
}

// AllocateInstance reserves a new widget instance id.
func (h *WidgetHost) AllocateInstance(ctx context.Context) (int, error) {
	var next int
	err := h.db.QueryRowContext(ctx,
		`UPDATE sequences
		SET value = MAX(value, (SELECT COALESCE(MAX(appwidget_id), 0) FROM appwidgets)) + 1
		WHERE name = 'appwidgets'
		RETURNING value`,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate widget instance: %w", err)
	}
	return next, nil
}

// Bind attaches an allocated instance id to a provider component.
func (h *WidgetHost) Bind(ctx context.Context, instanceID int, provider layout.Component) error {
	if provider.IsZero() {
		return fmt.Errorf("cannot bind widget %d: empty provider", instanceID)
	}
	_, err := h.db.ExecContext(ctx,
		"INSERT INTO appwidgets (appwidget_id, package, class) VALUES (?, ?, ?)",
		instanceID, provider.Package, provider.Class,
	)
	if err != nil {
		return fmt.Errorf("failed to bind widget %d to %s: %w", instanceID, provider.FlattenToShortString(), err)
	}
	return nil
}

// Ensure WidgetHost implements the interface
var _ secondary.WidgetHost = (*WidgetHost)(nil)
