package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/homeseed/internal/core/layout"
)

// Binding returns the provider bound to instanceID.
func (h *WidgetHost) Binding(ctx context.Context, instanceID int) (layout.Component, error) {
	var c layout.Component
	err := h.db.QueryRowContext(ctx,
		"SELECT package, class FROM appwidgets WHERE appwidget_id = ?", instanceID,
	).Scan(&c.Package, &c.Class)
	if err == sql.ErrNoRows {
		return layout.Component{}, fmt.Errorf("widget %d not bound", instanceID)
	}
	if err != nil {
		return layout.Component{}, fmt.Errorf("failed to read widget %d: %w", instanceID, err)
	}
	return c, nil
}
