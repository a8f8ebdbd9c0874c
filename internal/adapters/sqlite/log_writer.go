package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/homeseed/internal/ctxutil"
	"github.com/example/homeseed/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter on the import_log and
// import_runs tables.
type LogWriterAdapter struct {
	db *sql.DB
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(db *sql.DB) *LogWriterAdapter {
	return &LogWriterAdapter{db: db}
}

// LogInsert records that a favorite was persisted.
func (w *LogWriterAdapter) LogInsert(ctx context.Context, favoriteID int64, detail string) error {
	return w.writeLog(ctx, favoriteID, "insert", detail)
}

// LogRetract records that a favorite was retracted.
func (w *LogWriterAdapter) LogRetract(ctx context.Context, favoriteID int64, reason string) error {
	return w.writeLog(ctx, favoriteID, "retract", reason)
}

// LogRun records the outcome of an import pass.
func (w *LogWriterAdapter) LogRun(ctx context.Context, run *secondary.ImportRunRecord) error {
	var aborted sql.NullString
	if run.Aborted != "" {
		aborted = sql.NullString{String: run.Aborted, Valid: true}
	}

	_, err := w.db.ExecContext(ctx,
		`INSERT INTO import_runs (id, source, container, loaded, failed, aborted, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Container, run.Loaded, run.Failed, aborted,
		parseTimestamp(run.StartedAt), parseTimestamp(run.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to record import run: %w", err)
	}
	return nil
}

// ListRuns retrieves the most recent runs, newest first.
func (w *LogWriterAdapter) ListRuns(ctx context.Context, limit int) ([]*secondary.ImportRunRecord, error) {
	query := `SELECT id, source, container, loaded, failed, aborted, started_at, finished_at
		FROM import_runs ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := w.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}
	defer rows.Close()

	var runs []*secondary.ImportRunRecord
	for rows.Next() {
		var (
			aborted             sql.NullString
			startedAt, finished sql.NullTime
		)
		run := &secondary.ImportRunRecord{}
		if err := rows.Scan(&run.ID, &run.Source, &run.Container, &run.Loaded, &run.Failed,
			&aborted, &startedAt, &finished); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		run.Aborted = aborted.String
		if startedAt.Valid {
			run.StartedAt = startedAt.Time.Format(time.RFC3339)
		}
		if finished.Valid {
			run.FinishedAt = finished.Time.Format(time.RFC3339)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// writeLog writes a log entry tagged with the run id from context.
func (w *LogWriterAdapter) writeLog(ctx context.Context, favoriteID int64, action, detail string) error {
	var runID sql.NullString
	if id := ctxutil.RunIDFromContext(ctx); id != "" {
		runID = sql.NullString{String: id, Valid: true}
	}

	_, err := w.db.ExecContext(ctx,
		"INSERT INTO import_log (run_id, favorite_id, action, detail) VALUES (?, ?, ?, ?)",
		runID, favoriteID, action, detail,
	)
	if err != nil {
		return fmt.Errorf("failed to write import log: %w", err)
	}
	return nil
}

func parseTimestamp(s string) sql.NullTime {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

// Ensure LogWriterAdapter implements the interfaces
var (
	_ secondary.LogWriter           = (*LogWriterAdapter)(nil)
	_ secondary.ImportRunRepository = (*LogWriterAdapter)(nil)
)
