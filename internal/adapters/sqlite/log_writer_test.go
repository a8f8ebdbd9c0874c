package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/homeseed/internal/adapters/sqlite"
	"github.com/example/homeseed/internal/ctxutil"
	"github.com/example/homeseed/internal/ports/secondary"
)

func TestLogWriterAdapter_LogEntriesCarryRunID(t *testing.T) {
	db := setupTestDB(t)
	w := sqlite.NewLogWriterAdapter(db)
	ctx := ctxutil.WithRunID(context.Background(), "run-1")

	require.NoError(t, w.LogInsert(ctx, 10, "favorite com.example/.Main"))
	require.NoError(t, w.LogRetract(ctx, 10, "folder 9 has 1 valid item(s), needs at least 2"))
	require.NoError(t, w.LogInsert(context.Background(), 11, "no run"))

	var runID, action string
	err := db.QueryRow(
		"SELECT run_id, action FROM import_log WHERE favorite_id = 10 ORDER BY id DESC LIMIT 1",
	).Scan(&runID, &action)
	require.NoError(t, err)
	assert.Equal(t, "run-1", runID)
	assert.Equal(t, "retract", action)

	var withoutRun int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM import_log WHERE run_id IS NULL").Scan(&withoutRun))
	assert.Equal(t, 1, withoutRun)
}

func TestLogWriterAdapter_RunsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	w := sqlite.NewLogWriterAdapter(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		started := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, w.LogRun(ctx, &secondary.ImportRunRecord{
			ID:         id,
			Source:     "/etc/default_workspace.xml",
			Container:  -100,
			Loaded:     i,
			Failed:     1,
			StartedAt:  started.Format(time.RFC3339),
			FinishedAt: started.Add(time.Second).Format(time.RFC3339),
		}))
	}
	require.NoError(t, w.LogRun(ctx, &secondary.ImportRunRecord{
		ID: "run-d", Source: "broken.xml", Container: -100, Aborted: "unexpected end of document",
		StartedAt: base.Add(time.Hour).Format(time.RFC3339),
	}))

	runs, err := w.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-d", runs[0].ID)
	assert.Equal(t, "unexpected end of document", runs[0].Aborted)
	assert.Empty(t, runs[0].FinishedAt)
	assert.Equal(t, "run-c", runs[1].ID)
	assert.Equal(t, 2, runs[1].Loaded)

	all, err := w.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
