package secondary

import "context"

// LogWriter defines the interface for writing import audit entries.
// Implementations take the import run id from context.
type LogWriter interface {
	// LogInsert records that a favorite was persisted.
	LogInsert(ctx context.Context, favoriteID int64, detail string) error

	// LogRetract records that a favorite was retracted and why.
	LogRetract(ctx context.Context, favoriteID int64, reason string) error

	// LogRun records the outcome of a whole import pass.
	LogRun(ctx context.Context, run *ImportRunRecord) error
}

// ImportRunRecord represents one import pass as stored in the audit log.
type ImportRunRecord struct {
	ID         string
	Source     string
	Container  int64
	Loaded     int
	Failed     int
	Aborted    string // empty when the pass ran to the end of the document
	StartedAt  string
	FinishedAt string
}

// ImportRunRepository defines read access to the import audit log.
type ImportRunRepository interface {
	// ListRuns retrieves the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*ImportRunRecord, error)
}
