package primary

import (
	"context"

	"github.com/example/homeseed/internal/core/layout"
)

// ImportService defines the primary port for seeding the favorites store from
// a layout document.
type ImportService interface {
	// Import runs one ingestion pass. It returns an error only when the
	// document cannot be located or opened; item failures and aborted passes
	// are reported in the response.
	Import(ctx context.Context, req ImportRequest) (*ImportResponse, error)

	// ListRuns retrieves recent import runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*ImportRun, error)
}

// ImportRequest contains parameters for an import pass.
type ImportRequest struct {
	Path      string // empty to use the located default document
	Container layout.Container
}

// ImportResponse contains the result of an import pass.
type ImportResponse struct {
	RunID    string
	Path     string
	Items    int // root-level items dispatched
	Loaded   int
	Failures []ItemFailure
	Aborted  string // empty when the whole document was consumed
}

// ItemFailure describes one item that contributed nothing to the count.
type ItemFailure struct {
	Tag    string
	Line   int
	Reason string
}

// ImportRun represents an import run at the port boundary.
type ImportRun struct {
	ID         string
	Source     string
	Container  string
	Loaded     int
	Failed     int
	Aborted    string
	StartedAt  string
	FinishedAt string
}
