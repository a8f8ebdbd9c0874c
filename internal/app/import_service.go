package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/ctxutil"
	"github.com/example/homeseed/internal/logging"
	"github.com/example/homeseed/internal/ports/primary"
	"github.com/example/homeseed/internal/ports/secondary"
)

// ImportServiceImpl implements the ImportService interface.
type ImportServiceImpl struct {
	walker    *Walker
	locator   secondary.DocumentLocator
	newStream secondary.TokenStreamFactory
	audit     secondary.LogWriter
	runs      secondary.ImportRunRepository
	logger    zerolog.Logger
	now       func() time.Time
}

// NewImportService creates a new ImportService with injected dependencies.
// audit and runs may be nil.
func NewImportService(
	walker *Walker,
	locator secondary.DocumentLocator,
	newStream secondary.TokenStreamFactory,
	audit secondary.LogWriter,
	runs secondary.ImportRunRepository,
	logger zerolog.Logger,
) *ImportServiceImpl {
	return &ImportServiceImpl{
		walker:    walker,
		locator:   locator,
		newStream: newStream,
		audit:     audit,
		runs:      runs,
		logger:    logger,
		now:       time.Now,
	}
}

// Import runs one ingestion pass over the requested layout document.
func (s *ImportServiceImpl) Import(ctx context.Context, req primary.ImportRequest) (*primary.ImportResponse, error) {
	path := req.Path
	if path == "" {
		located, err := s.locator.Locate(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to locate layout document: %w", err)
		}
		path = located
	}

	doc, err := s.locator.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout document: %w", err)
	}
	defer doc.Close()

	container := req.Container
	if container == 0 {
		container = layout.ContainerDesktop
	}

	runID := uuid.NewString()
	ctx = ctxutil.WithRunID(ctx, runID)
	started := s.now()

	done := logging.LogOperationStart(s.logger.With().Str("run_id", runID).Str("path", path).Logger(), "import")
	report := s.walker.Ingest(ctx, s.newStream(doc), container)
	done()

	resp := &primary.ImportResponse{
		RunID:    runID,
		Path:     path,
		Items:    len(report.Outcomes),
		Loaded:   report.Loaded,
		Failures: collectFailures(report.Outcomes),
	}
	if report.Err != nil {
		resp.Aborted = report.Err.Error()
	}

	if s.audit != nil {
		run := &secondary.ImportRunRecord{
			ID:         runID,
			Source:     path,
			Container:  int64(container),
			Loaded:     resp.Loaded,
			Failed:     len(resp.Failures),
			Aborted:    resp.Aborted,
			StartedAt:  started.UTC().Format(time.RFC3339),
			FinishedAt: s.now().UTC().Format(time.RFC3339),
		}
		if err := s.audit.LogRun(context.WithoutCancel(ctx), run); err != nil {
			s.logger.Warn().Err(err).Str("run_id", runID).Msg("Failed to record import run")
		}
	}

	return resp, nil
}

// ListRuns retrieves recent import runs, newest first.
func (s *ImportServiceImpl) ListRuns(ctx context.Context, limit int) ([]*primary.ImportRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	records, err := s.runs.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}

	runs := make([]*primary.ImportRun, len(records))
	for i, r := range records {
		runs[i] = &primary.ImportRun{
			ID:         r.ID,
			Source:     r.Source,
			Container:  layout.Container(r.Container).String(),
			Loaded:     r.Loaded,
			Failed:     r.Failed,
			Aborted:    r.Aborted,
			StartedAt:  r.StartedAt,
			FinishedAt: r.FinishedAt,
		}
	}
	return runs, nil
}

// collectFailures flattens failed items, including folder children, in
// document order. A failed child is listed before its folder's rollback.
func collectFailures(outcomes []Outcome) []primary.ItemFailure {
	var failures []primary.ItemFailure
	for _, o := range outcomes {
		for _, c := range o.Children {
			if !c.OK() {
				failures = append(failures, primary.ItemFailure{Tag: c.Name, Line: c.Line, Reason: c.Err.Error()})
			}
		}
		if !o.OK() {
			reason := o.Err.Error()
			if IsFatal(o.Err) {
				// the abort itself is reported once, in Aborted
				reason = "rolled back: import aborted"
			}
			failures = append(failures, primary.ItemFailure{Tag: o.Name, Line: o.Line, Reason: reason})
		}
	}
	return failures
}

// Ensure ImportServiceImpl implements the interface
var _ primary.ImportService = (*ImportServiceImpl)(nil)
