package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/example/homeseed/internal/core/attrs"
	"github.com/example/homeseed/internal/core/folder"
	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/core/tags"
	"github.com/example/homeseed/internal/ctxutil"
	"github.com/example/homeseed/internal/ports/secondary"
)

// Outcome is the result of one dispatched item. Err is nil on success.
type Outcome struct {
	Kind      tags.Kind
	Name      string
	Line      int
	Container layout.Container
	ID        int64
	Err       error

	// Children holds the outcomes of a folder's nested shortcuts.
	Children []Outcome
}

// OK reports whether the item was placed and kept.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Report summarizes one pass over a layout document.
type Report struct {
	// Loaded counts root-level items that were placed and kept. A folder
	// counts once regardless of its children.
	Loaded   int
	Outcomes []Outcome

	// Err is the StructuralError or StreamError that ended the pass early.
	Err error
}

// Walker drives a token stream, dispatching each item to its builder and
// persisting the results in document order.
type Walker struct {
	builder *ItemBuilder
	store   secondary.FavoriteStore
	audit   secondary.LogWriter
	logger  zerolog.Logger
}

// NewWalker creates a Walker. audit may be nil.
func NewWalker(builder *ItemBuilder, store secondary.FavoriteStore, audit secondary.LogWriter, logger zerolog.Logger) *Walker {
	return &Walker{
		builder: builder,
		store:   store,
		audit:   audit,
		logger:  logger,
	}
}

// Ingest places every item of the document read from stream into root. It
// never returns an error: per-item failures are recorded in the outcomes, and
// a fatal failure stops the pass and is reported in Report.Err alongside
// whatever was loaded before it.
func (w *Walker) Ingest(ctx context.Context, stream secondary.TokenStream, root layout.Container) Report {
	logger := w.logger.With().Str("run_id", ctxutil.RunIDFromContext(ctx)).Logger()

	var report Report
	rootTok, err := beginDocument(stream)
	if err != nil {
		report.Err = err
		logger.Error().Err(err).Msg("Layout document rejected")
		return report
	}

	for {
		if err := ctx.Err(); err != nil {
			report.Err = &StreamError{Err: err}
			break
		}

		tok, err := stream.Next()
		if err != nil {
			report.Err = &StreamError{Err: err}
			break
		}
		if tok.Type == secondary.TokenEndDocument {
			break
		}
		if tok.Type == secondary.TokenEndTag {
			if tok.Depth <= rootTok.Depth {
				break
			}
			continue
		}

		kind := tags.Parse(tok.Name)
		if kind == tags.Unknown {
			logger.Debug().Str("tag", tok.Name).Int("line", tok.Line).Msg("Skipping unknown tag")
			if err := skipSubtree(stream, tok); err != nil {
				report.Err = err
				break
			}
			continue
		}

		var outcome Outcome
		if kind == tags.Folder {
			outcome, err = w.folder(ctx, logger, stream, tok, root)
		} else {
			outcome = w.item(ctx, logger, kind, tok, root)
			err = skipSubtree(stream, tok)
		}
		report.Outcomes = append(report.Outcomes, outcome)
		if outcome.OK() {
			report.Loaded++
		}
		if err != nil {
			report.Err = err
			break
		}
	}

	if report.Err != nil {
		logger.Error().Err(report.Err).Int("loaded", report.Loaded).Msg("Import aborted")
	} else {
		logger.Info().Int("loaded", report.Loaded).Int("items", len(report.Outcomes)).Msg("Import finished")
	}
	return report
}

// item builds and persists one non-folder item into container.
func (w *Walker) item(ctx context.Context, logger zerolog.Logger, kind tags.Kind, tok secondary.Token, container layout.Container) Outcome {
	outcome := Outcome{Kind: kind, Name: tok.Name, Line: tok.Line, Container: container}

	rec := attrs.Extract(tok.Attributes)
	rec.Container = container

	var (
		pending *PendingItem
		err     error
	)
	switch kind {
	case tags.Shortcut:
		pending, err = w.builder.Shortcut(ctx, rec)
	case tags.Widget:
		pending, err = w.builder.Widget(ctx, rec)
	case tags.Clock:
		pending, err = w.builder.Clock(ctx, rec)
	case tags.Search:
		pending, err = w.builder.Search(ctx, rec)
	default:
		err = fmt.Errorf("no builder for <%s>", tok.Name)
	}
	if err == nil {
		outcome.ID, err = w.persist(ctx, pending)
	}
	if err != nil {
		outcome.Err = err
		logItemFailure(logger, outcome)
	}
	return outcome
}

// folder builds a folder, walks its nested shortcuts and keeps the folder
// only when enough of them were placed. The returned error is fatal.
func (w *Walker) folder(ctx context.Context, logger zerolog.Logger, stream secondary.TokenStream, tok secondary.Token, container layout.Container) (Outcome, error) {
	outcome := Outcome{Kind: tags.Folder, Name: tok.Name, Line: tok.Line, Container: container}

	rec := attrs.Extract(tok.Attributes)
	rec.Container = container

	pending, err := w.builder.Folder(ctx, rec)
	if err == nil {
		outcome.ID, err = w.persist(ctx, pending)
	}
	if err != nil {
		outcome.Err = err
		logItemFailure(logger, outcome)
		return outcome, skipSubtree(stream, tok)
	}

	children, walkErr := w.folderChildren(ctx, logger, stream, tok, outcome.ID)
	outcome.Children = children

	var childIDs []int64
	for _, c := range children {
		if c.OK() {
			childIDs = append(childIDs, c.ID)
		}
	}

	if walkErr != nil {
		w.rollback(ctx, logger, folder.GenerateRollbackPlan(outcome.ID, childIDs), "import aborted inside folder")
		outcome.Err = walkErr
		return outcome, walkErr
	}

	guard := folder.CanCommitFolder(folder.CommitFolderContext{FolderID: outcome.ID, ChildIDs: childIDs})
	if !guard.Allowed {
		w.rollback(ctx, logger, folder.GenerateRollbackPlan(outcome.ID, childIDs), guard.Reason)
		outcome.Err = fmt.Errorf("%w: %s", ErrFolderInvalid, guard.Reason)
		logger.Info().Int64("folder_id", outcome.ID).Str("reason", guard.Reason).Msg("Folder rolled back")
	}
	return outcome, nil
}

// folderChildren consumes the folder's nested region through its end tag.
// Only shortcuts may appear there.
func (w *Walker) folderChildren(ctx context.Context, logger zerolog.Logger, stream secondary.TokenStream, folderTok secondary.Token, folderID int64) ([]Outcome, error) {
	var children []Outcome
	for {
		if err := ctx.Err(); err != nil {
			return children, &StreamError{Err: err}
		}

		tok, err := stream.Next()
		if err != nil {
			return children, &StreamError{Err: err}
		}
		switch tok.Type {
		case secondary.TokenEndDocument:
			return children, &StreamError{Err: fmt.Errorf("unexpected end of document inside <%s>", folderTok.Name)}
		case secondary.TokenEndTag:
			if tok.Depth <= folderTok.Depth {
				return children, nil
			}
			continue
		}

		if tags.Parse(tok.Name) != tags.Shortcut {
			return children, &StructuralError{Tag: tok.Name, Line: tok.Line, FolderID: folderID}
		}

		children = append(children, w.item(ctx, logger, tags.Shortcut, tok, layout.FolderContainer(folderID)))
		if err := skipSubtree(stream, tok); err != nil {
			return children, err
		}
	}
}

// persist stores a built item and runs its post-insert step. A failed
// post-insert step retracts the stored record.
func (w *Walker) persist(ctx context.Context, pending *PendingItem) (int64, error) {
	record := pending.Record
	if err := w.store.Insert(ctx, record); err != nil {
		return 0, err
	}
	w.logAudit(ctx, func() error { return w.audit.LogInsert(ctx, record.ID, pending.Detail) })

	if pending.AfterInsert != nil {
		if err := pending.AfterInsert(ctx); err != nil {
			cleanup := context.WithoutCancel(ctx)
			if retractErr := w.store.Retract(cleanup, record.ID); retractErr != nil {
				return 0, errors.Join(err, fmt.Errorf("failed to retract favorite %d: %w", record.ID, retractErr))
			}
			w.logAudit(cleanup, func() error { return w.audit.LogRetract(cleanup, record.ID, err.Error()) })
			return 0, err
		}
	}
	return record.ID, nil
}

// rollback retracts every record in plan, continuing past failures. It runs
// even when ctx has been cancelled.
func (w *Walker) rollback(ctx context.Context, logger zerolog.Logger, plan folder.RollbackPlan, reason string) {
	ctx = context.WithoutCancel(ctx)
	for _, id := range plan.Retract {
		if err := w.store.Retract(ctx, id); err != nil {
			logger.Warn().Err(err).Int64("favorite_id", id).Int64("folder_id", plan.FolderID).Msg("Failed to retract favorite")
			continue
		}
		w.logAudit(ctx, func() error { return w.audit.LogRetract(ctx, id, reason) })
	}
}

func (w *Walker) logAudit(ctx context.Context, write func() error) {
	if w.audit == nil {
		return
	}
	if err := write(); err != nil {
		w.logger.Warn().Err(err).Msg("Failed to write import log")
	}
}

func logItemFailure(logger zerolog.Logger, o Outcome) {
	logger.Warn().
		Str("tag", o.Name).
		Int("line", o.Line).
		Str("container", o.Container.String()).
		Str("reason", o.Err.Error()).
		Msg("Item not placed")
}

// beginDocument reads up to the root element and checks its name.
func beginDocument(stream secondary.TokenStream) (secondary.Token, error) {
	tok, err := stream.Next()
	if err != nil {
		return secondary.Token{}, &StreamError{Err: err}
	}
	if tok.Type != secondary.TokenStartTag {
		return secondary.Token{}, &StreamError{Err: errors.New("no root element")}
	}
	if tok.Name != tags.Root {
		return secondary.Token{}, &StreamError{Err: fmt.Errorf("unexpected root element <%s>, expected <%s>", tok.Name, tags.Root)}
	}
	return tok, nil
}

// skipSubtree consumes tokens through the end tag matching start.
func skipSubtree(stream secondary.TokenStream, start secondary.Token) error {
	for {
		tok, err := stream.Next()
		if err != nil {
			return &StreamError{Err: err}
		}
		switch tok.Type {
		case secondary.TokenEndDocument:
			return &StreamError{Err: fmt.Errorf("unexpected end of document inside <%s>", start.Name)}
		case secondary.TokenEndTag:
			if tok.Depth <= start.Depth {
				return nil
			}
		}
	}
}
