package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/homeseed/internal/ports/primary"
)

// ImportAdapter is a thin adapter that translates CLI operations to ImportService calls.
// It depends only on the ImportService interface, enabling easy testing with mocks.
type ImportAdapter struct {
	service primary.ImportService
	out     io.Writer
}

// NewImportAdapter creates a new ImportAdapter with the given service.
func NewImportAdapter(service primary.ImportService, out io.Writer) *ImportAdapter {
	return &ImportAdapter{
		service: service,
		out:     out,
	}
}

// Import runs one import pass and prints its summary.
// verbose lists every failed item.
func (a *ImportAdapter) Import(ctx context.Context, req primary.ImportRequest, verbose bool) (*primary.ImportResponse, error) {
	resp, err := a.service.Import(ctx, req)
	if err != nil {
		return nil, err
	}

	mark := color.New(color.FgGreen).Sprint("✓")
	if resp.Aborted != "" {
		mark = color.New(color.FgRed).Sprint("✗")
	} else if len(resp.Failures) > 0 {
		mark = color.New(color.FgYellow).Sprint("!")
	}
	fmt.Fprintf(a.out, "%s Loaded %d of %d item(s) from %s\n", mark, resp.Loaded, resp.Items, resp.Path)
	fmt.Fprintf(a.out, "  Run: %s\n", resp.RunID)

	if resp.Aborted != "" {
		fmt.Fprintf(a.out, "  %s %s\n", color.New(color.FgRed).Sprint("Aborted:"), resp.Aborted)
	}

	if len(resp.Failures) > 0 {
		fmt.Fprintf(a.out, "  %d item(s) not placed\n", len(resp.Failures))
		if verbose {
			for _, f := range resp.Failures {
				fmt.Fprintf(a.out, "    line %d <%s>: %s\n", f.Line, f.Tag, f.Reason)
			}
		} else {
			fmt.Fprintln(a.out, "  (use --verbose for details)")
		}
	}

	return resp, nil
}

// Runs lists recent import runs.
func (a *ImportAdapter) Runs(ctx context.Context, limit int) ([]*primary.ImportRun, error) {
	runs, err := a.service.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No import runs found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Seed the favorites store:")
		fmt.Fprintln(a.out, "  homeseed import default_workspace.xml")
		return runs, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTARTED\tCONTAINER\tLOADED\tFAILED\tSOURCE")
	fmt.Fprintln(w, "---\t-------\t---------\t------\t------\t------")

	for _, run := range runs {
		loaded := fmt.Sprintf("%d", run.Loaded)
		if run.Aborted != "" {
			loaded = color.New(color.FgRed).Sprintf("%d (aborted)", run.Loaded)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			shortRunID(run.ID),
			run.StartedAt,
			run.Container,
			loaded,
			run.Failed,
			run.Source,
		)
	}

	w.Flush()
	return runs, nil
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
