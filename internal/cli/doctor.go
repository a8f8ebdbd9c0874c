package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/homeseed/internal/adapters/filesystem"
	"github.com/example/homeseed/internal/adapters/manifest"
	"github.com/example/homeseed/internal/config"
	"github.com/example/homeseed/internal/core/tags"
	"github.com/example/homeseed/internal/db"
	"github.com/example/homeseed/internal/ports/secondary"
	"github.com/example/homeseed/internal/version"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate homeseed configuration and inputs",
		Long: `Health check for homeseed.

Validates:
- Configuration loads
- Favorites database opens at the current schema version
- Component manifest parses
- Default layout document is found and well formed

Examples:
  homeseed doctor              # Run full health check
  homeseed doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			results := runChecks(cmd.Context(), cfg)
			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				printResults(cmd.OutOrStdout(), results, hasErrors)
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

func runChecks(ctx context.Context, cfg config.Config) []CheckResult {
	return []CheckResult{
		{Name: "Version", Status: "✓", Details: version.String()},
		checkDatabase(cfg.Database.Path),
		checkManifest(cfg.Registry.Manifest),
		checkLayout(ctx, filesystem.NewDocumentLocator(cfg.Layout.SearchPaths, cfg.Layout.FileName)),
	}
}

func printResults(out io.Writer, results []CheckResult, hasErrors bool) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Check              Status")
	fmt.Fprintln(out, "─────────────────────────")
	for _, r := range results {
		fmt.Fprintf(out, "%-18s %s\n", r.Name, statusColor(r.Status))
	}
	fmt.Fprintln(out)

	hasDetails := false
	for _, r := range results {
		if r.Status != "✓" && r.Details != "" {
			if !hasDetails {
				fmt.Fprintln(out, "Details:")
				hasDetails = true
			}
			fmt.Fprintf(out, "\n%s:\n%s\n", r.Name, r.Details)
		}
	}

	if hasErrors {
		fmt.Fprintln(out, "\n⚠ Issues found. Run 'homeseed init' to write starter files.")
	} else {
		fmt.Fprintln(out, "All checks passed.")
	}
}

func statusColor(status string) string {
	switch status {
	case "✓":
		return color.New(color.FgGreen).Sprint(status)
	case "⚠":
		return color.New(color.FgYellow).Sprint(status)
	}
	return color.New(color.FgRed).Sprint(status)
}

// checkDatabase opens the favorites database and compares its schema version
func checkDatabase(path string) CheckResult {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{Name: "Database", Status: "⚠", Details: "  Not created yet: " + path}
	}

	database, err := db.Open(path)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	defer database.Close()

	v, err := db.SchemaVersion(database)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	if v != db.CurrentVersion {
		return CheckResult{
			Name:    "Database",
			Status:  "✗",
			Details: fmt.Sprintf("  Schema version %d, expected %d", v, db.CurrentVersion),
		}
	}
	return CheckResult{Name: "Database", Status: "✓"}
}

// checkManifest parses the component manifest
func checkManifest(path string) CheckResult {
	registry, err := manifest.Load(path)
	if err != nil {
		return CheckResult{Name: "Manifest", Status: "✗", Details: "  " + err.Error()}
	}
	if len(registry.Packages()) == 0 {
		return CheckResult{Name: "Manifest", Status: "⚠", Details: "  No packages listed in " + path}
	}
	if _, ok := registry.GlobalSearchActivity(context.Background()); !ok {
		return CheckResult{Name: "Manifest", Status: "⚠", Details: "  No global_search_activity: <search> items will be skipped"}
	}
	return CheckResult{Name: "Manifest", Status: "✓"}
}

// checkLayout locates the default layout document and parses it whole
func checkLayout(ctx context.Context, locator secondary.DocumentLocator) CheckResult {
	path, err := locator.Locate(ctx)
	if err != nil {
		return CheckResult{
			Name:    "Layout",
			Status:  "⚠",
			Details: "  " + err.Error() + "\n  Searched: " + strings.Join(locator.SearchPaths(), ", "),
		}
	}

	doc, err := locator.Open(ctx, path)
	if err != nil {
		return CheckResult{Name: "Layout", Status: "✗", Details: "  " + err.Error()}
	}
	defer doc.Close()

	tree := etree.NewDocument()
	if _, err := tree.ReadFrom(doc); err != nil {
		return CheckResult{Name: "Layout", Status: "✗", Details: "  " + path + ": malformed layout document: " + err.Error()}
	}
	root := tree.Root()
	if root == nil {
		return CheckResult{Name: "Layout", Status: "✗", Details: "  " + path + ": no root element"}
	}
	if root.FullTag() != tags.Root {
		return CheckResult{
			Name:    "Layout",
			Status:  "✗",
			Details: fmt.Sprintf("  %s: root element <%s>, expected <%s>", path, root.FullTag(), tags.Root),
		}
	}

	summary := summarizeLayout(root)
	if summary.unknown > 0 || summary.nested > 0 {
		return CheckResult{
			Name:   "Layout",
			Status: "⚠",
			Details: fmt.Sprintf("  %s: %d unknown tag(s) will be skipped, %d non-shortcut(s) inside folders will abort the import",
				path, summary.unknown, summary.nested),
		}
	}
	return CheckResult{Name: "Layout", Status: "✓", Details: fmt.Sprintf("  %s: %d item(s)", path, summary.items)}
}

type layoutSummary struct {
	items   int
	unknown int
	nested  int
}

// summarizeLayout counts root-level items and the tags an import would skip
// or stop at.
func summarizeLayout(root *etree.Element) layoutSummary {
	var s layoutSummary
	for _, el := range root.ChildElements() {
		kind := tags.Parse(el.FullTag())
		if kind == tags.Unknown {
			s.unknown++
			continue
		}
		s.items++
		if kind != tags.Folder {
			continue
		}
		for _, child := range el.ChildElements() {
			if tags.Parse(child.FullTag()) != tags.Shortcut {
				s.nested++
			}
		}
	}
	return s
}
