package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/ports/primary"
	"github.com/example/homeseed/internal/wire"
)

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	var container string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Seed the favorites store from a layout document",
		Long: `Read a default-workspace layout document and place every item it
describes into the favorites store.

Items that cannot be placed are skipped and reported. A malformed document,
or a folder holding anything but shortcuts, stops the import; whatever was
placed before that point is kept.

Without a file argument the document is looked up in layout.search_paths.
Importing the same document twice creates duplicate favorites; run
'homeseed clear' first to re-seed.

Examples:
  homeseed import
  homeseed import ./default_workspace.xml
  homeseed import dock.xml --container hotseat --verbose`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := layout.ParseContainer(container)
			if err != nil {
				return err
			}
			if !target.IsRoot() {
				return fmt.Errorf("import target must be desktop or hotseat, got %s", target)
			}

			req := primary.ImportRequest{Container: target}
			if len(args) == 1 {
				req.Path = args[0]
			}

			resp, err := wire.ImportAdapter().Import(cmd.Context(), req, verbose)
			if err != nil {
				return err
			}
			if resp.Aborted != "" {
				return fmt.Errorf("import aborted after %d item(s)", resp.Loaded)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&container, "container", "desktop", "Root container: desktop or hotseat")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every item that was not placed")

	return cmd
}

// RunsCmd returns the runs command
func RunsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent import runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.ImportAdapter().Runs(cmd.Context(), limit)
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of runs to show (0 for all)")

	return cmd
}
