package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/ports/primary"
	"github.com/example/homeseed/internal/wire"
)

// ListCmd returns the list command
func ListCmd() *cobra.Command {
	var container string
	var kind string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List favorites in the store",
		Long: `List placed favorites in identity order.

Examples:
  homeseed list
  homeseed list --container hotseat
  homeseed list --container folder:12
  homeseed list --kind appwidget --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := listFilters(container, kind, limit)
			if err != nil {
				return err
			}
			_, err = wire.FavoriteAdapter().List(cmd.Context(), filters)
			return err
		},
	}

	cmd.Flags().StringVar(&container, "container", "", "Filter by container: desktop, hotseat or folder:<id>")
	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind: application, folder or appwidget")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of favorites to show (0 for all)")

	return cmd
}

// ClearCmd returns the clear command
func ClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite and widget binding",
		Long: `Remove every favorite and widget binding from the store.

Identities are not reset: favorites imported afterwards get new ids.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear the favorites store without --yes")
			}
			_, err := wire.FavoriteAdapter().Clear(cmd.Context())
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm removal")

	return cmd
}

func listFilters(container, kind string, limit int) (primary.FavoriteFilters, error) {
	filters := primary.FavoriteFilters{Limit: limit}
	if limit < 0 {
		return filters, fmt.Errorf("limit must not be negative")
	}
	if container != "" {
		c, err := layout.ParseContainer(container)
		if err != nil {
			return filters, err
		}
		filters.Container = &c
	}
	if kind != "" {
		k, err := layout.ParseItemKind(kind)
		if err != nil {
			return filters, err
		}
		filters.Kind = &k
	}
	return filters, nil
}
