package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/homeseed/internal/ports/primary"
)

// FavoriteAdapter is a thin adapter that translates CLI operations to FavoriteService calls.
type FavoriteAdapter struct {
	service primary.FavoriteService
	out     io.Writer
}

// NewFavoriteAdapter creates a new FavoriteAdapter with the given service.
func NewFavoriteAdapter(service primary.FavoriteService, out io.Writer) *FavoriteAdapter {
	return &FavoriteAdapter{
		service: service,
		out:     out,
	}
}

// List lists favorites matching the filters.
func (a *FavoriteAdapter) List(ctx context.Context, filters primary.FavoriteFilters) ([]*primary.Favorite, error) {
	favorites, err := a.service.ListFavorites(ctx, filters)
	if err != nil {
		return nil, err
	}

	if len(favorites) == 0 {
		fmt.Fprintln(a.out, "No favorites found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Seed the favorites store:")
		fmt.Fprintln(a.out, "  homeseed import default_workspace.xml")
		return favorites, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tCONTAINER\tSCREEN\tCELL\tSPAN\tTITLE")
	fmt.Fprintln(w, "--\t----\t---------\t------\t----\t----\t-----")

	for _, f := range favorites {
		title := f.Title
		if title == "" {
			title = color.New(color.FgHiBlack).Sprint(f.Intent)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			f.ID,
			f.Kind,
			f.Container,
			f.Screen,
			f.Cell,
			f.Span,
			title,
		)
	}

	w.Flush()
	return favorites, nil
}

// Clear removes every favorite.
func (a *FavoriteAdapter) Clear(ctx context.Context) (int, error) {
	n, err := a.service.ClearFavorites(ctx)
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(a.out, "%s Removed %d favorite(s)\n", color.New(color.FgGreen).Sprint("✓"), n)
	return n, nil
}
