package cli

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/example/homeseed/internal/core/layout"
)

// TestCommandFlags verifies each command registers its flags with defaults.
func TestCommandFlags(t *testing.T) {
	tests := []struct {
		name  string
		use   string
		flags map[string]string
	}{
		{name: "import", use: "import [file]", flags: map[string]string{"container": "desktop", "verbose": "false"}},
		{name: "runs", use: "runs", flags: map[string]string{"limit": "10"}},
		{name: "list", use: "list", flags: map[string]string{"container": "", "kind": "", "limit": "0"}},
		{name: "clear", use: "clear", flags: map[string]string{"yes": "false"}},
		{name: "init", use: "init", flags: map[string]string{"force": "false"}},
		{name: "doctor", use: "doctor", flags: map[string]string{"quiet": "false"}},
	}
	constructors := map[string]func() *cobra.Command{
		"import": ImportCmd,
		"runs":   RunsCmd,
		"list":   ListCmd,
		"clear":  ClearCmd,
		"init":   InitCmd,
		"doctor": DoctorCmd,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := constructors[tt.name]()

			if cmd.Use != tt.use {
				t.Errorf("expected use %q, got %q", tt.use, cmd.Use)
			}
			if cmd.Short == "" {
				t.Error("command should have a Short description")
			}
			for name, def := range tt.flags {
				f := cmd.Flags().Lookup(name)
				if f == nil {
					t.Errorf("flag --%s not registered", name)
					continue
				}
				if f.DefValue != def {
					t.Errorf("flag --%s default %q, want %q", name, f.DefValue, def)
				}
			}
		})
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	cmd := ClearCmd()
	err := cmd.RunE(cmd, nil)
	if err == nil {
		t.Fatal("expected clear without --yes to fail")
	}
}

func TestImportRejectsFolderTarget(t *testing.T) {
	cmd := ImportCmd()
	if err := cmd.Flags().Set("container", "folder:3"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	if err := cmd.RunE(cmd, nil); err == nil {
		t.Fatal("expected folder container to be rejected")
	}
}

func TestListFilters(t *testing.T) {
	filters, err := listFilters("hotseat", "appwidget", 3)
	if err != nil {
		t.Fatalf("listFilters failed: %v", err)
	}
	if filters.Container == nil || *filters.Container != layout.ContainerHotseat {
		t.Errorf("expected hotseat filter, got %v", filters.Container)
	}
	if filters.Kind == nil || *filters.Kind != layout.KindAppWidget {
		t.Errorf("expected appwidget filter, got %v", filters.Kind)
	}
	if filters.Limit != 3 {
		t.Errorf("expected limit 3, got %d", filters.Limit)
	}

	filters, err = listFilters("", "", 0)
	if err != nil {
		t.Fatalf("listFilters failed: %v", err)
	}
	if filters.Container != nil || filters.Kind != nil {
		t.Error("expected no filters")
	}

	for _, bad := range [][2]string{{"dock", ""}, {"", "wallpaper"}} {
		if _, err := listFilters(bad[0], bad[1], 0); err == nil {
			t.Errorf("expected error for %v", bad)
		}
	}
	if _, err := listFilters("", "", -1); err == nil {
		t.Error("expected error for negative limit")
	}
}
