package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/homeseed/internal/config"
	"github.com/example/homeseed/internal/db"
	"github.com/example/homeseed/internal/templates"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration and create the favorites database",
		Long: `Write a starter config.toml, component manifest and layout document to the
config directory, then create the favorites database with the required schema.

Existing files are left alone unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runInit(cmd.OutOrStdout(), cfg, config.DefaultPath(), force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")

	return cmd
}

func runInit(out io.Writer, cfg config.Config, configPath string, force bool) error {
	dir := filepath.Dir(configPath)
	layoutPath := filepath.Join(dir, templates.LayoutName)

	if force || !fileExists(configPath) {
		if _, err := config.Save(configPath, cfg); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Wrote config %s\n", configPath)
	} else {
		fmt.Fprintf(out, "  Config exists: %s\n", configPath)
	}

	manifest, err := templates.GetStarterManifest()
	if err != nil {
		return err
	}
	if err := writeStarter(out, cfg.Registry.Manifest, manifest, force); err != nil {
		return err
	}

	layoutDoc, err := templates.GetStarterLayout()
	if err != nil {
		return err
	}
	if err := writeStarter(out, layoutPath, layoutDoc, force); err != nil {
		return err
	}

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer database.Close()
	fmt.Fprintf(out, "✓ Database ready at %s\n", cfg.Database.Path)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  edit %s to list the installed components\n", cfg.Registry.Manifest)
	fmt.Fprintln(out, "  homeseed import")
	fmt.Fprintln(out, "  homeseed list")

	return nil
}

func writeStarter(out io.Writer, path string, content []byte, force bool) error {
	if !force && fileExists(path) {
		fmt.Fprintf(out, "  Exists: %s\n", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(out, "✓ Wrote %s\n", path)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
