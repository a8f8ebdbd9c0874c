package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/homeseed/internal/config"
)

// LogSettings returns the log level and format for cmd. Flags set on the
// command line win over the config file. An unreadable config file falls
// back to the defaults so that doctor can still report it.
func LogSettings(cmd *cobra.Command, load func() (config.Config, error)) (level, format string) {
	cfg, err := load()
	if err != nil {
		cfg = config.Default()
	}
	level, format = cfg.Log.Level, cfg.Log.Format

	if cmd.Flags().Changed("log-level") {
		level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-format") {
		format, _ = cmd.Flags().GetString("log-format")
	}
	return level, format
}
