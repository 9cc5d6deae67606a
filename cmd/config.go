package cmd

import (
	"fmt"
	"time"

	"github.com/iksnae/chatfilter/internal"
	"github.com/spf13/cobra"
)

// nowFunc is the clock used for the date window and output names
var nowFunc = time.Now

// loadConfig reads --config, or the default config file when present, or
// falls back to the built-in defaults.
func loadConfig() (*internal.Config, error) {
	if configPath != "" {
		return internal.LoadConfig(configPath)
	}
	if path, ok := internal.DetectConfigPath(); ok {
		internal.LogDebug("Using config file %s", path)
		return internal.LoadConfig(path)
	}
	return internal.DefaultConfig(), nil
}

// resolveWindow applies the --days and --all flags over the configured
// retention window.
func resolveWindow(cmd *cobra.Command, cfg *internal.Config, days int, all bool, now time.Time) (internal.Window, error) {
	if !cmd.Flags().Changed("days") {
		days = cfg.Days
	}
	if days < 0 {
		return internal.Window{}, fmt.Errorf("--days must be >= 0, got %d", days)
	}
	if all || days == 0 {
		return internal.AllTime(), nil
	}
	return internal.NewWindow(now, days), nil
}
