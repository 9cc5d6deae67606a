package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/chatfilter/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatfilter",
	Short: "Filter exported WhatsApp chats by date and automated notices",
	Long: `A CLI tool to trim exported WhatsApp chat transcripts.

It keeps the messages sent within a recent window, drops automated system
notices (joins, leaves, admin changes, encryption banners, media
placeholders), and writes the rest back out ready to paste into a
summarization prompt.

Features:
  • Filter .txt chat exports by recency (7, 14, 30, 90 days or all time)
  • Classify system notices with an ordered, overridable rule table
  • Filter scraped {sender, body, timestamp} records from JSON or SQLite
  • Output as text, JSON, JSONL, YAML or Markdown
  • Generate a ready-made summarization prompt

Quick Start:
  chatfilter filter chat.txt               # Keep the last 7 days
  chatfilter filter chat.txt --all -o -    # Drop notices only, print to stdout
  chatfilter records scrape.json --dedupe  # Filter scraped records
  chatfilter check "Anna left"             # Show which rule fires`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/chatfilter/config.yaml)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
