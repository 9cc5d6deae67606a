package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/iksnae/chatfilter/internal"
	"github.com/iksnae/chatfilter/internal/export"
	"github.com/spf13/cobra"
)

var (
	filterDays   int
	filterAll    bool
	filterFormat string
	filterOut    string
	filterPrompt bool
	filterHeader bool
)

// filterCmd represents the filter command
var filterCmd = &cobra.Command{
	Use:   "filter <chat.txt>",
	Short: "Filter a chat export by date and automated notices",
	Long: `Filter an exported WhatsApp chat transcript.

Messages older than the retention window and automated system notices are
dropped; every other message is written back out exactly as it appeared,
continuation lines included. Lines with unparseable dates are counted and
skipped.

The output goes next to the input as <name>_filtered_<timestamp>.<ext>
unless --out is given. Use --out - to write to stdout.`,
	Example: `  chatfilter filter chat.txt
  chatfilter filter chat.txt --days 30 --prompt
  chatfilter filter chat.txt --all --format json -o messages.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		now := nowFunc()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		window, err := resolveWindow(cmd, cfg, filterDays, filterAll, now)
		if err != nil {
			return err
		}
		exporter, err := export.NewExporter(filterFormat)
		if err != nil {
			return err
		}
		filter, err := internal.NewFilter(cfg, window)
		if err != nil {
			return err
		}

		var transcript *internal.Transcript
		err = internal.ShowProgress(cmd.Context(), fmt.Sprintf("Filtering %s (%s)", filepath.Base(input), window.Describe()), func() error {
			var ferr error
			transcript, ferr = filter.FilterFile(input)
			return ferr
		})
		if err != nil {
			return err
		}
		transcript.FilteredAt = now

		outPath := filterOut
		if outPath == "" {
			outPath = export.FilteredPath(input, exporter.Extension(), now)
		}

		var prompt string
		if filterPrompt {
			name := filepath.Base(outPath)
			if outPath == "-" {
				name = filepath.Base(input)
			}
			prompt, err = internal.RenderPrompt(cfg.PromptTemplate(), name, window)
			if err != nil {
				return &internal.ConfigError{Path: cfg.Path(), Field: "prompt", Err: err}
			}
		}

		if text, ok := exporter.(*export.TextExporter); ok {
			text.Header = filterHeader
			text.Preamble = prompt
			prompt = ""
		}

		if err := writeTranscript(cmd, exporter, transcript, outPath); err != nil {
			return err
		}

		errOut := cmd.ErrOrStderr()
		internal.PrintStats(errOut, transcript.Stats, false)
		if len(transcript.Messages) == 0 {
			internal.PrintWarning(errOut, "No messages matched the filtering criteria")
		}
		if prompt != "" {
			fmt.Fprintf(errOut, "\n%s\n", prompt)
		}
		return nil
	},
}

// writeTranscript writes t to path, or to the command's stdout for "-"
func writeTranscript(cmd *cobra.Command, exporter export.Exporter, t *internal.Transcript, path string) error {
	if path == "-" {
		return export.ToWriter(exporter, t, cmd.OutOrStdout(), "stdout")
	}
	if err := export.ToFile(exporter, t, path); err != nil {
		return err
	}
	internal.PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Wrote %d message(s) to %s", len(t.Messages), path))
	return nil
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().IntVarP(&filterDays, "days", "d", internal.DefaultDays, "Keep messages from the last N days (0 keeps all time)")
	filterCmd.Flags().BoolVar(&filterAll, "all", false, "Keep messages from all time")
	filterCmd.Flags().StringVarP(&filterFormat, "format", "f", "text", "Output format (text, json, jsonl, yaml, md)")
	filterCmd.Flags().StringVarP(&filterOut, "out", "o", "", "Output file (default <name>_filtered_<timestamp>.<ext>; - for stdout)")
	filterCmd.Flags().BoolVar(&filterPrompt, "prompt", false, "Prepend the summarization prompt (text format) or print it after the summary")
	filterCmd.Flags().BoolVar(&filterHeader, "header", false, "Start text output with an informational header")
}
