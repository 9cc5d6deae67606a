package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/iksnae/chatfilter/internal"
	"github.com/iksnae/chatfilter/internal/export"
	"github.com/spf13/cobra"
)

var (
	recordsSQLite string
	recordsTable  string
	recordsDedupe bool
	recordsFormat string
	recordsOut    string
)

// recordsCmd represents the records command
var recordsCmd = &cobra.Command{
	Use:   "records [scrape.json]",
	Short: "Filter scraped {sender, body, timestamp} records",
	Long: `Filter a list of scraped chat records by the automated-notice classifier.

Records are read from a JSON array (the legacy "text" key is accepted for
the body) or from the sender, body and timestamp columns of a SQLite table.
Records carry no parseable date, so no date window is applied. A missing
sender is reported as the system sender.`,
	Example: `  chatfilter records scrape.json
  chatfilter records scrape.json --dedupe -o -
  chatfilter records --sqlite scrape.db --table messages`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case len(args) == 1 && recordsSQLite != "":
			return errors.New("give either a JSON file or --sqlite, not both")
		case len(args) == 0 && recordsSQLite == "":
			return errors.New("no records source: give a JSON file or --sqlite")
		}
		now := nowFunc()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		exporter, err := export.NewExporter(recordsFormat)
		if err != nil {
			return err
		}
		filter, err := internal.NewFilter(cfg, internal.AllTime())
		if err != nil {
			return err
		}

		source := recordsSQLite
		if len(args) == 1 {
			source = args[0]
		}

		var records []internal.Record
		err = internal.ShowProgress(cmd.Context(), fmt.Sprintf("Loading records from %s", filepath.Base(source)), func() error {
			var lerr error
			if recordsSQLite != "" {
				records, lerr = internal.LoadRecordsDatabase(recordsSQLite, recordsTable)
			} else {
				records, lerr = internal.LoadRecordsFile(source)
			}
			return lerr
		})
		if err != nil {
			return err
		}

		dropped := 0
		if recordsDedupe {
			records, dropped = internal.NewDeduplicator().Deduplicate(records)
			internal.LogDebug("Dropped %d duplicate record(s)", dropped)
		}

		transcript := filter.FilterRecords(records, source)
		transcript.Stats.Duplicates = dropped
		transcript.FilteredAt = now

		outPath := recordsOut
		if outPath == "" {
			outPath = export.FilteredPath(source, exporter.Extension(), now)
		}
		if err := writeTranscript(cmd, exporter, transcript, outPath); err != nil {
			return err
		}

		internal.PrintStats(cmd.ErrOrStderr(), transcript.Stats, true)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)

	recordsCmd.Flags().StringVar(&recordsSQLite, "sqlite", "", "Read records from a SQLite database instead of a JSON file")
	recordsCmd.Flags().StringVar(&recordsTable, "table", internal.DefaultRecordsTable, "SQLite table holding sender, body and timestamp columns")
	recordsCmd.Flags().BoolVar(&recordsDedupe, "dedupe", false, "Drop repeated records before filtering")
	recordsCmd.Flags().StringVarP(&recordsFormat, "format", "f", "json", "Output format (json, jsonl, yaml, md, text)")
	recordsCmd.Flags().StringVarP(&recordsOut, "out", "o", "", "Output file (default <name>_filtered_<timestamp>.<ext>; - for stdout)")
}
