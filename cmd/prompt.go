package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/iksnae/chatfilter/internal"
	"github.com/spf13/cobra"
)

var (
	promptFile    string
	promptDays    int
	promptAll     bool
	promptPresets bool
)

// promptCmd represents the prompt command
var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the summarization prompt",
	Long: `Print the summarization prompt for a filtered file and retention window.
The template comes from the config's prompt setting, or the built-in one.`,
	Example: `  chatfilter prompt --file chat_filtered_20250429_101500.txt --days 14
  chatfilter prompt --presets`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if promptPresets {
			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			for _, p := range internal.PromptPresets {
				_, _ = fmt.Fprintf(w, "%s\t--days %d\n", p.Label, p.Days)
			}
			return w.Flush()
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		window, err := resolveWindow(cmd, cfg, promptDays, promptAll, nowFunc())
		if err != nil {
			return err
		}

		prompt, err := internal.RenderPrompt(cfg.PromptTemplate(), promptFile, window)
		if err != nil {
			return &internal.ConfigError{Path: cfg.Path(), Field: "prompt", Err: err}
		}
		_, err = fmt.Fprintln(out, prompt)
		return err
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)

	promptCmd.Flags().StringVar(&promptFile, "file", "chat_filtered.txt", "Filtered file name to mention in the prompt")
	promptCmd.Flags().IntVarP(&promptDays, "days", "d", internal.DefaultDays, "Retention window in days (0 keeps all time)")
	promptCmd.Flags().BoolVar(&promptAll, "all", false, "Describe an all-time window")
	promptCmd.Flags().BoolVar(&promptPresets, "presets", false, "List the preset retention windows")
}
