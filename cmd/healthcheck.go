package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chatfilter/internal"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck [chat.txt]",
	Short: "Check the configuration and, optionally, that an export parses",
	Long: `Check the health of chatfilter by verifying:
  • Config file detection and validation
  • Rule table loading
  • Date layouts in use
  • That a chat export is recognised (when a file is given)

This command is useful when an export from a new phone or locale yields no
messages: it shows whether the lines are recognised and their dates parse.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, sectionStyle.Render("chatfilter health check"))
		_, _ = fmt.Fprintln(out)

		// Step 1: Config
		_, _ = fmt.Fprintln(out, infoStyle.Render("Step 1: Loading configuration..."))
		cfg, err := loadConfig()
		if err != nil {
			_, _ = fmt.Fprintln(out, errorStyle.Render("✗ Failed to load config:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		if cfg.Path() != "" {
			_, _ = fmt.Fprintln(out, successStyle.Render("✓ Config loaded from "+cfg.Path()))
		} else {
			_, _ = fmt.Fprintln(out, successStyle.Render("✓ Using built-in defaults"))
		}
		if verbose {
			_, _ = fmt.Fprintf(out, "   Days: %d\n", cfg.Days)
			_, _ = fmt.Fprintf(out, "   System sender: %q\n", cfg.Sentinel())
			_, _ = fmt.Fprintf(out, "   Self aliases: %v\n", cfg.SelfAliases)
		}
		_, _ = fmt.Fprintln(out)

		// Step 2: Rules
		_, _ = fmt.Fprintln(out, infoStyle.Render("Step 2: Loading rule table..."))
		classifier, err := cfg.NewClassifier()
		if err != nil {
			_, _ = fmt.Fprintln(out, errorStyle.Render("✗ Failed to load rules:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ %d rule(s) loaded", len(classifier.Rules()))))
		_, _ = fmt.Fprintln(out)

		// Step 3: Date layouts
		_, _ = fmt.Fprintln(out, infoStyle.Render("Step 3: Checking date layouts..."))
		layouts := cfg.NewParser().Layouts()
		_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ %d date layout(s), tried in order", len(layouts))))
		if verbose {
			for i, layout := range layouts {
				_, _ = fmt.Fprintf(out, "   [%d] %s\n", i+1, layout)
			}
		}
		_, _ = fmt.Fprintln(out)

		if len(args) == 0 {
			_, _ = fmt.Fprintln(out, successStyle.Render("✓ Health check passed"))
			return nil
		}

		// Step 4: Input
		_, _ = fmt.Fprintln(out, infoStyle.Render("Step 4: Scanning "+args[0]+"..."))
		filter, err := internal.NewFilter(cfg, internal.AllTime())
		if err != nil {
			return err
		}
		transcript, err := filter.FilterFile(args[0])
		if err != nil {
			_, _ = fmt.Fprintln(out, errorStyle.Render("✗ Failed to read input:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		stats := transcript.Stats
		_, _ = fmt.Fprintf(out, "   %d line(s), %d message start(s)\n", stats.LinesProcessed, stats.MessageStarts)
		if stats.MalformedDates > 0 {
			_, _ = fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠ %d message(s) with unparseable dates", stats.MalformedDates)))
		}
		if stats.OrphanLines > 0 {
			_, _ = fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠ %d line(s) before the first message", stats.OrphanLines)))
		}
		_, _ = fmt.Fprintln(out)

		// Summary
		_, _ = fmt.Fprintln(out, sectionStyle.Render("Summary"))
		if stats.MessageStarts == 0 {
			_, _ = fmt.Fprintln(out, errorStyle.Render("✗ Health check failed: no message lines recognised"))
			return errors.New("health check failed: no message lines recognised")
		}
		if stats.MalformedDates == stats.MessageStarts {
			_, _ = fmt.Fprintln(out, errorStyle.Render("✗ Health check failed: no dates matched the configured layouts"))
			return errors.New("health check failed: no dates matched the configured layouts")
		}
		_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ Health check passed: %d message(s), %d automated", stats.Kept+stats.Automated, stats.Automated)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
