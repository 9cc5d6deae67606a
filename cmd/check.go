package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var checkSender string

var (
	automatedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	keptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <body...>",
	Short: "Classify a single message",
	Long: `Run one message through the classifier and report the rule that fired.
Without --sender the message is treated as an unattributed system line.`,
	Example: `  chatfilter check "John Smith left"
  chatfilter check --sender "John Smith" "John Smith changed the subject to Trips"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		classifier, err := cfg.NewClassifier()
		if err != nil {
			return err
		}

		sender := checkSender
		if sender == "" {
			sender = cfg.Sentinel()
		}
		body := strings.Join(args, " ")

		verdict := classifier.Classify(sender, body)
		out := cmd.OutOrStdout()
		if !verdict.Automated {
			_, _ = fmt.Fprintln(out, keptStyle.Render("kept"))
			return nil
		}
		_, _ = fmt.Fprintf(out, "%s %s\n", automatedStyle.Render("automated"),
			ruleStyle.Render(fmt.Sprintf("(rule %s, tier %s)", verdict.Rule.Name, verdict.Rule.Tier)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkSender, "sender", "s", "", "Message sender (default: the system sender)")
}
