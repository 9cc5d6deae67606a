package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chatfilter/internal"
	"github.com/spf13/cobra"
)

var rulesYAML bool

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	tierStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135"))

	phraseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the active classifier rule table",
	Long: `Show the ordered rule table the classifier evaluates. The first matching
rule marks a message as automated.

With --yaml the table is written as a rules file, ready to edit and point
to from the config's rules_file setting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		rules, err := cfg.ResolveRules()
		if err != nil {
			return err
		}

		if rulesYAML {
			return internal.EncodeRules(cmd.OutOrStdout(), "1", rules)
		}
		displayRules(cmd, rules)
		return nil
	},
}

func displayRules(cmd *cobra.Command, rules []internal.Rule) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d rule(s), evaluated in order", len(rules))))
	_, _ = fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("#")+"\t"+titleStyle.Render("Tier")+"\t"+titleStyle.Render("Scope")+"\t"+titleStyle.Render("Kind")+"\t"+titleStyle.Render("Phrase"))
	for i, r := range rules {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			indexStyle.Render(strconv.Itoa(i+1)),
			tierStyle.Render(string(r.Tier)),
			string(r.Scope),
			string(r.Kind),
			phraseStyle.Render(strconv.Quote(r.Phrase)),
		)
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().BoolVar(&rulesYAML, "yaml", false, "Write the rule table as a YAML rules file")
}
