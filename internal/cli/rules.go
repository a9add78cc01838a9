package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/rulekit-dev/rulekit/internal/template"
	"github.com/rulekit-dev/rulekit/internal/ui"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the rule templates rulekit ships",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shipped rule templates",
	RunE:  runRulesList,
}

var rulesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a shipped rule template",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesShow,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesShowCmd)

	rulesShowCmd.Flags().Bool("raw", false, "Print raw markdown without terminal rendering")
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	deployer := template.NewDeployer(template.Assets(), discardLogger())

	for _, name := range deployer.ListRules() {
		if strings.HasPrefix(name, "languages/") {
			_, _ = fmt.Fprintf(out, "%s %s\n", name, ui.StyleMuted.Render("(language rule)"))
			continue
		}
		_, _ = fmt.Fprintln(out, name)
	}
	return nil
}

func runRulesShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	deployer := template.NewDeployer(template.Assets(), discardLogger())

	data, err := deployer.RuleContent(args[0])
	if err != nil {
		return err
	}

	hm := ui.NewHeadlessManager()
	if getBoolFlag(cmd, "raw") || hm.IsHeadless() {
		_, _ = fmt.Fprint(out, string(data))
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		_, _ = fmt.Fprint(out, string(data))
		return nil
	}
	rendered, err := renderer.Render(string(data))
	if err != nil {
		_, _ = fmt.Fprint(out, string(data))
		return nil
	}

	_, _ = fmt.Fprint(out, rendered)
	return nil
}
