package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rulekit-dev/rulekit/internal/config"
	"github.com/rulekit-dev/rulekit/internal/core/project"
	"github.com/rulekit-dev/rulekit/internal/migrate"
	"github.com/rulekit-dev/rulekit/internal/provider"
	"github.com/rulekit-dev/rulekit/internal/setup"
	"github.com/rulekit-dev/rulekit/internal/template"
	"github.com/rulekit-dev/rulekit/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold AI assistant rules in the current project",
	Long: `Detect the project language, let you pick providers, and install rule
templates. When a provider already has configuration, you choose whether to
replace it, migrate it into the local override location, or skip the
provider entirely.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringSlice("providers", nil, "Providers to configure (default: ask, or all with --yes)")
	initCmd.Flags().String("language", "", "Override language detection (e.g. go, python)")
	initCmd.Flags().String("action", "", "Migration action for existing configuration (replace|migrate-supersede|migrate-preserve|skip)")
	initCmd.Flags().Bool("yes", false, "Non-interactive mode: use defaults for every prompt")
	initCmd.Flags().Bool("force", false, "Overwrite template files that already exist")
}

func runInit(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	logger := newLogger(cmd)

	root, err := project.FindRootOrCurrent(".")
	if err != nil {
		return fmt.Errorf("locate project root: %w", err)
	}

	prompter, hm, err := newPrompter(cmd)
	if err != nil {
		return err
	}

	ids, err := selectedProviders(cmd, prompter)
	if err != nil {
		return err
	}
	providers, err := provider.Resolve(ids)
	if err != nil {
		return err
	}

	lang, err := resolveLanguage(cmd, root)
	if err != nil {
		return err
	}
	if lang != "" {
		_, _ = fmt.Fprintf(out, "Detected language: %s\n", project.DisplayName(lang))
	}

	orch := setup.New(
		migrate.NewExecutor(nil, logger),
		template.NewDeployer(template.Assets(), logger),
		prompter.ChooseAction,
		logger,
	)

	// Action prompts can open mid-run, so the animated spinner stays off
	// in interactive mode; headless runs still get progress lines.
	var sp ui.Spinner
	if hm.IsHeadless() {
		sp = ui.NewSpinner(hm, "Installing rule templates...")
	}
	result, err := orch.Run(cmd.Context(), setup.Options{
		ProjectRoot: root,
		ProjectName: projectName(root),
		Providers:   providers,
		Language:    lang,
		Force:       getBoolFlag(cmd, "force"),
	})
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}

	cfg := config.New(lang, ids)
	if err := cfg.Save(root); err != nil {
		return err
	}

	printRunSummary(out, result)
	_, _ = fmt.Fprintf(out, "\n%s rulekit setup complete\n", symSuccess())
	return nil
}

// newPrompter builds the prompter and headless manager from command flags.
func newPrompter(cmd *cobra.Command) (*ui.Prompter, *ui.HeadlessManager, error) {
	hm := ui.NewHeadlessManager()
	if getBoolFlag(cmd, "yes") {
		hm.ForceHeadless(true)
	}

	defaults := map[string]string{}
	if action, err := cmd.Flags().GetString("action"); err == nil && action != "" {
		if _, err := migrate.ParseAction(action); err != nil {
			return nil, nil, err
		}
		defaults["action"] = action
	}
	if provs, err := cmd.Flags().GetStringSlice("providers"); err == nil && len(provs) > 0 {
		defaults["providers"] = strings.Join(provs, ",")
	}
	hm.SetDefaults(defaults)

	return ui.NewPrompter(hm), hm, nil
}

// selectedProviders resolves the provider list from the flag or a prompt.
func selectedProviders(cmd *cobra.Command, prompter *ui.Prompter) ([]string, error) {
	if ids, err := cmd.Flags().GetStringSlice("providers"); err == nil && len(ids) > 0 {
		return ids, nil
	}
	return prompter.SelectProviders()
}

// resolveLanguage uses the flag value when given, otherwise marker detection.
func resolveLanguage(cmd *cobra.Command, root string) (string, error) {
	if lang, err := cmd.Flags().GetString("language"); err == nil && lang != "" {
		return lang, nil
	}
	detector := project.NewDetector(newLogger(cmd))
	return detector.DetectLanguage(root)
}

// projectName derives a display name from the root directory.
func projectName(root string) string {
	return filepath.Base(root)
}

// printRunSummary writes one line per provider.
func printRunSummary(out io.Writer, result *setup.RunResult) {
	for _, pr := range result.Providers {
		switch {
		case pr.Action == migrate.ActionSkip:
			_, _ = fmt.Fprintf(out, "%s %s: skipped (existing configuration kept)\n", symSkipped(), pr.Provider.Name)
		case pr.Migration != nil && pr.Migration.FilesMigrated > 0:
			_, _ = fmt.Fprintf(out, "%s %s: migrated %d file(s), installed %d\n",
				symSuccess(), pr.Provider.Name, pr.Migration.FilesMigrated, deployedCount(pr))
		case pr.FileMigration != nil:
			_, _ = fmt.Fprintf(out, "%s %s: migrated to local override, installed %d\n",
				symSuccess(), pr.Provider.Name, deployedCount(pr))
		default:
			_, _ = fmt.Fprintf(out, "%s %s: installed %d file(s)\n", symSuccess(), pr.Provider.Name, deployedCount(pr))
		}
	}
}

// deployedCount returns how many files a provider deployment wrote.
func deployedCount(pr setup.ProviderResult) int {
	if pr.Deployed == nil {
		return 0
	}
	return len(pr.Deployed.Files)
}
