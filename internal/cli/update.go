package cli

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rulekit-dev/rulekit/internal/config"
	"github.com/rulekit-dev/rulekit/internal/core/project"
	"github.com/rulekit-dev/rulekit/internal/defs"
	"github.com/rulekit-dev/rulekit/internal/merge"
	"github.com/rulekit-dev/rulekit/internal/provider"
	"github.com/rulekit-dev/rulekit/internal/template"
	"github.com/rulekit-dev/rulekit/internal/ui"
	"github.com/rulekit-dev/rulekit/pkg/version"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh installed rule files to the shipped versions",
	Long: `Reload .rulekit.yaml and rewrite the shipped rule files for every
configured provider. Local overrides (rules/local, AGENTS.local.md) are
never touched. Use --check to see what would change without writing.`,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().Bool("check", false, "Only report drift between installed and shipped rules")
	updateCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	logger := newLogger(cmd)

	root, err := project.FindRootOrCurrent(".")
	if err != nil {
		return fmt.Errorf("locate project root: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	providers, err := provider.Resolve(cfg.Providers)
	if err != nil {
		return err
	}

	deployer := template.NewDeployer(template.Assets(), logger)

	if getBoolFlag(cmd, "check") {
		return reportDrift(out, root, cfg.Language, providers, deployer)
	}

	hm := ui.NewHeadlessManager()
	if getBoolFlag(cmd, "yes") {
		hm.ForceHeadless(true)
	}
	prompter := ui.NewPrompter(hm)

	ok, err := prompter.Confirm(fmt.Sprintf("Rewrite shipped rule files for %d provider(s)?", len(providers)))
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(out, "Update cancelled.")
		return nil
	}

	tc := template.NewContext(
		template.WithProject(projectName(root), root),
		template.WithLanguage(cfg.Language, project.DisplayName(cfg.Language)),
		template.WithProviders(cfg.Providers),
		template.WithVersion(version.GetVersion()),
	)

	sp := ui.NewSpinner(hm, "Refreshing rule files...")
	total := 0
	refreshed := make([]int, len(providers))
	for i, prov := range providers {
		sp.SetTitle(fmt.Sprintf("Refreshing %s...", prov.Name))
		result, err := deployer.Deploy(cmd.Context(), root, prov, tc, true)
		if err != nil {
			sp.Stop()
			return fmt.Errorf("provider %s: %w", prov.ID, err)
		}
		refreshed[i] = len(result.Files)
		total += len(result.Files)
	}
	sp.Stop()

	for i, prov := range providers {
		_, _ = fmt.Fprintf(out, "%s %s: refreshed %d file(s)\n", symSuccess(), prov.Name, refreshed[i])
	}

	cfg.Version = version.GetVersion()
	if err := cfg.Save(root); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "\n%s rulekit update complete (%d files)\n", symSuccess(), total)
	return nil
}

// reportDrift diffs the installed rule files of every directory provider
// against the shipped templates. Rendered entry files carry timestamps, so
// only the static rule set is compared.
func reportDrift(out io.Writer, root, lang string, providers []provider.Provider, deployer *template.Deployer) error {
	names := shippedRuleSet(deployer, lang)

	drifted := 0
	for _, prov := range providers {
		if prov.Kind != provider.KindDirectory {
			continue
		}
		for _, name := range names {
			shipped, err := deployer.RuleContent(name)
			if err != nil {
				return err
			}

			rel := filepath.Join(prov.Dir, defs.RulesSubdir, path.Base(name)+defs.MarkdownExt)
			installed, err := os.ReadFile(filepath.Join(root, rel))
			if err != nil {
				if os.IsNotExist(err) {
					drifted++
					_, _ = fmt.Fprintf(out, "missing: %s\n", rel)
					continue
				}
				return fmt.Errorf("read %s: %w", rel, err)
			}

			if diff := merge.UnifiedDiff(rel, installed, shipped); diff != "" {
				drifted++
				_, _ = fmt.Fprint(out, diff)
			}
		}
	}

	if drifted == 0 {
		_, _ = fmt.Fprintf(out, "%s rule files up to date\n", symSuccess())
		return nil
	}
	_, _ = fmt.Fprintf(out, "\n%d file(s) differ from the shipped rules; run \"rulekit update\" to refresh them\n", drifted)
	return nil
}

// shippedRuleSet lists the rules an update would install: every common rule
// plus the language rule when one is shipped for the tag.
func shippedRuleSet(deployer *template.Deployer, lang string) []string {
	var names []string
	for _, name := range deployer.ListRules() {
		if !strings.Contains(name, "/") {
			names = append(names, name)
		}
	}
	if lang != "" {
		langRule := "languages/" + lang
		for _, name := range deployer.ListRules() {
			if name == langRule {
				names = append(names, langRule)
				break
			}
		}
	}
	return names
}
