// Package setup orchestrates provider configuration: for each selected
// provider it resolves what to do with pre-existing configuration (via an
// injected action chooser), runs the migration or removal, and then deploys
// fresh templates. Providers are processed strictly sequentially in
// selection order; the first error aborts the whole run.
package setup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rulekit-dev/rulekit/internal/core/project"
	"github.com/rulekit-dev/rulekit/internal/migrate"
	"github.com/rulekit-dev/rulekit/internal/provider"
	"github.com/rulekit-dev/rulekit/internal/template"
	"github.com/rulekit-dev/rulekit/pkg/version"
)

// ActionChooser resolves the migration action for a provider whose
// configuration already exists. Interactive wiring prompts the user;
// non-interactive wiring must return a deterministic default — the decision
// is never skipped silently.
type ActionChooser func(prov provider.Provider) (migrate.Action, error)

// DefaultChooser returns the non-interactive default action for every provider.
func DefaultChooser(provider.Provider) (migrate.Action, error) {
	return migrate.DefaultAction, nil
}

// Options configures a setup run.
type Options struct {
	ProjectRoot string
	ProjectName string
	Providers   []provider.Provider
	Language    string // detected language tag, may be empty
	Force       bool   // overwrite existing template files on deploy
}

// ProviderResult records what happened for one provider.
type ProviderResult struct {
	Provider      provider.Provider
	HadConfig     bool
	Action        migrate.Action // zero value when no prior config existed
	Migration     *migrate.Result
	FileMigration *migrate.FileResult
	Deployed      *template.DeployResult // nil when the provider was skipped
}

// RunResult aggregates per-provider outcomes in processing order.
type RunResult struct {
	Providers []ProviderResult
}

// Orchestrator wires the migration executor and template deployer together.
type Orchestrator struct {
	exec     *migrate.Executor
	deployer *template.Deployer
	chooser  ActionChooser
	logger   *slog.Logger
}

// New creates an Orchestrator. A nil chooser falls back to DefaultChooser;
// a nil logger discards output.
func New(exec *migrate.Executor, deployer *template.Deployer, chooser ActionChooser, logger *slog.Logger) *Orchestrator {
	if chooser == nil {
		chooser = DefaultChooser
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{
		exec:     exec,
		deployer: deployer,
		chooser:  chooser,
		logger:   logger,
	}
}

// Run processes every provider in order. For each: existing configuration
// is migrated or removed per the chosen action before any template is
// copied, so old and new files never interleave.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*RunResult, error) {
	tc := template.NewContext(
		template.WithProject(opts.ProjectName, opts.ProjectRoot),
		template.WithLanguage(opts.Language, project.DisplayName(opts.Language)),
		template.WithProviders(providerIDs(opts.Providers)),
		template.WithVersion(version.GetVersion()),
	)

	result := &RunResult{}
	for _, prov := range opts.Providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pr, err := o.runProvider(ctx, prov, opts, tc)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", prov.ID, err)
		}
		result.Providers = append(result.Providers, *pr)
	}

	return result, nil
}

// runProvider handles migration and deployment for a single provider.
func (o *Orchestrator) runProvider(ctx context.Context, prov provider.Provider, opts Options, tc *template.Context) (*ProviderResult, error) {
	pr := &ProviderResult{Provider: prov}

	configPath := prov.ConfigPath(opts.ProjectRoot)
	if _, err := os.Stat(configPath); err == nil {
		pr.HadConfig = true

		action, err := o.chooser(prov)
		if err != nil {
			return nil, fmt.Errorf("choose action: %w", err)
		}
		pr.Action = action
		o.logger.Info("existing configuration found", "provider", prov.ID, "action", action)

		if err := o.applyAction(prov, configPath, opts.ProjectRoot, action, pr); err != nil {
			return nil, err
		}
		if action == migrate.ActionSkip {
			return pr, nil
		}
	}

	deployed, err := o.deployer.Deploy(ctx, opts.ProjectRoot, prov, tc, opts.Force)
	if err != nil {
		return nil, fmt.Errorf("deploy templates: %w", err)
	}
	pr.Deployed = deployed

	return pr, nil
}

// applyAction dispatches the chosen action to the migration executor.
func (o *Orchestrator) applyAction(prov provider.Provider, configPath, projectRoot string, action migrate.Action, pr *ProviderResult) error {
	switch action {
	case migrate.ActionSkip:
		return nil

	case migrate.ActionReplace:
		if prov.Kind == provider.KindSingleFile {
			return o.exec.RemoveFile(configPath)
		}
		return o.exec.RemoveAll(configPath)

	case migrate.ActionMigrateSupersede, migrate.ActionMigratePreserve:
		if prov.Kind == provider.KindSingleFile {
			res, err := o.exec.MigrateSingleFile(configPath, projectRoot, prov.LocalFile, action)
			if err != nil {
				return err
			}
			pr.FileMigration = res
			return nil
		}
		res, err := o.exec.MigrateDirectory(configPath, action)
		if err != nil {
			return err
		}
		pr.Migration = res
		return nil
	}

	return fmt.Errorf("%w: %s", migrate.ErrUnknownAction, action)
}

// providerIDs extracts the ID list in processing order.
func providerIDs(providers []provider.Provider) []string {
	ids := make([]string, len(providers))
	for i, p := range providers {
		ids[i] = p.ID
	}
	return ids
}
