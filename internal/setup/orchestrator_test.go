package setup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/rulekit-dev/rulekit/internal/migrate"
	"github.com/rulekit-dev/rulekit/internal/provider"
	"github.com/rulekit-dev/rulekit/internal/template"
)

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"rules/general.md": &fstest.MapFile{
			Data: []byte("# General\n"),
		},
		"rules/languages/go.md": &fstest.MapFile{
			Data: []byte("# Go\n"),
		},
		"entries/claude.md.tmpl": &fstest.MapFile{
			Data: []byte("# {{.ProjectName}}\n"),
		},
		"entries/codex.md.tmpl": &fstest.MapFile{
			Data: []byte("# Agents\n"),
		},
	}
}

func newOrchestrator(chooser ActionChooser) *Orchestrator {
	return New(
		migrate.NewExecutor(nil, nil),
		template.NewDeployer(testAssets(), nil),
		chooser,
		nil,
	)
}

func mustProviders(t *testing.T, ids ...string) []provider.Provider {
	t.Helper()
	providers, err := provider.Resolve(ids)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	return providers
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
}

func TestRunFreshProject(t *testing.T) {
	root := t.TempDir()
	chooserCalled := false
	o := newOrchestrator(func(provider.Provider) (migrate.Action, error) {
		chooserCalled = true
		return migrate.ActionReplace, nil
	})

	result, err := o.Run(context.Background(), Options{
		ProjectRoot: root,
		ProjectName: "demo",
		Providers:   mustProviders(t, "claude", "codex"),
		Language:    "go",
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if chooserCalled {
		t.Error("chooser must not be consulted when no prior config exists")
	}
	if len(result.Providers) != 2 {
		t.Fatalf("processed %d providers, want 2", len(result.Providers))
	}
	for _, pr := range result.Providers {
		if pr.HadConfig {
			t.Errorf("provider %s: HadConfig = true on fresh project", pr.Provider.ID)
		}
		if pr.Deployed == nil || len(pr.Deployed.Files) == 0 {
			t.Errorf("provider %s: nothing deployed", pr.Provider.ID)
		}
	}

	for _, f := range []string{
		filepath.Join(root, ".claude", "rules", "general.md"),
		filepath.Join(root, ".claude", "rules", "go.md"),
		filepath.Join(root, "CLAUDE.md"),
		filepath.Join(root, "AGENTS.md"),
	} {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("expected %q to exist: %v", f, err)
		}
	}
}

func TestRunMigratesExistingDirectoryConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".claude", "old.md"), "user rule")

	o := newOrchestrator(func(provider.Provider) (migrate.Action, error) {
		return migrate.ActionMigrateSupersede, nil
	})

	result, err := o.Run(context.Background(), Options{
		ProjectRoot: root,
		ProjectName: "demo",
		Providers:   mustProviders(t, "claude"),
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	pr := result.Providers[0]
	if !pr.HadConfig || pr.Action != migrate.ActionMigrateSupersede {
		t.Errorf("unexpected result: %+v", pr)
	}
	if pr.Migration == nil || pr.Migration.FilesMigrated != 1 {
		t.Fatalf("Migration = %+v, want 1 file", pr.Migration)
	}

	// Old rule relocated, fresh templates deployed after migration.
	migrated := filepath.Join(root, ".claude", "rules", "local", "old.md")
	if data, err := os.ReadFile(migrated); err != nil || string(data) != "user rule" {
		t.Errorf("migrated file content = %q, err = %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(root, ".claude", "rules", "general.md")); err != nil {
		t.Errorf("fresh template missing: %v", err)
	}
}

func TestRunReplaceWipesBeforeDeploy(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".claude", "old.md"), "stale")
	writeFile(t, filepath.Join(root, ".claude", "rules", "local", "mine.md"), "override")

	o := newOrchestrator(func(provider.Provider) (migrate.Action, error) {
		return migrate.ActionReplace, nil
	})

	if _, err := o.Run(context.Background(), Options{
		ProjectRoot: root,
		ProjectName: "demo",
		Providers:   mustProviders(t, "claude"),
	}); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	for _, gone := range []string{
		filepath.Join(root, ".claude", "old.md"),
		filepath.Join(root, ".claude", "rules", "local", "mine.md"),
	} {
		if _, err := os.Stat(gone); !os.IsNotExist(err) {
			t.Errorf("%q should be gone, stat err = %v", gone, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, ".claude", "rules", "general.md")); err != nil {
		t.Errorf("fresh template missing: %v", err)
	}
}

func TestRunSkipLeavesConfigUntouched(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".claude", "old.md"), "keep me")

	o := newOrchestrator(func(provider.Provider) (migrate.Action, error) {
		return migrate.ActionSkip, nil
	})

	result, err := o.Run(context.Background(), Options{
		ProjectRoot: root,
		ProjectName: "demo",
		Providers:   mustProviders(t, "claude"),
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	pr := result.Providers[0]
	if pr.Deployed != nil {
		t.Error("skip must not deploy templates")
	}
	if data, err := os.ReadFile(filepath.Join(root, ".claude", "old.md")); err != nil || string(data) != "keep me" {
		t.Errorf("existing config modified: %q, err = %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(root, ".claude", "rules", "general.md")); !os.IsNotExist(err) {
		t.Errorf("templates deployed despite skip, stat err = %v", err)
	}
}

func TestRunSingleFileMigration(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "AGENTS.md"), "my instructions")

	o := newOrchestrator(func(provider.Provider) (migrate.Action, error) {
		return migrate.ActionMigratePreserve, nil
	})

	result, err := o.Run(context.Background(), Options{
		ProjectRoot: root,
		ProjectName: "demo",
		Providers:   mustProviders(t, "codex"),
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	pr := result.Providers[0]
	if pr.FileMigration == nil || !pr.FileMigration.Migrated {
		t.Fatalf("FileMigration = %+v, want migrated", pr.FileMigration)
	}
	if data, err := os.ReadFile(filepath.Join(root, "AGENTS.local.md")); err != nil || string(data) != "my instructions" {
		t.Errorf("override content = %q, err = %v", data, err)
	}
	// Fresh AGENTS.md deployed after the old one moved aside.
	if data, err := os.ReadFile(filepath.Join(root, "AGENTS.md")); err != nil || string(data) != "# Agents\n" {
		t.Errorf("fresh AGENTS.md = %q, err = %v", data, err)
	}
}

func TestRunAbortsOnFirstError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".claude", "old.md"), "x")

	sentinel := errors.New("prompt failed")
	o := newOrchestrator(func(provider.Provider) (migrate.Action, error) {
		return "", sentinel
	})

	_, err := o.Run(context.Background(), Options{
		ProjectRoot: root,
		ProjectName: "demo",
		Providers:   mustProviders(t, "claude", "codex"),
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want wrapped sentinel", err)
	}
	if !strings.Contains(err.Error(), "claude") {
		t.Errorf("error should name the failing provider: %v", err)
	}
	// The aborted run must not have touched the later provider.
	if _, statErr := os.Stat(filepath.Join(root, "AGENTS.md")); !os.IsNotExist(statErr) {
		t.Errorf("later provider was processed after error, stat err = %v", statErr)
	}
}

func TestDefaultChooser(t *testing.T) {
	action, err := DefaultChooser(provider.Provider{})
	if err != nil {
		t.Fatalf("DefaultChooser error: %v", err)
	}
	if action != migrate.ActionReplace {
		t.Errorf("default action = %v, want replace", action)
	}
}
