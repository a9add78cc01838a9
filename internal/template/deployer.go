package template

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rulekit-dev/rulekit/internal/defs"
	"github.com/rulekit-dev/rulekit/internal/provider"
)

// rulesDir and entriesDir are the top-level directories of the asset tree.
const (
	rulesDir     = "rules"
	languagesDir = "rules/languages"
	entriesDir   = "entries"
)

// DeployResult lists what a deployment wrote and what it left alone.
type DeployResult struct {
	Files   []string // project-relative paths written
	Skipped []string // project-relative paths skipped because they already exist
}

// Deployer writes embedded rule templates and provider entry files into a
// project. Existing files are skipped unless force is set, so user edits
// survive re-runs; the migration step is responsible for clearing or
// relocating old configuration first.
type Deployer struct {
	fsys     fs.FS
	renderer Renderer
	logger   *slog.Logger
}

// NewDeployer creates a Deployer backed by the given filesystem.
// In production the fs.FS comes from go:embed; in tests use testing/fstest.MapFS.
func NewDeployer(fsys fs.FS, logger *slog.Logger) *Deployer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Deployer{
		fsys:     fsys,
		renderer: NewRenderer(fsys),
		logger:   logger,
	}
}

// Deploy installs the rule set and entry file for one provider. The language
// tag selects an additional language-specific rule when one is shipped.
func (d *Deployer) Deploy(ctx context.Context, projectRoot string, prov provider.Provider, tc *Context, force bool) (*DeployResult, error) {
	projectRoot = filepath.Clean(projectRoot)
	result := &DeployResult{}

	if prov.Kind == provider.KindSingleFile {
		if err := d.deployEntry(ctx, projectRoot, prov.ID, prov.File, tc, force, result); err != nil {
			return nil, err
		}
		d.logger.Info("deployed provider templates", "provider", prov.ID, "files", len(result.Files))
		return result, nil
	}

	ruleNames, err := d.ruleSet(tc.Language)
	if err != nil {
		return nil, err
	}

	destDir := filepath.Join(prov.Dir, defs.RulesSubdir)
	for _, assetPath := range ruleNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(d.fsys, assetPath)
		if err != nil {
			return nil, fmt.Errorf("read rule template %q: %w", assetPath, err)
		}
		relDest := filepath.Join(destDir, path.Base(assetPath))
		if err := d.writeFile(projectRoot, relDest, data, force, result); err != nil {
			return nil, err
		}
	}

	if prov.Entry != "" {
		if err := d.deployEntry(ctx, projectRoot, prov.ID, prov.Entry, tc, force, result); err != nil {
			return nil, err
		}
	}

	d.logger.Info("deployed provider templates",
		"provider", prov.ID,
		"files", len(result.Files),
		"skipped", len(result.Skipped),
	)
	return result, nil
}

// deployEntry renders entries/<id>.md.tmpl and writes it to relDest.
func (d *Deployer) deployEntry(ctx context.Context, projectRoot, providerID, relDest string, tc *Context, force bool, result *DeployResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := path.Join(entriesDir, providerID+".md.tmpl")
	rendered, err := d.renderer.Render(name, tc)
	if err != nil {
		return fmt.Errorf("render entry for %s: %w", providerID, err)
	}

	return d.writeFile(projectRoot, relDest, rendered, force, result)
}

// ruleSet returns the asset paths of the shipped rules: every common rule,
// plus the language rule when one exists for the tag.
func (d *Deployer) ruleSet(lang string) ([]string, error) {
	entries, err := fs.ReadDir(d.fsys, rulesDir)
	if err != nil {
		return nil, fmt.Errorf("read embedded rules: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), defs.MarkdownExt) {
			names = append(names, path.Join(rulesDir, entry.Name()))
		}
	}
	sort.Strings(names)

	if lang != "" {
		langPath := path.Join(languagesDir, lang+defs.MarkdownExt)
		if _, err := fs.Stat(d.fsys, langPath); err == nil {
			names = append(names, langPath)
		}
	}

	return names, nil
}

// writeFile writes data to projectRoot/relDest, creating parents and
// honoring the existing-file protection.
func (d *Deployer) writeFile(projectRoot, relDest string, data []byte, force bool, result *DeployResult) error {
	if err := validateDeployPath(projectRoot, relDest); err != nil {
		return err
	}

	destPath := filepath.Join(projectRoot, relDest)
	if !force {
		if _, err := os.Stat(destPath); err == nil {
			result.Skipped = append(result.Skipped, relDest)
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), defs.DirPerm); err != nil {
		return fmt.Errorf("template deploy mkdir %q: %w", filepath.Dir(destPath), err)
	}
	if err := os.WriteFile(destPath, data, defs.FilePerm); err != nil {
		return fmt.Errorf("template deploy write %q: %w", destPath, err)
	}

	result.Files = append(result.Files, relDest)
	return nil
}

// ListRules returns the names of all shipped rules, common rules first,
// then language rules as "languages/<tag>".
func (d *Deployer) ListRules() []string {
	var list []string

	_ = fs.WalkDir(d.fsys, rulesDir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}
		if !strings.HasSuffix(p, defs.MarkdownExt) {
			return nil
		}
		rel := strings.TrimPrefix(p, rulesDir+"/")
		list = append(list, strings.TrimSuffix(rel, defs.MarkdownExt))
		return nil
	})

	sort.Strings(list)
	return list
}

// RuleContent returns the raw markdown of a shipped rule by its ListRules name.
func (d *Deployer) RuleContent(name string) ([]byte, error) {
	data, err := fs.ReadFile(d.fsys, path.Join(rulesDir, name+defs.MarkdownExt))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return data, nil
}

// validateDeployPath ensures a destination path does not escape projectRoot.
func validateDeployPath(projectRoot, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}
	if strings.HasPrefix(cleaned, "..") || strings.Contains(cleaned, string(filepath.Separator)+"..") {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absProjectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}

	absPath := filepath.Join(absProjectRoot, cleaned)
	if !strings.HasPrefix(absPath, absProjectRoot+string(filepath.Separator)) && absPath != absProjectRoot {
		return fmt.Errorf("%w: %q escapes project root", ErrPathTraversal, relPath)
	}

	return nil
}
