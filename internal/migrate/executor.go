package migrate

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/rulekit-dev/rulekit/internal/defs"
)

// Result summarizes a directory migration. FilesMigrated is the number of
// files actually copied into the override directory; zero means nothing
// matched and no filesystem mutation took place.
type Result struct {
	FilesMigrated int
	Action        Action
	Files         []string // original file names in processing order
}

// FileResult summarizes a single-file migration.
type FileResult struct {
	Migrated bool
	Action   Action
}

// Executor performs migration and removal operations against a filesystem.
type Executor struct {
	fsys   FS
	logger *slog.Logger
}

// NewExecutor creates an Executor. A nil fsys defaults to the real
// filesystem; a nil logger discards output.
func NewExecutor(fsys FS, logger *slog.Logger) *Executor {
	if fsys == nil {
		fsys = OS()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Executor{fsys: fsys, logger: logger}
}

// MigrateDirectory relocates every top-level markdown file of configDir, and
// every markdown file directly under its rules subdirectory, into the
// rules/local override directory.
//
// The caller guarantees configDir exists; a missing directory surfaces as a
// plain filesystem error. With zero matching files this is a no-op: the
// override directory is not created and the returned Result reports zero
// files. When a root-level and a rules-level file share a name, the
// rules-level copy wins (processed second). Known collision, kept for
// compatibility with prior releases.
func (e *Executor) MigrateDirectory(configDir string, action Action) (*Result, error) {
	if !action.IsMigration() {
		return nil, fmt.Errorf("%w: %s", ErrNotMigration, action)
	}

	sources, err := e.collectMarkdownFiles(configDir)
	if err != nil {
		return nil, err
	}

	if len(sources) == 0 {
		e.logger.Info("no rule files to migrate", "dir", configDir)
		return &Result{FilesMigrated: 0, Action: action}, nil
	}

	localDir := filepath.Join(configDir, defs.RulesSubdir, defs.LocalSubdir)
	if err := e.fsys.MkdirAll(localDir, defs.DirPerm); err != nil {
		return nil, fmt.Errorf("create override directory %s: %w", localDir, err)
	}

	result := &Result{Action: action}
	for _, src := range sources {
		name := filepath.Base(src)
		if err := e.moveFile(src, filepath.Join(localDir, name)); err != nil {
			return nil, err
		}
		result.FilesMigrated++
		result.Files = append(result.Files, name)
	}

	e.logger.Info("migrated rule files", "count", result.FilesMigrated, "dest", localDir)
	if action == ActionMigrateSupersede {
		e.logger.Info("migrated rules supersede shipped rules of the same name")
	} else {
		e.logger.Info("migrated rules are preserved alongside shipped rules")
	}

	return result, nil
}

// collectMarkdownFiles lists the migration sources: root-level markdown
// files first, then rules-level markdown files, each tier in directory
// listing order. Only regular files count; subdirectories (including the
// local override directory itself) are left alone.
func (e *Executor) collectMarkdownFiles(configDir string) ([]string, error) {
	entries, err := e.fsys.ReadDir(configDir)
	if err != nil {
		return nil, fmt.Errorf("read config directory %s: %w", configDir, err)
	}

	var sources []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), defs.MarkdownExt) {
			sources = append(sources, filepath.Join(configDir, entry.Name()))
		}
	}

	rulesDir := filepath.Join(configDir, defs.RulesSubdir)
	if info, err := e.fsys.Stat(rulesDir); err == nil && info.IsDir() {
		ruleEntries, err := e.fsys.ReadDir(rulesDir)
		if err != nil {
			return nil, fmt.Errorf("read rules directory %s: %w", rulesDir, err)
		}
		for _, entry := range ruleEntries {
			if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), defs.MarkdownExt) {
				sources = append(sources, filepath.Join(rulesDir, entry.Name()))
			}
		}
	}

	return sources, nil
}

// moveFile copies src to dest and deletes src. There is no rollback: if the
// delete fails after a successful copy, both copies remain.
func (e *Executor) moveFile(src, dest string) error {
	data, err := e.fsys.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if err := e.fsys.WriteFile(dest, data, defs.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := e.fsys.Remove(src); err != nil {
		return fmt.Errorf("remove %s: %w", src, err)
	}
	return nil
}

// MigrateSingleFile relocates a flat configuration file into its local
// override sibling under projectRoot (e.g. AGENTS.md -> AGENTS.local.md).
//
// When the override file already exists, the source content is appended
// after a separator comment; the existing content is never truncated. This
// is how a user's override file accumulates history across repeated update
// runs. The source file is deleted after a successful write.
func (e *Executor) MigrateSingleFile(sourcePath, projectRoot, localName string, action Action) (*FileResult, error) {
	if !action.IsMigration() {
		return nil, fmt.Errorf("%w: %s", ErrNotMigration, action)
	}

	destPath := filepath.Join(projectRoot, localName)
	srcData, err := e.fsys.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sourcePath, err)
	}

	if destData, err := e.fsys.ReadFile(destPath); err == nil {
		combined := make([]byte, 0, len(destData)+len(defs.MigrationSeparator)+len(srcData))
		combined = append(combined, destData...)
		combined = append(combined, defs.MigrationSeparator...)
		combined = append(combined, srcData...)
		if err := e.fsys.WriteFile(destPath, combined, defs.FilePerm); err != nil {
			return nil, fmt.Errorf("append to %s: %w", destPath, err)
		}
		e.logger.Info("appended existing configuration to override file", "dest", destPath)
	} else {
		if err := e.fsys.WriteFile(destPath, srcData, defs.FilePerm); err != nil {
			return nil, fmt.Errorf("write %s: %w", destPath, err)
		}
		e.logger.Info("moved configuration to override file", "dest", destPath)
	}

	if err := e.fsys.Remove(sourcePath); err != nil {
		return nil, fmt.Errorf("remove %s: %w", sourcePath, err)
	}

	return &FileResult{Migrated: true, Action: action}, nil
}

// RemoveFile deletes a single configuration file. Used for the replace
// action on single-file providers.
func (e *Executor) RemoveFile(path string) error {
	if err := e.fsys.Remove(path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	e.logger.Info("removed existing configuration file", "path", path)
	return nil
}

// RemoveAll deletes every direct child of configDir, files and directories
// alike. The local override directory gets no special treatment: replace
// means discard everything, prior overrides included.
func (e *Executor) RemoveAll(configDir string) error {
	entries, err := e.fsys.ReadDir(configDir)
	if err != nil {
		return fmt.Errorf("read config directory %s: %w", configDir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(configDir, entry.Name())
		if err := e.fsys.RemoveAll(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}

	e.logger.Info("removed existing configuration", "dir", configDir, "entries", len(entries))
	return nil
}
