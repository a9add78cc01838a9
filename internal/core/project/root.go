package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindRoot locates the project root by searching upward from start for a
// .git directory. Returns the absolute path of the root, or ErrNoProjectRoot.
func FindRoot(start string) (string, error) {
	absDir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		gitPath := filepath.Join(absDir, ".git")
		if info, err := os.Stat(gitPath); err == nil && info.IsDir() {
			return absDir, nil
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return "", fmt.Errorf("%w: searched from %s", ErrNoProjectRoot, start)
		}
		absDir = parent
	}
}

// FindRootOrCurrent is like FindRoot but falls back to the starting
// directory when no enclosing project is found. Setup can run in a fresh
// directory that is not yet a git repository.
func FindRootOrCurrent(start string) (string, error) {
	if root, err := FindRoot(start); err == nil {
		return root, nil
	}
	return filepath.Abs(start)
}
