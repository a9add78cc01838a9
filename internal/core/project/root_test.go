package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot(t *testing.T) {
	t.Run("finds_git_root_from_subdirectory", func(t *testing.T) {
		root := t.TempDir()
		if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
			t.Fatalf("MkdirAll error: %v", err)
		}
		sub := filepath.Join(root, "internal", "deep")
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatalf("MkdirAll error: %v", err)
		}

		got, err := FindRoot(sub)
		if err != nil {
			t.Fatalf("FindRoot error: %v", err)
		}
		// Resolve symlinks so macOS /private/var tmp dirs compare equal.
		wantResolved, _ := filepath.EvalSymlinks(root)
		gotResolved, _ := filepath.EvalSymlinks(got)
		if gotResolved != wantResolved {
			t.Errorf("FindRoot = %q, want %q", gotResolved, wantResolved)
		}
	})

	t.Run("errors_outside_a_project", func(t *testing.T) {
		if _, err := FindRoot(t.TempDir()); !errors.Is(err, ErrNoProjectRoot) {
			t.Errorf("err = %v, want ErrNoProjectRoot", err)
		}
	})
}

func TestFindRootOrCurrent(t *testing.T) {
	dir := t.TempDir()
	got, err := FindRootOrCurrent(dir)
	if err != nil {
		t.Fatalf("FindRootOrCurrent error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("FindRootOrCurrent = %q, want absolute path", got)
	}
}
