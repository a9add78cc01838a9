package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		want    string
	}{
		{"go_project", []string{"go.mod"}, "go"},
		{"python_requirements", []string{"requirements.txt"}, "python"},
		{"python_pyproject", []string{"pyproject.toml"}, "python"},
		{"javascript", []string{"package.json"}, "javascript"},
		{"typescript_beats_javascript", []string{"package.json", "tsconfig.json"}, "typescript"},
		{"rust", []string{"Cargo.toml"}, "rust"},
		{"java_maven", []string{"pom.xml"}, "java"},
		{"none", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, f := range tt.files {
				touch(t, filepath.Join(root, f))
			}

			d := NewDetector(nil)
			got, err := d.DetectLanguage(root)
			if err != nil {
				t.Fatalf("DetectLanguage error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectLanguage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectLanguageIgnoresDirectoryMarkers(t *testing.T) {
	root := t.TempDir()
	// A directory named go.mod must not count as a marker.
	if err := os.MkdirAll(filepath.Join(root, "go.mod"), 0o755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}

	d := NewDetector(nil)
	got, err := d.DetectLanguage(root)
	if err != nil {
		t.Fatalf("DetectLanguage error: %v", err)
	}
	if got != "" {
		t.Errorf("DetectLanguage = %q, want empty", got)
	}
}

func TestDetectLanguageInvalidRoot(t *testing.T) {
	d := NewDetector(nil)
	if _, err := d.DetectLanguage(filepath.Join(t.TempDir(), "absent")); !errors.Is(err, ErrInvalidRoot) {
		t.Errorf("err = %v, want ErrInvalidRoot", err)
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"go":         "Go",
		"python":     "Python",
		"typescript": "TypeScript",
		"javascript": "JavaScript",
		"rust":       "Rust",
	}
	for tag, want := range tests {
		if got := DisplayName(tag); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", tag, got, want)
		}
	}
}

func TestKnownHasNoDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for _, tag := range Known() {
		if seen[tag] {
			t.Errorf("duplicate tag %q", tag)
		}
		seen[tag] = true
	}
}
