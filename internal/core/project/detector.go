package project

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Detector identifies the primary programming language of a project from
// marker files at its root.
type Detector struct {
	logger *slog.Logger
}

// NewDetector creates a Detector. A nil logger discards output.
func NewDetector(logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Detector{logger: logger}
}

// marker maps a root-level file to a language tag.
type marker struct {
	file string
	lang string
}

// markers is checked in order; the first hit wins. tsconfig.json is checked
// before package.json so TypeScript projects are not reported as JavaScript.
var markers = []marker{
	{"tsconfig.json", "typescript"},
	{"package.json", "javascript"},
	{"go.mod", "go"},
	{"Cargo.toml", "rust"},
	{"pyproject.toml", "python"},
	{"requirements.txt", "python"},
	{"Gemfile", "ruby"},
	{"pom.xml", "java"},
	{"build.gradle", "java"},
}

// DetectLanguage returns the language tag for the project at root, or an
// empty string when no marker file is present.
func (d *Detector) DetectLanguage(root string) (string, error) {
	root = filepath.Clean(root)
	if err := validateRoot(root); err != nil {
		return "", err
	}

	for _, m := range markers {
		path := filepath.Join(root, m.file)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			d.logger.Debug("language detected", "language", m.lang, "marker", m.file)
			return m.lang, nil
		}
	}

	d.logger.Debug("no language detected", "root", root)
	return "", nil
}

// Known returns the set of language tags the detector can report.
func Known() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, m := range markers {
		if !seen[m.lang] {
			seen[m.lang] = true
			tags = append(tags, m.lang)
		}
	}
	return tags
}

// displayNames covers tags whose conventional casing is not a plain title.
var displayNames = map[string]string{
	"typescript": "TypeScript",
	"javascript": "JavaScript",
}

// DisplayName renders a language tag for human-readable output.
func DisplayName(tag string) string {
	if name, ok := displayNames[tag]; ok {
		return name
	}
	return cases.Title(language.English).String(tag)
}

// validateRoot checks that the root path is a valid, accessible directory.
func validateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRoot, root)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}
	return nil
}
