// Package provider defines the AI coding assistants rulekit can scaffold
// configuration for, along with each provider's filesystem convention.
package provider

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rulekit-dev/rulekit/internal/defs"
)

// Kind describes how a provider stores its configuration.
type Kind int

const (
	// KindDirectory providers keep a configuration directory with rule
	// markdown files at its root and under a rules subdirectory.
	KindDirectory Kind = iota

	// KindSingleFile providers keep one flat markdown file at the project root.
	KindSingleFile
)

// Provider describes one supported AI coding assistant.
type Provider struct {
	ID   string // stable identifier used in flags and config
	Name string // display name
	Kind Kind

	// Dir is the configuration directory name for KindDirectory providers.
	Dir string

	// File and LocalFile are the configuration file and its override
	// sibling for KindSingleFile providers.
	File      string
	LocalFile string

	// Entry is an optional markdown entry file written at the project root
	// (e.g. CLAUDE.md for Claude Code).
	Entry string
}

// ErrUnknownProvider indicates a provider ID that is not registered.
var ErrUnknownProvider = errors.New("unknown provider")

// registry lists supported providers in deterministic setup order.
var registry = []Provider{
	{
		ID:    "claude",
		Name:  "Claude Code",
		Kind:  KindDirectory,
		Dir:   defs.ClaudeDir,
		Entry: defs.ClaudeMD,
	},
	{
		ID:   "cursor",
		Name: "Cursor",
		Kind: KindDirectory,
		Dir:  defs.CursorDir,
	},
	{
		ID:   "windsurf",
		Name: "Windsurf",
		Kind: KindDirectory,
		Dir:  defs.WindsurfDir,
	},
	{
		ID:        "codex",
		Name:      "Codex",
		Kind:      KindSingleFile,
		File:      defs.AgentsMD,
		LocalFile: defs.AgentsLocalMD,
	},
}

// All returns every registered provider in setup order.
func All() []Provider {
	out := make([]Provider, len(registry))
	copy(out, registry)
	return out
}

// IDs returns the registered provider IDs in setup order.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, p := range registry {
		ids[i] = p.ID
	}
	return ids
}

// ByID looks up a provider by its identifier.
func ByID(id string) (Provider, error) {
	for _, p := range registry {
		if p.ID == id {
			return p, nil
		}
	}
	return Provider{}, fmt.Errorf("%w: %q", ErrUnknownProvider, id)
}

// Resolve maps a list of IDs to providers, preserving registry order rather
// than input order so setup always runs providers deterministically.
func Resolve(ids []string) ([]Provider, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, err := ByID(id); err != nil {
			return nil, err
		}
		want[id] = true
	}

	var out []Provider
	for _, p := range registry {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

// ConfigPath returns the path whose existence signals a previous setup:
// the configuration directory for directory providers, the flat file for
// single-file providers.
func (p Provider) ConfigPath(projectRoot string) string {
	if p.Kind == KindSingleFile {
		return filepath.Join(projectRoot, p.File)
	}
	return filepath.Join(projectRoot, p.Dir)
}

// RulesDir returns the directory that receives shipped rule templates.
// Only meaningful for directory providers.
func (p Provider) RulesDir(projectRoot string) string {
	return filepath.Join(projectRoot, p.Dir, defs.RulesSubdir)
}

// String returns the provider ID.
func (p Provider) String() string {
	return p.ID
}
