// Package defs holds file and directory name constants shared across rulekit.
package defs

import "io/fs"

// Common file and directory names used across the project.
const (
	// RulekitYAML is the rulekit project configuration file.
	RulekitYAML = ".rulekit.yaml"

	// RulesSubdir is the rules subdirectory inside a provider configuration directory.
	RulesSubdir = "rules"

	// LocalSubdir is the user override subdirectory nested under the rules directory.
	// Files placed here survive template updates and take precedence over
	// shipped rules of the same name (by convention, not by merge logic).
	LocalSubdir = "local"

	// MarkdownExt is the extension of rule files.
	MarkdownExt = ".md"

	// AgentsMD is the single-file configuration used by file-based providers.
	AgentsMD = "AGENTS.md"

	// AgentsLocalMD is the local override sibling of AGENTS.md.
	AgentsLocalMD = "AGENTS.local.md"

	// ClaudeMD is the Claude Code entry file written at the project root.
	ClaudeMD = "CLAUDE.md"
)

// Provider configuration directory names.
const (
	ClaudeDir   = ".claude"
	CursorDir   = ".cursor"
	WindsurfDir = ".windsurf"
)

// MigrationSeparator is inserted between the existing override content and
// newly migrated content when a single-file migration appends.
const MigrationSeparator = "\n\n<!-- rulekit: migrated from previous configuration -->\n\n"

// Default permissions for created files and directories.
const (
	DirPerm  fs.FileMode = 0o755
	FilePerm fs.FileMode = 0o644
)
