// Package project provides project-level detection for rulekit: locating
// the project root and identifying the primary programming language from
// well-known marker files. Detection is intentionally shallow — a fixed set
// of file-existence checks, never source parsing.
package project

import "errors"

// Sentinel errors for the project package.
var (
	// ErrInvalidRoot indicates the given project root path is invalid or inaccessible.
	ErrInvalidRoot = errors.New("invalid project root path")

	// ErrNoProjectRoot indicates no enclosing project root could be located.
	ErrNoProjectRoot = errors.New("not inside a project (no .git directory found)")
)
