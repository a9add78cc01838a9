// Package migrate relocates pre-existing provider configuration into local
// override locations without data loss. It implements the migration step of
// "rulekit init" and "rulekit update": existing rule files are moved into a
// rules/local subdirectory (directory providers) or appended to a .local
// sibling file (single-file providers) before fresh templates are deployed.
//
// Filesystem errors are not translated; they propagate to the caller wrapped
// with operation context only. The package performs no retries and gives no
// transactional guarantee: a failure partway through a migration leaves
// already-moved files in place.
package migrate

import "errors"

// Sentinel errors for the migrate package.
var (
	// ErrUnknownAction indicates an unrecognized migration action value.
	ErrUnknownAction = errors.New("unknown migration action")

	// ErrNotMigration indicates a non-migration action was passed to an
	// executor operation that only handles migrations.
	ErrNotMigration = errors.New("action does not migrate files")
)
