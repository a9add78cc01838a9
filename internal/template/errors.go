// Package template deploys embedded rule templates and provider entry files
// into a target project. Rule markdown files are copied verbatim; entry
// files ending in .tmpl are rendered with a Context first.
package template

import "errors"

// Sentinel errors for the template package.
var (
	// ErrTemplateNotFound indicates a named template does not exist in the embedded FS.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrMissingTemplateKey indicates template execution referenced an unset key.
	ErrMissingTemplateKey = errors.New("missing template key")

	// ErrPathTraversal indicates a template path would escape the project root.
	ErrPathTraversal = errors.New("template path escapes project root")
)
