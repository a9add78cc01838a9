package template

import (
	"runtime"
	"time"
)

// Context provides data for rendering provider entry templates.
// All fields are exported for use with Go's text/template package.
type Context struct {
	ProjectName  string
	ProjectRoot  string
	Language     string // detected language tag, e.g. "go"; may be empty
	LanguageName string // display name, e.g. "Go"
	Providers    []string

	Version   string // rulekit version
	Platform  string // "darwin", "linux", "windows"
	CreatedAt string // RFC 3339 timestamp
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// NewContext creates a Context with defaults, then applies options.
func NewContext(opts ...ContextOption) *Context {
	ctx := &Context{
		Platform:  runtime.GOOS,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// WithProject sets project-related fields.
func WithProject(name, root string) ContextOption {
	return func(c *Context) {
		c.ProjectName = name
		c.ProjectRoot = root
	}
}

// WithLanguage sets the detected language tag and its display name.
func WithLanguage(tag, displayName string) ContextOption {
	return func(c *Context) {
		c.Language = tag
		c.LanguageName = displayName
	}
}

// WithProviders sets the selected provider IDs.
func WithProviders(ids []string) ContextOption {
	return func(c *Context) {
		c.Providers = ids
	}
}

// WithVersion sets the rulekit version.
func WithVersion(v string) ContextOption {
	return func(c *Context) {
		c.Version = v
	}
}

// WithPlatform overrides the target platform.
func WithPlatform(platform string) ContextOption {
	return func(c *Context) {
		c.Platform = platform
	}
}
