package template

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestRendererRender(t *testing.T) {
	fsys := fstest.MapFS{
		"entries/demo.md.tmpl": &fstest.MapFile{
			Data: []byte("project {{.ProjectName}} on {{.Platform}}\n"),
		},
		"entries/join.md.tmpl": &fstest.MapFile{
			Data: []byte("providers: {{join .Providers \", \"}}\n"),
		},
		"entries/broken.md.tmpl": &fstest.MapFile{
			Data: []byte("{{.ProjectName"),
		},
	}
	r := NewRenderer(fsys)

	t.Run("renders_context_fields", func(t *testing.T) {
		tc := NewContext(WithProject("demo", "/tmp/demo"), WithPlatform("linux"))
		out, err := r.Render("entries/demo.md.tmpl", tc)
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if string(out) != "project demo on linux\n" {
			t.Errorf("rendered = %q", out)
		}
	})

	t.Run("join_function", func(t *testing.T) {
		tc := NewContext(WithProviders([]string{"claude", "codex"}))
		out, err := r.Render("entries/join.md.tmpl", tc)
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if !strings.Contains(string(out), "claude, codex") {
			t.Errorf("rendered = %q", out)
		}
	})

	t.Run("missing_template", func(t *testing.T) {
		if _, err := r.Render("entries/absent.md.tmpl", NewContext()); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("err = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("parse_error", func(t *testing.T) {
		if _, err := r.Render("entries/broken.md.tmpl", NewContext()); err == nil {
			t.Error("expected parse error")
		}
	})
}
