// Package cli wires the rulekit command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rulekit-dev/rulekit/internal/ui"
	"github.com/rulekit-dev/rulekit/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "rulekit",
	Short: "rulekit: scaffold AI assistant rules into your project",
	Long: `rulekit detects your project's language and installs a curated set of
rule files for AI coding assistants (Claude Code, Cursor, Windsurf, Codex).

Existing configuration is never destroyed silently: rulekit offers to
migrate it into a local override location before installing fresh rules.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("rulekit %s\n", version.GetVersion()))
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

// newLogger builds the slog logger for a command invocation. Debug level
// with --verbose, otherwise warnings only; output goes to stderr so it
// never mixes with command output.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if getBoolFlag(cmd, "verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// getBoolFlag reads a bool flag, treating lookup errors as false.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	return err == nil && v
}

// symbols for result summaries.
func symSuccess() string { return ui.StyleSuccess.Render("✓") }
func symSkipped() string { return ui.StyleMuted.Render("-") }

// discardLogger is used by commands that only need a logger for wiring.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
