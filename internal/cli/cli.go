// Package cli implements the envgraph command-line interface.
//
// This package provides the generate command that scans a repository for
// environment definitions and produces the dependency graph and cluster
// report artifacts. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// Running envgraph with no arguments generates all artifacts for the current
// directory. The explicit commands are:
//   - generate: Scan a repository root and write graph + report files
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Warnings about
// recoverable input gaps (missing referenced requirement files, absent readme
// markers) go to stderr and never change the exit code.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/envgraph/envgraph/pkg/buildinfo"
)

// appName is the application name used for display and the config file.
const appName = "envgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Invoking the root command without arguments runs generate on the current
// directory.
func (c *CLI) RootCommand() *cobra.Command {
	gen := c.generateCommand()

	root := &cobra.Command{
		Use:           appName,
		Short:         "envgraph maps shared dependencies across repository environments",
		Long:          `envgraph scans a repository for environment definitions, clusters packages by the environments that share them, flags version drift, and writes a Mermaid dependency graph plus a cluster report.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          gen.RunE,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.Flags().AddFlagSet(gen.Flags())

	root.AddCommand(gen)
	root.AddCommand(c.completionCommand())

	return root
}
