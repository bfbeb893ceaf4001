package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/envgraph/envgraph/pkg/config"
	"github.com/envgraph/envgraph/pkg/pipeline"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		formatsStr string
		noInject   bool
	)

	cmd := &cobra.Command{
		Use:   "generate [root]",
		Short: "Scan environments and write dependency graph artifacts",
		Long: `Scan a repository root for environment definitions and write the
dependency graph and cluster report.

Each top-level directory containing an environment.yml contributes one
environment; pip "-r" references are resolved into the environment's package
set. Packages are clustered by the exact set of environments declaring them,
and packages whose pinned version differs across environments are flagged as
drift.

Outputs default to diagrams/dependency-graph.mmd and
diagrams/dependency-clusters.txt, and the Mermaid graph is injected into
README.md between the DEP_GRAPH markers when present. Settings can be
overridden with an envgraph.toml at the root.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			opts, err := c.buildOptions(root, formatsStr, noInject)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "graph format(s): mermaid (default), dot, svg (comma-separated)")
	cmd.Flags().BoolVar(&noInject, "no-inject", false, "skip readme injection")

	return cmd
}

// buildOptions loads the root's configuration and assembles pipeline options.
func (c *CLI) buildOptions(root, formatsStr string, noInject bool) (pipeline.Options, error) {
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Root:       root,
		Config:     cfg,
		Formats:    parseFormats(formatsStr),
		SkipInject: noInject,
		Logger:     c.Logger,
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// runGenerate executes the pipeline and reports the outcome.
func (c *CLI) runGenerate(cmd *cobra.Command, opts pipeline.Options) error {
	spinner := newSpinnerWithContext(cmd.Context(), "Scanning environments...")
	spinner.Start()

	runner := pipeline.NewRunner(c.Logger)
	result, err := runner.Execute(cmd.Context(), opts)

	spinner.Stop()
	if err != nil {
		return err
	}

	printSuccess("Generated dependency graph for %d environments", result.Stats.EnvCount)
	printStats(result.Stats.ClusterCount, result.Stats.PackageCount, result.Stats.DriftCount)
	for _, path := range result.Files {
		printFile(path)
	}
	if result.Injected {
		printDetail("updated %s", opts.Config.Output.Readme)
	} else if !opts.SkipInject && opts.Config.Output.Readme != "" {
		printWarning("readme not updated (missing file or markers)")
	}

	return nil
}

// parseFormats splits a comma-separated format list, defaulting to mermaid.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatMermaid}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return []string{pipeline.FormatMermaid}
	}
	return formats
}
