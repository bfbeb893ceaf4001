// Package pipeline provides the scan → cluster → render pipeline for envgraph.
//
// This package implements the complete run that the CLI executes: discover
// environments, compute the cluster partition and version index, render the
// graph and report artifacts, write them to the diagrams directory, and
// inject the graph into the readme. Centralizing this logic keeps the CLI a
// thin flag-parsing layer.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Scan: Resolve environment definitions into package maps
//  2. Cluster: Partition packages by declaring environment set, index versions
//  3. Render: Produce Mermaid (always), plus optional DOT/SVG, and write files
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{Root: ".", Config: config.Default()}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/envgraph/envgraph/pkg/cluster"
	"github.com/envgraph/envgraph/pkg/config"
	"github.com/envgraph/envgraph/pkg/envscan"
	"github.com/envgraph/envgraph/pkg/errors"
)

// Graph output formats.
const (
	FormatMermaid = "mermaid"
	FormatDOT     = "dot"
	FormatSVG     = "svg"
)

// ValidFormats is the set of supported graph formats.
var ValidFormats = map[string]bool{
	FormatMermaid: true,
	FormatDOT:     true,
	FormatSVG:     true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: mermaid, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options contains all configuration for a pipeline run.
type Options struct {
	// Root is the repository root to scan. Defaults to ".".
	Root string

	// Config holds scan and output settings, typically loaded from
	// envgraph.toml at the root.
	Config config.Config

	// Formats are the graph formats to produce. Mermaid is always rendered
	// (the readme injection needs it); dot and svg are additional artifacts.
	Formats []string

	// SkipInject disables readme injection even when the config names a
	// readme file.
	SkipInject bool

	// Logger receives progress and warnings. Defaults to a discarding logger.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Root == "" {
		o.Root = "."
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatMermaid}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Config.Output.Dir == "" {
		o.Config = config.Default()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// scanOptions translates the scan configuration into envscan options, routing
// loader warnings through the pipeline logger.
func (o *Options) scanOptions() envscan.Options {
	return envscan.Options{
		IgnoreDirs:          o.Config.Scan.IgnoreDirs,
		ExcludeNames:        o.Config.Scan.ExcludeNames,
		PlaceholderPatterns: o.Config.Scan.PlaceholderPatterns,
		Warn:                o.Logger.Warnf,
	}
}

// wantsFormat reports whether format was requested.
func (o *Options) wantsFormat(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Environments maps environment names to their resolved package maps.
	Environments map[string]envscan.Packages

	// Clusters is the partition of packages by declaring environment set.
	Clusters []cluster.Cluster

	// Index is the version index used for drift detection.
	Index cluster.VersionIndex

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Files lists the paths written, in write order.
	Files []string

	// Injected reports whether the readme received the graph block.
	Injected bool

	// Stats contains counts and timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EnvCount     int
	ClusterCount int
	PackageCount int
	DriftCount   int
	ScanTime     time.Duration
	RenderTime   time.Duration
}
