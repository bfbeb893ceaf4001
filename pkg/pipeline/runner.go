package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/envgraph/envgraph/pkg/cluster"
	"github.com/envgraph/envgraph/pkg/envscan"
	"github.com/envgraph/envgraph/pkg/errors"
	"github.com/envgraph/envgraph/pkg/observability"
	"github.com/envgraph/envgraph/pkg/render/mermaid"
	"github.com/envgraph/envgraph/pkg/render/nodelink"
	"github.com/envgraph/envgraph/pkg/render/report"
)

// Runner executes the scan → cluster → render pipeline.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results, so the same Runner can serve multiple runs with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner with the given logger.
// If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete pipeline: scan environments, compute the cluster
// partition, render and write all artifacts, and inject the graph into the
// readme. The run fails with a NO_ENVIRONMENTS error when nothing qualifies
// after filtering.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Scan
	scanStart := time.Now()
	observability.Run().OnScanStart(ctx, opts.Root)
	envs, err := envscan.Scan(opts.Root, opts.scanOptions())
	result.Stats.ScanTime = time.Since(scanStart)
	observability.Run().OnScanComplete(ctx, opts.Root, len(envs), result.Stats.ScanTime, err)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(envs) == 0 {
		return nil, errors.New(errors.ErrCodeNoEnvironments, "no environments found under %s", opts.Root)
	}
	result.Environments = envs
	result.Stats.EnvCount = len(envs)

	r.Logger.Info("scanned environments",
		"environments", len(envs),
		"duration", result.Stats.ScanTime)

	// Stage 2: Cluster
	result.Clusters = cluster.Partition(envs)
	result.Index = cluster.Index(envs)
	result.Stats.ClusterCount = len(result.Clusters)
	result.Stats.PackageCount = len(result.Index)
	for pkg := range result.Index {
		if result.Index.Drift(pkg) {
			result.Stats.DriftCount++
		}
	}
	observability.Run().OnClusterComplete(ctx,
		result.Stats.ClusterCount, result.Stats.PackageCount, result.Stats.DriftCount)

	r.Logger.Info("computed clusters",
		"clusters", result.Stats.ClusterCount,
		"packages", result.Stats.PackageCount,
		"drift", result.Stats.DriftCount)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Run().OnRenderStart(ctx, opts.Formats)
	err = r.render(result, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Run().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	// Stage 4: Write
	if err := r.write(ctx, result, opts); err != nil {
		return nil, err
	}

	if opts.Config.Output.Readme != "" && !opts.SkipInject {
		injected, err := r.inject(result, opts)
		if err != nil {
			return nil, err
		}
		result.Injected = injected
	}

	return result, nil
}

// render produces all requested artifacts. Mermaid is always rendered since
// the graph file and the readme injection both consume it.
func (r *Runner) render(result *Result, opts Options) error {
	result.Artifacts[FormatMermaid] = []byte(mermaid.Render(result.Clusters, result.Index))

	if opts.wantsFormat(FormatDOT) || opts.wantsFormat(FormatSVG) {
		dot := nodelink.ToDOT(result.Clusters, result.Index)
		if opts.wantsFormat(FormatDOT) {
			result.Artifacts[FormatDOT] = []byte(dot)
		}
		if opts.wantsFormat(FormatSVG) {
			svg, err := nodelink.RenderSVG(dot)
			if err != nil {
				return errors.Wrap(errors.ErrCodeRenderFailed, err, "cannot render SVG")
			}
			result.Artifacts[FormatSVG] = svg
		}
	}

	result.Artifacts["report"] = []byte(report.Render(result.Clusters))
	return nil
}

// artifact file names per format, derived from the configured graph name.
func (o *Options) artifactName(format string) string {
	base := o.Config.Output.Graph
	switch format {
	case FormatMermaid:
		return base
	case "report":
		return o.Config.Output.Report
	default:
		ext := filepath.Ext(base)
		return base[:len(base)-len(ext)] + "." + format
	}
}

// write persists all rendered artifacts under the configured output
// directory.
func (r *Runner) write(ctx context.Context, result *Result, opts Options) error {
	outDir := filepath.Join(opts.Root, opts.Config.Output.Dir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "cannot create %s", outDir)
	}

	// Deterministic write order: graph formats as requested, report last.
	names := []string{FormatMermaid}
	for _, f := range opts.Formats {
		if f != FormatMermaid {
			names = append(names, f)
		}
	}
	names = append(names, "report")

	for _, name := range names {
		data, ok := result.Artifacts[name]
		if !ok {
			continue
		}
		path := filepath.Join(outDir, opts.artifactName(name))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeWriteFailed, err, "cannot write %s", path)
		}
		observability.Run().OnWrite(ctx, path, len(data))
		result.Files = append(result.Files, path)
	}
	return nil
}

// inject updates the readme with the Mermaid graph block.
func (r *Runner) inject(result *Result, opts Options) (bool, error) {
	readme := filepath.Join(opts.Root, opts.Config.Output.Readme)
	return injectGraph(readme,
		opts.Config.Output.MarkerStart,
		opts.Config.Output.MarkerEnd,
		string(result.Artifacts[FormatMermaid]),
		r.Logger)
}

// applyLogger propagates the runner's logger to options that don't carry one.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
