package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"titanic/domain/core"
	"titanic/domain/passenger"
	"titanic/internal"
	"titanic/internal/analysis"
	"titanic/internal/errors"
	"titanic/internal/loader"
	"titanic/internal/report"
	"titanic/internal/run"
	"titanic/internal/visualize"
)

// Artifact file names inside the output directory.
const (
	ReportFile     = "report.txt"
	HTMLReportFile = "report.html"

	stagingPrefix = ".staging-"
)

// Options configures one pipeline run
type Options struct {
	InputPath     string
	OutputDir     string
	HistogramBins int
	HTML          bool
}

// Result is what a successful run produced
type Result struct {
	Table    *passenger.Table
	Summary  analysis.Summary
	Charts   *visualize.Charts
	Manifest *run.Manifest
	Report   []byte
}

// Pipeline runs load, analyze, report and visualize in order
type Pipeline struct {
	logger       *internal.Logger
	renderCharts func(ctx context.Context, t *passenger.Table, bins int, dir string) (*visualize.Charts, error)
}

// New creates a pipeline
func New(logger *internal.Logger) *Pipeline {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Pipeline{
		logger: logger,
		renderCharts: func(ctx context.Context, t *passenger.Table, bins int, dir string) (*visualize.Charts, error) {
			return visualize.NewRenderer(bins, logger).Render(ctx, t, dir)
		},
	}
}

// Run executes the whole pipeline. Artifacts are staged in a temporary
// directory under opts.OutputDir and only moved into place once every stage
// succeeded, so a failed run leaves earlier artifacts untouched. The
// manifest is written last.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	log := p.logger.Named("Pipeline")

	if opts.OutputDir == "" {
		return nil, errors.ConfigInvalid("output directory is required")
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, errors.OutputError(opts.OutputDir, err)
	}

	table, err := loader.New(p.logger).Load(ctx, opts.InputPath)
	if err != nil {
		return nil, err
	}
	inputHash, err := core.HashFile(opts.InputPath)
	if err != nil {
		return nil, errors.WithCode(errors.CodeDataLoad, err)
	}

	summary := analysis.Analyze(table)
	manifest := run.NewManifest(run.Input{Path: opts.InputPath, SHA256: inputHash, Rows: table.Len()}, opts.HistogramBins)
	log.Debug("run %s started", manifest.RunID)

	staging, err := os.MkdirTemp(opts.OutputDir, stagingPrefix)
	if err != nil {
		return nil, errors.OutputError(opts.OutputDir, err)
	}
	defer os.RemoveAll(staging)

	reportPath := filepath.Join(staging, ReportFile)
	if err := report.WriteText(reportPath, summary); err != nil {
		return nil, err
	}
	if err := manifest.AddArtifact(core.ArtifactReport, reportPath); err != nil {
		return nil, err
	}
	log.Debug("staged %s", reportPath)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	charts, err := p.renderCharts(ctx, table, opts.HistogramBins, staging)
	if err != nil {
		return nil, err
	}
	manifest.AgeHistogram = charts.AgeHistogram
	manifest.FareSummaries = charts.FareSummaries
	chartKinds := []core.ArtifactKind{core.ArtifactAgeHistogram, core.ArtifactFareBoxPlot}
	for i, path := range charts.Files {
		if err := manifest.AddArtifact(chartKinds[i], path); err != nil {
			return nil, err
		}
	}
	log.Debug("staged %d charts", len(charts.Files))

	if opts.HTML {
		htmlPath := filepath.Join(staging, HTMLReportFile)
		if err := report.WriteHTML(htmlPath, summary, chartNames(charts.Files)); err != nil {
			return nil, err
		}
		if err := manifest.AddArtifact(core.ArtifactHTMLReport, htmlPath); err != nil {
			return nil, err
		}
		log.Debug("staged %s", htmlPath)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := promote(manifest, charts, opts.OutputDir); err != nil {
		return nil, err
	}
	log.Info("wrote %d artifacts to %s", len(manifest.Artifacts), opts.OutputDir)

	if err := manifest.Write(filepath.Join(opts.OutputDir, run.ManifestFile)); err != nil {
		return nil, err
	}

	log.Info("run %s finished in %v", manifest.RunID, time.Since(start).Round(time.Millisecond))

	return &Result{
		Table:    table,
		Summary:  summary,
		Charts:   charts,
		Manifest: manifest,
		Report:   report.Render(summary),
	}, nil
}

// promote moves every staged artifact into outDir and points the manifest
// and chart list at the final paths.
func promote(manifest *run.Manifest, charts *visualize.Charts, outDir string) error {
	final := make(map[string]string, len(manifest.Artifacts))
	for i, a := range manifest.Artifacts {
		dst := filepath.Join(outDir, filepath.Base(a.Path))
		if err := os.Rename(a.Path, dst); err != nil {
			return errors.OutputError(dst, err)
		}
		final[a.Path] = dst
		manifest.Artifacts[i].Path = dst
	}
	for i, f := range charts.Files {
		if dst, ok := final[f]; ok {
			charts.Files[i] = dst
		}
	}
	return nil
}

// chartNames returns paths relative to the output directory so the HTML
// report can reference its sibling images.
func chartNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}
