package visualize

import (
	"context"
	"fmt"
	"image/color"
	"path/filepath"

	"titanic/domain/passenger"
	"titanic/internal"
	"titanic/internal/errors"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Artifact file names inside the output directory.
const (
	AgeHistogramFile = "age_histogram.png"
	FareBoxPlotFile  = "fare_boxplot.png"
)

var (
	chartWidth  = 7 * vg.Inch
	chartHeight = 5 * vg.Inch
	barColor    = color.RGBA{R: 76, G: 114, B: 176, A: 255}
	kdeColor    = color.RGBA{R: 221, G: 132, B: 82, A: 255}
)

// Charts describes what Render drew
type Charts struct {
	AgeHistogram  []Bin         `json:"age_histogram"`
	FareSummaries []FareSummary `json:"fare_summaries"`
	Files         []string      `json:"files"`
}

// Renderer writes the chart artifacts
type Renderer struct {
	bins   int
	logger *internal.Logger
}

// NewRenderer creates a renderer. bins < 1 falls back to DefaultBins.
func NewRenderer(bins int, logger *internal.Logger) *Renderer {
	if bins < 1 {
		bins = DefaultBins
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Renderer{bins: bins, logger: logger.Named("Visualizer")}
}

// Render draws the age histogram and the fare box plot into outDir,
// replacing earlier files. Both charts only read t, so they render in
// parallel.
func (r *Renderer) Render(ctx context.Context, t *passenger.Table, outDir string) (*Charts, error) {
	charts := &Charts{
		AgeHistogram:  Histogram(t.Ages(), r.bins),
		FareSummaries: FareSummaries(t),
	}
	histPath := filepath.Join(outDir, AgeHistogramFile)
	boxPath := filepath.Join(outDir, FareBoxPlotFile)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return r.saveHistogram(t.Ages(), charts.AgeHistogram, histPath)
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return r.saveBoxPlot(t.FaresByClass(), charts.FareSummaries, boxPath)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	charts.Files = []string{histPath, boxPath}
	return charts, nil
}

// saveHistogram draws the age bars with a kernel density curve on top.
func (r *Renderer) saveHistogram(ages []float64, bins []Bin, path string) error {
	p := plot.New()
	p.Title.Text = "Age Distribution of Passengers"
	p.X.Label.Text = "Age"
	p.Y.Label.Text = "Frequency"

	if len(bins) > 0 {
		hb := make([]plotter.HistogramBin, len(bins))
		for i, b := range bins {
			hb[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: float64(b.Count)}
		}
		p.Add(&plotter.Histogram{
			Bins:      hb,
			Width:     bins[0].Max - bins[0].Min,
			FillColor: barColor,
			LineStyle: plotter.DefaultLineStyle,
		})
		if curve, h, ok := KDE(ages, bins[0].Max-bins[0].Min); ok {
			line := plotter.NewFunction(curve)
			line.XMin = bins[0].Min - 3*h
			line.XMax = bins[len(bins)-1].Max + 3*h
			line.Samples = 200
			line.Color = kdeColor
			line.Width = vg.Points(1.5)
			p.Add(line)
		}
	} else {
		r.logger.Warn("no ages recorded, age histogram is empty")
	}

	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return errors.OutputError(path, err)
	}
	r.logger.Debug("wrote %s (%d bins)", path, len(bins))
	return nil
}

// saveBoxPlot draws one box per class with whiskers at the minimum and
// maximum, so the picture matches the five-number summaries exactly.
func (r *Renderer) saveBoxPlot(fares map[passenger.Class][]float64, summaries []FareSummary, path string) error {
	p := plot.New()
	p.Title.Text = "Fare Distribution by Passenger Class"
	p.X.Label.Text = "Passenger Class"
	p.Y.Label.Text = "Fare"

	names := make([]string, 0, len(summaries))
	for i, fs := range summaries {
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(fares[fs.Class]))
		if err != nil {
			return fmt.Errorf("box plot for class %s: %w", fs.Class, err)
		}
		box.FillColor = barColor
		box.Median = fs.Summary.Median
		box.Quartile1 = fs.Summary.Q1
		box.Quartile3 = fs.Summary.Q3
		box.AdjLow = fs.Summary.Min
		box.AdjHigh = fs.Summary.Max
		box.Outside = nil
		p.Add(box)
		names = append(names, fs.Class.Ordinal())
	}
	if len(names) > 0 {
		p.NominalX(names...)
	} else {
		r.logger.Warn("no fares recorded, fare box plot is empty")
	}

	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return errors.OutputError(path, err)
	}
	r.logger.Debug("wrote %s (%d classes)", path, len(names))
	return nil
}
