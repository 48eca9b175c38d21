// Package report renders fitting results for humans: per-dataset plots of
// the experimental curve against the fitted model, and text/HTML summaries
// of the accumulated result tables. It consumes finished results only and
// never reaches back into the fitting pipeline.
package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotParams configures the per-dataset plots. It is plain data passed in by
// the caller; nothing here touches process-wide state.
type PlotParams struct {
	XLabel string
	YLabel string

	// Logscale draws both axes logarithmically.
	Logscale bool

	// EToPercent renders tensile strain in percent instead of absolute
	// strain. Ignored for indentation experiments.
	EToPercent bool
}

// SavePlot writes a PNG of the experimental points and the fitted curve.
// y and yfit are raw (denormalized) deformations on the same time base.
func SavePlot(path, modelName string, params PlotParams, t, y, yfit []float64) error {
	if len(t) != len(y) || len(t) != len(yfit) {
		return fmt.Errorf("report: mismatched series lengths %d/%d/%d", len(t), len(y), len(yfit))
	}

	p := plot.New()
	p.X.Label.Text = params.XLabel
	p.Y.Label.Text = params.YLabel
	if params.Logscale {
		p.X.Scale = plot.LogScale{}
		p.Y.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(t))
	fitPts := make(plotter.XYs, len(t))
	for i := range t {
		pts[i] = plotter.XY{X: t[i], Y: y[i]}
		fitPts[i] = plotter.XY{X: t[i], Y: yfit[i]}
	}

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	sc.Radius = vg.Points(1.2)

	ln, err := plotter.NewLine(fitPts)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	ln.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}

	p.Add(sc, ln)
	p.Legend.Add("experiment", sc)
	p.Legend.Add(modelName, ln)
	p.Legend.Top = false

	if err := p.Save(12*vg.Centimeter, 9*vg.Centimeter, path); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}
