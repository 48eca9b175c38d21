// Package creep drives the whole fitting pipeline: it binds a model to an
// experiment once, then processes creep datafiles one at a time (ingest,
// normalize, regress, evaluate goodness of fit, recalculate physical
// constants) and accumulates one result row per dataset.
//
// Per-dataset isolation: a dataset that fails to read or to fit produces an
// error from Run and no table row; the Model stays valid and the batch can
// continue with the remaining datasets. Configuration errors (unknown model,
// wrong retardation-time count, invalid experiment constants) surface from
// New, before any data is touched.
package creep

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/mirekslouf/mcreep/pkg/dataio"
	"github.com/mirekslouf/mcreep/pkg/experiment"
	"github.com/mirekslouf/mcreep/pkg/fit"
	"github.com/mirekslouf/mcreep/pkg/model"
	"github.com/mirekslouf/mcreep/pkg/report"
	"github.com/mirekslouf/mcreep/pkg/results"
)

// Options configures a Model beyond the experiment and model family.
type Options struct {
	// RTimes fixes the EVP retardation times at the given values instead of
	// fitting them. Length must equal the model's Kelvin-Voigt element count.
	RTimes []float64

	// IGuess seeds the optimizer. Nil uses the all-ones default.
	IGuess []float64

	// Fit bounds the solver (iterations, tolerances). Nil uses defaults.
	Fit *fit.Settings

	// Format describes the datafile layout.
	Format dataio.Format

	// Plot enables per-dataset PNG plots with the given parameters.
	Plot *report.PlotParams

	// OutputDir receives plot files. Empty means the current directory.
	OutputDir string
}

// Window selects the data and fitting intervals of one dataset.
//
// Data is read over the holding interval [TStart, TStart+THold]; TStart is
// also the loading ramp duration used for the ramp correction. The model is
// fitted over [TFStart, TFEnd]; values <= 0 default to TStart and
// TStart+THold respectively (fit everything that was read).
type Window struct {
	TStart  float64
	THold   float64
	TFStart float64
	TFEnd   float64
}

func (w Window) fitBounds() (fs, fe float64) {
	fs, fe = w.TFStart, w.TFEnd
	if fs <= 0 {
		fs = w.TStart
	}
	if fe <= 0 {
		fe = w.TStart + w.THold
	}
	return fs, fe
}

// Result is the outcome of fitting one dataset.
type Result struct {
	// Dataset is the identifier (datafile base name) keying the tables.
	Dataset string

	// Names and Params are the free regression parameters, in order.
	Names  []string
	Params []float64

	// Cov is the covariance estimate of Params.
	Cov *mat.Dense

	// R2Fit is the coefficient of determination over the fitting window,
	// R2All over the whole retained data window.
	R2Fit, R2All float64

	// Physical holds the recalculated material constants; nil for empirical
	// families.
	Physical *model.Physical
}

// Model fits one bound creep model to any number of datasets and keeps the
// accumulated result tables. Methods must not be called concurrently; the
// tables have a single writer.
type Model struct {
	desc  *experiment.Descriptor
	spec  model.Spec
	bound *model.BoundModel
	opts  Options

	table    *results.Table
	physical *results.Table // nil for empirical families
}

// New binds the model family to the experiment and prepares empty result
// tables whose columns are derived from the model spec.
func New(desc *experiment.Descriptor, spec model.Spec, opts Options) (*Model, error) {
	bound, err := model.Bind(spec, desc, opts.RTimes)
	if err != nil {
		return nil, err
	}
	if opts.IGuess != nil && len(opts.IGuess) != bound.NumFree() {
		return nil, fit.ErrGuessSize
	}

	cols := append(append([]string{}, spec.Params...), "R2fit", "R2all")
	m := &Model{
		desc:  desc,
		spec:  spec,
		bound: bound,
		opts:  opts,
		table: results.NewTable(cols),
	}
	if spec.Family.IsEVP() {
		m.physical = results.NewTable(spec.Physical)
	}
	return m, nil
}

// Bound returns the bound model used for regression.
func (m *Model) Bound() *model.BoundModel { return m.bound }

// Results returns the table of raw fitted parameters and statistics.
func (m *Model) Results() *results.Table { return m.table }

// PhysicalResults returns the table of recalculated material constants, or
// nil for empirical families.
func (m *Model) PhysicalResults() *results.Table { return m.physical }

// Run processes one datafile: reads the holding window, normalizes the
// deformation, fits the bound model over the fitting window, computes both
// coefficients of determination and, for EVP families, the recalculated
// physical constants. On success the result is recorded in the tables,
// keyed by the datafile base name (a repeated name overwrites its row).
func (m *Model) Run(datafile string, w Window) (*Result, error) {
	id := filepath.Base(datafile)

	t, raw, err := dataio.ReadWindow(datafile, m.opts.Format, w.TStart, w.THold)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	y, err := m.desc.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	fs, fe := w.fitBounds()
	tf, yf := window(t, y, fs, fe)

	out, err := fit.Fit(m.bound, tf, yf, m.opts.IGuess, m.opts.Fit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	res := &Result{
		Dataset: id,
		Names:   m.bound.FreeParams(),
		Params:  out.Params,
		Cov:     out.Cov,
		R2Fit:   fit.RSquared(m.bound, out.Params, tf, yf),
		R2All:   fit.RSquared(m.bound, out.Params, t, y),
	}

	if m.spec.Family.IsEVP() {
		phys, err := model.Recalculate(m.bound, out.Params, w.TStart)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		res.Physical = &phys
	}

	if err := m.record(res); err != nil {
		return nil, err
	}

	if m.opts.Plot != nil {
		if err := m.savePlot(id, t, raw, res.Params); err != nil {
			return res, fmt.Errorf("%s: %w", id, err)
		}
	}
	return res, nil
}

// record flattens one Result into the table rows.
func (m *Model) record(res *Result) error {
	row := make(map[string]float64, len(m.table.Columns()))

	if m.spec.Family.IsEVP() {
		k := m.spec.Elements
		row["const"] = m.desc.Const()
		row["B0"] = res.Params[0]
		row["Cv"] = res.Params[1]
		for i := 0; i < k; i++ {
			row[m.spec.Params[3+i]] = res.Params[2+i]
		}
		taus := m.bound.FixedRTimes()
		if taus == nil {
			taus = res.Params[2+k : 2+2*k]
		}
		for i := 0; i < k; i++ {
			row[m.spec.Params[3+k+i]] = taus[i]
		}
	} else {
		for i, name := range m.spec.Params {
			row[name] = res.Params[i]
		}
	}
	row["R2fit"] = res.R2Fit
	row["R2all"] = res.R2All
	if err := m.table.Record(res.Dataset, row); err != nil {
		return err
	}

	if res.Physical == nil {
		return nil
	}
	p := res.Physical
	prow := map[string]float64{"C0": p.C0, "Cv": p.Cv}
	for i := range p.C {
		prow[fmt.Sprintf("C%d", i+1)] = p.C[i]
		prow[fmt.Sprintf("tau%d", i+1)] = p.Tau[i]
	}
	return m.physical.Record(res.Dataset, prow)
}

// savePlot renders <dataset>.png: raw experimental points plus the fitted
// curve brought back to raw deformation.
func (m *Model) savePlot(id string, t, raw, params []float64) error {
	yn := make([]float64, len(t))
	for i := range t {
		yn[i] = m.bound.Eval(t[i], params)
	}
	yfit := m.desc.Denormalize(yn)

	y := raw
	p := *m.opts.Plot
	if m.desc.Kind() == experiment.Tensile && p.EToPercent {
		y = scale(raw, 100)
		yfit = scale(yfit, 100)
	}
	path := filepath.Join(m.opts.OutputDir, id+".png")
	return report.SavePlot(path, m.spec.Name(), p, t, y, yfit)
}

// Describe writes a short human-readable summary of the experiment and the
// model, used as the report header.
func (m *Model) Describe(w io.Writer) {
	switch m.desc.Kind() {
	case experiment.Tensile:
		fmt.Fprintln(w, "Tensile creep experiment.")
	case experiment.Vickers:
		fmt.Fprintln(w, "Indentation creep with Vickers tip.")
	case experiment.Berkovich:
		fmt.Fprintln(w, "Indentation creep with Berkovich tip.")
	case experiment.Spherical:
		fmt.Fprintln(w, "Indentation creep with Spherical tip.")
	}
	switch m.spec.Family {
	case model.PowerLaw:
		fmt.Fprintln(w, "Model function: Power Law => deformation(t) = C * t**n")
		fmt.Fprintln(w, "Units are relative; n = creep constant ~ creep rate.")
	case model.NuttingLaw:
		fmt.Fprintln(w, "Model function: Nutting's Law => def(t) = e0 + C * t**n")
		fmt.Fprintln(w, "Units are relative; n = creep constant ~ creep rate.")
	default:
		fmt.Fprintln(w, "Model function: EVP with S,D and KV components.")
		fmt.Fprintln(w, "Compliances B,C,D in [1/GPa], retardation times tau in [s].")
	}
	fmt.Fprintln(w)
}

// WriteReport writes the final text report: the model description, the table
// of fitting results and statistics and, for EVP families, the table of
// final compliances and retardation times.
func (m *Model) WriteReport(w io.Writer, decimals int) error {
	m.Describe(w)
	fmt.Fprintln(w, "Fitting results and statistics:")
	fmt.Fprintln(w)
	if err := m.table.Render(w, decimals); err != nil {
		return err
	}
	if m.physical != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Final compliances and retardation times of EVP model:")
		fmt.Fprintln(w)
		if err := m.physical.Render(w, decimals); err != nil {
			return err
		}
	}
	return nil
}

// HTMLData assembles the data for the HTML report.
func (m *Model) HTMLData(decimals int) report.HTMLData {
	var desc strBuilderLines
	m.Describe(&desc)

	d := report.HTMLData{
		Title:       "Creep fitting report - " + m.spec.Name(),
		Description: desc.lines,
		Results:     report.NewTableView("Fitting results and statistics", m.table, decimals),
	}
	if m.physical != nil {
		v := report.NewTableView("Final compliances and retardation times of EVP model", m.physical, decimals)
		d.Physical = &v
	}
	return d
}

// window returns the sub-series with fs <= t <= fe.
func window(t, y []float64, fs, fe float64) (tw, yw []float64) {
	for i := range t {
		if t[i] >= fs && t[i] <= fe {
			tw = append(tw, t[i])
			yw = append(yw, y[i])
		}
	}
	return tw, yw
}

// strBuilderLines collects written text as trimmed, non-empty lines.
type strBuilderLines struct {
	lines []string
	buf   strings.Builder
}

func (s *strBuilderLines) Write(p []byte) (int, error) {
	s.buf.Write(p)
	for {
		txt := s.buf.String()
		i := strings.IndexByte(txt, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimSpace(txt[:i])
		if line != "" {
			s.lines = append(s.lines, line)
		}
		s.buf.Reset()
		s.buf.WriteString(txt[i+1:])
	}
	return len(p), nil
}

func scale(v []float64, f float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] * f
	}
	return out
}
