package creep

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirekslouf/mcreep/pkg/experiment"
	"github.com/mirekslouf/mcreep/pkg/model"
)

// writeDataset writes a two-column (time, deformation) datafile.
func writeDataset(t *testing.T, dir, name string, ts, ys []float64) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("# t[s]  deformation\n")
	for i := range ts {
		fmt.Fprintf(&sb, "%.12g %.12g\n", ts[i], ys[i])
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

// Tensile power-law pipeline: synthetic noiseless data must be recovered
// end to end, with a perfect coefficient of determination.
func TestRunPowerLawTensile(t *testing.T) {
	desc, err := experiment.NewTensile(0.001)
	require.NoError(t, err)
	spec, err := model.Get(model.PowerLaw)
	require.NoError(t, err)
	m, err := New(desc, spec, Options{})
	require.NoError(t, err)

	var ts, ys []float64
	for tv := 1.0; tv <= 100; tv++ {
		ts = append(ts, tv)
		ys = append(ys, 2.0*math.Pow(tv, 0.3))
	}
	path := writeDataset(t, t.TempDir(), "pl.txt", ts, ys)

	res, err := m.Run(path, Window{TStart: 1, THold: 99})
	require.NoError(t, err)

	assert.Equal(t, "pl.txt", res.Dataset)
	assert.Equal(t, []string{"C", "n"}, res.Names)
	assert.InDelta(t, 2.0, res.Params[0], 1e-6)
	assert.InDelta(t, 0.3, res.Params[1], 1e-6)
	assert.InDelta(t, 1.0, res.R2Fit, 1e-9)
	assert.InDelta(t, 1.0, res.R2All, 1e-9)
	assert.Nil(t, res.Physical)

	assert.Equal(t, 1, m.Results().Len())
	assert.Nil(t, m.PhysicalResults())
}

// Vickers EVP pipeline: data generated from evp_s_d_1kv with known
// parameters; the recalculated C1 must match D1/rho(tau1) computed
// independently.
func TestRunEvpVickers(t *testing.T) {
	const (
		force = 100.0
		b0    = 5.0
		cv    = 0.01
		d1    = 1.2
		tau1  = 10.0
		tR    = 2.0
	)

	desc, err := experiment.NewVickers(force)
	require.NoError(t, err)
	spec, err := model.Get(model.EvpSD1KV)
	require.NoError(t, err)
	m, err := New(desc, spec, Options{IGuess: []float64{4, 0.02, 1, 8}})
	require.NoError(t, err)

	// raw depth h from the normalized model value: y = h^m/K  =>  h = sqrt(y*K)
	var ts, hs []float64
	for tv := tR; tv <= tR+60; tv += 0.5 {
		y := force * (b0 + cv*tv - d1*math.Exp(-tv/tau1))
		ts = append(ts, tv)
		hs = append(hs, math.Sqrt(y*desc.K()))
	}
	path := writeDataset(t, t.TempDir(), "evp.txt", ts, hs)

	res, err := m.Run(path, Window{TStart: tR, THold: 60})
	require.NoError(t, err)

	require.Equal(t, []string{"B0", "Cv", "D1", "tau1"}, res.Names)
	assert.InDelta(t, b0, res.Params[0], 1e-5)
	assert.InDelta(t, cv, res.Params[1], 1e-5)
	assert.InDelta(t, d1, res.Params[2], 1e-5)
	assert.InDelta(t, tau1, res.Params[3], 1e-4)
	assert.InDelta(t, 1.0, res.R2Fit, 1e-9)

	require.NotNil(t, res.Physical)
	p := res.Physical

	// independent ramp-correction evaluation
	rho := (tau1 / tR) * (math.Exp(tR/tau1) - 1)
	assert.InDelta(t, d1/rho, p.C[0], 1e-5)
	assert.InDelta(t, b0-cv*tR/2-d1/rho, p.C0, 1e-5)
	assert.Equal(t, res.Params[1], p.Cv)

	// wiring check against the fitted values themselves
	assert.InDelta(t, res.Params[2]/model.RampCorrection(res.Params[3], tR), p.C[0], 1e-12)

	// both tables got exactly one row with matching columns
	require.Equal(t, 1, m.Results().Len())
	require.NotNil(t, m.PhysicalResults())
	row, ok := m.PhysicalResults().Row("evp.txt")
	require.True(t, ok)
	require.Len(t, row, 4) // C0, Cv, C1, tau1
}

// The fitting window may be narrower than the retained data window; both
// coefficients of determination are reported.
func TestRunFitWindow(t *testing.T) {
	desc, err := experiment.NewTensile(0.001)
	require.NoError(t, err)
	spec, err := model.Get(model.PowerLaw)
	require.NoError(t, err)
	m, err := New(desc, spec, Options{})
	require.NoError(t, err)

	var ts, ys []float64
	for tv := 1.0; tv <= 50; tv++ {
		ts = append(ts, tv)
		ys = append(ys, 1.5*math.Pow(tv, 0.25))
	}
	path := writeDataset(t, t.TempDir(), "win.txt", ts, ys)

	res, err := m.Run(path, Window{TStart: 1, THold: 49, TFStart: 5, TFEnd: 20})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, res.Params[0], 1e-6)
	assert.InDelta(t, 1.0, res.R2All, 1e-9)
}

// Re-running the same datafile overwrites its row: mapping-by-key semantics.
func TestRunOverwriteByDatasetID(t *testing.T) {
	desc, err := experiment.NewTensile(0.001)
	require.NoError(t, err)
	spec, err := model.Get(model.PowerLaw)
	require.NoError(t, err)
	m, err := New(desc, spec, Options{})
	require.NoError(t, err)

	var ts, ys []float64
	for tv := 1.0; tv <= 30; tv++ {
		ts = append(ts, tv)
		ys = append(ys, 2.0*math.Pow(tv, 0.3))
	}
	path := writeDataset(t, t.TempDir(), "dup.txt", ts, ys)

	_, err = m.Run(path, Window{TStart: 1, THold: 29})
	require.NoError(t, err)
	_, err = m.Run(path, Window{TStart: 1, THold: 29})
	require.NoError(t, err)

	assert.Equal(t, 1, m.Results().Len())
}

// A failing dataset leaves no row and does not poison the batch.
func TestRunPerDatasetIsolation(t *testing.T) {
	desc, err := experiment.NewTensile(0.001)
	require.NoError(t, err)
	spec, err := model.Get(model.PowerLaw)
	require.NoError(t, err)
	m, err := New(desc, spec, Options{})
	require.NoError(t, err)

	dir := t.TempDir()

	_, err = m.Run(filepath.Join(dir, "missing.txt"), Window{TStart: 1, THold: 10})
	require.Error(t, err)
	assert.Equal(t, 0, m.Results().Len())

	var ts, ys []float64
	for tv := 1.0; tv <= 30; tv++ {
		ts = append(ts, tv)
		ys = append(ys, 2.0*math.Pow(tv, 0.3))
	}
	path := writeDataset(t, dir, "good.txt", ts, ys)

	_, err = m.Run(path, Window{TStart: 1, THold: 29})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Results().Len())
}

// Configuration errors surface from New, before any datafile is touched.
func TestNewConfigErrors(t *testing.T) {
	desc, err := experiment.NewVickers(100)
	require.NoError(t, err)

	spec, err := model.Get(model.EvpSD2KV)
	require.NoError(t, err)
	_, err = New(desc, spec, Options{RTimes: []float64{10}})
	assert.ErrorIs(t, err, model.ErrRetardationCount)

	_, err = New(desc, spec, Options{IGuess: []float64{1, 2}})
	assert.Error(t, err)
}

func TestWindowDefaults(t *testing.T) {
	fs, fe := Window{TStart: 2, THold: 60}.fitBounds()
	assert.Equal(t, 2.0, fs)
	assert.Equal(t, 62.0, fe)

	fs, fe = Window{TStart: 2, THold: 60, TFStart: 5, TFEnd: 30}.fitBounds()
	assert.Equal(t, 5.0, fs)
	assert.Equal(t, 30.0, fe)
}

func TestWriteReport(t *testing.T) {
	desc, err := experiment.NewTensile(0.001)
	require.NoError(t, err)
	spec, err := model.Get(model.PowerLaw)
	require.NoError(t, err)
	m, err := New(desc, spec, Options{})
	require.NoError(t, err)

	var ts, ys []float64
	for tv := 1.0; tv <= 30; tv++ {
		ts = append(ts, tv)
		ys = append(ys, 2.0*math.Pow(tv, 0.3))
	}
	path := writeDataset(t, t.TempDir(), "rep.txt", ts, ys)
	_, err = m.Run(path, Window{TStart: 1, THold: 29})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.WriteReport(&buf, 4))
	out := buf.String()

	assert.Contains(t, out, "Tensile creep experiment.")
	assert.Contains(t, out, "Fitting results and statistics:")
	assert.Contains(t, out, "rep.txt")
	assert.Contains(t, out, "R2fit")
	assert.NotContains(t, out, "Final compliances") // empirical family
}
