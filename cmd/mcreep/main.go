package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/mirekslouf/mcreep/pkg/creep"
	"github.com/mirekslouf/mcreep/pkg/dataio"
	"github.com/mirekslouf/mcreep/pkg/experiment"
	"github.com/mirekslouf/mcreep/pkg/fit"
	"github.com/mirekslouf/mcreep/pkg/model"
	"github.com/mirekslouf/mcreep/pkg/report"
)

type opts struct {
	// experiment
	etype  string
	stress float64
	force  float64
	radius float64

	// model
	mname  string
	rtimes []float64
	iguess []float64

	// time windows
	tStart  float64
	tHold   float64
	tFStart float64
	tFEnd   float64

	// datafile format
	timeCol   int
	defCol    int
	skipRows  int
	comment   string
	timeScale float64
	defScale  float64

	// solver
	maxIter int
	objTol  float64

	// outputs
	outDir    string
	report    string
	csvPath   string
	htmlPath  string
	plots     bool
	logscale  bool
	percent   bool
	xlabel    string
	ylabel    string
	printCovs bool
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "mcreep DATAFILE...",
		Short: "Fit rheological models to creep data",
		Long: `mcreep fits parametric rheological models (power law, Nutting law, and
elasto-visco-plastic mechanical analogs with 1-3 Kelvin-Voigt elements) to
time-series creep data from tensile or indentation experiments.

For each datafile it reads the holding interval [t-start, t-start+t-hold],
runs a nonlinear regression over the fitting window, computes goodness-of-fit
statistics and, for EVP models, recalculates the fitted parameters into final
compliances and retardation times (with the ramp correction for indentation).

Examples:
  mcreep -e tensile --stress 0.001 -m power_law --t-start 1 --t-hold 1000 creep1.txt creep2.txt
  mcreep -e vickers --force 500 -m evp_s_d_2kv --t-start 2 --t-hold 58 --rtimes 2,20 *.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o, args)
		},
		SilenceUsage: true,
	}

	root.Flags().StringVarP(&o.etype, "experiment", "e", "", "experiment kind: tensile|vickers|berkovich|spherical")
	root.Flags().Float64Var(&o.stress, "stress", 0, "applied stress in GPa (tensile)")
	root.Flags().Float64Var(&o.force, "force", 0, "loading force in mN (indentation)")
	root.Flags().Float64Var(&o.radius, "radius", 0, "tip radius in um (spherical)")

	root.Flags().StringVarP(&o.mname, "model", "m", "", "model: power_law|nutting_law|evp_s_d_1kv|evp_s_d_2kv|evp_s_d_3kv")
	root.Flags().Float64SliceVar(&o.rtimes, "rtimes", nil, "fixed retardation times (one per KV element)")
	root.Flags().Float64SliceVar(&o.iguess, "iguess", nil, "initial guess for the free parameters")

	root.Flags().Float64Var(&o.tStart, "t-start", 0, "start of the holding interval / ramp duration [s]")
	root.Flags().Float64Var(&o.tHold, "t-hold", 0, "length of the holding interval [s]")
	root.Flags().Float64Var(&o.tFStart, "t-fstart", 0, "start of the fitting window (default: t-start)")
	root.Flags().Float64Var(&o.tFEnd, "t-fend", 0, "end of the fitting window (default: t-start+t-hold)")

	root.Flags().IntVar(&o.timeCol, "time-col", 0, "zero-based column with times")
	root.Flags().IntVar(&o.defCol, "def-col", 1, "zero-based column with deformations")
	root.Flags().IntVar(&o.skipRows, "skip-rows", 0, "leading rows to skip")
	root.Flags().StringVar(&o.comment, "comment", "#", "comment prefix in datafiles")
	root.Flags().Float64Var(&o.timeScale, "time-scale", 1, "multiplier converting file time to seconds")
	root.Flags().Float64Var(&o.defScale, "def-scale", 1, "multiplier converting file deformation to um")

	root.Flags().IntVar(&o.maxIter, "max-iter", 0, "cap on optimizer iterations (0 = default)")
	root.Flags().Float64Var(&o.objTol, "obj-tol", 0, "objective tolerance for convergence (0 = default)")

	root.Flags().StringVar(&o.outDir, "out-dir", ".", "directory for plot and report files")
	root.Flags().StringVar(&o.report, "report", "", "write the final text report to this file")
	root.Flags().StringVar(&o.csvPath, "csv", "", "write the results table to this CSV file")
	root.Flags().StringVar(&o.htmlPath, "html", "", "write an HTML report to this file")
	root.Flags().BoolVar(&o.plots, "plots", false, "save a <dataset>.png plot per datafile")
	root.Flags().BoolVar(&o.logscale, "logscale", false, "plot both axes logarithmically")
	root.Flags().BoolVar(&o.percent, "percent", true, "plot tensile strain in percent")
	root.Flags().StringVar(&o.xlabel, "xlabel", "t [s]", "plot X axis label")
	root.Flags().StringVar(&o.ylabel, "ylabel", "deformation", "plot Y axis label")
	root.Flags().BoolVar(&o.printCovs, "print-covariances", false, "print the covariance matrix per dataset")

	_ = root.MarkFlagRequired("experiment")
	_ = root.MarkFlagRequired("model")
	_ = root.MarkFlagRequired("t-start")
	_ = root.MarkFlagRequired("t-hold")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(o opts, datafiles []string) error {
	desc, err := describeExperiment(o)
	if err != nil {
		return err
	}
	spec, err := model.ByName(o.mname)
	if err != nil {
		return fmt.Errorf("%w: %q", model.ErrUnknownModel, o.mname)
	}

	mopts := creep.Options{
		RTimes: o.rtimes,
		IGuess: o.iguess,
		Fit: &fit.Settings{
			MaxIterations: o.maxIter,
			ObjectiveTol:  o.objTol,
		},
		Format: dataio.Format{
			TimeCol:         o.timeCol,
			DeformationCol:  o.defCol,
			SkipRows:        o.skipRows,
			Comment:         o.comment,
			TimeToSeconds:   o.timeScale,
			DeformationToUm: o.defScale,
		},
		OutputDir: o.outDir,
	}
	if o.plots {
		mopts.Plot = &report.PlotParams{
			XLabel:     o.xlabel,
			YLabel:     o.ylabel,
			Logscale:   o.logscale,
			EToPercent: o.percent,
		}
	}

	m, err := creep.New(desc, spec, mopts)
	if err != nil {
		return err
	}
	if o.outDir != "." && o.outDir != "" {
		if err := os.MkdirAll(o.outDir, 0o755); err != nil {
			return err
		}
	}

	win := creep.Window{TStart: o.tStart, THold: o.tHold, TFStart: o.tFStart, TFEnd: o.tFEnd}

	m.Describe(os.Stdout)
	failed := 0
	for _, f := range datafiles {
		res, err := m.Run(f, win)
		if err != nil {
			// per-dataset isolation: report and keep going
			slog.Warn("dataset failed", "dataset", f, "err", err)
			failed++
			continue
		}
		printResult(res)
		if o.printCovs {
			fmt.Println("\nCovariance matrix of all parameters after fitting:")
			fmt.Printf("%.6f\n", mat.Formatted(res.Cov))
		}
	}
	if m.Results().Len() == 0 {
		return fmt.Errorf("all %d datasets failed", failed)
	}

	fmt.Println()
	if err := m.WriteReport(os.Stdout, 4); err != nil {
		return err
	}

	if o.report != "" {
		if err := writeFile(o.report, func(f *os.File) error {
			return m.WriteReport(f, 6)
		}); err != nil {
			return err
		}
	}
	if o.csvPath != "" {
		if err := writeFile(o.csvPath, func(f *os.File) error {
			if err := m.Results().WriteCSV(f); err != nil {
				return err
			}
			if p := m.PhysicalResults(); p != nil {
				fmt.Fprintln(f)
				return p.WriteCSV(f)
			}
			return nil
		}); err != nil {
			return err
		}
	}
	if o.htmlPath != "" {
		if err := writeFile(o.htmlPath, func(f *os.File) error {
			return report.WriteHTML(f, m.HTMLData(4))
		}); err != nil {
			return err
		}
	}

	if failed > 0 {
		slog.Warn("batch finished with failures", "failed", failed, "fitted", m.Results().Len())
	}
	return nil
}

func describeExperiment(o opts) (*experiment.Descriptor, error) {
	kind, err := experiment.ParseKind(o.etype)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, o.etype)
	}
	switch kind {
	case experiment.Tensile:
		return experiment.NewTensile(o.stress)
	case experiment.Vickers:
		return experiment.NewVickers(o.force)
	case experiment.Berkovich:
		return experiment.NewBerkovich(o.force)
	default:
		return experiment.NewSpherical(o.force, o.radius)
	}
}

// printResult mirrors the per-dataset console line:
//
//	creep1.txt [B0,Cv,D1,tau1]: 5.0012 0.0100 1.2034 10.02
func printResult(r *creep.Result) {
	vals := make([]string, len(r.Params))
	for i, v := range r.Params {
		vals[i] = fmt.Sprintf("%8.4f", v)
	}
	fmt.Printf("%s [%s]: %s\n", r.Dataset, strings.Join(r.Names, ","), strings.Join(vals, " "))
}

func writeFile(path string, write func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
