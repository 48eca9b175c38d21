// Package fit runs the nonlinear regression of a bound creep model against a
// windowed dataset, and evaluates the goodness of the fit.
//
// The solver is Levenberg-Marquardt (github.com/maorshutman/lm) with a
// numeric Jacobian. The covariance of the fitted parameters is estimated as
// s^2 * (J'J)^-1 with s^2 = SSres/(n-p), the same estimate
// scipy.optimize.curve_fit reports. Each Fit call is stateless and
// independent, so callers may fit datasets in parallel as long as every
// dataset gets its own call.
package fit

import (
	"fmt"
	"math"

	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/mat"

	"github.com/mirekslouf/mcreep/pkg/model"
)

// Outcome is the result of one regression: the converged free-parameter
// vector and its covariance estimate (square, side = parameter count).
type Outcome struct {
	Params []float64
	Cov    *mat.Dense
}

// Fit runs nonlinear least squares of the bound model against (t, y).
// The caller pre-filters (t, y) to the fitting window and pre-normalizes y.
//
// guess seeds the optimizer; nil means the all-ones default. settings may be
// nil for solver defaults. Non-convergence and a singular covariance are
// reported as errors so the caller can isolate the failing dataset without
// aborting a batch.
func Fit(b *model.BoundModel, t, y []float64, guess []float64, settings *Settings) (*Outcome, error) {
	dim := b.NumFree()
	n := len(t)
	if n != len(y) {
		return nil, fmt.Errorf("fit: time and deformation lengths differ (%d vs %d)", n, len(y))
	}
	if n < dim {
		return nil, ErrTooFewPoints
	}

	if guess == nil {
		guess = make([]float64, dim)
		for i := range guess {
			guess[i] = 1
		}
	} else if len(guess) != dim {
		return nil, ErrGuessSize
	}

	resid := func(dst, x []float64) {
		for i := range t {
			dst[i] = b.Eval(t[i], x) - y[i]
		}
	}

	s := settings.withDefaults()
	numJac := lm.NumJac{Func: resid}
	prob := lm.LMProblem{
		Dim:        dim,
		Size:       n,
		Func:       resid,
		Jac:        numJac.Jac,
		InitParams: guess,
		Tau:        s.Tau,
		Eps1:       s.GradientTol,
		Eps2:       s.StepTol,
	}

	res, err := lm.LM(prob, &lm.Settings{Iterations: s.MaxIterations, ObjectiveTol: s.ObjectiveTol})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDidNotConverge, err)
	}

	params := make([]float64, dim)
	copy(params, res.X)
	for _, v := range params {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrDidNotConverge
		}
	}

	cov, err := covariance(resid, numJac.Jac, params, n)
	if err != nil {
		return nil, err
	}
	return &Outcome{Params: params, Cov: cov}, nil
}

// covariance estimates cov = s^2 * (J'J)^-1 at the solution. With no
// degrees of freedom left (n == p) the scale is undefined and the matrix is
// filled with NaN rather than invented.
func covariance(resid func(dst, x []float64), jac func(dst *mat.Dense, x []float64), params []float64, n int) (*mat.Dense, error) {
	dim := len(params)

	j := mat.NewDense(n, dim, nil)
	jac(j, params)

	var jtj mat.Dense
	jtj.Mul(j.T(), j)

	var inv mat.Dense
	if err := inv.Inverse(&jtj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularCovariance, err)
	}

	r := make([]float64, n)
	resid(r, params)
	ssres := 0.0
	for _, v := range r {
		ssres += v * v
	}

	s2 := math.NaN()
	if dof := n - dim; dof > 0 {
		s2 = ssres / float64(dof)
	}

	cov := mat.NewDense(dim, dim, nil)
	cov.Scale(s2, &inv)
	return cov, nil
}
