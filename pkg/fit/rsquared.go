package fit

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/mirekslouf/mcreep/pkg/model"
)

// RSquared computes the coefficient of determination of the bound model with
// fitted parameters against (t, y):
//
//	R2 = 1 - SSres/SStot
//
// 1 is a perfect fit; 0 means the model predicts no better than the mean;
// negative values are worse than the mean. Constant data (SStot = 0) makes
// the ratio undefined: the result is NaN, carried through to the output as a
// visible degeneracy rather than a fabricated 0 or 1.
func RSquared(b *model.BoundModel, params, t, y []float64) float64 {
	mean := stat.Mean(y, nil)
	var ssres, sstot float64
	for i := range t {
		d := y[i] - b.Eval(t[i], params)
		ssres += d * d
		m := y[i] - mean
		sstot += m * m
	}
	if sstot == 0 {
		return math.NaN()
	}
	return 1 - ssres/sstot
}
