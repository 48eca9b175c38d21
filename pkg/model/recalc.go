package model

import "math"

// Physical holds the final material constants recalculated from a fitted EVP
// model: instantaneous compliance C0, viscous flow compliance rate Cv, the
// retarded compliances C1..Ck and their retardation times tau1..tauk.
// All compliances are in the same units as the fitted parameters (GPa^-1 for
// creep compliance), retardation times in seconds.
type Physical struct {
	C0  float64
	Cv  float64
	C   []float64
	Tau []float64
}

// RampCorrection returns rho(tau) = (tau/tR)*(exp(tR/tau)-1), the factor
// correcting retarded compliances for a finite loading ramp of duration tR
// (Mencik, Polymer Testing 30 (2011) 101-109, Eq. 9).
//
// rho -> 1 as tau -> +inf and rho is finite and positive for tau > 0,
// tR > 0. tau = 0 divides by zero and yields a non-finite value; the caller
// sees it as a degenerate (NaN/Inf) result, never as a silent zero.
func RampCorrection(tau, tR float64) float64 {
	return (tau / tR) * (math.Exp(tR/tau) - 1)
}

// Recalculate maps the fitted free parameters of a bound EVP model into
// final material constants. tR is the loading ramp duration (the t_start of
// the data window).
//
// Tensile experiments need no ramp correction:
//
//	Ci = Di
//	C0 = B0 - sum(Di)
//
// Indentation experiments correct each retarded compliance and subtract the
// ramp contribution of the dashpot:
//
//	Ci = Di / rho(tau_i)
//	C0 = B0 - Cv*tR/2 - sum(Ci)
//
// Cv passes through unchanged in both branches. Pure function: no I/O, no
// state.
func Recalculate(b *BoundModel, params []float64, tR float64) (Physical, error) {
	spec := b.Spec()
	if !spec.Family.IsEVP() {
		return Physical{}, ErrNotEVP
	}

	k := spec.Elements
	b0, cv := params[0], params[1]
	d := params[2 : 2+k]

	tau := b.FixedRTimes()
	if tau == nil {
		tau = params[2+k : 2+2*k]
	}

	p := Physical{
		Cv:  cv,
		C:   make([]float64, k),
		Tau: make([]float64, k),
	}
	copy(p.Tau, tau)

	if b.Descriptor().Indentation() {
		p.C0 = b0 - cv*tR/2
		for i := 0; i < k; i++ {
			p.C[i] = d[i] / RampCorrection(tau[i], tR)
			p.C0 -= p.C[i]
		}
	} else {
		p.C0 = b0
		for i := 0; i < k; i++ {
			p.C[i] = d[i]
			p.C0 -= p.C[i]
		}
	}
	return p, nil
}
