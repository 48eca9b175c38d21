package model

import "github.com/mirekslouf/mcreep/pkg/experiment"

// BoundModel is a model function with its known constants fixed: for EVP
// families the multiplicative constant comes from the experiment descriptor,
// and the retardation times may optionally be pinned to caller-supplied
// values. Eval maps the reduced free-parameter vector back to the full
// vector before calling the catalog function, so the original Spec stays
// untouched.
type BoundModel struct {
	spec   Spec
	desc   *experiment.Descriptor
	rtimes []float64 // fixed retardation times; nil when fitted
	free   []string
}

// Bind builds a BoundModel from a catalog spec, an experiment descriptor and
// an optional list of fixed retardation times.
//
// Empirical families have nothing to fix; rtimes must be nil for them.
// For EVP families the rtimes list, when given, must have exactly one entry
// per Kelvin-Voigt element; a mismatch is a configuration error, reported
// here before any regression is attempted.
func Bind(spec Spec, desc *experiment.Descriptor, rtimes []float64) (*BoundModel, error) {
	if rtimes != nil && len(rtimes) != spec.Elements {
		return nil, ErrRetardationCount
	}

	var names []string
	switch {
	case !spec.Family.IsEVP():
		names = spec.Params
	case rtimes == nil:
		names = spec.Params[1:] // drop const
	default:
		names = spec.Params[1 : 1+2+spec.Elements] // drop const and tau1..tauk
	}
	// copy so a caller mutating FreeParams cannot corrupt the catalog
	free := make([]string, len(names))
	copy(free, names)

	var fixed []float64
	if rtimes != nil {
		fixed = make([]float64, len(rtimes))
		copy(fixed, rtimes)
	}
	return &BoundModel{spec: spec, desc: desc, rtimes: fixed, free: free}, nil
}

// Spec returns the underlying catalog entry.
func (b *BoundModel) Spec() Spec { return b.spec }

// Descriptor returns the experiment the model was bound to.
func (b *BoundModel) Descriptor() *experiment.Descriptor { return b.desc }

// FixedRTimes returns the fixed retardation times, or nil when they are
// free regression parameters.
func (b *BoundModel) FixedRTimes() []float64 { return b.rtimes }

// FreeParams names the free regression parameters, in vector order.
func (b *BoundModel) FreeParams() []string { return b.free }

// NumFree returns the arity of the bound function.
func (b *BoundModel) NumFree() int { return len(b.free) }

// Eval evaluates the bound function at time t with the reduced
// free-parameter vector. len(free) must equal NumFree.
func (b *BoundModel) Eval(t float64, free []float64) float64 {
	if !b.spec.Family.IsEVP() {
		return b.spec.eval(t, free)
	}
	k := b.spec.Elements
	full := make([]float64, b.spec.Arity())
	full[0] = b.desc.Const()
	copy(full[1:], free)
	if b.rtimes != nil {
		copy(full[3+k:], b.rtimes)
	}
	return b.spec.eval(t, full)
}
