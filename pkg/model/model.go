package model

import "math"

// Family identifies a model family in the catalog.
type Family int

const (
	// PowerLaw is the empirical power-law model def(t) = C*t^n.
	PowerLaw Family = iota
	// NuttingLaw is the empirical Nutting model def(t) = e0 + C*t^n.
	NuttingLaw
	// EvpSD1KV is the elasto-visco-plastic model with a spring, a dashpot and
	// one Kelvin-Voigt element.
	EvpSD1KV
	// EvpSD2KV has two Kelvin-Voigt elements.
	EvpSD2KV
	// EvpSD3KV has three Kelvin-Voigt elements.
	EvpSD3KV
)

// IsEVP reports whether the family is an elasto-visco-plastic analog.
func (f Family) IsEVP() bool {
	return f == EvpSD1KV || f == EvpSD2KV || f == EvpSD3KV
}

// String returns the catalog name of the family.
func (f Family) String() string {
	switch f {
	case PowerLaw:
		return "power_law"
	case NuttingLaw:
		return "nutting_law"
	case EvpSD1KV:
		return "evp_s_d_1kv"
	case EvpSD2KV:
		return "evp_s_d_2kv"
	case EvpSD3KV:
		return "evp_s_d_3kv"
	default:
		return "unknown"
	}
}

// Spec is one catalog entry: a model family, its pure evaluation function
// over the full parameter vector, and the names attached to its parameters.
// Specs are values; they are constructed from the catalog and never mutated.
type Spec struct {
	Family Family

	// Params names the full (unbound) parameter vector, in evaluation order.
	Params []string

	// Physical names the recalculated material constants of EVP families
	// (C0, Cv, C1..Cn, tau1..taun); nil for empirical families.
	Physical []string

	// Elements is the Kelvin-Voigt element count; 0 for empirical families.
	Elements int

	eval func(t float64, theta []float64) float64
}

// Name returns the catalog name of the spec.
func (s Spec) Name() string { return s.Family.String() }

// Arity returns the full parameter count of the unbound function.
func (s Spec) Arity() int { return len(s.Params) }

// Eval evaluates the unbound model function at time t with the full
// parameter vector theta. len(theta) must equal Arity.
func (s Spec) Eval(t float64, theta []float64) float64 { return s.eval(t, theta) }

// Get returns the catalog Spec for a family.
func Get(f Family) (Spec, error) {
	switch f {
	case PowerLaw:
		return Spec{
			Family: PowerLaw,
			Params: []string{"C", "n"},
			eval:   powerLaw,
		}, nil
	case NuttingLaw:
		return Spec{
			Family: NuttingLaw,
			Params: []string{"e0", "C", "n"},
			eval:   nuttingLaw,
		}, nil
	case EvpSD1KV:
		return Spec{
			Family:   EvpSD1KV,
			Params:   []string{"const", "B0", "Cv", "D1", "tau1"},
			Physical: []string{"C0", "Cv", "C1", "tau1"},
			Elements: 1,
			eval:     evpSD(1),
		}, nil
	case EvpSD2KV:
		return Spec{
			Family:   EvpSD2KV,
			Params:   []string{"const", "B0", "Cv", "D1", "D2", "tau1", "tau2"},
			Physical: []string{"C0", "Cv", "C1", "C2", "tau1", "tau2"},
			Elements: 2,
			eval:     evpSD(2),
		}, nil
	case EvpSD3KV:
		return Spec{
			Family:   EvpSD3KV,
			Params:   []string{"const", "B0", "Cv", "D1", "D2", "D3", "tau1", "tau2", "tau3"},
			Physical: []string{"C0", "Cv", "C1", "C2", "C3", "tau1", "tau2", "tau3"},
			Elements: 3,
			eval:     evpSD(3),
		}, nil
	default:
		return Spec{}, ErrUnknownModel
	}
}

// ByName resolves a catalog name (power_law, nutting_law, evp_s_d_1kv,
// evp_s_d_2kv, evp_s_d_3kv) to its Spec.
func ByName(name string) (Spec, error) {
	for _, f := range []Family{PowerLaw, NuttingLaw, EvpSD1KV, EvpSD2KV, EvpSD3KV} {
		if f.String() == name {
			return Get(f)
		}
	}
	return Spec{}, ErrUnknownModel
}

func powerLaw(t float64, th []float64) float64 {
	return th[0] * math.Pow(t, th[1])
}

func nuttingLaw(t float64, th []float64) float64 {
	return th[0] + th[1]*math.Pow(t, th[2])
}

// evpSD builds the evaluation function of an EVP model with k Kelvin-Voigt
// elements. Parameter layout: const, B0, Cv, D1..Dk, tau1..tauk.
func evpSD(k int) func(t float64, th []float64) float64 {
	return func(t float64, th []float64) float64 {
		c, b0, cv := th[0], th[1], th[2]
		kv := 0.0
		for i := 0; i < k; i++ {
			d, tau := th[3+i], th[3+k+i]
			kv += d * math.Exp(-t/tau)
		}
		return c * (b0 + cv*t - kv)
	}
}
