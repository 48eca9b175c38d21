// Package experiment describes a creep experiment: its kind (macroscale
// tensile, or indentation with a Vickers, Berkovich or spherical tip) and the
// constants derived from it.
//
// A Descriptor is built once and never mutated. It carries:
//
//   - m, K : shape exponent and geometry constant used to convert a measured
//     penetration depth into the experiment-invariant deformation the models
//     are fitted against (Mencik, Polymer Testing 30 (2011) 101-109, Eq. 9).
//     Tensile: m=1, K=1. Vickers/Berkovich: m=2, K=pi/(2*tan 70.3deg).
//     Spherical with tip radius R: m=3/2, K=3/(4*sqrt(R)).
//   - Const : the multiplicative constant of the EVP model functions; applied
//     stress sigma [GPa] for tensile, loading force F [mN] for indentation.
//
// Units throughout: time in seconds, deformation in micrometres, stress in
// GPa, force in mN, tip radius in micrometres.
package experiment

import "math"

// Kind identifies the type of creep experiment.
type Kind int

const (
	// Tensile is a macroscale tensile creep experiment.
	Tensile Kind = iota
	// Vickers is indentation creep with a Vickers tip.
	Vickers
	// Berkovich is indentation creep with a Berkovich tip.
	Berkovich
	// Spherical is indentation creep with a spherical tip.
	Spherical
)

// String returns the canonical name of the experiment kind.
func (k Kind) String() string {
	switch k {
	case Tensile:
		return "Tensile"
	case Vickers:
		return "Vickers"
	case Berkovich:
		return "Berkovich"
	case Spherical:
		return "Spherical"
	default:
		return "Unknown"
	}
}

// ParseKind converts a CLI-style name ("tensile", "Vickers", ...) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "tensile", "Tensile":
		return Tensile, nil
	case "vickers", "Vickers":
		return Vickers, nil
	case "berkovich", "Berkovich":
		return Berkovich, nil
	case "spherical", "Spherical":
		return Spherical, nil
	default:
		return 0, ErrUnknownKind
	}
}

// Descriptor is an immutable description of one creep experiment.
// Build it with NewTensile, NewVickers, NewBerkovich or NewSpherical.
type Descriptor struct {
	kind   Kind
	stress float64 // applied stress [GPa], tensile only
	force  float64 // loading force [mN], indentation only
	radius float64 // tip radius [um], spherical only

	m, k, c float64 // derived: shape exponent, geometry constant, EVP constant
}

// NewTensile describes a tensile creep experiment under applied stress
// sigma [GPa].
func NewTensile(sigma float64) (*Descriptor, error) {
	if sigma <= 0 {
		return nil, ErrMissingStress
	}
	return &Descriptor{kind: Tensile, stress: sigma, m: 1, k: 1, c: sigma}, nil
}

// NewVickers describes indentation creep with a Vickers tip under loading
// force f [mN].
func NewVickers(f float64) (*Descriptor, error) {
	return newPyramidal(Vickers, f)
}

// NewBerkovich describes indentation creep with a Berkovich tip under loading
// force f [mN]. Geometrically equivalent to Vickers (same effective cone
// half-angle of 70.3 degrees).
func NewBerkovich(f float64) (*Descriptor, error) {
	return newPyramidal(Berkovich, f)
}

func newPyramidal(kind Kind, f float64) (*Descriptor, error) {
	if f <= 0 {
		return nil, ErrMissingForce
	}
	alpha := 70.3 * math.Pi / 180
	return &Descriptor{
		kind:  kind,
		force: f,
		m:     2,
		k:     math.Pi / (2 * math.Tan(alpha)),
		c:     f,
	}, nil
}

// NewSpherical describes indentation creep with a spherical tip of radius
// r [um] under loading force f [mN].
func NewSpherical(f, r float64) (*Descriptor, error) {
	if f <= 0 {
		return nil, ErrMissingForce
	}
	if r <= 0 {
		return nil, ErrMissingRadius
	}
	return &Descriptor{
		kind:   Spherical,
		force:  f,
		radius: r,
		m:      1.5,
		k:      3 / (4 * math.Sqrt(r)),
		c:      f,
	}, nil
}

// Kind returns the experiment kind.
func (d *Descriptor) Kind() Kind { return d.kind }

// M returns the shape exponent m.
func (d *Descriptor) M() float64 { return d.m }

// K returns the geometry constant K.
func (d *Descriptor) K() float64 { return d.k }

// Const returns the multiplicative constant of the EVP model functions:
// sigma for tensile experiments, F for indentation experiments.
func (d *Descriptor) Const() float64 { return d.c }

// Indentation reports whether the experiment is an indentation kind.
func (d *Descriptor) Indentation() bool { return d.kind != Tensile }

// Normalize converts raw measured deformation into the experiment-invariant
// quantity the model functions are fitted against. Tensile strain passes
// through unchanged; an indentation depth h becomes h^m/K. Indentation
// depths must be non-negative: a negative value would demand a fractional
// power of a negative number and is rejected as a data error.
func (d *Descriptor) Normalize(y []float64) ([]float64, error) {
	if d.kind == Tensile {
		out := make([]float64, len(y))
		copy(out, y)
		return out, nil
	}
	out := make([]float64, len(y))
	for i, v := range y {
		if v < 0 {
			return nil, ErrNegativeDeformation
		}
		out[i] = math.Pow(v, d.m) / d.k
	}
	return out, nil
}

// Denormalize is the inverse of Normalize: identity for tensile, and
// (y*K)^(1/m) for indentation. Used to bring fitted curves back to raw
// deformation for plotting and reporting.
func (d *Descriptor) Denormalize(y []float64) []float64 {
	out := make([]float64, len(y))
	if d.kind == Tensile {
		copy(out, y)
		return out
	}
	for i, v := range y {
		out[i] = math.Pow(v*d.k, 1/d.m)
	}
	return out
}
