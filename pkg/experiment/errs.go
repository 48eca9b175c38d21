package experiment

import "errors"

var (
	// ErrUnknownKind indicates an experiment kind outside the supported set
	// (tensile, vickers, berkovich, spherical).
	ErrUnknownKind = errors.New("experiment: unknown experiment kind")

	// ErrMissingStress indicates a tensile experiment without a positive
	// applied stress.
	ErrMissingStress = errors.New("experiment: tensile experiment needs an applied stress > 0")

	// ErrMissingForce indicates an indentation experiment without a positive
	// loading force.
	ErrMissingForce = errors.New("experiment: indentation experiment needs a loading force > 0")

	// ErrMissingRadius indicates a spherical indentation experiment without a
	// positive tip radius.
	ErrMissingRadius = errors.New("experiment: spherical indentation needs a tip radius > 0")

	// ErrNegativeDeformation indicates a negative deformation value entering
	// the indentation power transform h^m/K.
	ErrNegativeDeformation = errors.New("experiment: negative deformation in indentation data")
)
