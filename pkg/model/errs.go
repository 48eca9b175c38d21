package model

import "errors"

var (
	// ErrUnknownModel indicates a model family name outside the catalog.
	ErrUnknownModel = errors.New("model: unknown model")

	// ErrRetardationCount indicates a fixed retardation-time list whose
	// length does not match the model's Kelvin-Voigt element count.
	ErrRetardationCount = errors.New("model: retardation time count does not match the model")

	// ErrNotEVP indicates an EVP-only operation requested for an empirical
	// model family.
	ErrNotEVP = errors.New("model: operation applies to EVP families only")
)
