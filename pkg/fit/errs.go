package fit

import "errors"

var (
	// ErrTooFewPoints indicates a fitting window with fewer data points than
	// free parameters.
	ErrTooFewPoints = errors.New("fit: fewer data points than free parameters")

	// ErrGuessSize indicates an initial guess whose length does not match
	// the bound model's free-parameter count.
	ErrGuessSize = errors.New("fit: initial guess length does not match free parameters")

	// ErrDidNotConverge indicates that the optimizer failed to reach a
	// finite converged parameter vector.
	ErrDidNotConverge = errors.New("fit: optimizer did not converge")

	// ErrSingularCovariance indicates that the covariance estimate could not
	// be computed because J'J is singular at the solution.
	ErrSingularCovariance = errors.New("fit: singular covariance at solution")
)
