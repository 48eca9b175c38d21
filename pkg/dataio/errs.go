package dataio

import "errors"

var (
	// ErrBadFormat indicates a data line with fewer or unparsable columns.
	ErrBadFormat = errors.New("dataio: wrong format, expected text columns with time and deformation")

	// ErrEmptyWindow indicates that no data points fall inside the requested
	// time window.
	ErrEmptyWindow = errors.New("dataio: no data points in the requested time window")
)
