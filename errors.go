package curves

import "errors"

// Validation failures surfaced by Build and the keypoint constructors.
// Every error returned by this package wraps one of these sentinels, so
// callers can classify failures with errors.Is.
var (
	ErrInvalidRange    = errors.New("invalid key point coordinates, x and y must be in the [0;1] range")
	ErrNonMonotonic    = errors.New("key point coordinates are too close from each other or not strictly increasing on the x-axis")
	ErrDegenerateCurve = errors.New("only one point is defined, this is unlikely to behave as you expect")
	ErrMalformedInput  = errors.New("malformed curve input")

	// ErrUnsupportedFormat is returned when sample depths or image
	// types fall outside the 8-16 bit integer range this package
	// operates on. Float samples are rejected at this boundary.
	ErrUnsupportedFormat = errors.New("only 8-16 bit integer samples are supported")
)
