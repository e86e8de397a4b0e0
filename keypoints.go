package curves

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a single curve control point. Both coordinates are
// normalized to the closed interval [0, 1].
type Point struct {
	X, Y float64
}

// KeypointSet is an ordered list of control points for one channel. An
// empty set is valid and means the channel keeps its identity mapping.
// Sets are built once per table construction and never mutated.
type KeypointSet []Point

// gridIndex scales a normalized coordinate onto the integer sample
// grid, rounding half up.
func gridIndex(v float64, scale int) int {
	return int(v*float64(scale) + 0.5)
}

// validate checks the shared keypoint invariants: coordinates inside
// [0, 1], x strictly increasing once snapped to the sample grid of the
// given scale (two points landing on the same grid index are rejected,
// not merged), and at least two points when any are present.
func (k KeypointSet) validate(scale int) error {
	for i, p := range k {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			return ErrInvalidRange
		}
		if i > 0 && gridIndex(k[i-1].X, scale) >= gridIndex(p.X, scale) {
			return ErrNonMonotonic
		}
	}
	if len(k) == 1 {
		return ErrDegenerateCurve
	}
	return nil
}

// NewKeypointSet validates points against the sample grid defined by
// scale (the largest representable sample value, e.g. 255 for 8 bits)
// and returns them as a KeypointSet. No partial set is returned on
// failure.
func NewKeypointSet(points []Point, scale int) (KeypointSet, error) {
	k := KeypointSet(points)
	if err := k.validate(scale); err != nil {
		return nil, err
	}
	return k, nil
}

// ParseKeypoints parses the "x/y x/y ..." curve description form, e.g.
// "0/0 0.5/0.4 1/1". An empty or all-blank string yields an empty set.
func ParseKeypoints(spec string, scale int) (KeypointSet, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, nil
	}
	k := make(KeypointSet, 0, len(fields))
	for _, field := range fields {
		xs, ys, ok := strings.Cut(field, "/")
		if !ok {
			return nil, fmt.Errorf("%w: key point %q is not of the form x/y", ErrMalformedInput, field)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad x coordinate in key point %q", ErrMalformedInput, field)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad y coordinate in key point %q", ErrMalformedInput, field)
		}
		k = append(k, Point{X: x, Y: y})
	}
	if err := k.validate(scale); err != nil {
		return nil, err
	}
	return k, nil
}

// KeypointsFromPairs builds a KeypointSet from a flat x, y, x, y, ...
// coordinate sequence.
func KeypointsFromPairs(coords []float64, scale int) (KeypointSet, error) {
	if len(coords)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of coordinates (%d)", ErrMalformedInput, len(coords))
	}
	k := make(KeypointSet, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		k = append(k, Point{X: coords[i], Y: coords[i+1]})
	}
	if err := k.validate(scale); err != nil {
		return nil, err
	}
	return k, nil
}
