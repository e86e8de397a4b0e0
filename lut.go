package curves

// Supported sample bit depths.
const (
	MinBits = 8
	MaxBits = 16
)

// LUT maps every representable input sample value to an output value.
// A table built for n bits has 1<<n entries, each in [0, 1<<n - 1].
type LUT []uint16

func identityLUT(size int) LUT {
	y := make(LUT, size)
	for i := range y {
		y[i] = uint16(i)
	}
	return y
}

// clampRound converts a normalized spline value to a sample, rounding
// half up and clamping to the representable range. The spline may
// overshoot [0, 1] between knots, hence the clamp.
func clampRound(v float64, scale int) uint16 {
	n := int(v*float64(scale) + 0.5)
	if n < 0 {
		n = 0
	}
	if n > scale {
		n = scale
	}
	return uint16(n)
}

// Interpolate evaluates the natural cubic spline through k at every
// integer sample value of the given bit depth and returns the resulting
// lookup table. An empty set yields the identity table. Samples below
// the first point and above the last are padded flat with that point's
// value.
//
// The caller is expected to have validated k (and bits) beforehand;
// Build does this for every table it constructs.
func (k KeypointSet) Interpolate(bits int) LUT {
	size := 1 << bits
	scale := size - 1
	if len(k) == 0 {
		return identityLUT(size)
	}

	h, r := secondDerivatives(k)
	y := make(LUT, size)

	// left padding
	for i := 0; i < gridIndex(k[0].X, scale); i++ {
		y[i] = clampRound(k[0].Y, scale)
	}

	// Evaluate each segment over its inclusive [xStart, xEnd] grid
	// range. Adjacent segments share a boundary index; both write it
	// and the later segment wins, which keeps the table bit-identical
	// with evaluation order even when the two cubics disagree in the
	// last float bit there.
	for i := 0; i < len(k)-1; i++ {
		a, b, c, d := segmentCoefficients(k, h, r, i)
		xStart := gridIndex(k[i].X, scale)
		xEnd := gridIndex(k[i+1].X, scale)
		for x := xStart; x <= xEnd; x++ {
			xx := float64(x-xStart) / float64(scale)
			yy := a + b*xx + c*xx*xx + d*xx*xx*xx
			y[x] = clampRound(yy, scale)
		}
	}

	// right padding
	last := k[len(k)-1]
	for i := gridIndex(last.X, scale); i < size; i++ {
		y[i] = clampRound(last.Y, scale)
	}
	return y
}
