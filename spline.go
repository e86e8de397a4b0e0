package curves

// Natural cubic spline interpolation, after the "Finding curves using
// Cubic Splines" notes by Steven Rauch and John Stockie.

// secondDerivatives solves the tridiagonal linear system for the
// natural cubic spline through points (zero second derivative at both
// endpoints), returning the segment widths h and the second derivative
// of the spline at every knot. The caller guarantees len(points) >= 2.
func secondDerivatives(points KeypointSet) (h, r []float64) {
	n := len(points)

	// h(i) = x(i+1) - x(i)
	h = make([]float64, n-1)
	for i := range h {
		h[i] = points[i+1].X - points[i].X
	}

	// right-hand side of the polynomials, solved in place below
	r = make([]float64, n)
	for i := 1; i < n-1; i++ {
		yp, yc, yn := points[i-1].Y, points[i].Y, points[i+1].Y
		r[i] = 6 * ((yn-yc)/h[i] - (yc-yp)/h[i-1])
	}

	// left-hand side as a tridiagonal matrix, unit rows at both
	// boundaries for the natural condition
	sub := make([]float64, n)
	diag := make([]float64, n)
	sup := make([]float64, n)
	diag[0], diag[n-1] = 1, 1
	for i := 1; i < n-1; i++ {
		sub[i] = h[i-1]
		diag[i] = 2 * (h[i-1] + h[i])
		sup[i] = h[i]
	}

	// Thomas algorithm: forward elimination, then back substitution.
	// A zero denominator can only come from degenerate segment widths
	// that keypoint validation already rejects; scale by 1 instead of
	// failing if it ever happens.
	for i := 1; i < n; i++ {
		den := diag[i] - sub[i]*sup[i-1]
		k := 1.0
		if den != 0 {
			k = 1 / den
		}
		sup[i] *= k
		r[i] = (r[i] - sub[i]*r[i-1]) * k
	}
	for i := n - 2; i >= 0; i-- {
		r[i] -= sup[i] * r[i+1]
	}
	return h, r
}

// segmentCoefficients returns the cubic coefficients for segment i so
// that the spline value at grid offset xx is a + b*xx + c*xx² + d*xx³,
// where xx is (x - xStart) normalized by the full grid scale.
func segmentCoefficients(points KeypointSet, h, r []float64, i int) (a, b, c, d float64) {
	yc, yn := points[i].Y, points[i+1].Y
	a = yc
	b = (yn-yc)/h[i] - h[i]*r[i]/2 - h[i]*(r[i+1]-r[i])/6
	c = r[i] / 2
	d = (r[i+1] - r[i]) / (6 * h[i])
	return a, b, c, d
}
