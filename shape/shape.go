// Package shape implements closed-form unnormalized densities used as
// fit templates for particle mass spectra. Every shape is a small value
// struct with an Eval method; evaluation is a pure function of the
// struct fields and x, so shapes are safe to share between goroutines.
//
// Evaluation never validates its inputs. NaN or Inf parameters, widths
// that are zero or negative, or tail bases driven non-positive under a
// fractional power all propagate through IEEE arithmetic into the
// result. The single hard check lives in NewGaussBern.
package shape

import "math"

// Shape is an unnormalized density evaluated pointwise.
type Shape interface {
	Eval(x float64) float64
}

// region tags the piece of a piecewise shape which applies at a point.
type region int

const (
	leftTail region = iota
	leftCore
	rightCore
	rightTail
)

// classify selects the region from the side-normalized distances to the
// peak. The comparisons are strict; every tail construction reproduces
// the core value at its boundary, so which side of a comparison a
// boundary point lands on does not change the result.
func classify(zl, zr, alphaL, alphaR float64) region {
	switch {
	case zl < -alphaL:
		return leftTail
	case zl < 0:
		return leftCore
	case zr < alphaR:
		return rightCore
	}
	return rightTail
}

// gaussCore is the central region shared by all signal shapes. The
// normalization factor is left to the fitting layer.
func gaussCore(z float64) float64 {
	return math.Exp(-0.5 * z * z)
}
