package shape

import "math"

// DoubleCB is a Gaussian core with an independent width on each side
// and a two-component power-law tail beyond each core boundary. The
// boundaries sit at X0-AlphaL*SigmaL and X0+AlphaR*SigmaR.
type DoubleCB struct {
	X0     float64
	SigmaL float64
	SigmaR float64

	// Left tail: exponent pair blended with weight FL on NL1.
	AlphaL, NL1, NL2, FL float64
	// Right tail, same construction.
	AlphaR, NR1, NR2, FR float64
}

// Eval returns the unnormalized density at x.
func (s DoubleCB) Eval(x float64) float64 {
	zl := (x - s.X0) / s.SigmaL
	zr := (x - s.X0) / s.SigmaR
	switch classify(zl, zr, s.AlphaL, s.AlphaR) {
	case leftTail:
		return blendTail(-zl, s.AlphaL, s.NL1, s.NL2, s.FL)
	case leftCore:
		return gaussCore(zl)
	case rightCore:
		return gaussCore(zr)
	}
	return blendTail(zr, s.AlphaR, s.NR1, s.NR2, s.FR)
}

// clampExponent keeps the second exponent of a pair at or above the
// first, so relabeling the pair cannot produce a second equivalent
// likelihood maximum. Idempotent.
func clampExponent(n1, n2 float64) float64 {
	return math.Max(n1, n2)
}

// powerLaw evaluates one power-law component at distance t from the
// peak in local width units, with t >= |alpha| in the tail. A and B are
// chosen so the component meets the Gaussian core at t = |alpha| with
// the exact boundary value exp(-alpha^2/2) and the core's slope. A base
// B+t <= 0 under a fractional exponent yields NaN and is the caller's
// parameter-range problem.
func powerLaw(t, alpha, n float64) float64 {
	a := math.Abs(alpha)
	b := n/a - a
	amp := math.Pow(n/a, n) * math.Exp(-0.5*a*a)
	return amp * math.Pow(b+t, -n)
}

// blendTail mixes the two power-law components of one tail side.
func blendTail(t, alpha, n1, n2, f float64) float64 {
	n2eff := clampExponent(n1, n2)
	return f*powerLaw(t, alpha, n1) + (1-f)*powerLaw(t, alpha, n2eff)
}
