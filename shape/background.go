package shape

import "math"

// CMSShape is the usual background template under a Z resonance peak:
// an error-function turn-on multiplied by a falling exponential. The
// exponent is anchored at 60 GeV and scaled by the 40 GeV width of the
// standard dilepton mass window, which keeps Lambda of order one.
type CMSShape struct {
	Mu     float64 // turn-on midpoint
	Steep  float64 // turn-on steepness
	Lambda float64 // decay rate over the window
}

// Eval returns the unnormalized density at x.
func (s CMSShape) Eval(x float64) float64 {
	return (math.Erf((x-s.Mu)*s.Steep) + 1) / 2 * math.Exp(-s.Lambda*(x-60)/40)
}

// Chebyshev is the series 1 + sum c_k T_k(u) with x rescaled to
// u in [-1,1] over [Lo, Hi]. The constant term is fixed at one; Coefs
// holds c_1 onward.
type Chebyshev struct {
	Coefs  []float64
	Lo, Hi float64
}

// Eval returns the unnormalized density at x.
func (s Chebyshev) Eval(x float64) float64 {
	u := (2*x - s.Lo - s.Hi) / (s.Hi - s.Lo)
	sum := 1.0
	tPrev, t := 1.0, u
	for _, c := range s.Coefs {
		sum += c * t
		tPrev, t = t, 2*u*t-tPrev
	}
	return sum
}

// Exponential decays from the lower domain edge at rate Lambda.
type Exponential struct {
	Lambda float64
	Lo     float64
}

// Eval returns the unnormalized density at x.
func (s Exponential) Eval(x float64) float64 {
	return math.Exp(-s.Lambda * (x - s.Lo))
}

// Flat is the constant background. Its fitted yield is the only thing
// it contributes to a model.
type Flat struct{}

// Eval returns 1 for every x.
func (Flat) Eval(x float64) float64 {
	return 1
}
