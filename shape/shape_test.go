package shape

import (
	"math"
	"testing"
)

const (
	smallDiff = 1e-6
	tinyDiff  = 1e-12
)

/*** Tests if a and b are approximately equal ***/
func appreq(a, b float64) bool {
	return math.Abs(a-b) <= smallDiff
}

/*** Tests if a and b agree to floating-point precision ***/
func tighteq(a, b float64) bool {
	return math.Abs(a-b) <= tinyDiff
}

// Every tail construction has to reproduce the Gaussian boundary value
// on both sides of the junction.
func TestBoundaryContinuity(tst *testing.T) {
	const eps = 1e-9

	dscb := DoubleCB{
		X0: 91.2, SigmaL: 2.1, SigmaR: 3.4,
		AlphaL: 1.2, NL1: 1.5, NL2: 4, FL: 0.6,
		AlphaR: 1.7, NR1: 2, NR2: 3.5, FR: 0.3,
	}
	lb := dscb.X0 - dscb.AlphaL*dscb.SigmaL
	rb := dscb.X0 + dscb.AlphaR*dscb.SigmaR
	lref := math.Exp(-0.5 * dscb.AlphaL * dscb.AlphaL)
	rref := math.Exp(-0.5 * dscb.AlphaR * dscb.AlphaR)
	if !appreq(dscb.Eval(lb-eps), lref) || !appreq(dscb.Eval(lb+eps), lref) {
		tst.Error("Expected ", lref, " around left boundary, got ", dscb.Eval(lb-eps), dscb.Eval(lb+eps))
	}
	if !appreq(dscb.Eval(rb-eps), rref) || !appreq(dscb.Eval(rb+eps), rref) {
		tst.Error("Expected ", rref, " around right boundary, got ", dscb.Eval(rb-eps), dscb.Eval(rb+eps))
	}

	gb, err := NewGaussBern(90, 2.5, 1.4, 1.1,
		[]float64{0.5, 0.25}, []float64{0.8, 0.4},
		70, 110)
	if err != nil {
		tst.Fatal("Unexpected error:", err)
	}
	lb = gb.X0 - gb.AlphaL*gb.Sigma
	rb = gb.X0 + gb.AlphaR*gb.Sigma
	lref = math.Exp(-0.5 * gb.AlphaL * gb.AlphaL)
	rref = math.Exp(-0.5 * gb.AlphaR * gb.AlphaR)
	if !appreq(gb.Eval(lb-eps), lref) || !appreq(gb.Eval(lb+eps), lref) {
		tst.Error("Expected ", lref, " around left boundary, got ", gb.Eval(lb-eps), gb.Eval(lb+eps))
	}
	if !appreq(gb.Eval(rb-eps), rref) || !appreq(gb.Eval(rb+eps), rref) {
		tst.Error("Expected ", rref, " around right boundary, got ", gb.Eval(rb-eps), gb.Eval(rb+eps))
	}

	cb := CrystalBall{X0: 91.2, Sigma: 2.5, Alpha: 1.3, N: 3, TailLeft: true}
	lb = cb.X0 - cb.Alpha*cb.Sigma
	lref = math.Exp(-0.5 * cb.Alpha * cb.Alpha)
	if !appreq(cb.Eval(lb-eps), lref) || !appreq(cb.Eval(lb+eps), lref) {
		tst.Error("Expected ", lref, " around tail boundary, got ", cb.Eval(lb-eps), cb.Eval(lb+eps))
	}
}

// The core is split at the peak when the two widths differ; both halves
// have to agree at the peak itself.
func TestAsymmetricCorePeak(tst *testing.T) {
	s := DoubleCB{
		X0: 10, SigmaL: 0.5, SigmaR: 4,
		AlphaL: 1, NL1: 2, NL2: 2, FL: 1,
		AlphaR: 1, NR1: 2, NR2: 2, FR: 1,
	}
	if !tighteq(s.Eval(10), 1) {
		tst.Error("Expected 1 at the peak, got ", s.Eval(10))
	}
	const eps = 1e-9
	if !appreq(s.Eval(10-eps), 1) || !appreq(s.Eval(10+eps), 1) {
		tst.Error("Core halves disagree at the peak:", s.Eval(10-eps), s.Eval(10+eps))
	}
	if !tighteq(s.Eval(10-0.25), math.Exp(-0.125)) {
		tst.Error("Expected ", math.Exp(-0.125), ", got ", s.Eval(10-0.25))
	}
	if !tighteq(s.Eval(10+2), math.Exp(-0.125)) {
		tst.Error("Expected ", math.Exp(-0.125), ", got ", s.Eval(10+2))
	}
}

// NaN and degenerate inputs propagate instead of panicking.
func TestGarbageIn(tst *testing.T) {
	s := DoubleCB{
		X0: 0, SigmaL: 0, SigmaR: 1,
		AlphaL: 1, NL1: 2, NL2: 2, FL: 1,
		AlphaR: 1, NR1: 2, NR2: 2, FR: 1,
	}
	// zero width puts every x left of the peak at infinite normalized
	// distance, where the tail vanishes
	if v := s.Eval(-1); v != 0 {
		tst.Error("Expected 0 for zero width, got ", v)
	}

	s.SigmaL = 1
	if !math.IsNaN(s.Eval(math.NaN())) {
		tst.Error("Expected NaN propagation, got ", s.Eval(math.NaN()))
	}

	gb := GaussBern{X0: 0, Sigma: 1, AlphaL: 1, AlphaR: 1,
		CoefsL: []float64{0.5}, CoefsR: []float64{0.5}, Lo: -5, Hi: 5}
	if !math.IsNaN(gb.Eval(math.NaN())) {
		tst.Error("Expected NaN propagation, got ", gb.Eval(math.NaN()))
	}
}
