package shape

import (
	"math"
	"testing"
)

func mustGaussBern(tst *testing.T, x0, sigma, alphaL, alphaR float64, coefsL, coefsR []float64, lo, hi float64) GaussBern {
	s, err := NewGaussBern(x0, sigma, alphaL, alphaR, coefsL, coefsR, lo, hi)
	if err != nil {
		tst.Fatal("Unexpected error:", err)
	}
	return s
}

// Unnormalized peak value is exactly one.
func TestGaussBernPeak(tst *testing.T) {
	s := mustGaussBern(tst, 0, 1, 1.5, 1.5,
		[]float64{0.3, 0.7}, []float64{0.4, 0.1}, -5, 5)
	if v := s.Eval(0); v != 1 {
		tst.Error("Expected 1, got ", v)
	}
}

// At the right boundary the tail formula and the core formula agree on
// exp(-alpha^2/2), whatever the coefficients are.
func TestGaussBernRightBoundary(tst *testing.T) {
	ref := math.Exp(-0.5 * 1.5 * 1.5)
	for _, coefs := range [][]float64{
		{0.2},
		{0.9, 0.1},
		{0.5, 2, 0.25},
	} {
		s := mustGaussBern(tst, 0, 1, 1.5, 1.5, coefs, coefs, -5, 5)
		if v := s.Eval(1.5); !tighteq(v, ref) {
			tst.Error("Expected ", ref, ", got ", v, " for coefs ", coefs)
		}
	}
}

// With non-negative coefficients the tails cannot go negative anywhere
// on the domain.
func TestGaussBernNonNegative(tst *testing.T) {
	coefSets := [][]float64{
		{0},
		{0.01},
		{1.5, 0},
		{0, 0.3, 2},
		{0.7, 0.7, 0.7, 0.7},
	}
	for _, cl := range coefSets {
		for _, cr := range coefSets {
			s := GaussBern{
				X0: 90, Sigma: 3, AlphaL: 1.1, AlphaR: 0.9,
				CoefsL: cl, CoefsR: cr, Lo: 70, Hi: 110,
			}
			for x := 70.0; x <= 110; x += 0.1 {
				if v := s.Eval(x); v < 0 {
					tst.Errorf("Negative value %g at x=%g for coefs %v %v", v, x, cl, cr)
					return
				}
			}
		}
	}
}

// The implicit coefficient sits at opposite ends of the two tails: facing
// the far domain edge the surviving term carries the first explicit
// coefficient on the left and the last explicit coefficient on the right.
func TestGaussBernCoefConvention(tst *testing.T) {
	coefsL := []float64{0.3, 0.7, 0.2}
	coefsR := []float64{0.6, 0.05}
	s := mustGaussBern(tst, 0, 1, 1.5, 2, coefsL, coefsR, -5, 5)

	c0L := math.Exp(-0.5 * 1.5 * 1.5)
	if v := s.Eval(-5); !tighteq(v, c0L*coefsL[0]) {
		tst.Error("Expected ", c0L*coefsL[0], " at the low edge, got ", v)
	}
	c0R := math.Exp(-0.5 * 2 * 2)
	if v := s.Eval(5); !tighteq(v, c0R*coefsR[1]) {
		tst.Error("Expected ", c0R*coefsR[1], " at the high edge, got ", v)
	}
}

// A degree-2 left tail written out longhand.
func TestGaussBernAgainstLonghand(tst *testing.T) {
	coefs := []float64{0.4, 1.3}
	s := mustGaussBern(tst, 0, 1, 1, 1, coefs, coefs, -4, 4)
	c0 := math.Exp(-0.5)
	boundary := -1.0
	for _, x := range []float64{-4, -3.2, -2.5, -1.7, -1.01} {
		u := (x - s.Lo) / (boundary - s.Lo)
		want := c0 * (coefs[0]*(1-u)*(1-u) + coefs[1]*u*(1-u) + u*u)
		if got := s.Eval(x); !appreq(got, want) {
			tst.Error("Expected ", want, ", got ", got, " at x=", x)
		}
	}
}

// An empty coefficient list degenerates that tail to the constant
// boundary value.
func TestGaussBernEmptyCoefs(tst *testing.T) {
	s := GaussBern{X0: 0, Sigma: 1, AlphaL: 1, AlphaR: 1, Lo: -5, Hi: 5}
	c0 := math.Exp(-0.5)
	for _, x := range []float64{-5, -3, -1.5, 1.5, 3, 5} {
		if v := s.Eval(x); !tighteq(v, c0) {
			tst.Error("Expected constant ", c0, ", got ", v, " at x=", x)
		}
	}
}

// The constructor is the one place that rejects an undefined tail order.
func TestNewGaussBernNoCoefs(tst *testing.T) {
	if _, err := NewGaussBern(0, 1, 1, 1, nil, []float64{1}, -5, 5); err == nil {
		tst.Error("Expected an error for a missing left coefficient list")
	}
	if _, err := NewGaussBern(0, 1, 1, 1, []float64{1}, []float64{}, -5, 5); err == nil {
		tst.Error("Expected an error for a missing right coefficient list")
	}
	if _, err := NewGaussBern(0, 1, 1, 1, []float64{1}, []float64{1}, -5, 5); err != nil {
		tst.Error("Unexpected error:", err)
	}
}
