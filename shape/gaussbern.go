package shape

import (
	"errors"
	"math"
)

// GaussBern is a Gaussian core with Bernstein-polynomial tails pinned
// to the core value at the boundaries X0-AlphaL*Sigma and
// X0+AlphaR*Sigma. The tails are rescaled over [Lo, boundary] and
// [boundary, Hi], so the shape carries its domain edges.
//
// Coefficient convention: a side with m explicit coefficients has a
// degree-m tail built from the m+1 Bernstein terms u^i*(1-u)^(m-i). One
// term per side is implicit and carries the bare continuity scale
// exp(-alpha^2/2): index m on the left side, index 0 on the right side
// (the index surviving at the core boundary, where u is 1 and 0
// respectively). Explicit coefficients scale that value and occupy the
// remaining indices in basis order: CoefsL[i] is index i, CoefsR[i] is
// index i+1.
type GaussBern struct {
	X0    float64
	Sigma float64

	AlphaL, AlphaR float64
	CoefsL, CoefsR []float64

	Lo, Hi float64
}

// NewGaussBern builds the shape. A side with no explicit coefficients
// has no defined polynomial order and is rejected here; numeric values
// are not inspected. Direct literals skip this check, and Eval then
// degenerates the empty side to the constant boundary value.
func NewGaussBern(x0, sigma, alphaL, alphaR float64, coefsL, coefsR []float64, lo, hi float64) (GaussBern, error) {
	if len(coefsL) == 0 {
		return GaussBern{}, errors.New("shape: no left tail coefficients")
	}
	if len(coefsR) == 0 {
		return GaussBern{}, errors.New("shape: no right tail coefficients")
	}
	return GaussBern{
		X0:     x0,
		Sigma:  sigma,
		AlphaL: alphaL,
		AlphaR: alphaR,
		CoefsL: coefsL,
		CoefsR: coefsR,
		Lo:     lo,
		Hi:     hi,
	}, nil
}

// Eval returns the unnormalized density at x.
func (s GaussBern) Eval(x float64) float64 {
	z := (x - s.X0) / s.Sigma
	switch classify(z, z, s.AlphaL, s.AlphaR) {
	case leftTail:
		boundary := s.X0 - s.AlphaL*s.Sigma
		u := (x - s.Lo) / (boundary - s.Lo)
		return bernTail(u, s.AlphaL, s.CoefsL, true)
	case rightTail:
		boundary := s.X0 + s.AlphaR*s.Sigma
		u := (x - boundary) / (s.Hi - boundary)
		return bernTail(u, s.AlphaR, s.CoefsR, false)
	}
	return gaussCore(z)
}

// bernTail sums the Bernstein terms of one tail side at u. implicitLast
// picks which end holds the implicit coefficient: the last index for
// the left tail, index 0 for the right tail. No binomial factors
// appear; with non-negative coefficients the sum is non-negative
// everywhere on [0,1].
func bernTail(u, alpha float64, coefs []float64, implicitLast bool) float64 {
	m := len(coefs)
	coef0 := math.Exp(-0.5 * alpha * alpha)
	sum := 0.0
	for i := 0; i <= m; i++ {
		c := coef0
		switch {
		case implicitLast && i < m:
			c *= coefs[i]
		case !implicitLast && i > 0:
			c *= coefs[i-1]
		}
		sum += c * math.Pow(u, float64(i)) * math.Pow(1-u, float64(m-i))
	}
	return sum
}
