package fitmodel

import (
	"fmt"

	"github.com/hepstat/massfit/optimize"
	"github.com/hepstat/massfit/shape"
)

// BackgroundKind selects the background component of a fit model.
type BackgroundKind int

// Background kinds.
const (
	// BkgNone is a signal-only fit.
	BkgNone BackgroundKind = iota
	// BkgCMS is an error-function turn-on times a falling
	// exponential.
	BkgCMS
	// BkgExp is a decaying exponential.
	BkgExp
	// BkgChebyshev is a Chebyshev polynomial.
	BkgChebyshev
)

// ParseBackgroundKind converts a background name to a BackgroundKind.
func ParseBackgroundKind(name string) (BackgroundKind, error) {
	switch name {
	case "none":
		return BkgNone, nil
	case "cms":
		return BkgCMS, nil
	case "exp":
		return BkgExp, nil
	case "cheb":
		return BkgChebyshev, nil
	}
	return BkgNone, fmt.Errorf("unknown background name %q", name)
}

// SetBackground selects the background component and sets its default
// parameter values. order is the polynomial order for the Chebyshev
// background; it is ignored for the other kinds.
func (m *BaseModel) SetBackground(kind BackgroundKind, order int) {
	m.bkgKind = kind
	m.bkgDone = false

	total := m.data.Fit.Total()
	switch kind {
	case BkgNone:
		m.nsig = total
		m.nbkg = 0
	default:
		m.nsig = 0.9 * total
		m.nbkg = 0.1 * total
	}
	switch kind {
	case BkgCMS:
		m.cmsMu = m.data.FitLo()
		m.cmsSteep = 0.05
		m.cmsLambda = 0.1
	case BkgExp:
		m.expLambda = 0.01
	case BkgChebyshev:
		if order < 1 {
			log.Fatalf("Chebyshev background order must be at least 1, got %v", order)
		}
		m.chebCoefs = make([]float64, order)
	}

	m.setupParameters()
}

// background returns the background shape for the current parameter
// values.
func (m *BaseModel) background() shape.Shape {
	switch m.bkgKind {
	case BkgCMS:
		return shape.CMSShape{Mu: m.cmsMu, Steep: m.cmsSteep, Lambda: m.cmsLambda}
	case BkgExp:
		return shape.Exponential{Lambda: m.expLambda, Lo: m.data.FitLo()}
	case BkgChebyshev:
		return shape.Chebyshev{Coefs: m.chebCoefs, Lo: m.data.FitLo(), Hi: m.data.FitHi()}
	}
	return shape.Flat{}
}

// addBackgroundParameters adds the parameters of the selected
// background component.
func (m *BaseModel) addBackgroundParameters(fpg optimize.FloatParameterGenerator) {
	width := m.data.FitHi() - m.data.FitLo()
	switch m.bkgKind {
	case BkgCMS:
		cmsMu := fpg(&m.cmsMu, "cms_mu")
		cmsMu.SetOnChange(func() {
			m.bkgDone = false
		})
		cmsMu.SetMin(m.data.FitLo() - 3*width)
		cmsMu.SetMax(m.data.FitHi())
		cmsMu.SetPriorFunc(optimize.UniformPrior(m.data.FitLo()-3*width, m.data.FitHi(), true, true))
		m.setProposal(cmsMu, width/100)
		m.parameters.Append(cmsMu)

		cmsSteep := fpg(&m.cmsSteep, "cms_steep")
		cmsSteep.SetOnChange(func() {
			m.bkgDone = false
		})
		cmsSteep.SetMin(1e-2)
		cmsSteep.SetMax(0.5)
		cmsSteep.SetPriorFunc(optimize.UniformPrior(0, 1, false, true))
		m.setProposal(cmsSteep, 0.01)
		m.parameters.Append(cmsSteep)

		cmsLambda := fpg(&m.cmsLambda, "cms_lambda")
		cmsLambda.SetOnChange(func() {
			m.bkgDone = false
		})
		cmsLambda.SetMin(-2)
		cmsLambda.SetMax(2)
		cmsLambda.SetPriorFunc(optimize.UniformPrior(-2, 2, true, true))
		m.setProposal(cmsLambda, 0.01)
		m.parameters.Append(cmsLambda)
	case BkgExp:
		expLambda := fpg(&m.expLambda, "exp_lambda")
		expLambda.SetOnChange(func() {
			m.bkgDone = false
		})
		expLambda.SetMin(-1)
		expLambda.SetMax(1)
		expLambda.SetPriorFunc(optimize.UniformPrior(-1, 1, true, true))
		m.setProposal(expLambda, 0.01)
		m.parameters.Append(expLambda)
	case BkgChebyshev:
		for i := range m.chebCoefs {
			coef := fpg(&m.chebCoefs[i], fmt.Sprintf("cheb%d", i+1))
			coef.SetOnChange(func() {
				m.bkgDone = false
			})
			coef.SetMin(-1)
			coef.SetMax(1)
			coef.SetPriorFunc(optimize.UniformPrior(-1, 1, true, true))
			m.setProposal(coef, 0.01)
			m.parameters.Append(coef)
		}
	}
}
