package fitmodel

import (
	"fmt"

	"github.com/hepstat/massfit/optimize"
	"github.com/hepstat/massfit/shape"
)

// GaussBern is a fit model with a Gaussian core and Bernstein
// polynomial tails pinned to the core at the transition points. The
// polynomial order of each tail is fixed at construction, the
// coefficients are free parameters.
type GaussBern struct {
	*BaseModel
	x0     float64
	sigma  float64
	alphaL float64
	alphaR float64
	coefsL []float64
	coefsR []float64
}

// NewGaussBern creates a new GaussBern model with orderL and orderR
// explicit coefficients in the left and right tail.
func NewGaussBern(data *Data, orderL, orderR int) (m *GaussBern) {
	if orderL < 1 || orderR < 1 {
		log.Fatalf("GaussBern needs at least one tail coefficient per side, got %v and %v", orderL, orderR)
	}
	m = &GaussBern{
		coefsL: make([]float64, orderL),
		coefsR: make([]float64, orderR),
	}
	m.BaseModel = NewBaseModel(data, m)
	m.setupParameters()
	m.SetDefaults()
	return
}

// Copy makes a copy of the model preserving the parameter values.
func (m *GaussBern) Copy() optimize.Optimizable {
	newM := &GaussBern{
		BaseModel: m.BaseModel.Copy(),
		x0:        m.x0,
		sigma:     m.sigma,
		alphaL:    m.alphaL,
		alphaR:    m.alphaR,
		coefsL:    make([]float64, len(m.coefsL)),
		coefsR:    make([]float64, len(m.coefsR)),
	}
	copy(newM.coefsL, m.coefsL)
	copy(newM.coefsR, m.coefsR)
	newM.BaseModel.model = newM
	newM.setupParameters()
	return newM
}

// signal returns the signal shape for the current parameter values.
func (m *GaussBern) signal() shape.Shape {
	return shape.GaussBern{
		X0:     m.x0,
		Sigma:  m.sigma,
		AlphaL: m.alphaL,
		AlphaR: m.alphaR,
		CoefsL: m.coefsL,
		CoefsR: m.coefsR,
		Lo:     m.data.FitLo(),
		Hi:     m.data.FitHi(),
	}
}

// addParameters adds all the model parameters to the parameter
// storage.
func (m *GaussBern) addParameters(fpg optimize.FloatParameterGenerator) {
	m.addPeakParameter(fpg, &m.x0, "x0")
	m.addWidthParameter(fpg, &m.sigma, "sigma")
	m.addTailParameter(fpg, &m.alphaL, "alphaL", 0.05)
	m.addTailParameter(fpg, &m.alphaR, "alphaR", 0.05)
	for i := range m.coefsL {
		m.addCoefParameter(fpg, &m.coefsL[i], fmt.Sprintf("cL%d", i))
	}
	for i := range m.coefsR {
		m.addCoefParameter(fpg, &m.coefsR[i], fmt.Sprintf("cR%d", i))
	}
}

// GetParameters returns a copy of the signal parameter values.
func (m *GaussBern) GetParameters() shape.GaussBern {
	s := m.signal().(shape.GaussBern)
	s.CoefsL = append([]float64(nil), m.coefsL...)
	s.CoefsR = append([]float64(nil), m.coefsR...)
	return s
}

// SetParameters sets the signal parameter values. The tail orders are
// fixed at construction, so the coefficients are copied in place.
func (m *GaussBern) SetParameters(s shape.GaussBern) {
	m.x0 = s.X0
	m.sigma = s.Sigma
	m.alphaL = s.AlphaL
	m.alphaR = s.AlphaR
	copy(m.coefsL, s.CoefsL)
	copy(m.coefsR, s.CoefsR)
	m.sigDone = false
}

// SetDefaults sets the default initial parameter values from the
// spectrum moments.
func (m *GaussBern) SetDefaults() {
	m.x0, m.sigma = m.peakDefaults()
	m.alphaL = 1.5
	m.alphaR = 1.5
	for i := range m.coefsL {
		m.coefsL[i] = 0.25
	}
	for i := range m.coefsR {
		m.coefsR[i] = 0.25
	}
	m.sigDone = false
}
