package fitmodel

import (
	"github.com/hepstat/massfit/optimize"
	"github.com/hepstat/massfit/shape"
)

// CrystalBall is a fit model with a Gaussian core and a single
// power-law tail. The tail side is fixed at construction and is not a
// fit parameter.
type CrystalBall struct {
	*BaseModel
	x0       float64
	sigma    float64
	alpha    float64
	n        float64
	tailLeft bool
}

// NewCrystalBall creates a new CrystalBall model. tailLeft selects
// the side carrying the power-law tail.
func NewCrystalBall(data *Data, tailLeft bool) (m *CrystalBall) {
	m = &CrystalBall{
		tailLeft: tailLeft,
	}
	m.BaseModel = NewBaseModel(data, m)
	m.setupParameters()
	m.SetDefaults()
	return
}

// Copy makes a copy of the model preserving the parameter values.
func (m *CrystalBall) Copy() optimize.Optimizable {
	newM := &CrystalBall{
		BaseModel: m.BaseModel.Copy(),
		x0:        m.x0,
		sigma:     m.sigma,
		alpha:     m.alpha,
		n:         m.n,
		tailLeft:  m.tailLeft,
	}
	newM.BaseModel.model = newM
	newM.setupParameters()
	return newM
}

// signal returns the signal shape for the current parameter values.
func (m *CrystalBall) signal() shape.Shape {
	return shape.CrystalBall{
		X0:       m.x0,
		Sigma:    m.sigma,
		Alpha:    m.alpha,
		N:        m.n,
		TailLeft: m.tailLeft,
	}
}

// addParameters adds all the model parameters to the parameter
// storage.
func (m *CrystalBall) addParameters(fpg optimize.FloatParameterGenerator) {
	m.addPeakParameter(fpg, &m.x0, "x0")
	m.addWidthParameter(fpg, &m.sigma, "sigma")
	m.addTailParameter(fpg, &m.alpha, "alpha", 0.05)
	m.addTailParameter(fpg, &m.n, "n", 0.1)
}

// GetParameters returns the signal parameter values.
func (m *CrystalBall) GetParameters() shape.CrystalBall {
	return m.signal().(shape.CrystalBall)
}

// SetParameters sets the signal parameter values. The tail side is
// fixed at construction and is left unchanged.
func (m *CrystalBall) SetParameters(s shape.CrystalBall) {
	m.x0 = s.X0
	m.sigma = s.Sigma
	m.alpha = s.Alpha
	m.n = s.N
	m.sigDone = false
}

// SetDefaults sets the default initial parameter values from the
// spectrum moments.
func (m *CrystalBall) SetDefaults() {
	m.x0, m.sigma = m.peakDefaults()
	m.alpha = 1.5
	m.n = 1.5
	m.sigDone = false
}
