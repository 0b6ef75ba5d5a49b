package fitmodel

import (
	"github.com/hepstat/massfit/optimize"
	"github.com/hepstat/massfit/shape"
)

// DoubleCB is a fit model with a double-sided Crystal Ball signal: an
// asymmetric Gaussian core with a blend of two power laws on each
// side.
type DoubleCB struct {
	*BaseModel
	x0     float64
	sigmaL float64
	sigmaR float64
	alphaL float64
	nL1    float64
	nL2    float64
	fL     float64
	alphaR float64
	nR1    float64
	nR2    float64
	fR     float64
}

// NewDoubleCB creates a new DoubleCB model.
func NewDoubleCB(data *Data) (m *DoubleCB) {
	m = &DoubleCB{}
	m.BaseModel = NewBaseModel(data, m)
	m.setupParameters()
	m.SetDefaults()
	return
}

// Copy makes a copy of the model preserving the parameter values.
func (m *DoubleCB) Copy() optimize.Optimizable {
	newM := &DoubleCB{
		BaseModel: m.BaseModel.Copy(),
		x0:        m.x0,
		sigmaL:    m.sigmaL,
		sigmaR:    m.sigmaR,
		alphaL:    m.alphaL,
		nL1:       m.nL1,
		nL2:       m.nL2,
		fL:        m.fL,
		alphaR:    m.alphaR,
		nR1:       m.nR1,
		nR2:       m.nR2,
		fR:        m.fR,
	}
	newM.BaseModel.model = newM
	newM.setupParameters()
	return newM
}

// signal returns the signal shape for the current parameter values.
func (m *DoubleCB) signal() shape.Shape {
	return shape.DoubleCB{
		X0:     m.x0,
		SigmaL: m.sigmaL,
		SigmaR: m.sigmaR,
		AlphaL: m.alphaL,
		NL1:    m.nL1,
		NL2:    m.nL2,
		FL:     m.fL,
		AlphaR: m.alphaR,
		NR1:    m.nR1,
		NR2:    m.nR2,
		FR:     m.fR,
	}
}

// addParameters adds all the model parameters to the parameter
// storage.
func (m *DoubleCB) addParameters(fpg optimize.FloatParameterGenerator) {
	m.addPeakParameter(fpg, &m.x0, "x0")
	m.addWidthParameter(fpg, &m.sigmaL, "sigmaL")
	m.addWidthParameter(fpg, &m.sigmaR, "sigmaR")
	m.addTailParameter(fpg, &m.alphaL, "alphaL", 0.05)
	m.addTailParameter(fpg, &m.nL1, "nL1", 0.1)
	m.addTailParameter(fpg, &m.nL2, "nL2", 0.1)
	m.addFractionParameter(fpg, &m.fL, "fL")
	m.addTailParameter(fpg, &m.alphaR, "alphaR", 0.05)
	m.addTailParameter(fpg, &m.nR1, "nR1", 0.1)
	m.addTailParameter(fpg, &m.nR2, "nR2", 0.1)
	m.addFractionParameter(fpg, &m.fR, "fR")
}

// GetParameters returns the signal parameter values.
func (m *DoubleCB) GetParameters() shape.DoubleCB {
	return m.signal().(shape.DoubleCB)
}

// SetParameters sets the signal parameter values.
func (m *DoubleCB) SetParameters(s shape.DoubleCB) {
	m.x0 = s.X0
	m.sigmaL = s.SigmaL
	m.sigmaR = s.SigmaR
	m.alphaL = s.AlphaL
	m.nL1 = s.NL1
	m.nL2 = s.NL2
	m.fL = s.FL
	m.alphaR = s.AlphaR
	m.nR1 = s.NR1
	m.nR2 = s.NR2
	m.fR = s.FR
	m.sigDone = false
}

// SetDefaults sets the default initial parameter values from the
// spectrum moments.
func (m *DoubleCB) SetDefaults() {
	x0, sigma := m.peakDefaults()
	m.SetParameters(shape.DoubleCB{
		X0:     x0,
		SigmaL: sigma,
		SigmaR: sigma,
		AlphaL: 1.5,
		NL1:    1.5,
		NL2:    1.5,
		FL:     0.5,
		AlphaR: 1.5,
		NR1:    1.5,
		NR2:    1.5,
		FR:     0.5,
	})
}
