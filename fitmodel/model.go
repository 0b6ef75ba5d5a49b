package fitmodel

import (
	"math"
	"runtime"

	"github.com/hepstat/massfit/optimize"
	"github.com/hepstat/massfit/shape"
	"github.com/hepstat/massfit/stat"
)

// FitOptimizable is an extension of optimize.Optimizable for mass
// spectrum fit models.
type FitOptimizable interface {
	optimize.Optimizable
	// SetAdaptive enables adaptive MCMC for the model parameters.
	SetAdaptive(*optimize.AdaptiveSettings)
	// SetBackground selects the background component.
	SetBackground(kind BackgroundKind, order int)
	// SetDefaults sets the default parameter values.
	SetDefaults()
	// Expected fills res with the per-bin expected counts.
	Expected(res []float64) []float64
	// Components returns the per-bin expected signal and background
	// counts.
	Components() (sig, bkg []float64)
	// Final computes goodness of fit statistics.
	Final()
	// Summary returns the fit summary for the JSON output.
	Summary() interface{}
}

// Model is an interface for a signal model. It provides the signal
// shape and adds the model parameters.
type Model interface {
	// signal returns the signal shape for the current parameter
	// values.
	signal() shape.Shape
	// addParameters adds all the parameters of the Model.
	addParameters(optimize.FloatParameterGenerator)
}

// BaseModel stores the spectrum and the fit configuration shared by
// all the signal models: the yields, the background component and the
// cached per-bin shape integrals.
type BaseModel struct {
	// model is the signal model implementation.
	model Model
	data  *Data

	// yields
	nsig float64
	nbkg float64

	// background parameters
	bkgKind   BackgroundKind
	cmsMu     float64
	cmsSteep  float64
	cmsLambda float64
	expLambda float64
	chebCoefs []float64

	parameters optimize.FloatParameters
	as         *optimize.AdaptiveSettings

	// remember computations we need to perform
	sigDone bool
	bkgDone bool

	// per-bin shape integrals and their sums
	sigInt []float64
	sigSum float64
	bkgInt []float64
	bkgSum float64

	// expected counts per bin
	mu []float64
}

// NewBaseModel creates a new base model. The background defaults to
// none, so the expected counts come from the signal shape alone.
func NewBaseModel(data *Data, model Model) (bm *BaseModel) {
	nBins := data.Fit.NBins()
	bm = &BaseModel{
		model:  model,
		data:   data,
		sigInt: make([]float64, nBins),
		bkgInt: make([]float64, nBins),
		mu:     make([]float64, nBins),
	}
	bm.nsig = data.Fit.Total()
	return
}

// Copy creates a copy of BaseModel. The data is shared.
func (m *BaseModel) Copy() (newM *BaseModel) {
	newM = NewBaseModel(m.data, m.model)
	newM.as = m.as
	newM.nsig = m.nsig
	newM.nbkg = m.nbkg
	newM.bkgKind = m.bkgKind
	newM.cmsMu = m.cmsMu
	newM.cmsSteep = m.cmsSteep
	newM.cmsLambda = m.cmsLambda
	newM.expLambda = m.expLambda
	newM.chebCoefs = make([]float64, len(m.chebCoefs))
	copy(newM.chebCoefs, m.chebCoefs)
	return
}

// SetAdaptive enables adaptive mode (for adaptive MCMC).
func (m *BaseModel) SetAdaptive(as *optimize.AdaptiveSettings) {
	m.as = as
	m.setupParameters()
}

// GetFloatParameters returns all the optimization parameters.
func (m *BaseModel) GetFloatParameters() optimize.FloatParameters {
	return m.parameters
}

// setupParameters first deletes all the parameters and then adds
// them. This is useful after setting adaptive MCMC mode or changing
// the background.
func (m *BaseModel) setupParameters() {
	m.parameters = nil
	var fpg optimize.FloatParameterGenerator
	if m.as != nil {
		fpg = m.as.ParameterGenerator
	} else {
		fpg = optimize.BasicFloatParameterGenerator
	}
	m.addYieldParameters(fpg)
	m.addBackgroundParameters(fpg)
	m.model.addParameters(fpg)
}

// setProposal installs a fixed normal proposal with the given scale.
// In adaptive mode the parameter already carries a learned proposal,
// so the fixed one is skipped.
func (m *BaseModel) setProposal(par optimize.FloatParameter, sd float64) {
	if m.as == nil {
		par.SetProposalFunc(optimize.NormalProposal(sd))
	}
}

// addYieldParameters adds the signal yield, and the background yield
// if a background component is selected.
func (m *BaseModel) addYieldParameters(fpg optimize.FloatParameterGenerator) {
	total := m.data.Fit.Total()

	nsig := fpg(&m.nsig, "nsig")
	nsig.SetMin(0)
	nsig.SetMax(10 * (total + 1))
	nsig.SetPriorFunc(optimize.ExponentialPrior(1/(total+1), true))
	m.setProposal(nsig, math.Sqrt(total+1))
	m.parameters.Append(nsig)

	if m.bkgKind != BkgNone {
		nbkg := fpg(&m.nbkg, "nbkg")
		nbkg.SetMin(0)
		nbkg.SetMax(10 * (total + 1))
		nbkg.SetPriorFunc(optimize.ExponentialPrior(1/(total+1), true))
		m.setProposal(nbkg, math.Sqrt(total+1))
		m.parameters.Append(nbkg)
	}
}

// addPeakParameter adds a peak position parameter bounded by the fit
// window.
func (m *BaseModel) addPeakParameter(fpg optimize.FloatParameterGenerator, v *float64, name string) {
	lo := m.data.FitLo()
	hi := m.data.FitHi()
	par := fpg(v, name)
	par.SetOnChange(func() {
		m.sigDone = false
	})
	par.SetMin(lo)
	par.SetMax(hi)
	par.SetPriorFunc(optimize.UniformPrior(lo, hi, true, true))
	m.setProposal(par, (hi-lo)/100)
	m.parameters.Append(par)
}

// addWidthParameter adds a core width parameter.
func (m *BaseModel) addWidthParameter(fpg optimize.FloatParameterGenerator, v *float64, name string) {
	width := m.data.FitHi() - m.data.FitLo()
	par := fpg(v, name)
	par.SetOnChange(func() {
		m.sigDone = false
	})
	par.SetMin(1e-2)
	par.SetMax(width)
	par.SetPriorFunc(optimize.UniformPrior(0, width, false, true))
	m.setProposal(par, width/100)
	m.parameters.Append(par)
}

// addTailParameter adds a tail steepness or exponent parameter.
func (m *BaseModel) addTailParameter(fpg optimize.FloatParameterGenerator, v *float64, name string, min float64) {
	par := fpg(v, name)
	par.SetOnChange(func() {
		m.sigDone = false
	})
	par.SetMin(min)
	par.SetMax(10)
	par.SetPriorFunc(optimize.GammaPrior(1, 2, false))
	m.setProposal(par, 0.1)
	m.parameters.Append(par)
}

// addFractionParameter adds a power-law blend fraction parameter on
// [0, 1].
func (m *BaseModel) addFractionParameter(fpg optimize.FloatParameterGenerator, v *float64, name string) {
	par := fpg(v, name)
	par.SetOnChange(func() {
		m.sigDone = false
	})
	par.SetMin(0)
	par.SetMax(1)
	par.SetPriorFunc(optimize.UniformPrior(0, 1, true, true))
	m.setProposal(par, 0.05)
	m.parameters.Append(par)
}

// addCoefParameter adds a non-negative tail polynomial coefficient
// parameter.
func (m *BaseModel) addCoefParameter(fpg optimize.FloatParameterGenerator, v *float64, name string) {
	par := fpg(v, name)
	par.SetOnChange(func() {
		m.sigDone = false
	})
	par.SetMin(0)
	par.SetMax(5)
	par.SetPriorFunc(optimize.GammaPrior(1, 2, true))
	m.setProposal(par, 0.05)
	m.parameters.Append(par)
}

// peakDefaults returns the default peak position and width estimated
// from the spectrum moments.
func (m *BaseModel) peakDefaults() (x0, sigma float64) {
	x0 = m.data.Fit.Mean()
	sigma = math.Max(m.data.Fit.RMS()/2, 0.1)
	return
}

// update recomputes the cached per-bin shape integrals if needed.
func (m *BaseModel) update() {
	if !m.sigDone {
		m.sigSum = m.integrate(m.model.signal(), m.sigInt)
		m.sigDone = true
	}
	if !m.bkgDone {
		m.bkgSum = m.integrate(m.background(), m.bkgInt)
		m.bkgDone = true
	}
}

// integrate fills res with per-bin integrals of the shape over the
// fit window and returns their sum.
func (m *BaseModel) integrate(s shape.Shape, res []float64) (sum float64) {
	fit := m.data.Fit
	nBins := fit.NBins()
	nWorkers := runtime.GOMAXPROCS(0)
	tasks := make(chan int, nBins)
	done := make(chan struct{}, nWorkers)

	for i := 0; i < nWorkers; i++ {
		go func() {
			for bin := range tasks {
				res[bin] = simpson(s, fit.Edges[bin], fit.Edges[bin+1], simpsonIntervals)
			}
			done <- struct{}{}
		}()
	}

	for bin := 0; bin < nBins; bin++ {
		tasks <- bin
	}
	close(tasks)

	// wait for all assignments to finish
	for i := 0; i < nWorkers; i++ {
		<-done
	}

	for _, v := range res {
		sum += v
	}
	return
}

// Expected fills res with the per-bin expected counts for the current
// parameter values. A nil res can be passed to allocate a new slice.
func (m *BaseModel) Expected(res []float64) []float64 {
	m.update()
	if res == nil {
		res = make([]float64, m.data.Fit.NBins())
	}
	for i := range res {
		mu := 0.0
		if m.sigSum > 0 {
			mu += m.nsig * m.sigInt[i] / m.sigSum
		}
		if m.bkgSum > 0 {
			mu += m.nbkg * m.bkgInt[i] / m.bkgSum
		}
		res[i] = mu
	}
	return res
}

// Components returns the per-bin expected signal and background
// counts for the current parameter values.
func (m *BaseModel) Components() (sig, bkg []float64) {
	m.update()
	nBins := m.data.Fit.NBins()
	sig = make([]float64, nBins)
	bkg = make([]float64, nBins)
	for i := 0; i < nBins; i++ {
		if m.sigSum > 0 {
			sig[i] = m.nsig * m.sigInt[i] / m.sigSum
		}
		if m.bkgSum > 0 {
			bkg[i] = m.nbkg * m.bkgInt[i] / m.bkgSum
		}
	}
	return
}

// Likelihood computes the extended Poisson log-likelihood of the
// binned spectrum. NaN is replaced with -Inf, so invalid parameter
// combinations are rejected by the optimizers.
func (m *BaseModel) Likelihood() (lnL float64) {
	log.Debugf("x=%v", m.parameters.Values(nil))
	m.mu = m.Expected(m.mu)
	for i, n := range m.data.Fit.Counts {
		mu := m.mu[i]
		lnL -= mu
		if n > 0 {
			g, _ := math.Lgamma(n + 1)
			lnL += n*math.Log(mu) - g
		}
	}
	if math.IsNaN(lnL) {
		lnL = math.Inf(-1)
	}
	log.Debugf("L=%v", lnL)
	return
}

// GetData returns the fit data.
func (m *BaseModel) GetData() *Data {
	return m.data
}

// Chi2 returns the Pearson chi-square statistic and the number of
// degrees of freedom for the current parameter values. Bins with no
// expected counts are skipped.
func (m *BaseModel) Chi2() (chi2 float64, ndf int) {
	mu := m.Expected(nil)
	for i, n := range m.data.Fit.Counts {
		if mu[i] > 0 {
			d := n - mu[i]
			chi2 += d * d / mu[i]
			ndf++
		}
	}
	ndf -= len(m.parameters)
	return
}

// Pulls returns per-bin pulls (n - mu) / sqrt(mu). A bin with no
// expected counts gets NaN.
func (m *BaseModel) Pulls() []float64 {
	mu := m.Expected(nil)
	res := make([]float64, len(mu))
	for i, n := range m.data.Fit.Counts {
		if mu[i] > 0 {
			res[i] = (n - mu[i]) / math.Sqrt(mu[i])
		} else {
			res[i] = math.NaN()
		}
	}
	return res
}

// FitSummary stores fit quality information for the JSON output.
type FitSummary struct {
	NBins int     `json:"nBins"`
	NPar  int     `json:"nParameters"`
	Chi2  float64 `json:"chi2"`
	Ndf   int     `json:"ndf"`
	// PValue is not set if the fit has no degrees of freedom.
	PValue *float64 `json:"pValue,omitempty"`
	Nsig   float64  `json:"nsig"`
	Nbkg   float64  `json:"nbkg"`
}

// Summary returns the fit summary for the JSON output.
func (m *BaseModel) Summary() interface{} {
	chi2, ndf := m.Chi2()
	s := FitSummary{
		NBins: m.data.Fit.NBins(),
		NPar:  len(m.parameters),
		Chi2:  chi2,
		Ndf:   ndf,
		Nsig:  m.nsig,
		Nbkg:  m.nbkg,
	}
	if ndf > 0 {
		p := stat.PValueChi2(chi2, float64(ndf))
		s.PValue = &p
	}
	return s
}

// Final computes and logs goodness of fit statistics for the current
// parameter values.
func (m *BaseModel) Final() {
	chi2, ndf := m.Chi2()
	log.Noticef("chi2=%v, ndf=%v", chi2, ndf)
	if ndf > 0 {
		log.Noticef("p-value=%v", stat.PValueChi2(chi2, float64(ndf)))
	}
	log.Infof("nsig=%v, nbkg=%v", m.nsig, m.nbkg)
	log.Debugf("pulls=%v", m.Pulls())
}
