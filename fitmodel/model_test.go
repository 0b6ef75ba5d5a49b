package fitmodel

import (
	"math"
	"reflect"
	"testing"

	"github.com/op/go-logging"

	"github.com/hepstat/massfit/shape"
	"github.com/hepstat/massfit/spectrum"
)

const smallDiff = 1e-6

func init() {
	// disable logging for tests
	logging.SetLevel(logging.ERROR, "fitmodel")
	logging.SetLevel(logging.WARNING, "optimize")
}

// testSpectrum returns a small peaked spectrum on [-2, 2].
func testSpectrum(tst *testing.T) *Data {
	hist := &spectrum.Histogram{
		Edges:  []float64{-2, -1.5, -1, -0.5, 0, 0.5, 1, 1.5, 2},
		Counts: []float64{3, 7, 25, 101, 97, 28, 9, 2},
	}
	data, err := NewDataFromHistogram(hist, 0, 0)
	if err != nil {
		tst.Fatal("Error creating data:", err)
	}
	return data
}

// setParameter sets a single model parameter by name.
func setParameter(tst *testing.T, m FitOptimizable, name string, v float64) {
	par := m.GetFloatParameters()
	names := par.Names(nil)
	vals := par.Values(nil)
	for i := range names {
		if names[i] == name {
			vals[i] = v
			err := par.SetValues(vals)
			if err != nil {
				tst.Fatal("Error setting parameters:", err)
			}
			return
		}
	}
	tst.Fatal("No parameter ", name)
}

func TestDataWindow(tst *testing.T) {
	hist := &spectrum.Histogram{
		Edges:  []float64{-2, -1.5, -1, -0.5, 0, 0.5, 1, 1.5, 2},
		Counts: []float64{3, 7, 25, 101, 97, 28, 9, 2},
	}
	data, err := NewDataFromHistogram(hist, -1, 1)
	if err != nil {
		tst.Fatal("Error creating data:", err)
	}
	if data.Fit.NBins() != 4 {
		tst.Error("Expected ", 4, ", got ", data.Fit.NBins())
	}
	if data.FitLo() != -1 || data.FitHi() != 1 {
		tst.Error("Expected window [-1, 1], got [", data.FitLo(), ", ", data.FitHi(), "]")
	}
	if data.Hist.NBins() != 8 {
		tst.Error("Expected ", 8, ", got ", data.Hist.NBins())
	}
}

func TestParameterNames(tst *testing.T) {
	data := testSpectrum(tst)

	m := NewDoubleCB(data)
	names := m.GetFloatParameters().Names(nil)
	ref := []string{"nsig", "x0", "sigmaL", "sigmaR",
		"alphaL", "nL1", "nL2", "fL",
		"alphaR", "nR1", "nR2", "fR"}
	if !reflect.DeepEqual(names, ref) {
		tst.Error("Expected ", ref, ", got ", names)
	}

	m.SetBackground(BkgCMS, 0)
	names = m.GetFloatParameters().Names(nil)
	ref = append([]string{"nsig", "nbkg", "cms_mu", "cms_steep", "cms_lambda"}, ref[1:]...)
	if !reflect.DeepEqual(names, ref) {
		tst.Error("Expected ", ref, ", got ", names)
	}

	gb := NewGaussBern(data, 2, 1)
	names = gb.GetFloatParameters().Names(nil)
	ref = []string{"nsig", "x0", "sigma", "alphaL", "alphaR", "cL0", "cL1", "cR0"}
	if !reflect.DeepEqual(names, ref) {
		tst.Error("Expected ", ref, ", got ", names)
	}

	gb.SetBackground(BkgChebyshev, 3)
	names = gb.GetFloatParameters().Names(nil)
	ref = []string{"nsig", "nbkg", "cheb1", "cheb2", "cheb3",
		"x0", "sigma", "alphaL", "alphaR", "cL0", "cL1", "cR0"}
	if !reflect.DeepEqual(names, ref) {
		tst.Error("Expected ", ref, ", got ", names)
	}
}

func TestDefaults(tst *testing.T) {
	data := testSpectrum(tst)
	m := NewDoubleCB(data)
	s := m.GetParameters()
	if s.X0 != data.Fit.Mean() {
		tst.Error("Expected ", data.Fit.Mean(), ", got ", s.X0)
	}
	sigma := math.Max(data.Fit.RMS()/2, 0.1)
	if s.SigmaL != sigma || s.SigmaR != sigma {
		tst.Error("Expected ", sigma, ", got ", s.SigmaL, " and ", s.SigmaR)
	}
	if s.FL != 0.5 || s.FR != 0.5 {
		tst.Error("Expected 0.5 blend fractions, got ", s.FL, " and ", s.FR)
	}
	for _, kind := range []BackgroundKind{BkgNone, BkgCMS, BkgExp, BkgChebyshev} {
		m.SetBackground(kind, 2)
		if !m.GetFloatParameters().InRange() {
			tst.Error("Default parameters out of range for background ", kind)
		}
	}
}

func TestExpectedCounts(tst *testing.T) {
	data := testSpectrum(tst)
	m := NewDoubleCB(data)
	m.SetBackground(BkgCMS, 0)

	mu := m.Expected(nil)
	if len(mu) != data.Fit.NBins() {
		tst.Error("Expected ", data.Fit.NBins(), ", got ", len(mu))
	}
	total := 0.0
	for _, v := range mu {
		total += v
	}
	if math.Abs(total-data.Fit.Total()) > smallDiff*data.Fit.Total() {
		tst.Error("Expected ", data.Fit.Total(), ", got ", total)
	}

	sig, bkg := m.Components()
	for i := range mu {
		if math.Abs(sig[i]+bkg[i]-mu[i]) > smallDiff {
			tst.Error("Expected ", mu[i], ", got ", sig[i]+bkg[i])
		}
	}
}

func TestChi2(tst *testing.T) {
	data := testSpectrum(tst)
	m := NewCrystalBall(data, true)

	chi2, ndf := m.Chi2()
	if ndf != data.Fit.NBins()-5 {
		tst.Error("Expected ", data.Fit.NBins()-5, ", got ", ndf)
	}
	mu := m.Expected(nil)
	ref := 0.0
	for i, n := range data.Fit.Counts {
		d := n - mu[i]
		ref += d * d / mu[i]
	}
	if math.Abs(chi2-ref) > smallDiff {
		tst.Error("Expected ", ref, ", got ", chi2)
	}

	pulls := m.Pulls()
	for i, n := range data.Fit.Counts {
		p := (n - mu[i]) / math.Sqrt(mu[i])
		if math.Abs(pulls[i]-p) > smallDiff {
			tst.Error("Expected ", p, ", got ", pulls[i])
		}
	}
}

func TestParameterRoundTrip(tst *testing.T) {
	data := testSpectrum(tst)

	m := NewDoubleCB(data)
	ref := shape.DoubleCB{
		X0: 0.1, SigmaL: 0.4, SigmaR: 0.5,
		AlphaL: 1.1, NL1: 2.5, NL2: 4, FL: 0.25,
		AlphaR: 0.9, NR1: 3, NR2: 5, FR: 0.75,
	}
	m.SetParameters(ref)
	if m.GetParameters() != ref {
		tst.Error("Expected ", ref, ", got ", m.GetParameters())
	}

	cb := NewCrystalBall(data, true)
	s := cb.GetParameters()
	if !s.TailLeft {
		tst.Error("Expected a left tail")
	}
	s.Alpha = 2.5
	s.TailLeft = false
	cb.SetParameters(s)
	if !cb.GetParameters().TailLeft {
		tst.Error("Expected the tail side to stay fixed")
	}
	if cb.GetParameters().Alpha != 2.5 {
		tst.Error("Expected ", 2.5, ", got ", cb.GetParameters().Alpha)
	}

	gb := NewGaussBern(data, 2, 1)
	gref := shape.GaussBern{
		X0: -0.1, Sigma: 0.3, AlphaL: 1.3, AlphaR: 1.7,
		CoefsL: []float64{0.5, 1.5}, CoefsR: []float64{2},
	}
	gb.SetParameters(gref)
	got := gb.GetParameters()
	if got.X0 != gref.X0 || got.Sigma != gref.Sigma ||
		got.AlphaL != gref.AlphaL || got.AlphaR != gref.AlphaR {
		tst.Error("Expected ", gref, ", got ", got)
	}
	if !reflect.DeepEqual(got.CoefsL, gref.CoefsL) || !reflect.DeepEqual(got.CoefsR, gref.CoefsR) {
		tst.Error("Expected ", gref.CoefsL, gref.CoefsR, ", got ", got.CoefsL, got.CoefsR)
	}
	if got.Lo != data.FitLo() || got.Hi != data.FitHi() {
		tst.Error("Expected domain [", data.FitLo(), ", ", data.FitHi(), "], got [", got.Lo, ", ", got.Hi, "]")
	}
}
