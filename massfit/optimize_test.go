package main

import (
	"testing"

	"github.com/op/go-logging"

	"github.com/hepstat/massfit/fitmodel"
	"github.com/hepstat/massfit/optimize"
	"github.com/hepstat/massfit/spectrum"
)

func init() {
	// disable logging for tests
	logging.SetLevel(logging.ERROR, "massfit")
	logging.SetLevel(logging.ERROR, "fitmodel")
	logging.SetLevel(logging.WARNING, "optimize")
}

// testData returns a small peaked spectrum for the optimizer smoke
// tests.
func testData(tst *testing.T) *fitmodel.Data {
	hist := &spectrum.Histogram{
		Edges:  []float64{80, 84, 88, 92, 96, 100},
		Counts: []float64{4, 21, 120, 93, 15},
	}
	data, err := fitmodel.NewDataFromHistogram(hist, 0, 0)
	if err != nil {
		tst.Fatal("Error creating data:", err)
	}
	return data
}

func TestSimplex(tst *testing.T) {
	dscb := fitmodel.NewDoubleCB(testData(tst))
	m := optimize.Optimizable(dscb).Copy()
	npar := len(dscb.GetFloatParameters())
	if npar != 12 {
		tst.Error("Wrong number of parameters for dscb:", npar)
	}

	ds := optimize.NewDS()
	ds.SetOptimizable(m)
	ds.Quiet = true
	ds.Run(5)

	m = m.Copy()
	npar1 := len(dscb.GetFloatParameters())
	npar2 := len(m.GetFloatParameters())
	if npar1 != npar2 {
		tst.Error("Parameter number mismatch after copy:", npar1, npar2)
	}

	ds = optimize.NewDS()
	ds.SetOptimizable(m)
	ds.Quiet = true
	ds.Run(5)
}

func TestMH(tst *testing.T) {
	cb := fitmodel.NewCrystalBall(testData(tst), true)
	cb.SetBackground(fitmodel.BkgExp, 0)
	npar := len(cb.GetFloatParameters())
	if npar != 7 {
		tst.Error("Wrong number of parameters for cb with background:", npar)
	}

	mh := optimize.NewMH(false, 0)
	mh.SetOptimizable(cb)
	mh.Quiet = true
	mh.Run(5)

	m := cb.Copy()
	npar1 := len(cb.GetFloatParameters())
	npar2 := len(m.GetFloatParameters())
	if npar1 != npar2 {
		tst.Error("Parameter number mismatch after copy:", npar1, npar2)
	}

	mh = optimize.NewMH(false, 0)
	mh.SetOptimizable(m)
	mh.Quiet = true
	mh.Run(5)
}

func TestAnnealing(tst *testing.T) {
	gb := fitmodel.NewGaussBern(testData(tst), 2, 2)
	npar := len(gb.GetFloatParameters())
	if npar != 9 {
		tst.Error("Wrong number of parameters for gaussbern:", npar)
	}

	gb.SetAdaptive(optimize.NewAdaptiveSettings())
	npar = len(gb.GetFloatParameters())
	if npar != 9 {
		tst.Error("Wrong number of parameters after SetAdaptive:", npar)
	}

	an := optimize.NewMH(true, 0)
	an.SetOptimizable(gb)
	an.Quiet = true
	an.Run(5)

	m := gb.Copy()
	npar1 := len(gb.GetFloatParameters())
	npar2 := len(m.GetFloatParameters())
	if npar1 != npar2 {
		tst.Error("Parameter number mismatch after copy:", npar1, npar2)
	}
	an = optimize.NewMH(false, 0)
	an.SetOptimizable(m)
	an.Quiet = true
	an.Run(5)
}

func TestLBFGSB(tst *testing.T) {
	dscb := fitmodel.NewDoubleCB(testData(tst))

	l := optimize.NewLBFGSB()
	l.SetOptimizable(dscb)
	l.Quiet = true
	l.Run(5)

	m := dscb.Copy()
	npar1 := len(dscb.GetFloatParameters())
	npar2 := len(m.GetFloatParameters())
	if npar1 != npar2 {
		tst.Error("Parameter number mismatch after copy:", npar1, npar2)
	}

	l = optimize.NewLBFGSB()
	l.SetOptimizable(m)
	l.Quiet = true
	l.Run(5)
}
