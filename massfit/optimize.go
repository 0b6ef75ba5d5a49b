package main

import (
	"math"
	"time"

	"github.com/hepstat/massfit/fitmodel"
	"github.com/hepstat/massfit/optimize"
)

func newData() (*fitmodel.Data, error) {
	data, err := fitmodel.NewData(*spectrumFileName, *fitLo, *fitHi)

	if err != nil {
		return nil, err
	}

	return data, nil
}

func runOptimization(start map[string]float64) (summary OptimizationSummary) {
	startTime := time.Now()

	data, err := newData()
	if err != nil {
		log.Fatal(err)
	}

	summary.Spectrum = *spectrumFileName
	summary.FitLo = data.FitLo()
	summary.FitHi = data.FitHi()

	ms := newModelSettings(data)

	m, err := ms.createInitalized()
	if err != nil {
		log.Fatal(err)
	}

	if len(start) > 0 {
		par := m.GetFloatParameters()
		err = par.SetFromMap(start)
		if err != nil {
			log.Fatal(err)
		}
	}

	o := newOptimzerSettings(m)
	opt, err := o.create()
	if err != nil {
		log.Fatal(err)
	}

	opt.Run(*iterations)
	summary.Optimizer = opt.Summary()

	opt.PrintResults()

	// the optimizer can leave the model at the last evaluated point
	par := m.GetFloatParameters()
	err = par.SetFromMap(opt.GetMaxLParameters())
	if err != nil {
		log.Fatal(err)
	}

	if !*noErrors {
		summary.Errors = parameterErrors(m)
	}

	if !*noFinal {
		m.Final()
	}
	summary.Model = m.Summary()

	if *plotF != "" {
		err := savePlot(*plotF, data, m)
		if err != nil {
			log.Error("Error creating plot file:", err)
		}
	}

	endTime := time.Now()
	deltaT := endTime.Sub(startTime)
	summary.Time = deltaT.Seconds()

	return
}

// parameterErrors estimates parameter standard errors by inverting the
// numerical Hessian of the negative log-likelihood at the maximum.
func parameterErrors(m fitmodel.FitOptimizable) map[string]float64 {
	hess := optimize.Hessian(m)
	cov, err := optimize.Covariance(hess)
	if err != nil {
		log.Warning("Problem inverting the Hessian, error estimates may be unreliable: ", err)
	}
	errs := optimize.StdErrors(cov)

	par := m.GetFloatParameters()
	res := make(map[string]float64, len(errs))
	for i, name := range par.Names(nil) {
		// NaN and Inf are not representable in the JSON summary
		if math.IsNaN(errs[i]) || math.IsInf(errs[i], 0) {
			log.Warningf("%s: no reliable error estimate", name)
			continue
		}
		res[name] = errs[i]
		log.Noticef("%s=%v +- %v", name, par[i].Get(), errs[i])
	}
	return res
}
