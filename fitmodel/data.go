// Package fitmodel provides binned extended maximum-likelihood models
// for particle mass spectra: a signal peak shape plus an optional
// background component, with yields for both.
package fitmodel

import (
	"github.com/op/go-logging"

	"github.com/hepstat/massfit/spectrum"
)

// log is the global logging variable.
var log = logging.MustGetLogger("fitmodel")

// Data stores the input spectrum for a fit.
type Data struct {
	// Hist is the full input histogram.
	Hist *spectrum.Histogram
	// Fit is the histogram restricted to the fit window.
	Fit *spectrum.Histogram
}

// NewData reads a histogram from a JSON file and restricts it to the
// fit window. If lo >= hi the full histogram range is used.
func NewData(filename string, lo, hi float64) (*Data, error) {
	hist, err := spectrum.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewDataFromHistogram(hist, lo, hi)
}

// NewDataFromHistogram creates Data from an existing histogram.
func NewDataFromHistogram(hist *spectrum.Histogram, lo, hi float64) (*Data, error) {
	data := &Data{
		Hist: hist,
		Fit:  hist,
	}
	if lo < hi {
		fit, err := hist.Subrange(lo, hi)
		if err != nil {
			return nil, err
		}
		data.Fit = fit
	}
	log.Infof("Fit window [%v, %v], %v bins, %v entries",
		data.FitLo(), data.FitHi(), data.Fit.NBins(), data.Fit.Total())
	return data, nil
}

// FitLo returns the lower edge of the fit window.
func (data *Data) FitLo() float64 {
	return data.Fit.Lo()
}

// FitHi returns the upper edge of the fit window.
func (data *Data) FitHi() float64 {
	return data.Fit.Hi()
}
