package main

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/hepstat/massfit/fitmodel"
	"github.com/hepstat/massfit/spectrum"
)

// specPoints adapts the fit window histogram for plotting, with
// Poisson errors on the counts.
type specPoints struct {
	hist *spectrum.Histogram
}

func (s specPoints) Len() int {
	return s.hist.NBins()
}

func (s specPoints) XY(i int) (float64, float64) {
	return s.hist.Center(i), s.hist.Counts[i]
}

func (s specPoints) YError(i int) (float64, float64) {
	e := math.Sqrt(s.hist.Counts[i])
	return e, e
}

// binLine converts per-bin values into a line through the bin centers.
func binLine(hist *spectrum.Histogram, vs []float64) plotter.XYs {
	pts := make(plotter.XYs, len(vs))
	for i, v := range vs {
		pts[i].X = hist.Center(i)
		pts[i].Y = v
	}
	return pts
}

// savePlot writes a plot of the spectrum and the fitted model, the
// output format is detected from the filename extension.
func savePlot(filename string, data *fitmodel.Data, m fitmodel.FitOptimizable) error {
	p := plot.New()
	p.Title.Text = *spectrumFileName
	p.X.Label.Text = "mass"
	p.Y.Label.Text = "entries / bin"

	mu := m.Expected(nil)
	sig, bkg := m.Components()
	hasBkg := false
	for _, v := range bkg {
		if v != 0 {
			hasBkg = true
			break
		}
	}

	var err error
	if hasBkg {
		err = plotutil.AddLines(p,
			"model", binLine(data.Fit, mu),
			"signal", binLine(data.Fit, sig),
			"background", binLine(data.Fit, bkg))
	} else {
		err = plotutil.AddLines(p, "model", binLine(data.Fit, mu))
	}
	if err != nil {
		return err
	}

	pts := specPoints{data.Fit}
	err = plotutil.AddScatters(p, "data", pts)
	if err != nil {
		return err
	}
	err = plotutil.AddErrorBars(p, pts)
	if err != nil {
		return err
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
