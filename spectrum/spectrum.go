// Package spectrum reads binned mass spectra and provides the simple
// summaries the fitting layer seeds itself from.
package spectrum

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
)

// Histogram is a binned spectrum. Edges has one entry more than Counts
// and increases strictly; counts may be non-integer (weighted events)
// but not negative.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []float64 `json:"counts"`
}

// ParseJSON reads a histogram from its JSON form
// {"edges": [...], "counts": [...]} and validates the binning.
func ParseJSON(rd io.Reader) (*Histogram, error) {
	hist := &Histogram{}
	if err := json.NewDecoder(rd).Decode(hist); err != nil {
		return nil, err
	}
	if len(hist.Counts) < 1 {
		return nil, errors.New("empty histogram")
	}
	if len(hist.Edges) != len(hist.Counts)+1 {
		return nil, fmt.Errorf("%d edges do not match %d counts", len(hist.Edges), len(hist.Counts))
	}
	for i := 1; i < len(hist.Edges); i++ {
		if !(hist.Edges[i] > hist.Edges[i-1]) {
			return nil, fmt.Errorf("edges not strictly increasing at index %d", i)
		}
	}
	for i, c := range hist.Counts {
		if !(c >= 0) {
			return nil, fmt.Errorf("invalid count %v in bin %d", c, i)
		}
	}
	return hist, nil
}

// ReadFile reads a histogram from a JSON file.
func ReadFile(filename string) (*Histogram, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseJSON(f)
}

// WriteFile writes the histogram to a JSON file.
func (hist *Histogram) WriteFile(filename string) error {
	j, err := json.Marshal(hist)
	if err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(j)
	return err
}

// NewUniform creates an empty histogram with n equal-width bins
// spanning [lo, hi].
func NewUniform(lo, hi float64, n int) (*Histogram, error) {
	if n < 1 {
		return nil, errors.New("histogram needs at least one bin")
	}
	if !(hi > lo) {
		return nil, fmt.Errorf("invalid range [%g, %g]", lo, hi)
	}
	hist := &Histogram{
		Edges:  make([]float64, n+1),
		Counts: make([]float64, n),
	}
	w := (hi - lo) / float64(n)
	for i := 0; i < n; i++ {
		hist.Edges[i] = lo + float64(i)*w
	}
	hist.Edges[n] = hi
	return hist, nil
}

// Fill adds a unit-weight entry at x. Bins include their lower edge,
// values outside the spectrum are ignored.
func (hist *Histogram) Fill(x float64) {
	if x < hist.Lo() || x >= hist.Hi() {
		return
	}
	i := sort.SearchFloat64s(hist.Edges, x)
	if hist.Edges[i] > x {
		i--
	}
	hist.Counts[i]++
}

// NBins returns the number of bins.
func (hist *Histogram) NBins() int {
	return len(hist.Counts)
}

// Lo returns the lower edge of the spectrum.
func (hist *Histogram) Lo() float64 {
	return hist.Edges[0]
}

// Hi returns the upper edge of the spectrum.
func (hist *Histogram) Hi() float64 {
	return hist.Edges[len(hist.Edges)-1]
}

// Center returns the center of bin i.
func (hist *Histogram) Center(i int) float64 {
	return (hist.Edges[i] + hist.Edges[i+1]) / 2
}

// Width returns the width of bin i.
func (hist *Histogram) Width(i int) float64 {
	return hist.Edges[i+1] - hist.Edges[i]
}

// Total returns the summed counts.
func (hist *Histogram) Total() (sum float64) {
	for _, c := range hist.Counts {
		sum += c
	}
	return
}

// Mean returns the count-weighted mean of the bin centers. An empty
// spectrum gives NaN.
func (hist *Histogram) Mean() float64 {
	var sum, wsum float64
	for i, c := range hist.Counts {
		sum += c * hist.Center(i)
		wsum += c
	}
	return sum / wsum
}

// RMS returns the count-weighted standard deviation of the bin centers.
func (hist *Histogram) RMS() float64 {
	mean := hist.Mean()
	var sum, wsum float64
	for i, c := range hist.Counts {
		d := hist.Center(i) - mean
		sum += c * d * d
		wsum += c
	}
	return math.Sqrt(sum / wsum)
}

// Subrange returns a view of the bins whose centers lie in [lo, hi].
// The view shares the underlying slices.
func (hist *Histogram) Subrange(lo, hi float64) (*Histogram, error) {
	first, last := -1, -1
	for i := range hist.Counts {
		c := hist.Center(i)
		if c >= lo && c <= hi {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil, fmt.Errorf("no bins with centers in [%g, %g]", lo, hi)
	}
	return &Histogram{
		Edges:  hist.Edges[first : last+2],
		Counts: hist.Counts[first : last+1],
	}, nil
}

func (hist *Histogram) String() string {
	return fmt.Sprintf("%d bins in [%g, %g], %g events",
		hist.NBins(), hist.Lo(), hist.Hi(), hist.Total())
}
