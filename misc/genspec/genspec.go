// Genspec simulates a binned mass spectrum. It samples a double-sided
// Crystal Ball peak over an exponential background with accept-reject
// and writes the histogram in the JSON format read by massfit.
package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/hepstat/massfit/shape"
	"github.com/hepstat/massfit/spectrum"
)

// maxScanPoints is the grid size for the accept-reject envelope scan.
const maxScanPoints = 1000

// fill adds n accept-reject samples from the density to the histogram.
func fill(hist *spectrum.Histogram, s shape.Shape, n int) {
	lo := hist.Lo()
	hi := hist.Hi()

	max := 0.0
	for i := 0; i <= maxScanPoints; i++ {
		v := s.Eval(lo + (hi-lo)*float64(i)/maxScanPoints)
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		log.Fatal("the density is not positive anywhere in the range")
	}
	// headroom for maxima between the scan points
	max *= 1.1

	for k := 0; k < n; {
		x := lo + (hi-lo)*rand.Float64()
		if rand.Float64()*max <= s.Eval(x) {
			hist.Fill(x)
			k++
		}
	}
}

func main() {
	nsig := flag.Int("nsig", 10000, "number of signal events")
	nbkg := flag.Int("nbkg", 2000, "number of background events")
	lo := flag.Float64("lo", 60, "lower edge of the spectrum")
	hi := flag.Float64("hi", 120, "upper edge of the spectrum")
	bins := flag.Int("bins", 120, "number of bins")
	x0 := flag.Float64("x0", 91.2, "peak position")
	sigmaL := flag.Float64("sigmal", 2.2, "left core width")
	sigmaR := flag.Float64("sigmar", 1.8, "right core width")
	alphaL := flag.Float64("alphal", 1.4, "left tail start in left widths")
	alphaR := flag.Float64("alphar", 1.6, "right tail start in right widths")
	lambda := flag.Float64("lambda", 0.03, "background decay rate")
	seed := flag.Int64("seed", -1, "random generator seed, default time based")
	out := flag.String("o", "spectrum.json", "output filename")
	flag.Parse()

	if *seed == -1 {
		rand.Seed(time.Now().UnixNano())
	} else {
		rand.Seed(*seed)
	}

	sig := shape.DoubleCB{
		X0:     *x0,
		SigmaL: *sigmaL,
		SigmaR: *sigmaR,
		AlphaL: *alphaL, NL1: 2, NL2: 10, FL: 0.7,
		AlphaR: *alphaR, NR1: 3, NR2: 12, FR: 0.8,
	}
	bkg := shape.Exponential{Lambda: *lambda, Lo: *lo}

	hist, err := spectrum.NewUniform(*lo, *hi, *bins)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Will generate %d signal and %d background events", *nsig, *nbkg)
	fill(hist, sig, *nsig)
	fill(hist, bkg, *nbkg)

	log.Print(hist)
	err = hist.WriteFile(*out)
	if err != nil {
		log.Fatal(err)
	}
}
