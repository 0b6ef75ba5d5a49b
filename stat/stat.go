// Package stat implements the statistics used to judge fits and to
// combine them into efficiencies.
package stat

import (
	"math"

	"github.com/gonum/mathext"
)

// PValueChi2 returns the upper-tail probability of a chi-square
// distribution with ndf degrees of freedom, the usual fit-quality
// measure for a binned fit.
func PValueChi2(chi2, ndf float64) float64 {
	if ndf <= 0 {
		return math.NaN()
	}
	if chi2 <= 0 {
		return 1
	}
	return 1 - mathext.GammaInc(ndf/2, chi2/2)
}

// QuantileNormal returns the quantile of the standard normal
// distribution.
func QuantileNormal(prob float64) float64 {
	return mathext.NormalQuantile(prob)
}

// Significance converts a p-value into one-sided normal standard
// deviations.
func Significance(pvalue float64) float64 {
	return QuantileNormal(1 - pvalue)
}

// CDFBeta returns the distribution function of the standard beta
// distribution, the incomplete beta ratio I_x(p, q).
func CDFBeta(x, p, q float64) float64 {
	return mathext.RegIncBeta(p, q, x)
}

// QuantileBeta returns the quantile of the beta distribution.
func QuantileBeta(prob, p, q float64) float64 {
	return mathext.InvRegIncBeta(p, q, prob)
}

// Efficiency is a binomial pass fraction with a confidence interval.
type Efficiency struct {
	Value float64 `json:"value"`
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
}

// ClopperPearson returns the pass fraction with its Clopper-Pearson
// interval at confidence level cl. Fitted yields are accepted as
// non-integer counts; the beta quantiles extend to them naturally.
func ClopperPearson(pass, total, cl float64) Efficiency {
	eff := Efficiency{Value: pass / total}
	alpha := 1 - cl
	if pass <= 0 {
		eff.Lo = 0
	} else {
		eff.Lo = QuantileBeta(alpha/2, pass, total-pass+1)
	}
	if pass >= total {
		eff.Hi = 1
	} else {
		eff.Hi = QuantileBeta(1-alpha/2, pass+1, total-pass)
	}
	return eff
}

// PoissonLogPDF returns the log-probability of observing n events for
// mean mu. NaN for a non-positive mean is left to the caller.
func PoissonLogPDF(n, mu float64) float64 {
	lg, _ := math.Lgamma(n + 1)
	return n*math.Log(mu) - mu - lg
}
