package optimize

import (
	"math"
	"math/rand"
)

// Adaptive proposals follow the Robbins-Monro scheme described in
// Andrieu C & Thoms J (2008) A tutorial on adaptive MCMC. Statistics
// and Computing 18:343-373.

// AdaptiveSettings are settings for an adaptive MCMC.
type AdaptiveSettings struct {
	// WSize is the window size for the convergence check.
	WSize int
	// K is the batch size, the proposal is updated every K accepted
	// values.
	K int
	// Skip is the number of iterations before the adaptation
	// starts.
	Skip int
	// MaxAdapt is the iteration when the adaptation stops.
	MaxAdapt int
	// MaxUpdate is the maximum number of proposal updates per
	// parameter.
	MaxUpdate int
	// Epsilon is the relative spread under which a parameter is
	// declared converged.
	Epsilon float64
	// C and Nu control the Robbins-Monro gain sequence.
	C  float64
	Nu float64
	// Lambda is the proposal multiplier.
	Lambda float64
	// SD is the initial proposal standard deviation.
	SD float64
}

// NewAdaptiveSettings creates new settings for adaptive MCMC.
func NewAdaptiveSettings() *AdaptiveSettings {
	return &AdaptiveSettings{
		WSize:     10,
		K:         20,
		Skip:      500,
		MaxAdapt:  2000,
		MaxUpdate: 200,
		Epsilon:   5e-1,
		C:         1,
		Nu:        3,
		Lambda:    2.4,
		SD:        1e-2,
	}
}

// ParameterGenerator generates an adaptive MCMC parameter.
func (as *AdaptiveSettings) ParameterGenerator(par *float64, name string) FloatParameter {
	return NewAdaptiveParameter(par, name, as)
}

// AdaptiveParameter is a parameter which learns the scale of its
// proposals from the accepted values.
type AdaptiveParameter struct {
	*BasicFloatParameter
	*AdaptiveSettings

	// n is the number of accepted values seen, flips counts
	// direction changes of the batch mean drift
	n     int
	flips int

	mean     float64
	variance float64
	rising   bool

	batchMean float64
	batchM2   float64

	// a buffered channel keeps the convergence window
	window    chan float64
	winMean   float64
	winM2     float64
	converged bool
}

// NewAdaptiveParameter creates a new adaptive MCMC parameter.
func NewAdaptiveParameter(par *float64, name string, as *AdaptiveSettings) (a *AdaptiveParameter) {
	if as.SD <= 0 {
		panic("SD should be positive")
	}
	if as.K < 2 {
		panic("K should be >= 2")
	}
	a = &AdaptiveParameter{
		BasicFloatParameter: NewBasicFloatParameter(par, name),
		AdaptiveSettings:    as,
	}
	a.mean = math.NaN()
	a.variance = as.SD * as.SD
	a.window = make(chan float64, a.WSize)

	a.proposalFunc = func(x float64) float64 {
		return x + rand.NormFloat64()*math.Sqrt(a.variance)*a.Lambda
	}

	return
}

// Accept is called when a proposed value is accepted.
func (a *AdaptiveParameter) Accept(iter int) {
	if iter >= a.Skip && iter < a.MaxAdapt {
		a.adapt()
	}
}

// gain returns the Robbins-Monro gain for the current batch. The gain
// shrinks every time the batch mean drift changes direction.
func (a *AdaptiveParameter) gain() float64 {
	drift := a.batchMean - a.mean
	if (drift > 0 && !a.rising) || (drift < 0 && a.rising) {
		a.flips++
	}
	a.rising = drift > 0
	beta := 1 / math.Max(1, 1+a.Nu)
	return a.C / math.Pow(float64(a.flips+1), beta)
}

// adapt folds the accepted value into the batch statistics and every K
// values moves the learned mean and variance towards the batch ones.
func (a *AdaptiveParameter) adapt() {
	if a.converged {
		return
	}
	if math.IsNaN(a.mean) {
		a.mean = *a.float64
	}
	bi := a.n % a.K

	if a.n > 0 && bi == 0 {
		gamma := a.gain()
		batchVariance := a.batchM2 / float64(a.K-1)

		a.mean += gamma * (a.batchMean - a.mean)
		a.variance += gamma * (batchVariance - a.variance)

		a.checkConverged()

		a.batchMean = 0
		a.batchM2 = 0
	}

	delta := *a.float64 - a.batchMean
	a.batchMean += delta / float64(bi+1)
	a.batchM2 += delta * (*a.float64 - a.batchMean)

	a.n++
}

// checkConverged updates the sliding window statistics and stops the
// adaptation once the window mean is stable or the update limit is
// reached.
func (a *AdaptiveParameter) checkConverged() {
	if len(a.window) == a.WSize {
		old := <-a.window
		delta := old - a.winMean
		a.winMean -= delta / float64(len(a.window))
		a.winM2 -= delta * (old - a.winMean)
	}

	a.window <- *a.float64
	delta := *a.float64 - a.winMean
	a.winMean += delta / float64(len(a.window))
	a.winM2 += delta * (*a.float64 - a.winMean)

	if len(a.window) < a.WSize {
		return
	}
	sd := math.Sqrt(a.winM2 / float64(len(a.window)-1))
	if sd/a.winMean < a.Epsilon || a.n/a.K > a.MaxUpdate {
		a.converged = true
		reason := "max update"
		if sd/a.winMean < a.Epsilon {
			reason = "SD/mean"
		}
		log.Infof("%s converged, reason: %s", a.Name(), reason)
	}
}
