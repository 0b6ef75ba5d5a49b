package optimize

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// hessianH is the relative step for the numerical Hessian.
const hessianH = 1e-4

// Hessian computes the Hessian matrix of the negative log-likelihood
// at the current point using central differences. Model copies are
// used for the evaluations, so cached values are not invalidated.
func Hessian(m Optimizable) *mat64.Dense {
	par := m.GetFloatParameters()
	x := par.Values(nil)
	n := len(x)

	// the step is relative to the parameter scale
	h := make([]float64, n)
	for i, v := range x {
		h[i] = math.Max(math.Abs(v), 1) * hessianH
	}

	f := func(v []float64) float64 {
		nm := m.Copy()
		np := nm.GetFloatParameters()
		np.SetValues(v)
		return -nm.Likelihood()
	}

	f0 := f(x)
	point := make([]float64, n)

	hess := mat64.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var d float64
			if i == j {
				copy(point, x)
				point[i] = x[i] + h[i]
				fp := f(point)
				point[i] = x[i] - h[i]
				fm := f(point)
				d = (fp - 2*f0 + fm) / (h[i] * h[i])
			} else {
				copy(point, x)
				point[i] = x[i] + h[i]
				point[j] = x[j] + h[j]
				fpp := f(point)
				point[j] = x[j] - h[j]
				fpm := f(point)
				point[i] = x[i] - h[i]
				point[j] = x[j] + h[j]
				fmp := f(point)
				point[j] = x[j] - h[j]
				fmm := f(point)
				d = (fpp - fpm - fmp + fmm) / (4 * h[i] * h[j])
			}
			hess.Set(i, j, d)
			hess.Set(j, i, d)
		}
	}
	return hess
}

// Covariance inverts the Hessian to get a covariance matrix estimate
// at the maximum. An error is returned for a singular or
// ill-conditioned Hessian; in the latter case the matrix is still
// usable.
func Covariance(hess *mat64.Dense) (*mat64.Dense, error) {
	n, _ := hess.Dims()
	cov := mat64.NewDense(n, n, nil)
	err := cov.Inverse(hess)
	return cov, err
}

// StdErrors extracts parameter standard errors from the covariance
// matrix diagonal. A negative variance produces NaN.
func StdErrors(cov *mat64.Dense) []float64 {
	n, _ := cov.Dims()
	res := make([]float64, n)
	for i := 0; i < n; i++ {
		res[i] = math.Sqrt(cov.At(i, i))
	}
	return res
}
