package fitmodel

import (
	"github.com/hepstat/massfit/shape"
)

// simpsonIntervals is the number of subintervals per bin for the
// composite Simpson rule.
const simpsonIntervals = 16

// simpson integrates a shape over [a, b] using the composite Simpson
// rule with n subintervals; n must be even.
func simpson(s shape.Shape, a, b float64, n int) float64 {
	h := (b - a) / float64(n)
	sum := s.Eval(a) + s.Eval(b)
	for i := 1; i < n; i++ {
		x := a + float64(i)*h
		if i%2 == 1 {
			sum += 4 * s.Eval(x)
		} else {
			sum += 2 * s.Eval(x)
		}
	}
	return sum * h / 3
}
