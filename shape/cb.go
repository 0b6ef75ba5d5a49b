package shape

// CrystalBall is a Gaussian core with a single power-law tail on one
// side, built from the same boundary-matched construction as DoubleCB
// with one exponent per tail. TailLeft selects which side carries the
// tail; the other side stays Gaussian over the whole half-axis.
type CrystalBall struct {
	X0    float64
	Sigma float64
	Alpha float64
	N     float64

	TailLeft bool
}

// Eval returns the unnormalized density at x.
func (s CrystalBall) Eval(x float64) float64 {
	z := (x - s.X0) / s.Sigma
	if s.TailLeft {
		if z < -s.Alpha {
			return powerLaw(-z, s.Alpha, s.N)
		}
		return gaussCore(z)
	}
	if z < s.Alpha {
		return gaussCore(z)
	}
	return powerLaw(z, s.Alpha, s.N)
}
