package optimize

import (
	"math"
	"time"
)

// Constants for the downhill simplex convergence checks.
const (
	TINY  = 1e-10
	SMALL = 1e-6
)

// DS is a downhill simplex optimizer.
type DS struct {
	BaseOptimizer
	delta  float64
	ftol   float64
	repeat bool
	oldL   float64
	// points are models for the simplex points
	points []Optimizable
	// pointPars are parameter storages of the simplex points
	pointPars []FloatParameters
	// pointL are likelihood values of the simplex points
	pointL []float64
	newOpt Optimizable
	newPar FloatParameters
	psum   []float64
}

// NewDS creates a new downhill simplex optimizer.
func NewDS() (ds *DS) {
	ds = &DS{
		delta: 1,
		ftol:  TINY,
	}
	ds.repPeriod = 10
	return
}

// createSimplex creates len(parameters)+1 simplex points, the first
// one is the model itself.
func (ds *DS) createSimplex(opt Optimizable, delta float64) {
	parameters := opt.GetFloatParameters()
	ds.points = make([]Optimizable, len(parameters)+1)
	ds.pointPars = make([]FloatParameters, len(ds.points))
	ds.pointL = make([]float64, len(ds.points))
	ds.points[0] = opt
	ds.pointPars[0] = parameters
	for i := 1; i < len(ds.points); i++ {
		point := opt.Copy()
		ds.points[i] = point
		ds.pointPars[i] = point.GetFloatParameters()
	}
	for i := 0; i < len(parameters); i++ {
		parameter := ds.pointPars[i+1][i]
		parameter.Set(parameter.Get() + delta)
	}
	for i := range ds.points {
		if ds.pointPars[i].InRange() {
			ds.pointL[i] = ds.points[i].Likelihood()
			ds.calls++
		} else {
			ds.pointL[i] = math.Inf(-1)
		}
	}
}

// amotry extrapolates by factor fac through the face of the simplex
// across from the low point, tries it, and replaces the low point if
// the new point is better.
func (ds *DS) amotry(ilo int, fac float64) float64 {
	if ds.newOpt == nil {
		ds.newOpt = ds.points[0].Copy()
		ds.newPar = ds.newOpt.GetFloatParameters()
	}
	ds.calcPsum()
	ndim := len(ds.newPar)
	fac1 := (1 - fac) / float64(ndim)
	fac2 := fac1 - fac
	for j := 0; j < ndim; j++ {
		ds.newPar[j].Set(ds.psum[j]*fac1 - ds.pointPars[ilo][j].Get()*fac2)
	}
	var l float64
	if ds.newPar.InRange() {
		l = ds.newOpt.Likelihood()
		ds.calls++
	} else {
		l = math.Inf(-1)
	}
	if l > ds.pointL[ilo] {
		ds.points[ilo], ds.newOpt = ds.newOpt, ds.points[ilo]
		ds.pointPars[ilo], ds.newPar = ds.newPar, ds.pointPars[ilo]
		ds.pointL[ilo] = l
	}
	return l
}

// calcPsum computes per-parameter sums over the simplex points.
func (ds *DS) calcPsum() {
	ds.psum = make([]float64, len(ds.pointPars[0]))
	for i := range ds.psum {
		for _, parameters := range ds.pointPars {
			ds.psum[i] += parameters[i].Get()
		}
	}
}

// SetOptimizable sets a model to optimize and creates the simplex.
func (ds *DS) SetOptimizable(opt Optimizable) {
	ds.BaseOptimizer.SetOptimizable(opt)
	ds.createSimplex(opt, ds.delta)
	ds.startL = ds.pointL[0]
}

// Run starts the optimization.
func (ds *DS) Run(iterations int) {
	// Lowest (worst), next-lowest and highest points
	var ilo, inlo, ihi int
	var llo, lnlo, lhi float64
	ds.startTime = time.Now()
	ds.PrintHeader(ds.pointPars[0])
	ds.maxL = math.Inf(-1)
Iter:
	for ds.i = 1; ds.i <= iterations; ds.i++ {
		if ds.pointL[0] < ds.pointL[1] {
			ilo = 0
			inlo = 1
			ihi = 1
		} else {
			ilo = 1
			inlo = 0
			ihi = 0
		}
		llo = ds.pointL[ilo]
		lnlo = ds.pointL[inlo]
		lhi = ds.pointL[ihi]
		for i := 2; i < len(ds.points); i++ {
			if ds.pointL[i] >= lhi {
				lhi = ds.pointL[i]
				ihi = i
			}
			if ds.pointL[i] < llo {
				lnlo = llo
				inlo = ilo
				llo = ds.pointL[i]
				ilo = i
			} else if ds.pointL[i] < lnlo {
				lnlo = ds.pointL[i]
				inlo = i
			}
		}
		if lhi > ds.maxL {
			ds.maxL = lhi
			ds.maxLPar = ds.pointPars[ihi].Values(ds.maxLPar)
		}
		ds.l = lhi
		if ds.i%ds.repPeriod == 0 {
			log.Debugf("%d: L=%f (%f)", ds.i, lhi, lhi-llo)
		}
		ds.PrintLine(ds.pointPars[ihi], lhi, ds.repPeriod)
		ds.SaveCheckpoint(false)
		rtol := 2 * math.Abs(lhi-llo) / (math.Abs(llo) + math.Abs(lhi) + TINY)
		if rtol < ds.ftol {
			if ds.repeat && math.Abs(ds.oldL-lhi) < SMALL {
				break Iter
			}
			ds.repeat = true
			ds.oldL = lhi
			log.Infof("converged. retrying")
			ds.createSimplex(ds.points[ihi], ds.delta)
			continue
		}
		l := ds.amotry(ilo, -1)
		switch {
		case l >= lhi:
			ds.amotry(ilo, 2)
		case l <= lnlo:
			lsave := llo
			l := ds.amotry(ilo, 0.5)
			if l <= lsave {
				for i, point := range ds.points {
					if i != ihi {
						for j := range ds.pointPars[i] {
							ds.pointPars[i][j].Set(0.5 * (ds.pointPars[i][j].Get() + ds.pointPars[ihi][j].Get()))
						}
						if ds.pointPars[i].InRange() {
							ds.pointL[i] = point.Likelihood()
							ds.calls++
						} else {
							ds.pointL[i] = math.Inf(-1)
						}
					}
				}
			}
		}
		select {
		case s := <-ds.sig:
			log.Warningf("Received signal %v, exiting.", s)
			break Iter
		default:
		}
	}
	if ds.i > iterations {
		log.Warningf("Iterations exceeded (%d)", iterations)
	}

	// the best point parameters become the model parameters
	ds.parameters.Update(&ds.pointPars[ihi])

	log.Info("Finished downhill simplex")
	ds.SaveCheckpoint(true)
	ds.saveDeltaT()
}
