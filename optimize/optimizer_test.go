package optimize

import (
	"bytes"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/op/go-logging"
)

const (
	smallDiff = 1e-4
)

func init() {
	// disable logging for tests
	logging.SetLevel(logging.WARNING, "optimize")
}

// quadModel is a model with a quadratic log-likelihood surface. The
// maximum value is 0, reached at the center.
type quadModel struct {
	x          []float64
	center     []float64
	scale      []float64
	parameters FloatParameters
}

func newQuadModel(center, scale []float64) (m *quadModel) {
	m = &quadModel{
		x:      make([]float64, len(center)),
		center: center,
		scale:  scale,
	}
	for i := range m.x {
		par := NewBasicFloatParameter(&m.x[i], "x"+strconv.Itoa(i))
		par.SetMin(-100)
		par.SetMax(100)
		par.SetPriorFunc(UniformPrior(-100, 100, false, false))
		par.SetProposalFunc(NormalProposal(0.1))
		m.parameters.Append(par)
	}
	return
}

func (m *quadModel) GetFloatParameters() FloatParameters {
	return m.parameters
}

func (m *quadModel) Copy() Optimizable {
	newM := newQuadModel(m.center, m.scale)
	copy(newM.x, m.x)
	return newM
}

func (m *quadModel) Likelihood() (res float64) {
	for i, v := range m.x {
		d := v - m.center[i]
		res -= m.scale[i] * d * d
	}
	return
}

func TestSimplexQuadratic(tst *testing.T) {
	m := newQuadModel([]float64{1.5, -0.7, 3}, []float64{1, 2, 0.5})
	ds := NewDS()
	ds.Quiet = true
	ds.SetOptimizable(m)
	ds.Run(10000)

	if math.Abs(ds.GetMaxL()) > smallDiff {
		tst.Error("Expected maximum likelihood 0, got ", ds.GetMaxL())
	}
	par := ds.GetMaxLParameters()
	for i, c := range m.center {
		v := par["x"+strconv.Itoa(i)]
		if math.Abs(v-c) > 1e-2 {
			tst.Error("Expected ", c, ", got ", v)
		}
	}
	s := ds.Summary()
	if s.MaxLnL != ds.GetMaxL() {
		tst.Error("Summary and optimizer maximum likelihood disagree")
	}
	if s.StartingLnL >= s.MaxLnL {
		tst.Error("Expected the likelihood to improve, start=", s.StartingLnL,
			", max=", s.MaxLnL)
	}
	if s.Calls < len(m.center)+1 {
		tst.Error("Expected more likelihood calls, got ", s.Calls)
	}
}

func TestMHQuadratic(tst *testing.T) {
	if testing.Short() {
		tst.Skip("skipping test in short mode.")
	}
	rand.Seed(1)
	m := newQuadModel([]float64{1.5, -0.7}, []float64{1, 1})
	mh := NewMH(false, 0)
	mh.Quiet = true
	mh.SetOptimizable(m)
	mh.Run(20000)

	if mh.GetMaxL() < -0.5 {
		tst.Error("Expected maximum likelihood close to 0, got ", mh.GetMaxL())
	}
	par := mh.GetMaxLParameters()
	if math.Abs(par["x0"]-1.5) > 0.5 || math.Abs(par["x1"]+0.7) > 0.5 {
		tst.Error("Expected parameters close to the center, got ", par)
	}
}

func TestMHAnnealing(tst *testing.T) {
	if testing.Short() {
		tst.Skip("skipping test in short mode.")
	}
	rand.Seed(1)
	m := newQuadModel([]float64{2}, []float64{1})
	mh := NewMH(true, 1000)
	mh.Quiet = true
	mh.SetOptimizable(m)
	mh.Run(20000)

	if mh.GetMaxL() < -0.5 {
		tst.Error("Expected maximum likelihood close to 0, got ", mh.GetMaxL())
	}
	par := mh.GetMaxLParameters()
	if math.Abs(par["x0"]-2) > 0.5 {
		tst.Error("Expected x0 close to 2, got ", par["x0"])
	}
}

func TestNone(tst *testing.T) {
	m := newQuadModel([]float64{1}, []float64{1})
	none := NewNone()
	none.Quiet = true
	none.SetOptimizable(m)
	none.Run(0)

	if none.GetMaxL() != -1 {
		tst.Error("Expected likelihood -1, got ", none.GetMaxL())
	}
	s := none.Summary()
	if s.Calls != 1 {
		tst.Error("Expected a single likelihood call, got ", s.Calls)
	}
	if s.StartingLnL != s.MaxLnL {
		tst.Error("Expected starting and maximum likelihood to be equal")
	}
}

func TestTrajectory(tst *testing.T) {
	m := newQuadModel([]float64{1, 2}, []float64{1, 1})
	m.x[0] = 0.5
	m.x[1] = -0.25
	none := NewNone()
	var buf bytes.Buffer
	none.SetTrajectoryOutput(&buf)
	none.SetOptimizable(m)
	none.Run(0)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		tst.Error("Expected a header and a single line, got ", len(lines))
	}
	if !strings.HasPrefix(lines[0], "iteration\tlikelihood\t") {
		tst.Error("Unexpected trajectory header: ", lines[0])
	}

	// a trajectory line can be used as a starting point
	m2 := newQuadModel([]float64{1, 2}, []float64{1, 1})
	err := m2.GetFloatParameters().ReadLine(lines[1])
	if err != nil {
		tst.Error("Error: ", err)
	}
	if m2.x[0] != 0.5 || m2.x[1] != -0.25 {
		tst.Error("Expected 0.5, -0.25, got ", m2.x)
	}
}
