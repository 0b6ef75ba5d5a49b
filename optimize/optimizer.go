// Package optimize provides a generic framework for likelihood
// maximization: parameter proxies with priors and proposals, several
// optimization methods and checkpoint support.
package optimize

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/op/go-logging"

	"github.com/hepstat/massfit/checkpoint"
)

// log is the global logging variable.
var log = logging.MustGetLogger("optimize")

// Optimizable is something which can be optimized by an Optimizer.
type Optimizable interface {
	// GetFloatParameters returns the parameter storage.
	GetFloatParameters() FloatParameters
	// Copy returns a copy of the Optimizable with an independent
	// parameter storage.
	Copy() Optimizable
	// Likelihood returns the log-likelihood for the current
	// parameter values.
	Likelihood() float64
}

// Optimizer is an interface for the optimization methods.
type Optimizer interface {
	// SetOptimizable sets a model to optimize.
	SetOptimizable(Optimizable)
	// WatchSignals installs OS signal handlers, so the
	// optimization can be stopped gracefully.
	WatchSignals(...os.Signal)
	// SetReportPeriod sets the number of iterations between
	// trajectory lines.
	SetReportPeriod(period int)
	// SetTrajectoryOutput sets a writer for the trajectory.
	SetTrajectoryOutput(io.Writer)
	// SetCheckpointIO enables periodic checkpoint saving.
	SetCheckpointIO(*checkpoint.CheckpointIO)
	// Run performs the optimization.
	Run(iterations int)
	// GetMaxL returns the maximum likelihood value found.
	GetMaxL() float64
	// GetMaxLParameters returns parameter values for the maximum
	// likelihood value.
	GetMaxLParameters() map[string]float64
	// PrintResults logs the optimization results.
	PrintResults()
	// Summary returns the optimization summary.
	Summary() Summary
}

// Summary stores the optimization results for the JSON output.
type Summary struct {
	// StartingLnL is the log-likelihood of the starting point.
	StartingLnL float64 `json:"startingLnL"`
	// MaxLnL is the maximum log-likelihood value found.
	MaxLnL float64 `json:"maxLnL"`
	// MaxLParameters are the parameter values for MaxLnL.
	MaxLParameters map[string]float64 `json:"maxLParameters"`
	// Iterations is the number of iterations performed.
	Iterations int `json:"iterations"`
	// Calls is the number of likelihood function calls.
	Calls int `json:"likelihoodCalls"`
	// Time is the optimization time in seconds.
	Time float64 `json:"time"`
}

// BaseOptimizer contains the data and methods shared between the
// optimizers.
type BaseOptimizer struct {
	Optimizable
	parameters FloatParameters
	i          int
	// calls is the number of likelihood function calls
	calls     int
	l         float64
	maxL      float64
	maxLPar   []float64
	startL    float64
	repPeriod int
	sig       chan os.Signal
	// Quiet disables the trajectory output.
	Quiet  bool
	output io.Writer

	startTime time.Time
	deltaT    time.Duration

	chkp *checkpoint.CheckpointIO
}

// SetOptimizable sets a model to optimize.
func (o *BaseOptimizer) SetOptimizable(opt Optimizable) {
	o.Optimizable = opt
	o.parameters = opt.GetFloatParameters()
}

// WatchSignals installs OS signal handlers.
func (o *BaseOptimizer) WatchSignals(sigs ...os.Signal) {
	o.sig = make(chan os.Signal, 1)
	signal.Notify(o.sig, sigs...)
}

// SetReportPeriod sets the number of iterations between trajectory
// lines.
func (o *BaseOptimizer) SetReportPeriod(period int) {
	o.repPeriod = period
}

// SetTrajectoryOutput sets a writer for the trajectory. By default
// os.Stdout is used.
func (o *BaseOptimizer) SetTrajectoryOutput(f io.Writer) {
	o.output = f
}

// SetCheckpointIO enables periodic checkpoint saving.
func (o *BaseOptimizer) SetCheckpointIO(chkp *checkpoint.CheckpointIO) {
	o.chkp = chkp
}

// SaveStart stores the optimization starting time and computes the
// likelihood of the starting point.
func (o *BaseOptimizer) SaveStart() {
	o.startTime = time.Now()
	o.startL = o.Likelihood()
	o.calls++
	o.l = o.startL
	o.maxL = o.startL
	o.maxLPar = o.parameters.Values(o.maxLPar)
}

// SaveCheckpoint saves a checkpoint if the checkpoint saver is set
// and the last checkpoint is old enough. If final is true, the
// checkpoint is saved unconditionally.
func (o *BaseOptimizer) SaveCheckpoint(final bool) {
	if o.chkp == nil {
		return
	}
	if !final && !o.chkp.Old() {
		return
	}
	data := checkpoint.CheckpointData{
		Parameters: o.GetMaxLParameters(),
		Likelihood: o.maxL,
		Iter:       o.i,
		Final:      final,
	}
	err := o.chkp.Save(&data)
	if err != nil {
		log.Error("Error saving checkpoint:", err)
	}
}

// saveDeltaT stores the time passed since the optimization start.
func (o *BaseOptimizer) saveDeltaT() {
	o.deltaT = time.Since(o.startTime)
}

// PrintHeader prints the trajectory header.
func (o *BaseOptimizer) PrintHeader(par FloatParameters) {
	if o.Quiet {
		return
	}
	if o.output == nil {
		o.output = os.Stdout
	}
	fmt.Fprintf(o.output, "iteration\tlikelihood\t%s\n", par.NamesString())
}

// PrintLine prints a trajectory line if the iteration number is a
// multiple of period.
func (o *BaseOptimizer) PrintLine(par FloatParameters, l float64, period int) {
	if o.Quiet || o.i%period != 0 {
		return
	}
	if o.output == nil {
		o.output = os.Stdout
	}
	fmt.Fprintf(o.output, "%d\t%f\t%s\n", o.i, l, par.ValuesString())
}

// GetMaxL returns the maximum likelihood value found.
func (o *BaseOptimizer) GetMaxL() float64 {
	return o.maxL
}

// GetMaxLParameters returns parameter values for the maximum
// likelihood value. If the optimization was not run, the current
// parameter values are returned.
func (o *BaseOptimizer) GetMaxLParameters() map[string]float64 {
	par := make(map[string]float64, len(o.parameters))
	for i, p := range o.parameters {
		if o.maxLPar != nil {
			par[p.Name()] = o.maxLPar[i]
		} else {
			par[p.Name()] = p.Get()
		}
	}
	return par
}

// GetNCalls returns the number of likelihood function calls.
func (o *BaseOptimizer) GetNCalls() int {
	return o.calls
}

// PrintResults logs the maximum likelihood value and the parameters.
func (o *BaseOptimizer) PrintResults() {
	if o.maxLPar == nil {
		o.maxLPar = o.parameters.Values(nil)
	}
	log.Noticef("Maximum likelihood: %v", o.maxL)
	log.Infof("Likelihood function calls: %v", o.calls)
	log.Infof("Parameter  names: %v", o.parameters.NamesString())
	log.Infof("Parameter values: %v", o.maxLParametersString())
	for i, par := range o.parameters {
		log.Noticef("%s=%v", par.Name(), o.maxLPar[i])
	}
}

func (o *BaseOptimizer) maxLParametersString() (s string) {
	for i := range o.parameters {
		if i != 0 {
			s += "\t"
		}
		s += strconv.FormatFloat(o.maxLPar[i], 'f', 6, 64)
	}
	return
}

// Summary returns the optimization summary.
func (o *BaseOptimizer) Summary() Summary {
	return Summary{
		StartingLnL:    o.startL,
		MaxLnL:         o.maxL,
		MaxLParameters: o.GetMaxLParameters(),
		Iterations:     o.i,
		Calls:          o.calls,
		Time:           o.deltaT.Seconds(),
	}
}
