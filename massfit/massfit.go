/*

Massfit fits closed-form signal shapes to binned particle mass
spectra using extended maximum likelihood. It includes various
likelihood optimizers as well as Metropolis-Hastings sampler.

The basic usage of massfit looks like this:

	massfit spectrum.json

, this will fit the double-sided Crystal Ball model with a default
optimizer (LBFGS-B).

You can change a model and an optimizer:

	massfit --model gaussbern --method simplex spectrum.json

The above will use the Bernstein-tail model and downhill simplex
optimizer.

To see all the options run:

	massfit -h

*/
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"

	"github.com/hepstat/massfit/checkpoint"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("massfit")
var formatter = logging.MustStringFormatter(`%{message}`)

// lastLine returns the last line of a file content.
func lastLine(fn string) (line string, err error) {
	f, err := os.Open(fn)
	if err != nil {
		return line, err
	}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line = scanner.Text()
	}
	err = scanner.Err()
	return line, err
}

// command-line options
var (
	// application
	app = kingpin.New("massfit", "mass spectrum shape fitter").Version(version)

	// input spectrum
	spectrumFileName = app.Arg("spectrum", "binned mass spectrum (JSON)").Required().ExistingFile()

	// model parameters
	model = app.Flag("model", "signal model (dscb: double-sided Crystal Ball, "+
		"gaussbern: Gaussian core with Bernstein tails, "+
		"cb: single-tail Crystal Ball)").Default("dscb").String()
	fitLo      = app.Flag("lo", "lower edge of the fit window (full spectrum by default)").Default("0").Float64()
	fitHi      = app.Flag("hi", "upper edge of the fit window (full spectrum by default)").Default("0").Float64()
	background = app.Flag("background", "background model (none, cms, exp or cheb)").Default("none").String()
	chebOrder  = app.Flag("cheborder", "order of the Chebyshev background").Default("2").Int()
	ncoefl     = app.Flag("ncoefl", "number of the left tail coefficients (gaussbern)").Default("2").Int()
	ncoefr     = app.Flag("ncoefr", "number of the right tail coefficients (gaussbern)").Default("2").Int()
	cbRight    = app.Flag("cbright", "put the power-law tail on the right side (cb)").Bool()
	noFinal    = app.Flag("nofinal", "don't perform final extra computations, i.e. goodness of fit and pulls").Bool()
	noErrors   = app.Flag("noerrors", "don't estimate parameter errors from the Hessian").Bool()

	// optimizer parameters
	randomize = app.Flag("randomize", "use uniformly distributed random starting point; "+
		"by default the starting point is estimated from the spectrum moments").Bool()
	iterations = app.Flag("iter", "number of iterations").Default("10000").Int()
	report     = app.Flag("report", "report every N iterations").Default("10").Int()
	method     = app.Flag("method", "optimization method to use "+
		"(lbfgsb: limited-memory Broyden–Fletcher–Goldfarb–Shanno with bounding constraints, "+
		"simplex: downhill simplex, "+
		"annealing: simullated annealing, "+
		"mh: Metropolis-Hastings, "+
		"none: just compute likelihood, no optimization"+
		")").Default("lbfgsb").String()

	// mcmc parameters
	accept = app.Flag("accept", "report acceptance rate every N iterations").Default("200").Int()

	// adaptive mcmc parameters
	adaptive = app.Flag("adaptive", "use adaptive MCMC").Bool()
	skip     = app.Flag("skip", "number of iterations to skip for adaptive mcmc (5% by default)").Default("-1").Int()
	maxAdapt = app.Flag("maxadapt", "stop adapting after iteration (20% by default)").Default("-1").Int()

	// technical
	nThreads   = app.Flag("nt", "number of threads to use").Int()
	seed       = app.Flag("seed", "random generator seed, default time based").Default("-1").Int64()
	cpuProfile = app.Flag("cpuprofile", "write cpu profile to file").String()

	// input/output
	outLogF     = app.Flag("log", "write log to a file").String()
	outF        = app.Flag("out", "write optimization trajectory to a file").String()
	startF      = app.Flag("start", "read start position from the trajectory or JSON file").ExistingFile()
	checkpointF = app.Flag("checkpoint", "checkpoint database file, allows resuming an interrupted fit").String()
	chkpDT      = app.Flag("chkpdt", "minimum time between checkpoint saves (seconds)").Default("30").Float64()
	logLevel    = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
	jsonF = app.Flag("json", "write json output to a file").String()
	plotF = app.Flag("plot", "write a plot of the fit (format from the extension: png, pdf, svg ...)").String()
)

// trajF is the optimization trajectory destination.
var trajF = os.Stdout

// chkpIO saves and restores the optimization state.
var chkpIO *checkpoint.CheckpointIO

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	logging.SetLevel(level, "massfit")
	logging.SetLevel(level, "optimize")
	logging.SetLevel(level, "fitmodel")
	logging.SetLevel(level, "checkpoint")

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	if *seed == -1 {
		*seed = time.Now().UnixNano()
		log.Debug("Random seed from time")
	}
	log.Infof("Random seed=%v", *seed)

	rand.Seed(*seed)
	runtime.GOMAXPROCS(*nThreads)

	effectiveNThreads := runtime.GOMAXPROCS(0)
	log.Infof("Using threads: %d.\n", effectiveNThreads)

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *outF != "" {
		trajF, err = os.Create(*outF)
		if err != nil {
			log.Fatal("Error creating trajectory file:", err)
		}
		defer trajF.Close()
	}

	startTime := time.Now()

	summary := RunSummary{
		Version:     version,
		CommandLine: os.Args,
		Seed:        *seed,
		NThreads:    effectiveNThreads,
	}

	// a checkpoint overrides the starting point
	var start map[string]float64

	if *checkpointF != "" {
		db, err := bolt.Open(*checkpointF, 0600, nil)
		if err != nil {
			log.Fatal("Error opening checkpoint database:", err)
		}
		defer db.Close()
		chkpIO = checkpoint.NewCheckpointIO(db, []byte("fit"), *chkpDT)

		data, err := chkpIO.GetParameters()
		if err != nil {
			log.Fatal("Error reading checkpoint:", err)
		}
		if data != nil {
			start = data.Parameters
		}
	}

	summary.Fit = runOptimization(start)

	deltaT := time.Since(startTime)
	log.Noticef("Running time: %v", deltaT)
	summary.TotalTime = deltaT.Seconds()

	// output summary in json format
	if *jsonF != "" {
		j, err := json.Marshal(summary)
		if err != nil {
			log.Error(err)
		} else {
			log.Debug(string(j))
			f, err := os.Create(*jsonF)
			if err != nil {
				log.Error("Error creating json output file:", err)
			} else {
				f.Write(j)
				f.Close()
			}
		}
	}
}
