/*

Massfit-eff computes a selection efficiency from two massfit runs. It
reads the JSON summaries of the passing and the failing leg fits,
extracts the signal yields and reports nPass / (nPass + nFail) with a
Clopper-Pearson confidence interval.

*/
package main

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/op/go-logging"

	"github.com/hepstat/massfit/stat"
)

// setting up logging
var formatter = logging.MustStringFormatter(`%{message}`)
var log = logging.MustGetLogger("massfit-eff")

func saveJSON() {
	if *jsonF != "" {
		j, err := json.Marshal(sum)
		if err != nil {
			log.Error(err)
		} else {
			log.Debug(string(j))
			f, err := os.Create(*jsonF)
			if err != nil {
				log.Error("Error creating json output file:", err)
			} else {
				f.Write(j)
			}
			f.Close()
		}
	}
}

// summary is storing summary information.
type summary struct {
	// NPass is the fitted signal yield of the passing leg.
	NPass float64 `json:"nPass"`
	// NFail is the fitted signal yield of the failing leg.
	NFail float64 `json:"nFail"`
	// Confidence is the confidence level of the interval.
	Confidence float64 `json:"confidence"`
	// Efficiency is the pass fraction with its interval.
	Efficiency stat.Efficiency `json:"efficiency"`
	// Time is the computations time in seconds.
	Time float64 `json:"time"`
}

// sum contains the run summary
var sum summary

// program parameters
var confidence = flag.Float64("confidence", 0.683, "confidence level of the interval")
var debug = flag.Bool("debug", false, "enable debug mode")
var jsonF = flag.String("json", "", "write json output to a file")

func main() {
	startTime := time.Now()

	logging.SetFormatter(formatter)
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetBackend(backend)

	flag.Parse()

	if !*debug {
		logging.SetLevel(logging.INFO, "massfit-eff")
	}

	if len(flag.Args()) < 2 {
		log.Fatal("you should specify pass and fail fit summaries")
		return
	}

	if *confidence <= 0 || *confidence >= 1 {
		log.Fatal("confidence level should be between 0 and 1")
	}

	resPass := mustReadResult(flag.Arg(0))
	resFail := mustReadResult(flag.Arg(1))

	nPass := resPass.MustGetNsig()
	nFail := resFail.MustGetNsig()

	if nPass+nFail <= 0 {
		log.Fatal("no signal in either leg")
	}

	eff := stat.ClopperPearson(nPass, nPass+nFail, *confidence)

	log.Infof("nPass=%f, nFail=%f", nPass, nFail)
	log.Noticef("eff=%f [%f, %f] (CL=%v)", eff.Value, eff.Lo, eff.Hi, *confidence)

	sum.NPass = nPass
	sum.NFail = nFail
	sum.Confidence = *confidence
	sum.Efficiency = eff

	endTime := time.Now()

	deltaT := endTime.Sub(startTime)
	sum.Time = deltaT.Seconds()

	saveJSON()
}
