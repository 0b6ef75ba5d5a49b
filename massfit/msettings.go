package main

import (
	"errors"
	"fmt"

	"github.com/hepstat/massfit/fitmodel"
)

// modelSettings stores settings for creating a new model.
type modelSettings struct {
	name string
	data *fitmodel.Data

	bkgName  string
	bkgOrder int

	ncoefl  int
	ncoefr  int
	cbRight bool

	startF    string
	randomize bool
}

// newModelSettings initializes modelSettings from global
// variables (command-line arguments).
func newModelSettings(data *fitmodel.Data) *modelSettings {
	return &modelSettings{
		name: *model,
		data: data,

		bkgName:  *background,
		bkgOrder: *chebOrder,

		ncoefl:  *ncoefl,
		ncoefr:  *ncoefr,
		cbRight: *cbRight,

		startF:    *startF,
		randomize: *randomize,
	}
}

// createModel creates a new model from modelSettings.
func (ms *modelSettings) createModel() (fitmodel.FitOptimizable, error) {
	switch ms.name {
	case "dscb":
		log.Info("Using double-sided Crystal Ball model")
		return fitmodel.NewDoubleCB(ms.data), nil
	case "gaussbern":
		log.Info("Using Gaussian core with Bernstein tails")
		log.Infof("%d left and %d right tail coefficients", ms.ncoefl, ms.ncoefr)
		return fitmodel.NewGaussBern(ms.data, ms.ncoefl, ms.ncoefr), nil
	case "cb":
		log.Info("Using single-tail Crystal Ball model")
		return fitmodel.NewCrystalBall(ms.data, !ms.cbRight), nil
	}
	return nil, errors.New("Unknown model specification")
}

// createInitalized creates and initializes a model from
// modelSettings.
func (ms *modelSettings) createInitalized() (fitmodel.FitOptimizable, error) {
	m, err := ms.createModel()
	if err != nil {
		return nil, err
	}

	kind, err := fitmodel.ParseBackgroundKind(ms.bkgName)
	if err != nil {
		return nil, err
	}
	if kind != fitmodel.BkgNone {
		log.Infof("Background model: %s", ms.bkgName)
	}
	m.SetBackground(kind, ms.bkgOrder)

	log.Infof("Model has %d parameters.", len(m.GetFloatParameters()))

	if ms.startF != "" {
		l, err := lastLine(ms.startF)
		par := m.GetFloatParameters()
		if err == nil {
			err = par.ReadLine(l)
		}
		if err != nil {
			log.Debug("Reading start file as JSON")
			err2 := par.ReadFromJSON(ms.startF)
			// startF is neither trajectory nor correct JSON
			if err2 != nil {
				log.Error("Error reading start position from JSON:", err2)
				return nil, fmt.Errorf("Error reading start position from trajectory file: %v", err)
			}
		}
		if !par.InRange() {
			return nil, errors.New("Initial parameters are not in the range")
		}
	} else if ms.randomize {
		log.Info("Using uniform (in the boundaries) random starting point")
		par := m.GetFloatParameters()
		par.Randomize()
	}

	return m, nil
}
