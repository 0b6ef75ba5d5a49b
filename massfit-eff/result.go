package main

import (
	"encoding/json"
	"errors"
	"io/ioutil"
)

type model struct {
	// Nsig is the fitted signal yield.
	Nsig float64 `json:"nsig"`
	// Nbkg is the fitted background yield.
	Nbkg float64 `json:"nbkg"`
}

type fit struct {
	// Spectrum is the input spectrum filename.
	Spectrum string `json:"spectrum"`
	// Model is the model summary with the fitted yields.
	Model *model `json:"model"`
	// Errors is the parameter standard errors from the fit.
	Errors map[string]float64 `json:"errors"`
}

// result stores the summary of a single massfit execution.
type result struct {
	Fit fit `json:"fit"`
}

func readResult(filename string) (*result, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	r := &result{}
	err = json.Unmarshal(data, r)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// mustReadResult reads a massfit summary or exits with an error.
func mustReadResult(filename string) *result {
	r, err := readResult(filename)
	if err != nil {
		log.Fatal("Cannot read fit summary:", err)
	}
	return r
}

// MustGetNsig returns the fitted signal yield or exits with an error.
func (r *result) MustGetNsig() float64 {
	res, err := r.GetNsig()
	if err != nil {
		log.Fatal("Cannot get signal yield:", err)
	}
	return res
}

// GetNsig gets the fitted signal yield from the result.
func (r *result) GetNsig() (float64, error) {
	if r.Fit.Model == nil {
		return 0, errors.New("no model summary in the result")
	}
	if r.Fit.Model.Nsig < 0 {
		return 0, errors.New("negative signal yield")
	}
	return r.Fit.Model.Nsig, nil
}
