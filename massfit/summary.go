package main

import "github.com/hepstat/massfit/optimize"

type RunSummary struct {
	// Version stores massfit version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Seed is the seed used for random number generation initialization.
	Seed int64 `json:"seed"`
	// NThreads is the number of processes used.
	NThreads int `json:"nThreads"`
	// TotalTime is the computations time in seconds.
	TotalTime float64 `json:"time"`
	// Fit is the summary of the fit performed.
	Fit OptimizationSummary `json:"fit"`
}

// OptimizationSummary is storing massfit run summary information.
type OptimizationSummary struct {
	// Spectrum is the input spectrum filename.
	Spectrum string `json:"spectrum"`
	// FitLo is the lower edge of the fit window.
	FitLo float64 `json:"fitLo"`
	// FitHi is the upper edge of the fit window.
	FitHi float64 `json:"fitHi"`
	// Time is the computations time in seconds.
	Time float64 `json:"optimizationTime"`
	// Model is the model summary, including goodness of fit if computed.
	Model interface{} `json:"model,omitempty"`
	// Optimizer is the summary of the optimizer used.
	Optimizer optimize.Summary `json:"optimizer"`
	// Errors is the parameter standard errors estimated from the Hessian.
	Errors map[string]float64 `json:"errors,omitempty"`
}
