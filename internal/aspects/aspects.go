// Package aspects maps named evaluation aspects onto sampling-parameter
// overrides and blends them into a base Settings value.
package aspects

import "github.com/mwiater/promptlab/internal/appconfig"

// Overrides is a partial mapping of parameter key to override value.
type Overrides map[string]float64

// Params is the static aspect table. It is read-only after init.
var Params = map[string]Overrides{
	// Creativity
	"creativity": {appconfig.ParamTemperature: 0.9, appconfig.ParamTopP: 0.9},
	"uniqueness": {appconfig.ParamTemperature: 0.9, appconfig.ParamPresencePenalty: 0.6},
	"humor":      {appconfig.ParamTemperature: 0.8, appconfig.ParamFrequencyPenalty: 0.3},

	// Accuracy
	"accuracy":              {appconfig.ParamTemperature: 0.5, appconfig.ParamTopP: 0.8},
	"mathematical accuracy": {appconfig.ParamTemperature: 0.3, appconfig.ParamTopP: 0.9},

	// Structure and clarity
	"clarity":                  {appconfig.ParamTemperature: 0.6, appconfig.ParamPresencePenalty: 0.2},
	"step-by-step explanation": {appconfig.ParamTemperature: 0.4, appconfig.ParamFrequencyPenalty: 0.3},
	"structure":                {appconfig.ParamTemperature: 0.5, appconfig.ParamPresencePenalty: 0.4},

	// Conciseness
	"conciseness":         {appconfig.ParamMaxTokens: 800, appconfig.ParamPresencePenalty: 0.4},
	"key point retention": {appconfig.ParamTemperature: 0.5, appconfig.ParamPresencePenalty: 0.3},

	// Style
	"tone accuracy":   {appconfig.ParamTemperature: 0.7, appconfig.ParamPresencePenalty: 0.4},
	"professionalism": {appconfig.ParamTemperature: 0.6, appconfig.ParamFrequencyPenalty: 0.2},

	// Engagement
	"engagement":      {appconfig.ParamTemperature: 0.8, appconfig.ParamPresencePenalty: 0.3},
	"use of examples": {appconfig.ParamTemperature: 0.7, appconfig.ParamPresencePenalty: 0.4},

	// Understanding
	"simplicity":        {appconfig.ParamTemperature: 0.5, appconfig.ParamTopP: 0.8},
	"understandability": {appconfig.ParamTemperature: 0.6, appconfig.ParamFrequencyPenalty: 0.2},
}

// Known reports whether the aspect has an entry in the table.
func Known(aspect string) bool {
	_, ok := Params[aspect]
	return ok
}
