package cmd

import (
	"github.com/etnz/statement/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	topics, _ := docs.GetAllTopics()
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":    predict.Files("*.yaml"),
			"actions":   predict.Files("*.jsonl"),
			"corporate": predict.Files("*.jsonl"),
			"scenario":  predict.Files("*.json"),
			"currency":  predict.Set{"USD", "EUR", "GBP", "JPY", "CHF"},
			"v":         predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"statement": {
				Flags: map[string]complete.Predictor{
					"format": predict.Set{"text", "markdown"},
					"from":   predict.Something,
					"to":     predict.Something,
				},
			},
			"fmt": {
				Flags: map[string]complete.Predictor{"n": predict.Nothing},
			},
			"topic": {
				Flags: map[string]complete.Predictor{"raw": predict.Nothing},
				Args:  predict.Set(append(topics, "*")),
			},
			"assist": {
				Flags: map[string]complete.Predictor{"once": predict.Nothing},
				Args:  predict.Something,
			},
			"help":     {Args: predict.Set{"statement", "fmt", "topic", "assist"}},
			"flags":    {},
			"commands": {},
		},
	}
}
