package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/deixis/ftpilot/internal/batch"
	"github.com/deixis/ftpilot/internal/command"
	"github.com/deixis/ftpilot/internal/runner"
)

func TestPrintOutcome(t *testing.T) {
	color.NoColor = true
	spec := command.Spec{"freqtrade", "backtesting", "--strategy", "Alpha"}

	var testCases = []struct {
		scenario string
		outcome  batch.Outcome
		want     []string
	}{
		{"completed", batch.Outcome{Spec: spec, Result: runner.Result{Succeeded: true}, File: "/r/Test_Alpha"},
			[]string{"completed freqtrade backtesting --strategy Alpha", "Result saved to file: Test_Alpha"}},
		{"timeout", batch.Outcome{Spec: spec, Result: runner.Result{TimedOut: true}, File: "/r/x"},
			[]string{"timeout"}},
		{"abandoned", batch.Outcome{Spec: spec, Abandoned: true, Err: batch.ErrAbandoned},
			[]string{"abandoned", batch.ErrAbandoned.Error()}},
		{"failed", batch.Outcome{Spec: spec, Err: errors.New("boom")},
			[]string{"failed", "boom"}},
	}
	for _, tt := range testCases {
		t.Run(tt.scenario, func(t *testing.T) {
			var b bytes.Buffer
			printOutcome(&b, tt.outcome)
			for _, w := range tt.want {
				assert.Contains(t, b.String(), w)
			}
		})
	}
}

func TestPrintSummary(t *testing.T) {
	color.NoColor = true
	var b bytes.Buffer
	printSummary(&b, batch.Summary{Workflow: "Test Strategies", Outcomes: []batch.Outcome{
		{Result: runner.Result{Succeeded: true}, File: "a"},
		{Result: runner.Result{ExitCode: 2}, File: "b"},
	}})
	assert.Contains(t, b.String(), "Test Strategies: 2 total, 1 succeeded, 1 failed")
}
