package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deixis/ftpilot/internal/config"
	"github.com/deixis/ftpilot/internal/workflow"
)

// scripted answers questions from a fixed list and records them.
type scripted struct {
	answers   []string
	questions []Question
}

func (s *scripted) Ask(q Question) (string, error) {
	s.questions = append(s.questions, q)
	if len(s.answers) == 0 {
		return "", ErrCancelled
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func newSession(t *testing.T) (*config.Config, config.Session) {
	t.Helper()
	c := &config.Config{}
	s := c.Session(t.TempDir())
	require.NoError(t, os.MkdirAll(s.StrategiesDir, 0o755))
	for _, f := range []string{"Beta.py", "Alpha.py"} {
		require.NoError(t, os.WriteFile(filepath.Join(s.StrategiesDir, f), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(s.ConfigDir, "config.json"), []byte("{}"), 0o644))
	return c, s
}

func TestCollect_HyperoptSelected(t *testing.T) {
	c, s := newSession(t)
	a := &scripted{answers: []string{
		"Hyperopt", "config.json", "Optimize Selected Strategy", "Alpha",
		"SharpeHyperOptLoss", "roi stoploss", "100", "1h", "20240601-",
	}}

	sel, err := Collect(a, c, s)
	require.NoError(t, err)
	assert.Equal(t, workflow.Hyperopt, sel.Workflow.Tag)
	assert.Equal(t, "config.json", sel.ConfigFile)
	assert.Equal(t, workflow.Params{
		Strategy:  "Alpha",
		Loss:      "SharpeHyperOptLoss",
		Spaces:    "roi stoploss",
		Epochs:    100,
		Timeframe: "1h",
		Timerange: "20240601-",
	}, sel.Params)

	require.Len(t, a.questions, 9)
	assert.Equal(t, []string{"Alpha", "Beta"}, a.questions[3].Options)
	assert.True(t, a.questions[3].AllowCustom)
	epochs := a.questions[6]
	assert.True(t, epochs.Numeric)
	assert.Empty(t, epochs.Options)
}

func TestCollect_BacktestAll(t *testing.T) {
	c, s := newSession(t)
	a := &scripted{answers: []string{"Test Strategies", "config.json", "Test All Strategies", "5m", "20240601-20240825"}}

	sel, err := Collect(a, c, s)
	require.NoError(t, err)
	assert.True(t, sel.Params.All)
	assert.Empty(t, sel.Params.Strategy)
	assert.Equal(t, "5m", sel.Params.Timeframe)
	assert.Len(t, a.questions, 5)
}

func TestCollect_DownloadOffersMultiTimeframes(t *testing.T) {
	c, s := newSession(t)
	a := &scripted{answers: []string{"Download Data", "config.json", "1m 5m 15m", "20240601-"}}

	sel, err := Collect(a, c, s)
	require.NoError(t, err)
	assert.Equal(t, "1m 5m 15m", sel.Params.Timeframe)
	assert.Contains(t, a.questions[2].Options, "1m 5m 15m")
}

func TestCollect_Cancelled(t *testing.T) {
	c, s := newSession(t)
	_, err := Collect(&scripted{answers: []string{"Plot"}}, c, s)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestCollect_InvalidEpochs(t *testing.T) {
	c, s := newSession(t)
	a := &scripted{answers: []string{
		"Hyperopt", "config.json", "Optimize All Strategies",
		"SharpeHyperOptLoss", "roi", "lots",
	}}
	_, err := Collect(a, c, s)
	assert.ErrorIs(t, err, workflow.ErrInvalidParam)
}
