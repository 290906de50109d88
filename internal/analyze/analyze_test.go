package analyze

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const fixture = `2024-08-26 10:00:00,000 - freqtrade.data.history - INFO - Loading data from 2024-06-01 00:00:00 up to 2024-08-25 00:00:00 (85 days).
Result for strategy SampleStrategy

SUMMARY METRICS
| Total profit %              | 12.34               |
| Total/Daily Avg Trades      | 57 / 2.1            |
| Min balance                 | 998.5 USDT          |
| Max balance                 | 1045.2 USDT         |
| Best Pair                   | BTC/USDT 8.1%       |
| Worst Pair                  | ETH/USDT -3.4%      |
| Win%                        | 62.5                |
`

func writeResult(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func withProfit(profit string) string {
	return strings.Replace(fixture, "| 12.34 ", "| "+profit+" ", 1)
}

func TestExtract_Fixture(t *testing.T) {
	rec, missing := Extract("Test_a", fixture)
	require.Empty(t, missing)

	assert.Equal(t, 12.34, rec.ProfitTotal)
	assert.Equal(t, 57, rec.Trades)
	assert.Equal(t, 998.5, rec.MinBalance)
	assert.Equal(t, 1045.2, rec.MaxBalance)
	assert.Equal(t, 62.5, rec.WinRate)
	assert.Equal(t, PairResult{Pair: "BTC/USDT", Percent: 8.1}, rec.BestPair)
	assert.Equal(t, PairResult{Pair: "ETH/USDT", Percent: -3.4}, rec.WorstPair)
	assert.Equal(t, "ETH/USDT (-3.4%)", rec.WorstPair.String())
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), rec.PeriodStart)
	assert.Equal(t, time.Date(2024, 8, 25, 0, 0, 0, 0, time.UTC), rec.PeriodEnd)
}

func TestExtract_NegativeProfit(t *testing.T) {
	rec, missing := Extract("Test_neg", withProfit("-7.5"))
	require.Empty(t, missing)
	assert.Equal(t, -7.5, rec.ProfitTotal)
}

func TestExtract_BoxDrawingSeparators(t *testing.T) {
	text := "Loading data from 2024-01-01 00:00:00 up to 2024-02-01 00:00:00\n" +
		"│ Total profit %              │ 3.5%          │\n" +
		"│ Total/Daily Avg Trades      │ 10 / 0.32     │\n" +
		"│ Min balance                 │ 990 USDT      │\n" +
		"│ Max balance                 │ 1040 USDT     │\n" +
		"│ Best Pair                   │ SOL/USDT:USDT 4.2% │\n" +
		"│ Worst Pair                  │ 1INCH/USDT -1% │\n" +
		"│ Win%                        │ 60            │\n"
	rec, missing := Extract("Test_box", text)
	require.Empty(t, missing)
	assert.Equal(t, 3.5, rec.ProfitTotal)
	assert.Equal(t, "SOL/USDT:USDT", rec.BestPair.Pair)
	assert.Equal(t, "1INCH/USDT", rec.WorstPair.Pair)
	assert.Equal(t, 60.0, rec.WinRate)
}

func TestExtract_Missing(t *testing.T) {
	var testCases = []struct {
		scenario string
		remove   string
		then     string
	}{
		{"win rate", "| Win%", "win_rate"},
		{"period", "Loading data from", "period"},
		{"trades", "Total/Daily Avg Trades", "trades"},
		{"worst pair", "Worst Pair", "worst_pair"},
		{"min balance", "Min balance", "min_balance"},
	}
	for _, tt := range testCases {
		t.Run(tt.scenario, func(t *testing.T) {
			_, missing := Extract("Test_x", strings.Replace(fixture, tt.remove, "", 1))
			assert.Equal(t, []string{tt.then}, missing)
		})
	}

	_, missing := Extract("Test_empty", "")
	assert.Len(t, missing, 8)
}

func TestAnalyze_SingleFile(t *testing.T) {
	dir := t.TempDir()
	writeResult(t, dir, "Test Strategies_S_cmd", fixture)

	records, err := (&Analyzer{}).Analyze(dir)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 12.34, records[0].ProfitTotal)
	assert.Equal(t, 57, records[0].Trades)
	assert.Equal(t, "Test Strategies_S_cmd", records[0].File)
}

func TestAnalyze_IncompleteExcluded(t *testing.T) {
	dir := t.TempDir()
	writeResult(t, dir, "Test_complete", fixture)
	writeResult(t, dir, "Test_no_winrate", strings.Replace(fixture, "| Win%", "", 1))

	core, logs := observer.New(zap.WarnLevel)
	records, err := (&Analyzer{Logger: zap.New(core)}).Analyze(dir)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Test_complete", records[0].File)

	entries := logs.FilterMessage("result file skipped").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Test_no_winrate", entries[0].ContextMap()["file"])
	assert.Contains(t, entries[0].ContextMap()["error"], "win_rate")
}

func TestAnalyze_TopTenSorted(t *testing.T) {
	dir := t.TempDir()
	for i := range 15 {
		writeResult(t, dir, fmt.Sprintf("Test_%02d", i), withProfit(fmt.Sprintf("%d.5", i-5)))
	}
	// Same profit as Test_14, ties broken by name.
	writeResult(t, dir, "Test_00_tie", withProfit("9.5"))
	writeResult(t, dir, "Other_prefix", withProfit("100"))

	records, err := (&Analyzer{}).Analyze(dir)
	require.NoError(t, err)
	require.Len(t, records, 10)

	assert.Equal(t, "Test_00_tie", records[0].File)
	assert.Equal(t, "Test_14", records[1].File)
	for i := 1; i < len(records); i++ {
		assert.GreaterOrEqual(t, records[i-1].ProfitTotal, records[i].ProfitTotal)
	}
}

func TestAnalyze_EmptyAndMissingDir(t *testing.T) {
	records, err := (&Analyzer{}).Analyze(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = (&Analyzer{}).Analyze(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAnalyze_Limit(t *testing.T) {
	dir := t.TempDir()
	for i := range 5 {
		writeResult(t, dir, fmt.Sprintf("Run_%d", i), fixture)
	}
	records, err := (&Analyzer{Prefix: "Run", Limit: 3}).Analyze(dir)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, "Run_0", records[0].File)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil))
	assert.Equal(t, NoResults+"\n", buf.String())

	buf.Reset()
	rec, _ := Extract("Test_a", fixture)
	require.NoError(t, Render(&buf, []Record{rec}))
	out := buf.String()
	assert.Contains(t, out, "Test_a")
	assert.Contains(t, out, "12.34")
	assert.Contains(t, out, "BTC/USDT (8.1%)")
	assert.Contains(t, out, "2024-06-01 00:00:00")
}
