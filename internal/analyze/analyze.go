// Package analyze extracts headline metrics from archived backtest logs and
// ranks the most profitable runs.
package analyze

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/deixis/ftpilot/internal/report"
)

const (
	DefaultPrefix = "Test"
	DefaultLimit  = 10
)

// ErrIncomplete is reported for a result file lacking a required metric.
var ErrIncomplete = errors.New("incomplete result")

// Record holds the metrics of one backtest result file.
type Record struct {
	File        string
	ProfitTotal float64
	WinRate     float64
	Trades      int
	MinBalance  float64
	MaxBalance  float64
	BestPair    PairResult
	WorstPair   PairResult
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// Analyzer ranks result files from a results directory.
type Analyzer struct {
	Prefix string // only files starting with Prefix are read
	Limit  int
	Logger *zap.Logger
}

// Analyze returns up to Limit complete records from dir, sorted by total
// profit descending, then file name ascending. Files missing any metric or
// that cannot be read are logged and skipped. An empty or missing directory
// yields no records and no error.
func (a *Analyzer) Analyze(dir string) ([]Record, error) {
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix := a.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	limit := a.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	store := report.NewDiskStore(dir)
	names, err := store.List(prefix)
	if err != nil {
		return nil, err
	}

	records := []Record{}
	for _, name := range names {
		file, err := store.Load(name)
		if err != nil {
			logger.Warn("reading result file", zap.String("file", name), zap.Error(err))
			continue
		}
		rec, missing := Extract(name, file.Content)
		if len(missing) > 0 {
			logger.Warn("result file skipped",
				zap.String("file", name),
				zap.Error(fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))))
			continue
		}
		records = append(records, rec)
	}

	Rank(records)
	if len(records) > limit {
		records = records[:limit]
	}
	logger.Debug("analysis finished",
		zap.Int("files", len(names)),
		zap.Int("records", len(records)))
	return records, nil
}

// Rank sorts records by profit descending, ties by file name ascending.
func Rank(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].ProfitTotal != records[j].ProfitTotal {
			return records[i].ProfitTotal > records[j].ProfitTotal
		}
		return records[i].File < records[j].File
	})
}
