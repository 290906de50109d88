package analyze

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/moznion/go-optional"
)

// TimeLayout is the timestamp format of the "Loading data" line.
const TimeLayout = "2006-01-02 15:04:05"

const (
	sep    = `\s*[|│┃]\s*`
	number = `(-?\d+(?:\.\d+)?)`
	pair   = `([A-Z0-9]+/[A-Z0-9]+(?::[A-Z0-9]+)?)`
	stamp  = `(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})`
)

var (
	periodRe     = regexp.MustCompile(`Loading data from ` + stamp + ` up to ` + stamp)
	profitRe     = regexp.MustCompile(`Total profit %` + sep + number)
	tradesRe     = regexp.MustCompile(`Total/Daily Avg Trades` + sep + `(\d+)\s*/\s*-?[\d.]+`)
	minBalanceRe = regexp.MustCompile(`Min balance` + sep + number)
	maxBalanceRe = regexp.MustCompile(`Max balance` + sep + number)
	bestPairRe   = regexp.MustCompile(`Best Pair` + sep + pair + `\s+` + number)
	worstPairRe  = regexp.MustCompile(`Worst Pair` + sep + pair + `\s+` + number)
	winRateRe    = regexp.MustCompile(`Win%.*?[|│┃]\s*` + number)
)

// Period is the data range a backtest ran over.
type Period struct {
	Start time.Time
	End   time.Time
}

// PairResult is a trading pair with its profit percentage.
type PairResult struct {
	Pair    string
	Percent float64
}

func (p PairResult) String() string {
	return fmt.Sprintf("%s (%s%%)", p.Pair, strconv.FormatFloat(p.Percent, 'f', -1, 64))
}

// ExtractPeriod finds the "Loading data from X up to Y" line.
func ExtractPeriod(text string) optional.Option[Period] {
	m := periodRe.FindStringSubmatch(text)
	if m == nil {
		return optional.None[Period]()
	}
	start, err := time.Parse(TimeLayout, m[1])
	if err != nil {
		return optional.None[Period]()
	}
	end, err := time.Parse(TimeLayout, m[2])
	if err != nil {
		return optional.None[Period]()
	}
	return optional.Some(Period{Start: start, End: end})
}

// ExtractProfit returns the total profit percentage.
func ExtractProfit(text string) optional.Option[float64] {
	return floatAfter(profitRe, text)
}

// ExtractTrades returns the total trade count.
func ExtractTrades(text string) optional.Option[int] {
	m := tradesRe.FindStringSubmatch(text)
	if m == nil {
		return optional.None[int]()
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return optional.None[int]()
	}
	return optional.Some(n)
}

// ExtractMinBalance returns the lowest wallet balance.
func ExtractMinBalance(text string) optional.Option[float64] {
	return floatAfter(minBalanceRe, text)
}

// ExtractMaxBalance returns the highest wallet balance.
func ExtractMaxBalance(text string) optional.Option[float64] {
	return floatAfter(maxBalanceRe, text)
}

// ExtractBestPair returns the most profitable pair.
func ExtractBestPair(text string) optional.Option[PairResult] {
	return pairAfter(bestPairRe, text)
}

// ExtractWorstPair returns the least profitable pair.
func ExtractWorstPair(text string) optional.Option[PairResult] {
	return pairAfter(worstPairRe, text)
}

// ExtractWinRate returns the first value following a "Win%" header on the same line.
func ExtractWinRate(text string) optional.Option[float64] {
	return floatAfter(winRateRe, text)
}

func floatAfter(re *regexp.Regexp, text string) optional.Option[float64] {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return optional.None[float64]()
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return optional.None[float64]()
	}
	return optional.Some(f)
}

func pairAfter(re *regexp.Regexp, text string) optional.Option[PairResult] {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return optional.None[PairResult]()
	}
	pct, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return optional.None[PairResult]()
	}
	return optional.Some(PairResult{Pair: m[1], Percent: pct})
}

// Extract applies every extractor to text. The record is only valid when
// missing is empty; missing lists the absent fields in a fixed order.
func Extract(file, text string) (rec Record, missing []string) {
	rec.File = file

	take := func(field string, ok bool) {
		if !ok {
			missing = append(missing, field)
		}
	}

	period := ExtractPeriod(text)
	take("period", period.IsSome())
	if period.IsSome() {
		p := period.Unwrap()
		rec.PeriodStart, rec.PeriodEnd = p.Start, p.End
	}

	profit := ExtractProfit(text)
	take("profit_total", profit.IsSome())
	rec.ProfitTotal = profit.TakeOr(0)

	win := ExtractWinRate(text)
	take("win_rate", win.IsSome())
	rec.WinRate = win.TakeOr(0)

	trades := ExtractTrades(text)
	take("trades", trades.IsSome())
	rec.Trades = trades.TakeOr(0)

	minBal := ExtractMinBalance(text)
	take("min_balance", minBal.IsSome())
	rec.MinBalance = minBal.TakeOr(0)

	maxBal := ExtractMaxBalance(text)
	take("max_balance", maxBal.IsSome())
	rec.MaxBalance = maxBal.TakeOr(0)

	best := ExtractBestPair(text)
	take("best_pair", best.IsSome())
	rec.BestPair = best.TakeOr(PairResult{})

	worst := ExtractWorstPair(text)
	take("worst_pair", worst.IsSome())
	rec.WorstPair = worst.TakeOr(PairResult{})

	return rec, missing
}
