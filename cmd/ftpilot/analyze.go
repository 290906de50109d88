package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/deixis/ftpilot/internal/analyze"
)

var (
	flagPrefix string
	flagLimit  int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [dir]",
	Short: "Rank archived backtest results by total profit",
	Long: `Scan result files whose name starts with the prefix, extract the backtest
metrics and print the best runs. Files missing a metric are skipped.
The directory defaults to the configured results directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: doAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&flagPrefix, "prefix", "p", "", "result file prefix (default from config)")
	analyzeCmd.Flags().IntVarP(&flagLimit, "limit", "n", 0, "number of results shown (default from config)")
}

func doAnalyze(_ *cobra.Command, args []string) error {
	dir := session.ResultsDir
	if len(args) == 1 {
		dir = args[0]
	}
	a := &analyze.Analyzer{
		Prefix: cfg.AnalyzePrefix(),
		Limit:  cfg.AnalyzeLimit(),
		Logger: zlog.Logger,
	}
	if flagPrefix != "" {
		a.Prefix = flagPrefix
	}
	if flagLimit > 0 {
		a.Limit = flagLimit
	}
	records, err := a.Analyze(dir)
	if err != nil {
		return err
	}
	return analyze.Render(os.Stdout, records)
}
