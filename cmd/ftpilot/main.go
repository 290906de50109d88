// Command ftpilot is an operator front-end for the freqtrade trading bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deixis/ftpilot/internal/config"
	"github.com/deixis/ftpilot/internal/logger"
)

var (
	cfg     *config.Config
	session config.Session
	zlog    *logger.Logger

	flagWorkspace string // value of --workspace
	flagVerbose   bool   // value of --verbose
	flagLogFormat string // value of --log-format
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&flagWorkspace, "workspace", "w", "", "project directory, default is the current directory")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: json or console")

	// errors are printed below
	rootCmd.SilenceErrors = true
	rootCmd.PersistentPreRunE = initFtpilot
	rootCmd.PersistentPostRun = func(*cobra.Command, []string) {
		if zlog != nil {
			_ = zlog.Sync()
		}
	}

	rootCmd.AddCommand(menuCmd, runCmd, analyzeCmd, showCmd, mcpCmd, doctorCmd, versionCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ftpilot: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ftpilot",
	Short: "Build, run and archive freqtrade commands",
	Long: `ftpilot builds freqtrade command lines from a menu or flags, runs them alone or as a
parallel batch, archives every output under the results directory and ranks backtests.

Without a subcommand it starts the interactive menu.`,
	SilenceUsage: true,
	RunE:         doMenu,
}

// initFtpilot loads the configuration and sets up logging.
func initFtpilot(cmd *cobra.Command, _ []string) error {
	workspace := flagWorkspace
	if workspace == "" {
		var err error
		if workspace, err = os.Getwd(); err != nil {
			return fmt.Errorf("determining workspace: %w", err)
		}
	}

	loaded, err := config.Load(workspace)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded.Config
	session = cfg.Session(loaded.Root)

	format := cfg.Log.Format
	if flagLogFormat != "" {
		format = flagLogFormat
	}
	zlog, err = logger.New(logger.Options{Format: format, Level: cfg.Log.Level, Verbose: flagVerbose})
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	zlog.Debug("configuration loaded",
		zap.String("root", loaded.Root),
		zap.String("program", session.Program),
		zap.String("results", session.ResultsDir))
	return nil
}
