// Package ftpilot drives the freqtrade runner: it builds workflow command lines,
// executes them with bounded parallelism and ranks archived backtest results.
package ftpilot

// Version is the ftpilot release version.
const Version = "0.3.0"
