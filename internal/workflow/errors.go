package workflow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownWorkflow is returned for a tag or label that names no workflow.
	ErrUnknownWorkflow = errors.New("unknown workflow")
	// ErrNoStrategies is returned when a fan-out finds no strategy files.
	ErrNoStrategies = errors.New("no strategies found")
	// ErrInvalidParam is returned when a parameter value cannot be parsed.
	ErrInvalidParam = errors.New("invalid parameter")
)

// installURL documents how to install the default runner.
const installURL = "https://www.freqtrade.io/en/stable/installation/"

// ErrProgramUnavailable is returned when the trading runner is not installed.
// It includes install instructions when the program is the default one.
type ErrProgramUnavailable struct {
	Name string
}

func (e ErrProgramUnavailable) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is required but not installed.", e.Name)
	if e.Name == "freqtrade" {
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "\nInstall: %s", installURL)
		fmt.Fprintf(&b, "\nOr point %s at an existing binary.", "FTPILOT_PROGRAM")
	}
	return b.String()
}
