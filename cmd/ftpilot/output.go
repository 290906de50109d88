package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/deixis/ftpilot/internal/batch"
	"github.com/deixis/ftpilot/internal/command"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	cmdColor  = color.New(color.FgYellow)
	infoColor = color.New(color.FgBlue, color.Bold)
)

func printCommands(w io.Writer, specs []command.Spec) {
	for _, spec := range specs {
		fmt.Fprintf(w, "%s %s\n", infoColor.Sprint("Command:"), cmdColor.Sprint(spec.String()))
	}
}

// printOutcome reports one finished task.
func printOutcome(w io.Writer, o batch.Outcome) {
	switch {
	case o.Abandoned:
		warnColor.Fprint(w, "abandoned ")
	case o.Result.TimedOut:
		warnColor.Fprint(w, "timeout   ")
	case o.Result.Succeeded:
		okColor.Fprint(w, "completed ")
	default:
		failColor.Fprint(w, "failed    ")
	}
	fmt.Fprintln(w, o.Spec.String())
	if o.Persisted() {
		fmt.Fprintf(w, "          %s %s\n", okColor.Sprint("Result saved to file:"), filepath.Base(o.File))
	}
	if o.Err != nil {
		fmt.Fprintf(w, "          %s\n", failColor.Sprint(o.Err))
	}
}

func printSummary(w io.Writer, sum batch.Summary) {
	c := sum.Counts()
	clr := okColor
	if c.Succeeded != c.Total {
		clr = warnColor
	}
	fmt.Fprintf(w, "\n%s %s\n", clr.Sprint(sum.Workflow+":"), c)
}
