package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deixis/ftpilot/internal/config"
	"github.com/deixis/ftpilot/internal/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Choose a workflow and its parameters interactively",
	Args:  cobra.NoArgs,
	RunE:  doMenu,
}

func doMenu(cmd *cobra.Command, _ []string) error {
	if err := session.Require(config.Configs); err != nil {
		return err
	}
	sel, err := tui.Collect(tui.Terminal{}, cfg, session)
	if errors.Is(err, tui.ErrCancelled) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	e := newEngine(session.WithConfigFile(sel.ConfigFile))
	specs, err := e.Plan(sel.Workflow, sel.Params)
	if err != nil {
		return err
	}
	return execute(cmd.Context(), e, sel.Workflow, specs)
}
