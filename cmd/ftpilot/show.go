package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/deixis/ftpilot/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <file>...",
	Short: "Print archived result files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store := report.NewLRUStore(len(args), report.NewDiskStore(session.ResultsDir))
		for _, name := range args {
			f, err := store.Load(filepath.Base(name))
			if err != nil {
				return err
			}
			if len(args) > 1 {
				fmt.Println(infoColor.Sprint("==> " + f.Name + " <=="))
			}
			fmt.Println(f.Content)
		}
		return nil
	},
}
