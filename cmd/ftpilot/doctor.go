package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check directories, the freqtrade installation and its version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		failed := 0
		for _, c := range newEngine(session).Doctor(cmd.Context()) {
			mark := okColor.Sprint("ok  ")
			if !c.OK {
				mark = failColor.Sprint("FAIL")
				failed++
			}
			fmt.Printf("%s %-20s %s\n", mark, c.Name, c.Detail)
		}
		if failed > 0 {
			return errors.New("environment is not ready")
		}
		return nil
	},
}
