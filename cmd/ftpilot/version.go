package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deixis/ftpilot"
	"github.com/deixis/ftpilot/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// version needs no configuration
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(*cobra.Command, []string) {
		fmt.Println(ftpilot.Version)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the .ftpilot configuration",
}

var configSchemaCmd = &cobra.Command{
	Use:               "schema",
	Short:             "Print the JSON schema of the .ftpilot file",
	Args:              cobra.NoArgs,
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(*cobra.Command, []string) error {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved session",
	Args:  cobra.NoArgs,
	Run: func(*cobra.Command, []string) {
		s := session
		fmt.Printf("root:          %s\n", s.Root)
		fmt.Printf("program:       %s\n", s.Program)
		fmt.Printf("strategies:    %s\n", s.StrategiesDir)
		fmt.Printf("config:        %s\n", s.ConfigDir)
		fmt.Printf("results:       %s\n", s.ResultsDir)
		fmt.Printf("timeout:       %s\n", s.Timeout)
		fmt.Printf("task timeout:  %s\n", s.TaskTimeout)
		fmt.Printf("workers:       %d\n", s.Workers)
	},
}

func init() {
	configCmd.AddCommand(configSchemaCmd, configShowCmd)
}
