package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the resolved configuration without starting capture",
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(configFile)
		if err != nil {
			exitError("%v", err)
		}
		fmt.Printf("toggle key:      %s\n", loaded.ToggleKey)
		fmt.Printf("echo suppressed: %v\n", loaded.EchoSuppressed)
		fmt.Printf("tray enabled:    %v\n", loaded.Tray.Enabled)
		fmt.Printf("log level:       %s\n", loaded.Logging.Level)
		return nil
	},
}
