package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "iohookdemo",
	Short: "Demonstrates the iohook capture and synthesis library",
	Long: `iohookdemo installs a keyboard/mouse hook, logs every event, and lets a
configurable hotkey toggle an "echo suppressed" mode where keystrokes are
swallowed instead of forwarded to the rest of the system.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to iohookdemo.yaml (default: ./iohookdemo.yaml or ~/.config/iohookdemo/iohookdemo.yaml)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
}

func exitError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
