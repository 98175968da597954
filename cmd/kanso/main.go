package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var configDir string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kanso",
		Short:         "Kanso LifeSync keeps habits, expenses and focus time in sync with the backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	root.PersistentFlags().StringVar(&configDir, "config", "", "directory holding .env and .kanso.yaml")

	root.AddCommand(
		newServeCmd(),
		newSyncCmd(),
		newDueCmd(),
		newTokenCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}
