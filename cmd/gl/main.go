package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gl",
		Short: "Ghostline analyzes exported WhatsApp chat logs",
		Long:  "Ghostline parses a WhatsApp chat export, computes monthly behavioral metrics, and scores each participant's disengagement risk.",
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newSessionsCmd())
	cmd.AddCommand(newGhostCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newDBCmd())
	cmd.AddCommand(newDashboardCmd())
	cmd.AddCommand(newWatchCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gl %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
