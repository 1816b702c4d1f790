// Package cli provides the command-line interface for fivegscan.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/fivegscan/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return execute(NewRootCommand(), os.Args[1:])
}

func execute(rootCmd *cobra.Command, args []string) int {
	commands.ExitCode = 0
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fivegscan",
		Short: "Extract packet, error and latency signals from 5G harness logs",
		Long: `fivegscan reads one log file produced by a 5G test or monitoring harness
and reports:
  - Packet, error and warning line counts
  - Round-trip-time samples from lines like "[12:00:01] ... RTT=42ms"
  - Average, max and min RTT, with spikes (RTT >= 100ms) highlighted

Results can be printed as text, JSON or CSV, exported as a latency chart,
browsed interactively, and posted to webhooks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewPreviewCommand())
	rootCmd.AddCommand(commands.NewViewCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
