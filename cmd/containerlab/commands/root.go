// Package commands implements the CLI commands for containerlab.
package commands

import (
	"github.com/containerlab/containerlab/internal/platform/logger"
	"github.com/spf13/cobra"
)

// Global flag values accessible to all commands.
var (
	flagJSON    bool
	flagVerbose bool
	flagTimeout int
)

// rootCmd is the base command for the containerlab CLI.
var rootCmd = &cobra.Command{
	Use:   "containerlab",
	Short: "Standalone smoke-test harness for the containerlab engine",
	Long: `containerlab drives the session manager and its module builders from the
command line, outside of a test binary. It starts a session, runs a named
module's container lifecycle to readiness, and tears it down — useful for
verifying a Docker daemon and module config before wiring them into tests.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		l := logger.New(logger.Options{Verbose: flagVerbose, JSON: flagJSON})
		ctx := logger.WithContext(cmd.Context(), l)
		cmd.SetContext(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output structured logs as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug-level logging")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 120, "Seconds to wait for the container to become ready")
}

// Execute runs the root command. Returns an error if the command fails.
func Execute() error {
	return rootCmd.Execute()
}
