package commands

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/containerlab/containerlab/internal/platform/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build information",
	Long:  "Print the containerlab version, Go version, and build information.",
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Printf("containerlab %s\n", version.Version)
		fmt.Printf("  go:     %s\n", runtime.Version())
		fmt.Printf("  os:     %s/%s\n", runtime.GOOS, runtime.GOARCH)

		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" {
					fmt.Printf("  commit: %s\n", setting.Value)
				}
				if setting.Key == "vcs.time" {
					fmt.Printf("  built:  %s\n", setting.Value)
				}
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
