package commands

import (
	"fmt"

	"github.com/containerlab/containerlab/internal/dockerapi"
	"github.com/containerlab/containerlab/internal/platform/logger"
	"github.com/containerlab/containerlab/internal/session"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that a Docker daemon is reachable",
	Long:  "Ping the Docker daemon resolved from DOCKER_HOST and report whether it is usable.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)

		client, err := dockerapi.NewRealClientFromEnv()
		if err != nil {
			return fmt.Errorf("resolve docker client: %w", err)
		}

		if err := session.CheckDocker(ctx, client); err != nil {
			log.Error("docker unreachable", "error", err)
			return err
		}

		log.Info("docker is reachable")
		fmt.Println("ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
