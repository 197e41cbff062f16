package commands

import (
	"fmt"
	"time"

	"github.com/containerlab/containerlab/internal/containerspec"
	"github.com/containerlab/containerlab/internal/dockerapi"
	"github.com/containerlab/containerlab/internal/modules"
	"github.com/containerlab/containerlab/internal/platform/logger"
	"github.com/containerlab/containerlab/internal/presets"
	"github.com/containerlab/containerlab/internal/report"
	"github.com/containerlab/containerlab/internal/session"
	"github.com/spf13/cobra"
)

// moduleBuilders maps the names accepted by `containerlab run <name>` to a
// Builder constructed with that module's defaults.
var moduleBuilders = map[string]func(timeout time.Duration) containerspec.Builder{
	"postgres": func(t time.Duration) containerspec.Builder {
		return modules.NewPostgresContainer(modules.PostgresConfig{WaitTimeout: t})
	},
	"mysql": func(t time.Duration) containerspec.Builder {
		return modules.NewMySqlContainer(modules.MySqlConfig{WaitTimeout: t})
	},
	"redis": func(t time.Duration) containerspec.Builder {
		return modules.NewRedisContainer(modules.RedisConfig{WaitTimeout: t})
	},
	"kafka": func(t time.Duration) containerspec.Builder {
		return modules.NewKafkaContainer(modules.KafkaConfig{WaitTimeout: t})
	},
}

var flagPresetFile string

var runCmd = &cobra.Command{
	Use:   "run <module>",
	Short: "Start a module's container, wait for readiness, then stop it",
	Long: `Run one of the built-in modules (postgres, mysql, redis, kafka) end to end:
start a session, start the container, run its wait strategies, print the
mapped ports, then stop the container and close the session.

With --file, <module> instead names a module entry inside a YAML preset
file (see internal/presets), and its image/wait strategy are taken from
that file rather than from the built-in defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		timeout := time.Duration(flagTimeout) * time.Second

		var builder containerspec.Builder
		if flagPresetFile != "" {
			b, err := builderFromPresetFile(flagPresetFile, name)
			if err != nil {
				return err
			}
			builder = b
		} else {
			newBuilder, ok := moduleBuilders[name]
			if !ok {
				return fmt.Errorf("unknown module %q (want one of: postgres, mysql, redis, kafka)", name)
			}
			builder = newBuilder(timeout)
		}

		return runOnce(cmd, name, builder)
	},
}

func builderFromPresetFile(path, name string) (containerspec.Builder, error) {
	f, err := presets.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load preset file: %w", err)
	}
	for _, m := range f.Modules {
		if m.Name == name {
			return m.Builder()
		}
	}
	return nil, fmt.Errorf("no module named %q in %s", name, path)
}

func runOnce(cmd *cobra.Command, name string, builder containerspec.Builder) error {
	ctx := cmd.Context()
	log := logger.FromContext(ctx)
	formatter := outputFormatter()
	start := time.Now()

	client, err := dockerapi.NewRealClientFromEnv()
	if err != nil {
		return fmt.Errorf("resolve docker client: %w", err)
	}

	mgr := session.NewManager(client)
	if err := mgr.Init(ctx); err != nil {
		return fmt.Errorf("init session: %w", err)
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			log.Error("close session", "error", err)
		}
	}()

	handle, err := mgr.StartContainer(ctx, builder)
	if err != nil {
		fmt.Println(formatter.Format(report.Result{
			Module:     name,
			Error:      err.Error(),
			DurationMs: time.Since(start).Milliseconds(),
		}))
		return fmt.Errorf("start %s: %w", name, err)
	}

	stopErr := mgr.StopContainer(ctx, handle.ContainerID)

	ports := make([]report.PortBinding, 0, len(handle.ExposedPorts))
	for _, p := range handle.ExposedPorts {
		ports = append(ports, report.PortBinding{ContainerPort: p.ContainerPort, HostPort: p.HostPort})
	}
	res := report.Result{
		Module:      name,
		Image:       handle.Image,
		ContainerID: handle.ContainerID,
		Ready:       true,
		Stopped:     stopErr == nil,
		DurationMs:  time.Since(start).Milliseconds(),
		Ports:       ports,
	}
	if stopErr != nil {
		res.Error = stopErr.Error()
	}
	fmt.Println(formatter.Format(res))
	if stopErr != nil {
		return fmt.Errorf("stop %s: %w", name, stopErr)
	}
	return nil
}

func outputFormatter() report.Formatter {
	if flagJSON {
		return report.NewJSONFormatter()
	}
	return report.NewCLIFormatter(true)
}

func init() {
	runCmd.Flags().StringVar(&flagPresetFile, "file", "", "Load the module from a YAML preset file instead of the built-in defaults")
	rootCmd.AddCommand(runCmd)
}
