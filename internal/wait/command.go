package wait

import (
	"context"
	"time"

	"github.com/containerlab/containerlab/internal/containerspec"
	"github.com/containerlab/containerlab/internal/dockerapi"
)

// CommandStrategy probes readiness by executing a command inside the
// container and waiting for it to exit zero. Grounded on
// pool.Executor.Run's create-exec/attach/poll-exit-code loop, generalized
// into a bounded-wall-clock retry instead of a single attempt.
type CommandStrategy struct {
	Cmd      []string
	Timeout  time.Duration
	Interval time.Duration
}

// NewCommandStrategy builds a CommandStrategy with the given command and
// timeout, defaulting the inter-probe interval to DefaultInterval.
func NewCommandStrategy(cmd []string, timeout time.Duration) *CommandStrategy {
	return &CommandStrategy{Cmd: cmd, Timeout: timeout, Interval: DefaultInterval}
}

func (s *CommandStrategy) Name() string {
	return "command"
}

func (s *CommandStrategy) WaitUntilReady(ctx context.Context, client dockerapi.Client, handle *containerspec.ContainerHandle) error {
	return poll(ctx, s.Name(), s.Timeout, s.Interval, func(ctx context.Context) (bool, error) {
		execID, err := client.CreateExec(ctx, handle.ContainerID, s.Cmd)
		if err != nil {
			return false, nil //nolint:nilerr // transient; retried within the overall timeout
		}
		if err := client.StartExec(ctx, execID); err != nil {
			return false, nil //nolint:nilerr
		}

		for {
			running, exitCode, err := client.InspectExec(ctx, execID)
			if err != nil {
				return false, nil //nolint:nilerr
			}
			if running {
				select {
				case <-ctx.Done():
					return false, ctx.Err()
				case <-time.After(50 * time.Millisecond):
					continue
				}
			}
			return exitCode == 0, nil
		}
	})
}
