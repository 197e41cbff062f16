package wait

import (
	"context"
	"regexp"
	"time"

	"github.com/containerlab/containerlab/internal/containerspec"
	"github.com/containerlab/containerlab/internal/dockerapi"
)

// LogStrategy probes readiness by regex-matching combined stdout+stderr
// container logs, fetched through the facade's demuxed log read so a
// pattern anchored to stderr output still matches.
type LogStrategy struct {
	Pattern  *regexp.Regexp
	Timeout  time.Duration
	Interval time.Duration
}

// NewLogStrategy compiles pattern and builds a LogStrategy.
func NewLogStrategy(pattern string, timeout time.Duration) (*LogStrategy, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &LogStrategy{Pattern: re, Timeout: timeout, Interval: DefaultInterval}, nil
}

func (s *LogStrategy) Name() string {
	return "log"
}

func (s *LogStrategy) WaitUntilReady(ctx context.Context, client dockerapi.Client, handle *containerspec.ContainerHandle) error {
	return poll(ctx, s.Name(), s.Timeout, s.Interval, func(ctx context.Context) (bool, error) {
		stdout, stderr, err := client.ContainerLogs(ctx, handle.ContainerID)
		if err != nil {
			return false, nil //nolint:nilerr // transient; retried within the overall timeout
		}
		combined := append(append([]byte{}, stdout...), stderr...)
		return s.Pattern.Match(combined), nil
	})
}
