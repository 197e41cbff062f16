package wait

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/containerlab/containerlab/internal/containerspec"
	"github.com/containerlab/containerlab/internal/dockerapi"
	"golang.org/x/sync/errgroup"
)

// PortStrategy probes readiness by attempting a raw TCP connect to the
// container's mapped host port. There is no ecosystem TCP-dial-retry
// library in the retrieval pack or the Docker SDK itself, so this probe
// is plain net.Dial wrapped in poll's bounded retry (see DESIGN.md's
// internal/wait entry for the stdlib justification).
type PortStrategy struct {
	ContainerPort int
	Timeout       time.Duration
	Interval      time.Duration
}

// NewPortStrategy builds a PortStrategy for the given container port.
func NewPortStrategy(containerPort int, timeout time.Duration) *PortStrategy {
	return &PortStrategy{ContainerPort: containerPort, Timeout: timeout, Interval: DefaultInterval}
}

func (s *PortStrategy) Name() string {
	return "port"
}

func (s *PortStrategy) WaitUntilReady(ctx context.Context, _ dockerapi.Client, handle *containerspec.ContainerHandle) error {
	hostPort := handle.MappedPort(s.ContainerPort)
	if hostPort == 0 {
		return &StrategyFailedError{Strategy: s.Name(), Detail: "no mapped host port for container port " + strconv.Itoa(s.ContainerPort)}
	}
	addr := net.JoinHostPort("localhost", strconv.Itoa(hostPort))

	return poll(ctx, s.Name(), s.Timeout, s.Interval, func(ctx context.Context) (bool, error) {
		dialer := net.Dialer{Timeout: 2 * time.Second}
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return false, nil //nolint:nilerr // connection refused while the service starts is expected
		}
		_ = conn.Close()
		return true, nil
	})
}

// WaitAll runs multiple PortStrategy probes concurrently, for a container
// whose readiness depends on more than one independently ready port. No
// builder in internal/modules calls it. Grounded on SPEC_FULL §3's
// errgroup wiring.
func WaitAll(ctx context.Context, client dockerapi.Client, handle *containerspec.ContainerHandle, strategies []*PortStrategy) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range strategies {
		s := s
		g.Go(func() error {
			return s.WaitUntilReady(ctx, client, handle)
		})
	}
	return g.Wait()
}
