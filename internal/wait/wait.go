// Package wait implements the four readiness probes a builder attaches to
// a container descriptor: command, log-regex, TCP port, and HTTP. Every
// variant shares the WaitUntilReady(ctx, client, handle) contract and
// polls within a bounded wall-clock timeout rather than a retry count,
// since a slow probe and a slow container are indistinguishable from the
// caller's side.
package wait

import (
	"context"
	"fmt"
	"time"

	"github.com/containerlab/containerlab/internal/containerspec"
	"github.com/containerlab/containerlab/internal/dockerapi"
)

// DefaultInterval is the inter-probe interval used when a strategy does
// not specify one.
const DefaultInterval = time.Second

// TimeoutError is returned when a strategy's wall-clock budget elapses
// without success.
type TimeoutError struct {
	Strategy string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("wait_timeout: %s", e.Strategy)
}

// StrategyFailedError is returned when a strategy observes a definitive
// failure before its timeout (e.g. malformed response) rather than merely
// not-yet-ready.
type StrategyFailedError struct {
	Strategy string
	Detail   string
}

func (e *StrategyFailedError) Error() string {
	return fmt.Sprintf("wait_failed: %s: %s", e.Strategy, e.Detail)
}

// Strategy is the full readiness-probe contract. Every concrete type here
// also satisfies containerspec.WaitStrategy (Name() string) so it can be
// stored directly in a ContainerDescriptor.WaitStrategies slice.
type Strategy interface {
	Name() string
	WaitUntilReady(ctx context.Context, client dockerapi.Client, handle *containerspec.ContainerHandle) error
}

// Pipeline runs strategies in declared order, short-circuiting on the
// first failure so a broken dependency doesn't waste time waiting on
// probes that can never succeed.
func Pipeline(ctx context.Context, client dockerapi.Client, handle *containerspec.ContainerHandle, strategies []Strategy) error {
	for _, s := range strategies {
		if err := s.WaitUntilReady(ctx, client, handle); err != nil {
			return err
		}
	}
	return nil
}

// poll repeatedly invokes probe until it returns (true, nil) or the
// deadline elapses, sleeping interval between attempts. probe returning a
// non-nil error with ready=false is treated as "not yet ready, retry";
// returning a non-nil error is only terminal when probe signals so by
// returning a *StrategyFailedError.
func poll(ctx context.Context, name string, timeout, interval time.Duration, probe func(ctx context.Context) (ready bool, err error)) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	deadline := time.Now().Add(timeout)
	for {
		ready, err := probe(ctx)
		if err != nil {
			var sf *StrategyFailedError
			if ok := asStrategyFailed(err, &sf); ok {
				return sf
			}
		}
		if ready {
			return nil
		}
		if time.Now().After(deadline) {
			return &TimeoutError{Strategy: name}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

func asStrategyFailed(err error, target **StrategyFailedError) bool {
	sf, ok := err.(*StrategyFailedError)
	if ok {
		*target = sf
	}
	return ok
}
