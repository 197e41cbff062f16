package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/containerlab/containerlab/internal/dockerapi"
)

// DockerUnreachableError wraps a daemon connectivity failure with a
// user-facing hint, so a caller can print "is the daemon running?"
// instead of a raw socket-dial error.
type DockerUnreachableError struct {
	Hint  string
	Cause error
}

func (e *DockerUnreachableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Hint, e.Cause)
}

func (e *DockerUnreachableError) Unwrap() error {
	return e.Cause
}

// CheckDocker verifies the Docker daemon is reachable before any
// lifecycle operation runs, classifying the failure into an actionable
// hint the way classifyDockerError does for gatekeeper's pool.
func CheckDocker(ctx context.Context, client dockerapi.Client) error {
	err := client.Ping(ctx)
	if err == nil {
		return nil
	}
	return &DockerUnreachableError{Hint: classify(err), Cause: err}
}

func classify(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission denied"):
		return "docker permission denied; add your user to the docker group and re-login"
	case strings.Contains(msg, "connection refused"):
		return "docker daemon is not running"
	case strings.Contains(msg, "no such file or directory"), strings.Contains(msg, "not found"):
		return "docker is required but was not found; check DOCKER_HOST"
	default:
		return "docker is unreachable"
	}
}
