package wait

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/containerlab/containerlab/internal/containerspec"
	"github.com/containerlab/containerlab/internal/dockerapi"
)

// HTTPStrategy probes readiness with a GET request, succeeding when the
// response status matches ExpectedStatus (default 200).
type HTTPStrategy struct {
	ContainerPort  int
	Path           string
	ExpectedStatus int
	Timeout        time.Duration
	Interval       time.Duration
}

// NewHTTPStrategy builds an HTTPStrategy with ExpectedStatus defaulted to
// 200 if unset by the caller.
func NewHTTPStrategy(containerPort int, path string, timeout time.Duration) *HTTPStrategy {
	return &HTTPStrategy{
		ContainerPort:  containerPort,
		Path:           path,
		ExpectedStatus: http.StatusOK,
		Timeout:        timeout,
		Interval:       DefaultInterval,
	}
}

func (s *HTTPStrategy) Name() string {
	return "http"
}

func (s *HTTPStrategy) WaitUntilReady(ctx context.Context, _ dockerapi.Client, handle *containerspec.ContainerHandle) error {
	hostPort := handle.MappedPort(s.ContainerPort)
	if hostPort == 0 {
		return &StrategyFailedError{Strategy: s.Name(), Detail: "no mapped host port for container port " + strconv.Itoa(s.ContainerPort)}
	}

	path := strings.TrimPrefix(s.Path, "/")
	url := "http://localhost:" + strconv.Itoa(hostPort) + "/" + path
	expected := s.ExpectedStatus
	if expected == 0 {
		expected = http.StatusOK
	}

	httpClient := &http.Client{Timeout: 2 * time.Second}

	return poll(ctx, s.Name(), s.Timeout, s.Interval, func(ctx context.Context) (bool, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return false, &StrategyFailedError{Strategy: s.Name(), Detail: err.Error()}
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			return false, nil //nolint:nilerr // service not yet listening is expected
		}
		defer resp.Body.Close()
		return resp.StatusCode == expected, nil
	})
}
