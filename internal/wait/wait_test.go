package wait

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/containerlab/containerlab/internal/containerspec"
	"github.com/containerlab/containerlab/internal/dockerapi"
)

func TestCommandStrategy_SucceedsOnZeroExit(t *testing.T) {
	client := &dockerapi.FakeClient{
		CreateExecID:        "exec-1",
		InspectExecRunning:  false,
		InspectExecExitCode: 0,
	}
	s := NewCommandStrategy([]string{"redis-cli", "PING"}, time.Second)
	handle := &containerspec.ContainerHandle{ContainerID: "c1"}

	if err := s.WaitUntilReady(context.Background(), client, handle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCommandStrategy_TimesOutOnNonZeroExit(t *testing.T) {
	client := &dockerapi.FakeClient{
		CreateExecID:        "exec-1",
		InspectExecRunning:  false,
		InspectExecExitCode: 1,
	}
	s := NewCommandStrategy([]string{"false"}, 50*time.Millisecond)
	s.Interval = 10 * time.Millisecond
	handle := &containerspec.ContainerHandle{ContainerID: "c1"}

	err := s.WaitUntilReady(context.Background(), client, handle)
	if _, ok := err.(*TimeoutError); !ok {
		t.Fatalf("expected *TimeoutError, got %T (%v)", err, err)
	}
}

func TestLogStrategy_MatchesCombinedOutput(t *testing.T) {
	client := &dockerapi.FakeClient{
		ContainerLogsStdout: []byte("booting\n"),
		ContainerLogsStderr: []byte("ready to accept connections\n"),
	}
	s, err := NewLogStrategy("ready to accept", time.Second)
	if err != nil {
		t.Fatalf("unexpected error compiling pattern: %v", err)
	}
	handle := &containerspec.ContainerHandle{ContainerID: "c1"}

	if err := s.WaitUntilReady(context.Background(), client, handle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPortStrategy_FailsFastWithNoMappedPort(t *testing.T) {
	s := NewPortStrategy(6379, time.Second)
	handle := &containerspec.ContainerHandle{ContainerID: "c1"}

	err := s.WaitUntilReady(context.Background(), &dockerapi.FakeClient{}, handle)
	if _, ok := err.(*StrategyFailedError); !ok {
		t.Fatalf("expected *StrategyFailedError, got %T (%v)", err, err)
	}
}

func TestPortStrategy_SucceedsOnOpenPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	s := NewPortStrategy(6379, time.Second)
	handle := &containerspec.ContainerHandle{ExposedPorts: []containerspec.ExposedPort{{ContainerPort: 6379, HostPort: port}}}

	if err := s.WaitUntilReady(context.Background(), &dockerapi.FakeClient{}, handle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHTTPStrategy_SucceedsOnExpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	addr := srv.Listener.Addr().(*net.TCPAddr)
	s := NewHTTPStrategy(8080, "health", time.Second)
	handle := &containerspec.ContainerHandle{ExposedPorts: []containerspec.ExposedPort{{ContainerPort: 8080, HostPort: addr.Port}}}

	if err := s.WaitUntilReady(context.Background(), &dockerapi.FakeClient{}, handle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPipeline_ShortCircuitsOnFirstFailure(t *testing.T) {
	handle := &containerspec.ContainerHandle{ContainerID: "c1"}
	client := &dockerapi.FakeClient{}

	first := NewPortStrategy(6379, time.Second) // no mapped port -> immediate StrategyFailedError
	second := NewPortStrategy(6380, time.Second)

	err := Pipeline(context.Background(), client, handle, []Strategy{first, second})
	if err == nil {
		t.Fatal("expected an error from the first strategy")
	}
	if sf, ok := err.(*StrategyFailedError); !ok || sf.Strategy != "port" || sf.Detail != "no mapped host port for container port 6379" {
		t.Fatalf("expected the failure to come from the first strategy, got %v", err)
	}
}
