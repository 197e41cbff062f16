package dockerapi

import (
	"context"
	"sync"
)

// FakeClient is a test double for Client: one field per call's canned
// response/error, plus a call log for assertions that care about
// ordering (stop_container must kill before it deletes).
type FakeClient struct {
	mu sync.Mutex

	PingErr error

	PullImageErr error

	CreateContainerID  string
	CreateContainerErr error

	StartContainerErr error

	KillContainerErr   error
	RemoveContainerErr error

	InspectContainerResult *InspectResult
	InspectContainerErr    error

	CreateExecID  string
	CreateExecErr error

	StartExecErr error

	InspectExecRunning  bool
	InspectExecExitCode int
	InspectExecErr      error

	ContainerLogsStdout []byte
	ContainerLogsStderr []byte
	ContainerLogsErr    error

	BridgeGatewayIP  string
	BridgeGatewayErr error

	PutFileErr error

	Calls []string
}

func (f *FakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, name)
}

func (f *FakeClient) Ping(_ context.Context) error {
	f.record("ping")
	return f.PingErr
}

func (f *FakeClient) PullImage(_ context.Context, _ string) error {
	f.record("pull_image")
	return f.PullImageErr
}

func (f *FakeClient) CreateContainer(_ context.Context, _ CreateSpec) (string, error) {
	f.record("create_container")
	if f.CreateContainerErr != nil {
		return "", f.CreateContainerErr
	}
	return f.CreateContainerID, nil
}

func (f *FakeClient) StartContainer(_ context.Context, _ string) error {
	f.record("start_container")
	return f.StartContainerErr
}

func (f *FakeClient) StopContainer(_ context.Context, _ string) error {
	f.record("kill_container")
	if f.KillContainerErr != nil {
		return f.KillContainerErr
	}
	f.record("remove_container")
	return f.RemoveContainerErr
}

func (f *FakeClient) InspectContainer(_ context.Context, id string) (*InspectResult, error) {
	f.record("get_container")
	if f.InspectContainerErr != nil {
		return nil, f.InspectContainerErr
	}
	if f.InspectContainerResult != nil {
		return f.InspectContainerResult, nil
	}
	return &InspectResult{ContainerID: id}, nil
}

func (f *FakeClient) CreateExec(_ context.Context, _ string, _ []string) (string, error) {
	f.record("create_exec")
	if f.CreateExecErr != nil {
		return "", f.CreateExecErr
	}
	return f.CreateExecID, nil
}

func (f *FakeClient) StartExec(_ context.Context, _ string) error {
	f.record("start_exec")
	return f.StartExecErr
}

func (f *FakeClient) InspectExec(_ context.Context, _ string) (bool, int, error) {
	f.record("inspect_exec")
	if f.InspectExecErr != nil {
		return false, 0, f.InspectExecErr
	}
	return f.InspectExecRunning, f.InspectExecExitCode, nil
}

func (f *FakeClient) ContainerLogs(_ context.Context, _ string) ([]byte, []byte, error) {
	f.record("stdout_logs")
	if f.ContainerLogsErr != nil {
		return nil, nil, f.ContainerLogsErr
	}
	return f.ContainerLogsStdout, f.ContainerLogsStderr, nil
}

func (f *FakeClient) BridgeGateway(_ context.Context) (string, error) {
	f.record("bridge_gateway")
	if f.BridgeGatewayErr != nil {
		return "", f.BridgeGatewayErr
	}
	return f.BridgeGatewayIP, nil
}

func (f *FakeClient) PutFile(_ context.Context, _, _ string, _ []byte) error {
	f.record("put_files")
	return f.PutFileErr
}
