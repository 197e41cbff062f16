// Package dockerapi provides typed request/reply wrappers over the Docker
// Engine HTTP API: pull image, create/start/stop container, inspect,
// exec create/start/inspect, fetch logs, inspect the bridge network, and
// write a single file into a running container. It performs no retries
// and holds no session state — callers (internal/session, internal/wait)
// own all policy.
package dockerapi

import (
	"archive/tar"
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/docker/go-connections/nat"
	v1 "github.com/opencontainers/image-spec/specs-go/v1"
)

// PortSpec is one exposed-port entry, before or after start. HostPort is
// zero for an ephemeral mapping request and non-zero once the daemon
// assigns (or the caller fixes) a host port.
type PortSpec struct {
	ContainerPort int
	HostPort      int
}

// MountSpec is a named-volume mount request.
type MountSpec struct {
	VolumeName    string
	ContainerDest string
	ReadOnly      bool
}

// CreateSpec is the normalized container-creation request this facade
// translates into the Engine's ContainerCreateRequest shape.
type CreateSpec struct {
	Image        string
	Cmd          []string
	ExposedPorts []PortSpec
	// Env holds "KEY=VALUE" entries in caller insertion order, so
	// serialization is stable under reordering of a source map.
	Env        []string
	Labels     map[string]string
	Binds      []string // "host_src:container_dest:mode"
	Mounts     []MountSpec
	AutoRemove bool
	Privileged bool
}

// InspectResult is the normalized view of a container's runtime state.
type InspectResult struct {
	ContainerID string
	Image       string
	Running     bool
	Ports       []PortSpec
	Env         map[string]string
	Labels      map[string]string
}

// Client is the narrow Docker Engine surface the session manager and wait
// strategies depend on. Satisfied by *RealClient against a live daemon and
// by *FakeClient in tests.
type Client interface {
	Ping(ctx context.Context) error
	PullImage(ctx context.Context, imageRef string) error
	CreateContainer(ctx context.Context, spec CreateSpec) (string, error)
	StartContainer(ctx context.Context, id string) error
	StopContainer(ctx context.Context, id string) error
	InspectContainer(ctx context.Context, id string) (*InspectResult, error)
	CreateExec(ctx context.Context, id string, cmd []string) (string, error)
	StartExec(ctx context.Context, execID string) error
	InspectExec(ctx context.Context, execID string) (running bool, exitCode int, err error)
	ContainerLogs(ctx context.Context, id string) (stdout, stderr []byte, err error)
	BridgeGateway(ctx context.Context) (string, error)
	PutFile(ctx context.Context, id, path string, content []byte) error
}

// RealClient implements Client against a live Docker daemon via the
// official SDK.
type RealClient struct {
	cli client.APIClient
}

// NewRealClient wraps an already-constructed SDK client. Use this
// constructor to inject a client built with non-default options.
func NewRealClient(cli client.APIClient) *RealClient {
	return &RealClient{cli: cli}
}

// NewRealClientFromEnv builds a RealClient using DOCKER_HOST (or the
// platform default unix socket) and negotiates the API version against
// the daemon.
func NewRealClientFromEnv() (*RealClient, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, &ConnectionError{Detail: err.Error()}
	}
	return NewRealClient(cli), nil
}

// Ping checks daemon reachability; used by session.CheckDocker before any
// lifecycle operation runs.
func (c *RealClient) Ping(ctx context.Context) error {
	_, err := c.cli.Ping(ctx)
	return err
}

func (c *RealClient) PullImage(ctx context.Context, imageRef string) error {
	reader, err := c.cli.ImagePull(ctx, imageRef, image.PullOptions{})
	if err != nil {
		return &FailedToError{Op: "pull_image", Cause: err}
	}
	defer reader.Close()
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return &FailedToError{Op: "pull_image", Cause: err}
	}
	return nil
}

func (c *RealClient) CreateContainer(ctx context.Context, spec CreateSpec) (string, error) {
	exposedPorts := nat.PortSet{}
	portBindings := nat.PortMap{}
	for _, p := range spec.ExposedPorts {
		port, err := nat.NewPort("tcp", strconv.Itoa(p.ContainerPort))
		if err != nil {
			return "", &FailedToError{Op: "create_container", Cause: err}
		}
		exposedPorts[port] = struct{}{}
		hostPort := ""
		if p.HostPort != 0 {
			hostPort = strconv.Itoa(p.HostPort)
		}
		portBindings[port] = []nat.PortBinding{
			{HostIP: "0.0.0.0", HostPort: hostPort},
		}
	}

	mounts := make([]mount.Mount, 0, len(spec.Mounts))
	for _, m := range spec.Mounts {
		mounts = append(mounts, mount.Mount{
			Type:     mount.TypeVolume,
			Source:   m.VolumeName,
			Target:   m.ContainerDest,
			ReadOnly: m.ReadOnly,
		})
	}

	cfg := &container.Config{
		Image:        spec.Image,
		Cmd:          spec.Cmd,
		Env:          spec.Env,
		Labels:       spec.Labels,
		ExposedPorts: exposedPorts,
	}
	hostCfg := &container.HostConfig{
		PortBindings: portBindings,
		Binds:        spec.Binds,
		Mounts:       mounts,
		AutoRemove:   spec.AutoRemove,
		Privileged:   spec.Privileged,
	}

	resp, err := c.cli.ContainerCreate(ctx, cfg, hostCfg, (*network.NetworkingConfig)(nil), (*v1.Platform)(nil), "")
	if err != nil {
		return "", &FailedToError{Op: "create_container", Cause: err}
	}
	return resp.ID, nil
}

func (c *RealClient) StartContainer(ctx context.Context, id string) error {
	if err := c.cli.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		return &FailedToError{Op: "start_container", Cause: err}
	}
	return nil
}

// StopContainer kills then deletes the container, in that order, as two
// sequential Engine calls. Never collapse this into a single remove call:
// force-remove on a still-running daemon-managed service container can
// leave the daemon's network cleanup racing the removal.
func (c *RealClient) StopContainer(ctx context.Context, id string) error {
	killErr := c.cli.ContainerKill(ctx, id, "KILL")
	rmErr := c.cli.ContainerRemove(ctx, id, container.RemoveOptions{Force: true})
	if killErr != nil && !isNotFound(killErr) {
		return &FailedToError{Op: "stop_container", Cause: killErr}
	}
	if rmErr != nil && !isNotFound(rmErr) {
		return &FailedToError{Op: "stop_container", Cause: rmErr}
	}
	return nil
}

func (c *RealClient) InspectContainer(ctx context.Context, id string) (*InspectResult, error) {
	raw, err := c.cli.ContainerInspect(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, &HTTPError{Status: 404}
		}
		return nil, &FailedToError{Op: "get_container", Cause: err}
	}

	ports := make([]PortSpec, 0)
	if raw.NetworkSettings != nil {
		for port, bindings := range raw.NetworkSettings.Ports {
			if port.Proto() != "tcp" || len(bindings) == 0 {
				continue
			}
			hostPort, _ := strconv.Atoi(bindings[0].HostPort)
			ports = append(ports, PortSpec{ContainerPort: port.Int(), HostPort: hostPort})
		}
	}

	env := make(map[string]string)
	if raw.Config != nil {
		for _, kv := range raw.Config.Env {
			k, v, ok := strings.Cut(kv, "=")
			if ok {
				env[k] = v
			}
		}
	}

	labels := map[string]string{}
	if raw.Config != nil {
		labels = raw.Config.Labels
	}

	running := raw.State != nil && raw.State.Running

	return &InspectResult{
		ContainerID: raw.ID,
		Image:       raw.Config.Image,
		Running:     running,
		Ports:       ports,
		Env:         env,
		Labels:      labels,
	}, nil
}

func (c *RealClient) CreateExec(ctx context.Context, id string, cmd []string) (string, error) {
	resp, err := c.cli.ContainerExecCreate(ctx, id, container.ExecOptions{
		Cmd:          cmd,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return "", &FailedToError{Op: "create_exec", Cause: err}
	}
	return resp.ID, nil
}

func (c *RealClient) StartExec(ctx context.Context, execID string) error {
	resp, err := c.cli.ContainerExecAttach(ctx, execID, container.ExecAttachOptions{})
	if err != nil {
		return &FailedToError{Op: "start_exec", Cause: err}
	}
	defer resp.Close()
	// Drain so the exec actually runs to completion server-side before the
	// caller polls InspectExec; attach without a reader can otherwise
	// leave the process blocked on a full output pipe.
	var discard bytes.Buffer
	_, _ = stdcopy.StdCopy(&discard, &discard, resp.Reader)
	return nil
}

func (c *RealClient) InspectExec(ctx context.Context, execID string) (bool, int, error) {
	info, err := c.cli.ContainerExecInspect(ctx, execID)
	if err != nil {
		return false, 0, &FailedToError{Op: "inspect_exec", Cause: err}
	}
	return info.Running, info.ExitCode, nil
}

func (c *RealClient) ContainerLogs(ctx context.Context, id string) ([]byte, []byte, error) {
	reader, err := c.cli.ContainerLogs(ctx, id, container.LogsOptions{ShowStdout: true, ShowStderr: true})
	if err != nil {
		return nil, nil, &FailedToError{Op: "stdout_logs", Cause: err}
	}
	defer reader.Close()

	var stdout, stderr bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, &stderr, reader); err != nil {
		return nil, nil, &FailedToError{Op: "stdout_logs", Cause: err}
	}
	return stdout.Bytes(), stderr.Bytes(), nil
}

func (c *RealClient) BridgeGateway(ctx context.Context) (string, error) {
	net, err := c.cli.NetworkInspect(ctx, "bridge", network.InspectOptions{})
	if err != nil {
		return "", &NoGatewayError{Cause: err}
	}
	for _, cfg := range net.IPAM.Config {
		if cfg.Gateway != "" {
			return cfg.Gateway, nil
		}
	}
	return "", &NoGatewayError{}
}

func (c *RealClient) PutFile(ctx context.Context, id, path string, content []byte) error {
	rel := strings.TrimPrefix(path, "/")
	dest, name := "/", rel
	if idx := strings.LastIndex(rel, "/"); idx >= 0 {
		dest, name = "/"+rel[:idx], rel[idx+1:]
	}

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	hdr := &tar.Header{
		Name: name,
		Mode: 0o644,
		Size: int64(len(content)),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return &FailedToError{Op: "put_files", Cause: err}
	}
	if _, err := tw.Write(content); err != nil {
		return &FailedToError{Op: "put_files", Cause: err}
	}
	if err := tw.Close(); err != nil {
		return &FailedToError{Op: "put_files", Cause: err}
	}

	opts := container.CopyToContainerOptions{}
	if err := c.cli.CopyToContainer(ctx, id, dest, &buf, opts); err != nil {
		return &FailedToError{Op: "put_files", Cause: err}
	}
	return nil
}

func isNotFound(err error) bool {
	return client.IsErrNotFound(err)
}
