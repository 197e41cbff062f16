// Package session implements the process-wide singleton that owns the
// Docker API connection, issues the session identifier, starts the
// reaper sidecar, and runs the container lifecycle (build → pull →
// create → start → wait → inspect).
package session

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/containerlab/containerlab/internal/containerspec"
	"github.com/containerlab/containerlab/internal/dockerapi"
	"github.com/containerlab/containerlab/internal/platform/logger"
	"github.com/containerlab/containerlab/internal/reaper"
	"github.com/containerlab/containerlab/internal/wait"
	"github.com/google/uuid"
)

// CallerTimeout bounds how long a public Manager method blocks waiting
// for its worker task before giving up and returning a context-deadline
// error, even if the underlying Docker call never returns.
const CallerTimeout = 300 * time.Second

// ReaperImage is the companion container image the session manager
// starts during Init.
const ReaperImage = "testcontainers/ryuk:0.5.1"

const reaperPort = 8080

// Manager is the process-wide singleton session context. Once Init
// completes, sessionID, the reaper connection, and the session labels are
// immutable for the manager's lifetime — they are read concurrently by
// worker tasks without additional locking. mu guards only the one-time
// Init sequence and Close against concurrent callers.
type Manager struct {
	mu sync.Mutex

	client       dockerapi.Client
	sessionID    string
	sessionNonce string

	reaperConn        *reaper.Client
	reaperContainerID string

	initialized bool
}

// NewManager constructs a Manager bound to client without performing
// Init. Call Init before any lifecycle operation.
func NewManager(client dockerapi.Client) *Manager {
	return &Manager{client: client}
}

// Init is idempotent per process: it resolves the session id, starts the
// reaper container, and completes the reaper handshake. Only after this
// returns nil is the manager ready to start user containers.
func (m *Manager) Init(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	log := logger.FromContext(ctx)

	if err := CheckDocker(ctx, m.client); err != nil {
		return err
	}

	m.sessionID = computeSessionID()
	m.sessionNonce = uuid.NewString()
	log.Info("session initializing", "session_id", m.sessionID)

	reaperID, hostPort, err := m.startReaperContainer(ctx)
	if err != nil {
		return err
	}
	m.reaperContainerID = reaperID

	conn, err := reaper.Dial(ctx, "localhost:"+strconv.Itoa(hostPort))
	if err != nil {
		return err
	}

	if err := conn.Register(m.reaperFilter()); err != nil {
		_ = conn.Close()
		return err
	}
	m.reaperConn = conn
	m.initialized = true

	log.Info("session ready", "session_id", m.sessionID, "reaper_container_id", reaperID)
	return nil
}

// SessionID returns the session's identifier, a 40-hex-character SHA-1
// digest.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// Close releases the reaper connection. Its lifetime is the session's
// lifetime: closing it is the sole signal that tells the reaper to sweep
// every container matching the registered filter.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reaperConn == nil {
		return nil
	}
	return m.reaperConn.Close()
}

func (m *Manager) startReaperContainer(ctx context.Context) (string, int, error) {
	if err := m.client.PullImage(ctx, ReaperImage); err != nil {
		return "", 0, err
	}

	spec := dockerapi.CreateSpec{
		Image:        ReaperImage,
		ExposedPorts: []dockerapi.PortSpec{{ContainerPort: reaperPort}},
		Env:          []string{fmt.Sprintf("RYUK_PORT=%d", reaperPort)},
		Binds:        []string{"/var/run/docker.sock:/var/run/docker.sock:rw"},
	}

	id, err := m.client.CreateContainer(ctx, spec)
	if err != nil {
		return "", 0, err
	}
	if err := m.client.StartContainer(ctx, id); err != nil {
		return "", 0, err
	}
	info, err := m.client.InspectContainer(ctx, id)
	if err != nil {
		return "", 0, err
	}
	for _, p := range info.Ports {
		if p.ContainerPort == reaperPort {
			return id, p.HostPort, nil
		}
	}
	return "", 0, &dockerapi.FailedToError{Op: "start_reaper", Cause: fmt.Errorf("no host port mapped for reaper port %d", reaperPort)}
}

func (m *Manager) reaperFilter() reaper.LabelFilter {
	labels := sessionLabels(m.sessionID, m.sessionNonce)
	return reaper.LabelFilter{
		{Key: LabelSessionID, Value: labels[LabelSessionID]},
		{Key: LabelVersion, Value: labels[LabelVersion]},
		{Key: LabelLang, Value: labels[LabelLang]},
		{Key: LabelPresent, Value: labels[LabelPresent]},
		{Key: LabelNonce, Value: labels[LabelNonce]},
	}
}

// StartContainer runs the full lifecycle: build the descriptor, attach
// session labels, pull the image, create and start the container, run
// its wait strategies in order, and return the post-start handle. Any
// step's error aborts and is returned — the container, if created, is
// left in place; it still carries the session labels, so the reaper
// cleans it up when the session closes.
func (m *Manager) StartContainer(ctx context.Context, builder containerspec.Builder) (*containerspec.ContainerHandle, error) {
	return callWithTimeout(ctx, CallerTimeout, func(ctx context.Context) (*containerspec.ContainerHandle, error) {
		return m.doStartContainer(ctx, builder)
	})
}

func (m *Manager) doStartContainer(ctx context.Context, builder containerspec.Builder) (*containerspec.ContainerHandle, error) {
	log := logger.FromContext(ctx)

	descriptor, err := builder.Build()
	if err != nil {
		return nil, err
	}
	for k, v := range sessionLabels(m.sessionID, m.sessionNonce) {
		descriptor.SetLabel(k, v)
	}

	log.Info("starting container", "image", descriptor.Image)

	if err := m.client.PullImage(ctx, descriptor.Image); err != nil {
		return nil, err
	}

	id, err := m.client.CreateContainer(ctx, toCreateSpec(descriptor))
	if err != nil {
		return nil, err
	}

	if err := m.client.StartContainer(ctx, id); err != nil {
		return nil, err
	}

	handle, err := m.inspectHandle(ctx, id, descriptor.Image)
	if err != nil {
		return nil, err
	}

	strategies := make([]wait.Strategy, 0, len(descriptor.WaitStrategies))
	for _, ws := range descriptor.WaitStrategies {
		s, ok := ws.(wait.Strategy)
		if !ok {
			return nil, fmt.Errorf("wait strategy %q does not implement wait.Strategy", ws.Name())
		}
		strategies = append(strategies, s)
	}
	if err := wait.Pipeline(ctx, m.client, handle, strategies); err != nil {
		return nil, err
	}

	handle, err = m.inspectHandle(ctx, id, descriptor.Image)
	if err != nil {
		return nil, err
	}

	log.Info("container ready", "container_id", id)
	return handle, nil
}

// StopContainer kills then deletes the container: two sequential facade
// calls, so a kill failure is visible instead of masked by a remove that
// force-kills internally.
func (m *Manager) StopContainer(ctx context.Context, id string) error {
	_, err := callWithTimeout(ctx, CallerTimeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, m.client.StopContainer(ctx, id)
	})
	return err
}

// GetContainer inspects a container and returns its current handle.
func (m *Manager) GetContainer(ctx context.Context, id string) (*containerspec.ContainerHandle, error) {
	return callWithTimeout(ctx, CallerTimeout, func(ctx context.Context) (*containerspec.ContainerHandle, error) {
		info, err := m.client.InspectContainer(ctx, id)
		if err != nil {
			return nil, err
		}
		return handleFromInspect(info), nil
	})
}

// ExecCreate creates an exec instance in a running container.
func (m *Manager) ExecCreate(ctx context.Context, id string, cmd []string) (string, error) {
	return callWithTimeout(ctx, CallerTimeout, func(ctx context.Context) (string, error) {
		return m.client.CreateExec(ctx, id, cmd)
	})
}

// ExecStart starts a previously created exec instance.
func (m *Manager) ExecStart(ctx context.Context, execID string) error {
	_, err := callWithTimeout(ctx, CallerTimeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, m.client.StartExec(ctx, execID)
	})
	return err
}

// ExecInspect returns whether the exec is still running and its exit
// code once finished.
func (m *Manager) ExecInspect(ctx context.Context, execID string) (running bool, exitCode int, err error) {
	type result struct {
		running  bool
		exitCode int
	}
	r, err := callWithTimeout(ctx, CallerTimeout, func(ctx context.Context) (result, error) {
		running, exitCode, err := m.client.InspectExec(ctx, execID)
		return result{running, exitCode}, err
	})
	return r.running, r.exitCode, err
}

// Logs returns the container's stdout and stderr logs as two separate
// slices.
func (m *Manager) Logs(ctx context.Context, id string) ([]byte, []byte, error) {
	type result struct {
		stdout, stderr []byte
	}
	r, err := callWithTimeout(ctx, CallerTimeout, func(ctx context.Context) (result, error) {
		stdout, stderr, err := m.client.ContainerLogs(ctx, id)
		return result{stdout, stderr}, err
	})
	return r.stdout, r.stderr, err
}

func (m *Manager) inspectHandle(ctx context.Context, id, image string) (*containerspec.ContainerHandle, error) {
	info, err := m.client.InspectContainer(ctx, id)
	if err != nil {
		return nil, err
	}
	h := handleFromInspect(info)
	if h.Image == "" {
		h.Image = image
	}
	return h, nil
}

func handleFromInspect(info *dockerapi.InspectResult) *containerspec.ContainerHandle {
	ports := make([]containerspec.ExposedPort, 0, len(info.Ports))
	for _, p := range info.Ports {
		ports = append(ports, containerspec.ExposedPort{ContainerPort: p.ContainerPort, HostPort: p.HostPort})
	}
	return &containerspec.ContainerHandle{
		ContainerID:  info.ContainerID,
		Image:        info.Image,
		ExposedPorts: ports,
		Environment:  info.Env,
		Labels:       info.Labels,
	}
}

// toCreateSpec converts the domain descriptor into the facade's plain
// request shape. Mounts (from bind_volumes) are applied after Binds
// (from bind_mounts) in the descriptor-to-HostConfig translation, so on a
// conflicting container path Mounts wins — see DESIGN.md Open Question
// (a).
func toCreateSpec(d *containerspec.ContainerDescriptor) dockerapi.CreateSpec {
	ports := make([]dockerapi.PortSpec, 0, len(d.ExposedPorts))
	for _, p := range d.ExposedPorts {
		ports = append(ports, dockerapi.PortSpec{ContainerPort: p.ContainerPort, HostPort: p.HostPort})
	}

	env := make([]string, 0, len(d.EnvOrder))
	for _, k := range d.EnvOrder {
		env = append(env, k+"="+d.Environment[k])
	}

	binds := make([]string, 0, len(d.BindMounts))
	for _, bm := range d.BindMounts {
		binds = append(binds, fmt.Sprintf("%s:%s:%s", bm.HostSrc, bm.ContainerDest, bm.Mode))
	}

	mounts := make([]dockerapi.MountSpec, 0, len(d.BindVolumes))
	for _, bv := range d.BindVolumes {
		mounts = append(mounts, dockerapi.MountSpec{VolumeName: bv.VolumeName, ContainerDest: bv.ContainerDest, ReadOnly: bv.ReadOnly})
	}

	return dockerapi.CreateSpec{
		Image:        d.Image,
		Cmd:          d.Cmd,
		ExposedPorts: ports,
		Env:          env,
		Labels:       d.Labels,
		Binds:        binds,
		Mounts:       mounts,
		AutoRemove:   d.AutoRemove,
		Privileged:   d.Privileged,
	}
}

// computeSessionID derives a 40-hex-character identifier from the process
// id and the current UTC timestamp, so two processes started at the same
// instant still get distinct session ids.
func computeSessionID() string {
	seed := fmt.Sprintf("%d|%s", os.Getpid(), time.Now().UTC().Format(time.RFC3339Nano))
	sum := sha1.Sum([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// callWithTimeout dispatches fn to a worker goroutine and waits for its
// reply up to timeout. fn receives the same deadline-bound context, which
// is cancelled when callWithTimeout returns, so context-aware calls inside
// fn are aborted once the caller gives up; the goroutine itself is not
// waited for.
func callWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type reply struct {
		val T
		err error
	}
	ch := make(chan reply, 1)
	go func() {
		v, err := fn(ctx)
		ch <- reply{v, err}
	}()

	select {
	case r := <-ch:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
