// Package containerspec defines the normalized container-creation request
// (ContainerDescriptor), the post-start observation returned to callers
// (ContainerHandle), and the Builder contract that turns a declarative,
// image-specific config into a descriptor.
package containerspec

// BindMode is the access mode of a bind mount.
type BindMode string

const (
	BindReadOnly  BindMode = "ro"
	BindReadWrite BindMode = "rw"
)

// ExposedPort is one container port to publish. HostPort is zero for an
// ephemeral (daemon-assigned) mapping, non-zero for a fixed mapping.
type ExposedPort struct {
	ContainerPort int
	HostPort      int
}

// Fixed reports whether this entry requests a specific host port rather
// than an ephemeral one.
func (p ExposedPort) Fixed() bool {
	return p.HostPort != 0
}

// BindMount is a host-directory bind mount, serialized by the facade as
// "host_src:container_dest:mode".
type BindMount struct {
	HostSrc       string
	ContainerDest string
	Mode          BindMode
}

// BindVolume is a named-volume mount.
type BindVolume struct {
	VolumeName    string
	ContainerDest string
	ReadOnly      bool
}

// ContainerDescriptor is the normalized request the Docker API facade
// consumes. Builders produce it; the session manager attaches session
// labels to it before create.
type ContainerDescriptor struct {
	Image          string
	Cmd            []string
	ExposedPorts   []ExposedPort
	Environment    map[string]string
	EnvOrder       []string // preserves caller insertion order for stable Env serialization
	Labels         map[string]string
	BindMounts     []BindMount
	BindVolumes    []BindVolume
	AutoRemove     bool
	Privileged     bool
	WaitStrategies []WaitStrategy
}

// WaitStrategy is the narrow marker every internal/wait strategy satisfies.
// Declared here, rather than imported from internal/wait, so containerspec
// stays a leaf package: wait imports containerspec (for ContainerHandle),
// so containerspec cannot import wait back.
type WaitStrategy interface {
	// Name identifies the strategy for logging and error messages.
	Name() string
}

// SetEnv sets an environment variable, recording first-seen insertion
// order so CreateContainer serializes Env deterministically.
func (d *ContainerDescriptor) SetEnv(key, value string) {
	if d.Environment == nil {
		d.Environment = make(map[string]string)
	}
	if _, exists := d.Environment[key]; !exists {
		d.EnvOrder = append(d.EnvOrder, key)
	}
	d.Environment[key] = value
}

// SetLabel sets a label value.
func (d *ContainerDescriptor) SetLabel(key, value string) {
	if d.Labels == nil {
		d.Labels = make(map[string]string)
	}
	d.Labels[key] = value
}

// ContainerHandle is returned to the caller after a successful start.
type ContainerHandle struct {
	ContainerID  string
	Image        string
	ExposedPorts []ExposedPort
	Environment  map[string]string
	Labels       map[string]string
}

// MappedPort returns the host port bound to the given container port, or
// 0 if no such mapping exists.
func (h *ContainerHandle) MappedPort(containerPort int) int {
	for _, p := range h.ExposedPorts {
		if p.ContainerPort == containerPort {
			return p.HostPort
		}
	}
	return 0
}

// Builder turns a declarative, image-specific config into a normalized
// ContainerDescriptor. Implemented by GenericBuilder and the per-image
// variants in internal/modules.
type Builder interface {
	Build() (*ContainerDescriptor, error)
}
