// Package presets loads declarative, docker-compose-shaped module
// definitions from a YAML file and turns each into a containerspec.Builder,
// so a caller can describe a container and its wait strategy in a config
// fixture instead of calling a internal/modules constructor. Load is
// seamed behind a FileSystem interface so tests supply an in-memory
// fixture instead of touching disk.
package presets

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/containerlab/containerlab/internal/containerspec"
	"github.com/containerlab/containerlab/internal/modules"
	"github.com/containerlab/containerlab/internal/wait"
	"gopkg.in/yaml.v3"
)

// StrategyKind selects which internal/wait constructor a Wait block
// compiles into.
type StrategyKind string

const (
	StrategyCommand StrategyKind = "command"
	StrategyLog     StrategyKind = "log"
	StrategyHTTP    StrategyKind = "http"
	StrategyPort    StrategyKind = "port"
)

// ErrFileNotFound is returned when the preset file does not exist.
var ErrFileNotFound = errors.New("no preset file found at the given path")

// File is the top-level shape of a preset YAML document.
type File struct {
	Version int      `yaml:"version"`
	Modules []Module `yaml:"modules"`
}

// Module declares one container and its readiness probe.
type Module struct {
	Name     string            `yaml:"name"`
	Image    string            `yaml:"image"`
	Port     int               `yaml:"port"`
	HostPort int               `yaml:"host_port,omitempty"`
	Env      map[string]string `yaml:"env,omitempty"`
	Wait     WaitBlock         `yaml:"wait"`
}

// WaitBlock configures exactly one internal/wait strategy.
type WaitBlock struct {
	Strategy StrategyKind  `yaml:"strategy"`
	Command  []string      `yaml:"command,omitempty"`
	Pattern  string        `yaml:"pattern,omitempty"`
	Path     string        `yaml:"path,omitempty"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Builder turns Module into a containerspec.Builder.
func (m Module) Builder() (containerspec.Builder, error) {
	d := &containerspec.ContainerDescriptor{
		Image:        m.Image,
		ExposedPorts: []containerspec.ExposedPort{{ContainerPort: m.Port, HostPort: m.HostPort}},
	}
	for k, v := range m.Env {
		d.SetEnv(k, v)
	}

	strategy, err := m.Wait.compile(m.Port)
	if err != nil {
		return nil, fmt.Errorf("module %q: %w", m.Name, err)
	}
	d.WaitStrategies = []containerspec.WaitStrategy{strategy}

	return modules.NewGenericContainer(d), nil
}

func (w WaitBlock) compile(containerPort int) (containerspec.WaitStrategy, error) {
	timeout := w.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	switch w.Strategy {
	case StrategyCommand:
		if len(w.Command) == 0 {
			return nil, errors.New("wait.command requires a non-empty command")
		}
		return wait.NewCommandStrategy(w.Command, timeout), nil
	case StrategyLog:
		if w.Pattern == "" {
			return nil, errors.New("wait.log requires a pattern")
		}
		return wait.NewLogStrategy(w.Pattern, timeout)
	case StrategyHTTP:
		return wait.NewHTTPStrategy(containerPort, w.Path, timeout), nil
	case StrategyPort:
		return wait.NewPortStrategy(containerPort, timeout), nil
	default:
		return nil, fmt.Errorf("unknown wait strategy %q (valid: command, log, http, port)", w.Strategy)
	}
}

// Loader loads a File from the file system.
type Loader struct {
	fs FileSystem
}

// NewLoader builds a Loader over the given FileSystem.
func NewLoader(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads and parses a preset file from path, validating that every
// module has a unique name, an image, a port, and a wait.strategy. The
// wait block itself is compiled, and its contents checked, only by
// Module.Builder.
func (l *Loader) Load(path string) (*File, error) {
	path = filepath.Clean(path)

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if l.fs.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("reading preset file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing preset file: %w", err)
	}

	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses a preset file from path using the real file system.
func Load(path string) (*File, error) {
	return NewLoader(&RealFileSystem{}).Load(path)
}

func validate(f *File) error {
	var errs []error
	seen := make(map[string]bool, len(f.Modules))
	for i, m := range f.Modules {
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("module at position %d has missing required field 'name'", i))
			continue
		}
		if seen[m.Name] {
			errs = append(errs, fmt.Errorf("module %q: duplicate name", m.Name))
		}
		seen[m.Name] = true

		if m.Image == "" {
			errs = append(errs, fmt.Errorf("module %q: missing required field 'image'", m.Name))
		}
		if m.Port == 0 {
			errs = append(errs, fmt.Errorf("module %q: missing required field 'port'", m.Name))
		}
		if m.Wait.Strategy == "" {
			errs = append(errs, fmt.Errorf("module %q: missing required field 'wait.strategy'", m.Name))
		}
	}
	return errors.Join(errs...)
}
