package modules

import (
	"strings"
	"time"

	"github.com/containerlab/containerlab/internal/containerspec"
	"github.com/containerlab/containerlab/internal/wait"
)

// PostgresImagePrefix is the canonical image prefix PostgresConfig
// validates against at builder time.
const PostgresImagePrefix = "postgres"

// PostgresConfig declares a Postgres container. Zero-value fields take
// the defaults NewPostgresContainer applies.
type PostgresConfig struct {
	Image       string // defaults to "postgres:16"
	Database    string // defaults to "test"
	Username    string // defaults to "test"
	Password    string // defaults to "test"
	Port        containerspec.ExposedPort
	WaitTimeout time.Duration // defaults to 60s
}

// PostgresBuilder builds a ContainerDescriptor for a Postgres config.
type PostgresBuilder struct {
	cfg PostgresConfig
}

// NewPostgresContainer returns a Builder for a Postgres container with
// single-node smoke-test defaults applied.
func NewPostgresContainer(cfg PostgresConfig) *PostgresBuilder {
	if cfg.Image == "" {
		cfg.Image = "postgres:16"
	}
	if cfg.Database == "" {
		cfg.Database = "test"
	}
	if cfg.Username == "" {
		cfg.Username = "test"
	}
	if cfg.Password == "" {
		cfg.Password = "test"
	}
	if cfg.Port.ContainerPort == 0 {
		cfg.Port.ContainerPort = 5432
	}
	if cfg.WaitTimeout == 0 {
		cfg.WaitTimeout = 60 * time.Second
	}
	return &PostgresBuilder{cfg: cfg}
}

func (b *PostgresBuilder) Build() (*containerspec.ContainerDescriptor, error) {
	if !strings.HasPrefix(b.cfg.Image, PostgresImagePrefix) {
		return nil, &containerspec.InvalidImageError{ExpectedPrefix: PostgresImagePrefix, Actual: b.cfg.Image}
	}

	d := &containerspec.ContainerDescriptor{
		Image:        b.cfg.Image,
		ExposedPorts: []containerspec.ExposedPort{b.cfg.Port},
	}
	d.SetEnv("POSTGRES_DB", b.cfg.Database)
	d.SetEnv("POSTGRES_USER", b.cfg.Username)
	d.SetEnv("POSTGRES_PASSWORD", b.cfg.Password)

	logStrategy, err := wait.NewLogStrategy(`database system is ready to accept connections`, b.cfg.WaitTimeout)
	if err != nil {
		return nil, err
	}
	d.WaitStrategies = []containerspec.WaitStrategy{logStrategy}
	return d, nil
}
