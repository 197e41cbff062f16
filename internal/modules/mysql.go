package modules

import (
	"strings"
	"time"

	"github.com/containerlab/containerlab/internal/containerspec"
	"github.com/containerlab/containerlab/internal/wait"
)

// MySqlImagePrefix is the canonical image prefix MySqlConfig validates
// against at builder time.
const MySqlImagePrefix = "mysql"

// MySqlConfig declares a MySQL container.
type MySqlConfig struct {
	Image       string // defaults to "mysql:8"
	Database    string // defaults to "test"
	Username    string // defaults to "test"
	Password    string // defaults to "test"
	Port        containerspec.ExposedPort
	WaitTimeout time.Duration // defaults to 60s
}

// MySqlBuilder builds a ContainerDescriptor for a MySqlConfig.
type MySqlBuilder struct {
	cfg MySqlConfig
}

// NewMySqlContainer returns a Builder for a MySQL container with
// single-node smoke-test defaults applied.
func NewMySqlContainer(cfg MySqlConfig) *MySqlBuilder {
	if cfg.Image == "" {
		cfg.Image = "mysql:8"
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
		cfg.Port.ContainerPort = 3306
	}
	if cfg.WaitTimeout == 0 {
		cfg.WaitTimeout = 60 * time.Second
	}
	return &MySqlBuilder{cfg: cfg}
}

func (b *MySqlBuilder) Build() (*containerspec.ContainerDescriptor, error) {
	if !strings.HasPrefix(b.cfg.Image, MySqlImagePrefix) {
		return nil, &containerspec.InvalidImageError{ExpectedPrefix: MySqlImagePrefix, Actual: b.cfg.Image}
	}

	d := &containerspec.ContainerDescriptor{
		Image:        b.cfg.Image,
		ExposedPorts: []containerspec.ExposedPort{b.cfg.Port},
	}
	d.SetEnv("MYSQL_RANDOM_ROOT_PASSWORD", "yes")
	d.SetEnv("MYSQL_DATABASE", b.cfg.Database)
	d.SetEnv("MYSQL_USER", b.cfg.Username)
	d.SetEnv("MYSQL_PASSWORD", b.cfg.Password)

	logStrategy, err := wait.NewLogStrategy(`ready for connections`, b.cfg.WaitTimeout)
	if err != nil {
		return nil, err
	}
	d.WaitStrategies = []containerspec.WaitStrategy{logStrategy}
	return d, nil
}
