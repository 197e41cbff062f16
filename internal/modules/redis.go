package modules

import (
	"strings"
	"time"

	"github.com/containerlab/containerlab/internal/containerspec"
	"github.com/containerlab/containerlab/internal/wait"
)

// RedisImagePrefix is the canonical image prefix RedisConfig validates
// against at builder time.
const RedisImagePrefix = "redis"

// RedisConfig declares a Redis container.
type RedisConfig struct {
	Image       string // defaults to "redis:7.2"
	Port        containerspec.ExposedPort
	WaitTimeout time.Duration // defaults to 60s
}

// RedisBuilder builds a ContainerDescriptor for a RedisConfig.
type RedisBuilder struct {
	cfg RedisConfig
}

// NewRedisContainer returns a Builder for a Redis container, ready once
// "redis-cli PING" succeeds.
func NewRedisContainer(cfg RedisConfig) *RedisBuilder {
	if cfg.Image == "" {
		cfg.Image = "redis:7.2"
	}
	if cfg.Port.ContainerPort == 0 {
		cfg.Port.ContainerPort = 6379
	}
	if cfg.WaitTimeout == 0 {
		cfg.WaitTimeout = 60 * time.Second
	}
	return &RedisBuilder{cfg: cfg}
}

func (b *RedisBuilder) Build() (*containerspec.ContainerDescriptor, error) {
	if !strings.HasPrefix(b.cfg.Image, RedisImagePrefix) {
		return nil, &containerspec.InvalidImageError{ExpectedPrefix: RedisImagePrefix, Actual: b.cfg.Image}
	}

	d := &containerspec.ContainerDescriptor{
		Image:        b.cfg.Image,
		ExposedPorts: []containerspec.ExposedPort{b.cfg.Port},
	}
	d.WaitStrategies = []containerspec.WaitStrategy{
		wait.NewCommandStrategy([]string{"redis-cli", "PING"}, b.cfg.WaitTimeout),
	}
	return d, nil
}
