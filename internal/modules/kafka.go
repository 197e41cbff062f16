package modules

import (
	"fmt"
	"strings"
	"time"

	"github.com/containerlab/containerlab/internal/containerspec"
	"github.com/containerlab/containerlab/internal/wait"
)

// KafkaImagePrefix is the canonical image prefix KafkaConfig validates
// against at builder time.
const KafkaImagePrefix = "confluentinc/cp-kafka"

const (
	kafkaBrokerListenerPort  = 29092
	kafkaOutsideListenerPort = 9092
)

// KafkaConfig declares a single-broker Kafka container with an embedded
// Zookeeper. OutsideHostPort fixes the externally
// published port so KAFKA_ADVERTISED_LISTENERS can be computed at build
// time rather than after an ephemeral port is assigned; it defaults to
// the container port (9092) if unset.
type KafkaConfig struct {
	Image           string // defaults to "confluentinc/cp-kafka:7.4.3"
	Hostname        string // advertised listener host; defaults to "localhost"
	OutsideHostPort int
	WaitTimeout     time.Duration // defaults to 90s
}

// KafkaBuilder builds a ContainerDescriptor for a KafkaConfig.
type KafkaBuilder struct {
	cfg KafkaConfig
}

// NewKafkaContainer returns a Builder for a Kafka broker.
func NewKafkaContainer(cfg KafkaConfig) *KafkaBuilder {
	if cfg.Image == "" {
		cfg.Image = "confluentinc/cp-kafka:7.4.3"
	}
	if cfg.Hostname == "" {
		cfg.Hostname = "localhost"
	}
	if cfg.OutsideHostPort == 0 {
		cfg.OutsideHostPort = kafkaOutsideListenerPort
	}
	if cfg.WaitTimeout == 0 {
		cfg.WaitTimeout = 90 * time.Second
	}
	return &KafkaBuilder{cfg: cfg}
}

func (b *KafkaBuilder) Build() (*containerspec.ContainerDescriptor, error) {
	if !strings.HasPrefix(b.cfg.Image, KafkaImagePrefix) {
		return nil, &containerspec.InvalidImageError{ExpectedPrefix: KafkaImagePrefix, Actual: b.cfg.Image}
	}

	advertised := fmt.Sprintf("BROKER://%s:%d,OUTSIDE://%s:%d",
		b.cfg.Hostname, kafkaBrokerListenerPort, b.cfg.Hostname, b.cfg.OutsideHostPort)

	d := &containerspec.ContainerDescriptor{
		Image: b.cfg.Image,
		ExposedPorts: []containerspec.ExposedPort{
			{ContainerPort: kafkaOutsideListenerPort, HostPort: b.cfg.OutsideHostPort},
		},
	}
	d.SetEnv("KAFKA_ZOOKEEPER_CONNECT", "localhost:2181")
	d.SetEnv("KAFKA_LISTENER_SECURITY_PROTOCOL_MAP", "BROKER:PLAINTEXT,OUTSIDE:PLAINTEXT")
	d.SetEnv("KAFKA_INTER_BROKER_LISTENER_NAME", "BROKER")
	d.SetEnv("KAFKA_ADVERTISED_LISTENERS", advertised)

	// Both readiness commands must succeed, in order: the broker can
	// accept the topics list before its API-versions handshake settles,
	// so checking only the first gives false positives.
	d.WaitStrategies = []containerspec.WaitStrategy{
		wait.NewCommandStrategy([]string{"kafka-topics", "--bootstrap-server", "localhost:9092", "--list"}, b.cfg.WaitTimeout),
		wait.NewCommandStrategy([]string{"kafka-broker-api-versions", "--bootstrap-server", "localhost:9092"}, b.cfg.WaitTimeout),
	}
	return d, nil
}
