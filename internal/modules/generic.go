// Package modules provides the per-image declarative builders (Postgres,
// MySQL, Redis, Kafka) and a generic direct-descriptor case, as variants
// of containerspec.Builder, one file per image so a new module never
// touches an existing one.
package modules

import "github.com/containerlab/containerlab/internal/containerspec"

// GenericBuilder passes a caller-constructed descriptor through
// unmodified, for configs that do not fit one of the named image
// variants.
type GenericBuilder struct {
	Descriptor *containerspec.ContainerDescriptor
}

// NewGenericContainer wraps an already-built descriptor in a Builder.
func NewGenericContainer(d *containerspec.ContainerDescriptor) *GenericBuilder {
	return &GenericBuilder{Descriptor: d}
}

func (b *GenericBuilder) Build() (*containerspec.ContainerDescriptor, error) {
	if b.Descriptor == nil {
		return nil, &containerspec.MissingRequiredOptionError{Name: "descriptor"}
	}
	return b.Descriptor, nil
}
