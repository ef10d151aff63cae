package pipeline

import (
	"github.com/google/uuid"
)

// Config holds the recognized per-instance configuration fields plus an open
// side-table for plugin-specific metadata.
type Config struct {
	// Publishable marks the instance as visible to downstream tooling.
	// Instances without it may exist in a Context but are skipped by
	// publish-aware consumers.
	Publishable bool

	// Family classifies the instance's content type using dotted-namespace
	// convention (e.g. "model.rig", "test.family"). Used for compatibility
	// filtering against plugin family patterns.
	Family string

	// Host names the authoring application the instance came from.
	Host string

	// AssetID is stamped by the conform stage once an external system has
	// been notified of the published asset.
	AssetID string

	// Metadata is an open side-table for plugin-specific values that have
	// no recognized field.
	Metadata map[string]interface{}
}

// SetMetadata stores an arbitrary plugin-specific value.
func (c *Config) SetMetadata(key string, value interface{}) {
	if c.Metadata == nil {
		c.Metadata = make(map[string]interface{})
	}
	c.Metadata[key] = value
}

// GetMetadata retrieves a plugin-specific value.
func (c *Config) GetMetadata(key string) (interface{}, bool) {
	value, ok := c.Metadata[key]
	return value, ok
}

// Instance is one unit of publishable content: a named, ordered bundle of
// content-node identifiers plus configuration. Equality between instances is
// pointer identity; the Name is unique within a Context by convention only.
type Instance struct {
	// ID is a run-scoped identifier used in logs and reports. It plays no
	// part in equality, which remains pointer identity.
	ID string

	// Name identifies the instance within its Context.
	Name string

	// Config carries the recognized configuration fields and metadata.
	Config Config

	nodes []string
}

// NewInstance creates an empty instance with the given name.
func NewInstance(name string) *Instance {
	return &Instance{
		ID:   uuid.NewString(),
		Name: name,
	}
}

// Add appends a content-node identifier. Duplicates are permitted and
// insertion order is preserved; it represents traversal/extraction order.
func (i *Instance) Add(node string) {
	i.nodes = append(i.nodes, node)
}

// Nodes returns the node identifiers in insertion order.
func (i *Instance) Nodes() []string {
	nodes := make([]string, len(i.nodes))
	copy(nodes, i.nodes)
	return nodes
}

// Len returns the number of nodes added to the instance.
func (i *Instance) Len() int {
	return len(i.nodes)
}
