package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInstance(t *testing.T) {
	inst := NewInstance("character_rig")

	assert.Equal(t, "character_rig", inst.Name)
	assert.NotEmpty(t, inst.ID)
	assert.Equal(t, 0, inst.Len())
	assert.Empty(t, inst.Nodes())
}

func TestInstance_IDsAreUnique(t *testing.T) {
	a := NewInstance("same_name")
	b := NewInstance("same_name")

	assert.NotEqual(t, a.ID, b.ID)
}

func TestInstance_AddPreservesOrder(t *testing.T) {
	inst := NewInstance("test_instance")
	inst.Add("test_node1_PLY")
	inst.Add("test_node2_PLY")
	inst.Add("test_node3_GRP")

	assert.Equal(t, 3, inst.Len())
	assert.Equal(t, []string{"test_node1_PLY", "test_node2_PLY", "test_node3_GRP"}, inst.Nodes())
}

func TestInstance_AddPermitsDuplicates(t *testing.T) {
	inst := NewInstance("test_instance")
	inst.Add("node_GRP")
	inst.Add("node_GRP")

	assert.Equal(t, 2, inst.Len())
	assert.Equal(t, []string{"node_GRP", "node_GRP"}, inst.Nodes())
}

func TestInstance_LenReflectsOnlyExplicitAdditions(t *testing.T) {
	inst := NewInstance("test_instance")
	inst.Config.Family = "test.family"
	inst.Config.Host = "test"
	inst.Config.Publishable = true

	// Configuration never injects implicit nodes.
	assert.Equal(t, 0, inst.Len())
}

func TestInstance_NodesReturnsSnapshot(t *testing.T) {
	inst := NewInstance("test_instance")
	inst.Add("node1")

	nodes := inst.Nodes()
	nodes[0] = "mutated"

	assert.Equal(t, []string{"node1"}, inst.Nodes())
}

func TestConfig_Metadata(t *testing.T) {
	inst := NewInstance("test_instance")

	_, ok := inst.Config.GetMetadata("reviewer")
	assert.False(t, ok)

	inst.Config.SetMetadata("reviewer", "supervisor")
	value, ok := inst.Config.GetMetadata("reviewer")

	assert.True(t, ok)
	assert.Equal(t, "supervisor", value)
}
