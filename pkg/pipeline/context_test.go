package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext_AddAndLen(t *testing.T) {
	c := NewContext()
	assert.Equal(t, 0, c.Len())

	c.Add(NewInstance("one"))
	c.Add(NewInstance("two"))

	assert.Equal(t, 2, c.Len())
}

func TestContext_PopReturnsLastAdded(t *testing.T) {
	c := NewContext()
	first := NewInstance("first")
	second := NewInstance("second")
	c.Add(first)
	c.Add(second)

	popped := c.Pop()

	assert.Same(t, second, popped)
	assert.Equal(t, 1, c.Len())
	assert.False(t, c.Has(second))
	assert.True(t, c.Has(first))
}

func TestContext_PopEmpty(t *testing.T) {
	c := NewContext()

	assert.Nil(t, c.Pop())
	assert.Equal(t, 0, c.Len())
}

func TestContext_HasIsIdentityNotName(t *testing.T) {
	c := NewContext()
	held := NewInstance("same_name")
	stranger := NewInstance("same_name")
	c.Add(held)

	assert.True(t, c.Has(held))
	assert.False(t, c.Has(stranger))
}

func TestContext_LenTracksAddsMinusPops(t *testing.T) {
	c := NewContext()
	for i := 0; i < 5; i++ {
		c.Add(NewInstance("inst"))
	}
	c.Pop()
	c.Pop()

	assert.Equal(t, 3, c.Len())
}

func TestContext_InstancesSnapshot(t *testing.T) {
	c := NewContext()
	inst := NewInstance("only")
	c.Add(inst)

	snapshot := c.Instances()
	snapshot[0] = nil

	assert.True(t, c.Has(inst))
	assert.Equal(t, 1, c.Len())
}
