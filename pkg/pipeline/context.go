package pipeline

// Context is the mutable collection of all instances in one publishing run.
// It exclusively owns the instances it holds; instances keep no back-reference.
//
// The Context is shared across the whole run but mutation is single-writer by
// construction of the sequential driver loop, so no locking is provided.
type Context struct {
	instances []*Instance
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{}
}

// Add appends an instance to the context.
func (c *Context) Add(inst *Instance) {
	c.instances = append(c.instances, inst)
}

// Pop removes and returns the most recently added instance, or nil when the
// context is empty. Callers that need a specific instance back should control
// insertion order.
func (c *Context) Pop() *Instance {
	if len(c.instances) == 0 {
		return nil
	}
	last := c.instances[len(c.instances)-1]
	c.instances = c.instances[:len(c.instances)-1]
	return last
}

// Has reports whether the context holds the given instance. Membership is
// pointer identity, not name equality.
func (c *Context) Has(inst *Instance) bool {
	for _, held := range c.instances {
		if held == inst {
			return true
		}
	}
	return false
}

// Len returns the number of instances currently held.
func (c *Context) Len() int {
	return len(c.instances)
}

// Instances returns a snapshot of the held instances in insertion order.
// Mutating the returned slice does not affect the context.
func (c *Context) Instances() []*Instance {
	snapshot := make([]*Instance, len(c.instances))
	copy(snapshot, c.instances)
	return snapshot
}
