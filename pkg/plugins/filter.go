package plugins

import (
	"regexp"

	"github.com/platinummonkey/publish/pkg/pipeline"
)

// Compatible reports whether a plugin definition applies to an instance. A
// definition matches when it declares no host restriction or the instance's
// host is an exact member of its host list, and it declares no family
// restriction or one of its anchored family patterns matches the instance's
// family. An instance missing a host or family is incompatible with any
// definition restricted on that dimension; absence never matches.
func Compatible(def *Definition, inst *pipeline.Instance) bool {
	m := def.Manifest

	if len(m.Hosts) > 0 {
		if inst.Config.Host == "" || !m.SupportsHost(inst.Config.Host) {
			return false
		}
	}

	if len(m.Families) > 0 {
		if inst.Config.Family == "" || !matchesFamily(m.Families, inst.Config.Family) {
			return false
		}
	}

	return true
}

// matchesFamily reports whether any declared pattern matches the family.
// Patterns are anchored so "test.family" never matches "test.family.extra";
// case-sensitive throughout.
func matchesFamily(patterns []string, family string) bool {
	for _, pattern := range patterns {
		re, err := regexp.Compile("^(?:" + pattern + ")$")
		if err != nil {
			// Invalid patterns are rejected at manifest validation;
			// a definition built by hand with one simply never matches.
			continue
		}
		if re.MatchString(family) {
			return true
		}
	}
	return false
}

// PluginsByInstance returns the subsequence of definitions compatible with the
// instance, preserving discovery order.
func PluginsByInstance(defs []*Definition, inst *pipeline.Instance) []*Definition {
	var compatible []*Definition
	for _, def := range defs {
		if Compatible(def, inst) {
			compatible = append(compatible, def)
		}
	}
	return compatible
}

// InstanceSeq is a lazy, single-pass sequence of instances. A consumed
// sequence yields nothing on further calls.
type InstanceSeq struct {
	next func() (*pipeline.Instance, bool)
}

// Next advances the sequence by one instance. The second return is false once
// the sequence is exhausted.
func (s *InstanceSeq) Next() (*pipeline.Instance, bool) {
	if s.next == nil {
		return nil, false
	}
	inst, ok := s.next()
	if !ok {
		s.next = nil
		return nil, false
	}
	return inst, true
}

// Collect drains the sequence into a slice.
func (s *InstanceSeq) Collect() []*pipeline.Instance {
	var instances []*pipeline.Instance
	for {
		inst, ok := s.Next()
		if !ok {
			return instances
		}
		instances = append(instances, inst)
	}
}

// InstancesByPlugin returns a lazy sequence of the instances compatible with
// the definition, in the order given. The same compatibility predicate as
// PluginsByInstance, inverse direction.
func InstancesByPlugin(instances []*pipeline.Instance, def *Definition) *InstanceSeq {
	i := 0
	return &InstanceSeq{next: func() (*pipeline.Instance, bool) {
		for i < len(instances) {
			inst := instances[i]
			i++
			if Compatible(def, inst) {
				return inst, true
			}
		}
		return nil, false
	}}
}
