package plugins

import (
	"context"

	"github.com/platinummonkey/publish/pkg/pipeline"
)

// ProcessFunc produces the outcome stream for one plugin invocation.
type ProcessFunc func(ctx context.Context, c *pipeline.Context) *pipeline.Stream

// InstanceFunc processes exactly one instance, returning nil on success or
// the per-instance failure.
type InstanceFunc func(ctx context.Context, inst *pipeline.Instance) error

// ProcessorPlugin is a simple function-backed plugin implementation. It is
// what most runtime factories return: the manifest supplies the declared
// metadata and the function supplies the behavior.
type ProcessorPlugin struct {
	manifest *Manifest
	process  ProcessFunc
}

// NewProcessorPlugin creates a plugin from a manifest and a process function.
func NewProcessorPlugin(manifest *Manifest, process ProcessFunc) *ProcessorPlugin {
	return &ProcessorPlugin{
		manifest: manifest,
		process:  process,
	}
}

// NewInstanceProcessor creates a plugin that visits each compatible,
// publishable instance in the context and applies fn to it, yielding one
// outcome per instance. This is the shape validators, extractors, and conform
// plugins take; selectors build their streams directly because they create
// instances rather than visit them.
func NewInstanceProcessor(manifest *Manifest, fn InstanceFunc) *ProcessorPlugin {
	return NewProcessorPlugin(manifest, func(ctx context.Context, c *pipeline.Context) *pipeline.Stream {
		def := &Definition{Manifest: manifest}
		seq := InstancesByPlugin(c.Instances(), def)
		return pipeline.NewStream(func() (pipeline.Outcome, bool) {
			for {
				inst, ok := seq.Next()
				if !ok {
					return pipeline.Outcome{}, false
				}
				if !inst.Config.Publishable {
					continue
				}
				return pipeline.Outcome{Instance: inst, Err: fn(ctx, inst)}, true
			}
		})
	})
}

// Manifest returns the plugin manifest.
func (p *ProcessorPlugin) Manifest() *Manifest {
	return p.manifest
}

// Process runs the plugin against the context.
func (p *ProcessorPlugin) Process(ctx context.Context, c *pipeline.Context) *pipeline.Stream {
	if p.process == nil {
		return pipeline.Empty()
	}
	return p.process(ctx, c)
}
