// Package pipeline provides the data model and processing protocol for publishing runs.
//
// # Overview
//
// This package defines the mutable objects that flow through one publishing run:
// the Context (the collection of everything being published) and the Instance
// (one named bundle of content nodes plus its configuration). It also defines
// the outcome stream every plugin produces while processing a Context.
//
// # Data Model
//
// Create a context and an instance:
//
//	ctx := pipeline.NewContext()
//	inst := pipeline.NewInstance("character_rig")
//	inst.Add("rig_GRP")
//	inst.Add("geo_PLY")
//	inst.Config.Family = "model.rig"
//	inst.Config.Publishable = true
//	ctx.Add(inst)
//
// # Outcome Streams
//
// Plugins report per-instance results through a lazy, single-pass Stream of
// Outcome values. The consumer pulls one outcome at a time and decides whether
// a failed outcome aborts the run:
//
//	stream := plugin.Process(ctx, c)
//	for {
//		out, ok := stream.Next()
//		if !ok {
//			break
//		}
//		if out.Err != nil {
//			return out.Err // caller policy, not plugin policy
//		}
//	}
//
// A plugin must never let a per-instance failure escape the stream as a panic
// or early return; failures travel in the Err slot so independent instances
// and independent plugins keep going.
//
// # Related Packages
//
//   - pkg/plugins: plugin discovery and compatibility filtering
//   - pkg/runner: stage orchestration over a Context
package pipeline
