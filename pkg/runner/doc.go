// Package runner orchestrates publishing-pipeline stages over a context.
//
// # Overview
//
// The runner discovers plugins for each stage from a registry, constructs a
// fresh plugin per invocation, fully drains one plugin's outcome stream before
// moving to the next, and records every per-instance outcome in a report.
// Per-instance failures never abort the run; they are counted and carried in
// the report so the caller decides whether N failures across M plugins is a
// partial success or grounds for escalation.
//
// # Usage
//
//	r := runner.New(registry, runner.Options{Host: "maya"})
//	report, err := r.Run(ctx, c)
//	if err != nil {
//		log.Fatal(err) // discovery/configuration failure, not an instance failure
//	}
//	if report.Failures > 0 {
//		log.Printf("%d instances failed", report.Failures)
//	}
//
// # Related Packages
//
//   - pkg/plugins: discovery and compatibility filtering
//   - pkg/pipeline: data model and the outcome stream protocol
package runner
