// Package server exposes the plugin catalog and pipeline runs over HTTP.
//
// # Endpoints
//
//	GET  /v1/plugins        List discovered plugin definitions (?type=, ?regex=)
//	POST /v1/pipeline/run   Run the pipeline over submitted instances
//	GET  /v1/health         Liveness probe
//	GET  /v1/ready          Readiness probe (plugin paths scannable)
//	GET  /metrics           Prometheus metrics
//
// # Related Packages
//
//   - pkg/runner: stage orchestration behind /v1/pipeline/run
//   - pkg/plugins: discovery behind /v1/plugins
package server
