// Package observability provides structured logging, Prometheus metrics, and health checks.
//
// # Structured Logging
//
// Create logger:
//
//	logger := observability.NewLogger(observability.InfoLevel, nil)
//	logger.WithField("stage", "validators").Info("Stage complete")
//
// # Prometheus Metrics
//
// Initialize metrics:
//
//	metrics := observability.NewMetrics(prometheus.NewRegistry())
//	metrics.InstancesProcessedTotal.WithLabelValues("extractors", "ok").Inc()
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(registry)
//	mux.HandleFunc("/v1/health", checker.Liveness)
//
// # Related Packages
//
//   - pkg/config: observability configuration
//   - pkg/server: HTTP exposure of health and metrics
package observability
