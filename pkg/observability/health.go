package observability

import (
	"encoding/json"
	"net/http"
	"os"
	"time"
)

// PathLister reports the filesystem locations a plugin registry scans.
// Satisfied by *plugins.Registry.
type PathLister interface {
	Paths() []string
}

// HealthChecker provides health check functionality
type HealthChecker struct {
	registry PathLister
}

// NewHealthChecker creates a new health checker over a plugin registry
func NewHealthChecker(registry PathLister) *HealthChecker {
	return &HealthChecker{registry: registry}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status      string                  `json:"status"`
	Timestamp   time.Time               `json:"timestamp"`
	PluginPaths map[string]PathStatus   `json:"plugin_paths,omitempty"`
}

// PathStatus represents the health of one registered plugin path
type PathStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Liveness returns a simple liveness probe (always returns 200 if server is running)
func (h *HealthChecker) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    StatusHealthy,
		"timestamp": time.Now(),
	})
}

// Readiness checks that every registered plugin path is still scannable.
// Paths can disappear after registration (network mounts, cleanup jobs); a
// missing path degrades the service rather than failing it, since discovery
// skips unreadable locations.
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	status := h.Check()

	code := http.StatusOK
	if status.Status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}

// Check evaluates the health of the registered plugin paths
func (h *HealthChecker) Check() HealthStatus {
	status := HealthStatus{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
	}

	if h.registry == nil {
		return status
	}

	paths := h.registry.Paths()
	if len(paths) > 0 {
		status.PluginPaths = make(map[string]PathStatus, len(paths))
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err != nil:
			status.Status = StatusDegraded
			status.PluginPaths[path] = PathStatus{Status: StatusUnhealthy, Message: err.Error()}
		case !info.IsDir():
			status.Status = StatusDegraded
			status.PluginPaths[path] = PathStatus{Status: StatusUnhealthy, Message: "not a directory"}
		default:
			status.PluginPaths[path] = PathStatus{Status: StatusHealthy}
		}
	}

	return status
}
