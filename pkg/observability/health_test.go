package observability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPaths []string

func (s stubPaths) Paths() []string { return s }

func TestHealthChecker_Liveness(t *testing.T) {
	checker := NewHealthChecker(nil)

	rec := httptest.NewRecorder()
	checker.Liveness(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthChecker_CheckHealthy(t *testing.T) {
	dir := t.TempDir()
	checker := NewHealthChecker(stubPaths{dir})

	status := checker.Check()

	assert.Equal(t, StatusHealthy, status.Status)
	assert.Equal(t, StatusHealthy, status.PluginPaths[dir].Status)
}

func TestHealthChecker_CheckDegradedOnMissingPath(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "gone")
	checker := NewHealthChecker(stubPaths{dir, missing})

	status := checker.Check()

	assert.Equal(t, StatusDegraded, status.Status)
	assert.Equal(t, StatusHealthy, status.PluginPaths[dir].Status)
	assert.Equal(t, StatusUnhealthy, status.PluginPaths[missing].Status)
}

func TestHealthChecker_CheckDegradedOnFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	checker := NewHealthChecker(stubPaths{file})
	status := checker.Check()

	assert.Equal(t, StatusDegraded, status.Status)
}

func TestHealthChecker_Readiness(t *testing.T) {
	checker := NewHealthChecker(stubPaths{t.TempDir()})

	rec := httptest.NewRecorder()
	checker.Readiness(rec, httptest.NewRequest(http.MethodGet, "/v1/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, StatusHealthy, status.Status)
}
