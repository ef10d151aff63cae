package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/platinummonkey/publish/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Pipeline configuration
	Pipeline PipelineConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// PipelineConfig holds publishing-pipeline settings
type PipelineConfig struct {
	// PluginPaths are the filesystem locations registered for plugin
	// discovery at startup. Colon-separated in the environment.
	PluginPaths []string

	// Host names the authoring application this process publishes from.
	Host string

	// IdentifierKey is the config key name downstream tooling uses to mark
	// an instance as publishable in serialized reports. Consumers must read
	// it from here rather than assuming a literal.
	IdentifierKey string

	// WatchPlugins enables the filesystem watcher over plugin paths.
	WatchPlugins bool
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Pipeline:      loadPipelineConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("PUBLISH_HOST", "0.0.0.0"),
		Port:            getEnv("PUBLISH_PORT", "8080"),
		ReadTimeout:     getEnvDuration("PUBLISH_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("PUBLISH_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("PUBLISH_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("PUBLISH_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// loadPipelineConfig loads pipeline configuration from environment
func loadPipelineConfig() PipelineConfig {
	cfg := PipelineConfig{
		Host:          getEnv("PUBLISH_PIPELINE_HOST", ""),
		IdentifierKey: getEnv("PUBLISH_IDENTIFIER_KEY", "publishable"),
		WatchPlugins:  getEnvBool("PUBLISH_WATCH_PLUGINS", false),
	}

	if paths := getEnv("PUBLISH_PLUGIN_PATHS", ""); paths != "" {
		for _, path := range strings.Split(paths, ":") {
			if path = strings.TrimSpace(path); path != "" {
				cfg.PluginPaths = append(cfg.PluginPaths, path)
			}
		}
	}

	return cfg
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       parseLogLevel(getEnv("PUBLISH_LOG_LEVEL", "info")),
		MetricsEnabled: getEnvBool("PUBLISH_METRICS_ENABLED", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Pipeline.IdentifierKey == "" {
		return fmt.Errorf("identifier key is required")
	}

	return nil
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
