// Package config provides environment-based application configuration.
//
// # Overview
//
// Configuration is loaded from PUBLISH_-prefixed environment variables with
// sensible defaults, then validated once at startup.
//
// # Usage
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Publishing from host %q\n", cfg.Pipeline.Host)
//
// # Environment Variables
//
//	PUBLISH_HOST               Server bind address (default: 0.0.0.0)
//	PUBLISH_PORT               Server port (default: 8080)
//	PUBLISH_PLUGIN_PATHS       Colon-separated plugin scan locations
//	PUBLISH_PIPELINE_HOST      Authoring application name for this process
//	PUBLISH_IDENTIFIER_KEY     Report key marking publishable instances (default: publishable)
//	PUBLISH_WATCH_PLUGINS      Watch plugin paths for changes (default: false)
//	PUBLISH_LOG_LEVEL          debug, info, warn, error (default: info)
//	PUBLISH_METRICS_ENABLED    Expose Prometheus metrics (default: true)
package config
