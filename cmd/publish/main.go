package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/platinummonkey/publish/pkg/config"
	"github.com/platinummonkey/publish/pkg/observability"
	"github.com/platinummonkey/publish/pkg/pipeline"
	"github.com/platinummonkey/publish/pkg/plugins"
	"github.com/platinummonkey/publish/pkg/runner"
	"github.com/platinummonkey/publish/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Parse command line flags
	pluginDirs := flag.String("plugin-dirs", "", "Colon-separated plugin directories (overrides PUBLISH_PLUGIN_PATHS)")
	host := flag.String("host", "", "Authoring application name (overrides PUBLISH_PIPELINE_HOST)")
	serve := flag.Bool("serve", false, "Start the HTTP server instead of a one-shot run")
	listOnly := flag.Bool("list", false, "List discovered plugins and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *pluginDirs != "" {
		cfg.Pipeline.PluginPaths = strings.Split(*pluginDirs, ":")
	}
	if *host != "" {
		cfg.Pipeline.Host = *host
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)

	registry := plugins.Default()
	for _, path := range cfg.Pipeline.PluginPaths {
		if err := registry.RegisterPluginPath(path); err != nil {
			log.Fatalf("Failed to register plugin path: %v", err)
		}
	}

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	if *listOnly {
		listPlugins(registry)
		return
	}

	if cfg.Pipeline.WatchPlugins {
		watcher, err := plugins.NewWatcher(registry, nil)
		if err != nil {
			log.Fatalf("Failed to watch plugin paths: %v", err)
		}
		defer watcher.Close()
		watcher.Start(nil)
	}

	if *serve {
		srv := server.New(registry, cfg, logger, metrics)
		if err := srv.ListenAndServe(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	// One-shot run: selection populates the context, the remaining stages
	// process it. Failures are reported, not fatal.
	run := runner.New(registry, runner.Options{
		Host:          cfg.Pipeline.Host,
		IdentifierKey: cfg.Pipeline.IdentifierKey,
		Log:           logger,
		Metrics:       metrics,
	})

	c := pipeline.NewContext()
	report, err := run.Run(context.Background(), c)
	if err != nil {
		log.Fatalf("Pipeline run failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}

	if report.Failures > 0 {
		os.Exit(1)
	}
}

func listPlugins(registry *plugins.Registry) {
	defs, err := registry.Discover("", "")
	if err != nil {
		log.Fatalf("Discovery failed: %v", err)
	}

	for _, def := range defs {
		log.Printf("%s\t%s\t%s\t%s", def.Manifest.Stage, def.Manifest.Name, def.Manifest.Version, def.Dir)
	}
	log.Printf("%d plugins discovered", len(defs))
}
