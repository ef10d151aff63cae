// Package plugins provides discovery, registration, and compatibility filtering
// for publishing-pipeline plugins.
//
// # Overview
//
// Plugins are described by YAML manifests (plugin.yaml) living in registered
// filesystem locations. A manifest declares the plugin's name, pipeline stage,
// supported hosts and family patterns, and the runtime it binds to: a Go
// factory registered in-process by name. Discovery scans the registered
// locations at call time, so registering or deregistering a path is visible to
// the very next call.
//
// # Registry
//
// Register a plugin location and discover validators:
//
//	registry := plugins.NewRegistry(nil)
//	if err := registry.RegisterPluginPath("/studio/publish/plugins"); err != nil {
//		log.Fatal(err)
//	}
//	defs, err := registry.Discover(plugins.StageValidation, "")
//
// A process-wide default registry backs the package-level RegisterPluginPath,
// DeregisterAll, and Discover functions.
//
// # Compatibility
//
// Filtering matches plugins and instances in both directions by host (exact
// membership) and family (anchored pattern match):
//
//	compatible := plugins.PluginsByInstance(defs, inst)
//	seq := plugins.InstancesByPlugin(ctx.Instances(), def)
//
// # Runtimes
//
// Concrete plugin behavior is Go code registered as a factory:
//
//	plugins.RegisterRuntime("ExtractAlembic", func(m *plugins.Manifest) (plugins.Plugin, error) {
//		return plugins.NewProcessorPlugin(m, extractAlembic), nil
//	})
//
// A fresh plugin value is constructed per invocation via Definition.New; the
// core never caches live plugin objects across discovery calls.
//
// # Related Packages
//
//   - pkg/pipeline: Context, Instance, and the outcome stream protocol
//   - pkg/runner: stage orchestration
package plugins
