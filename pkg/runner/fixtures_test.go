package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/publish/pkg/pipeline"
	"github.com/platinummonkey/publish/pkg/plugins"
)

// The fixture plugin set mirrors a small studio pipeline: two selectors (one
// for another host, to exercise host gating), two validators with different
// family restrictions, a working and a failing extractor, and a conformer.

const testHost = "test"

var (
	extractedMu    sync.Mutex
	extractedNames []string
)

func resetExtracted() {
	extractedMu.Lock()
	defer extractedMu.Unlock()
	extractedNames = nil
}

func extracted() []string {
	extractedMu.Lock()
	defer extractedMu.Unlock()
	names := make([]string, len(extractedNames))
	copy(names, extractedNames)
	return names
}

// selectorFactory returns a selection plugin that creates one instance with
// the given nodes and appends it to the context, yielding one outcome.
func selectorFactory(instanceName string, nodes ...string) plugins.Factory {
	return func(m *plugins.Manifest) (plugins.Plugin, error) {
		return plugins.NewProcessorPlugin(m, func(_ context.Context, c *pipeline.Context) *pipeline.Stream {
			done := false
			return pipeline.NewStream(func() (pipeline.Outcome, bool) {
				if done {
					return pipeline.Outcome{}, false
				}
				done = true

				inst := pipeline.NewInstance(instanceName)
				for _, node := range nodes {
					inst.Add(node)
				}
				inst.Config.Family = "test.family"
				inst.Config.Host = testHost
				inst.Config.Publishable = true
				c.Add(inst)

				return pipeline.Outcome{Instance: inst}, true
			})
		}), nil
	}
}

// validateNodeNames rejects nodes without a recognized type suffix.
func validateNodeNames(_ context.Context, inst *pipeline.Instance) error {
	for _, node := range inst.Nodes() {
		if !strings.HasSuffix(node, "_PLY") && !strings.HasSuffix(node, "_GRP") {
			return fmt.Errorf("node %q in instance %q is misnamed: %w", node, inst.Name, pipeline.ErrValidation)
		}
	}
	return nil
}

func extractInstance(_ context.Context, inst *pipeline.Instance) error {
	extractedMu.Lock()
	defer extractedMu.Unlock()
	extractedNames = append(extractedNames, inst.Name)
	return nil
}

func extractInstanceFail(_ context.Context, inst *pipeline.Instance) error {
	return fmt.Errorf("failed to write archive for %q: %w", inst.Name, pipeline.ErrExtraction)
}

func conformAsset(_ context.Context, inst *pipeline.Instance) error {
	inst.Config.AssetID = "ASSET-" + inst.Name
	return nil
}

func instanceProcessorFactory(fn plugins.InstanceFunc) plugins.Factory {
	return func(m *plugins.Manifest) (plugins.Plugin, error) {
		return plugins.NewInstanceProcessor(m, fn), nil
	}
}

var registerRuntimesOnce sync.Once

func registerTestRuntimes(t *testing.T) {
	t.Helper()

	registerRuntimesOnce.Do(func() {
		factories := map[string]plugins.Factory{
			"SelectObjectSet":      selectorFactory("test_instance", "test_node1_PLY", "test_node2_PLY", "test_node3_GRP"),
			"SelectRenderLayers":   selectorFactory("render_layers", "layer1_GRP"),
			"ValidateInstance":     instanceProcessorFactory(validateNodeNames),
			"ValidateOtherFamily":  instanceProcessorFactory(func(context.Context, *pipeline.Instance) error { return nil }),
			"ExtractInstances":     instanceProcessorFactory(extractInstance),
			"ExtractInstancesFail": instanceProcessorFactory(extractInstanceFail),
			"ConformAsset":         instanceProcessorFactory(conformAsset),
		}
		for name, factory := range factories {
			if err := plugins.RegisterRuntime(name, factory); err != nil {
				panic(err)
			}
		}
	})
}

func testManifests() []*plugins.Manifest {
	return []*plugins.Manifest{
		{
			Name:    "SelectObjectSet",
			Version: "1.0.0",
			Stage:   plugins.StageSelection,
			Hosts:   []string{testHost},
		},
		{
			Name:    "SelectRenderLayers",
			Version: "1.0.0",
			Stage:   plugins.StageSelection,
			Hosts:   []string{"maya"},
		},
		{
			Name:     "ValidateInstance",
			Version:  "1.0.0",
			Stage:    plugins.StageValidation,
			Hosts:    []string{testHost},
			Families: []string{`test\.family`},
		},
		{
			Name:     "ValidateOtherFamily",
			Version:  "1.0.0",
			Stage:    plugins.StageValidation,
			Hosts:    []string{testHost},
			Families: []string{`test\.other_family`},
		},
		{
			Name:     "ExtractInstances",
			Version:  "1.0.0",
			Stage:    plugins.StageExtraction,
			Hosts:    []string{testHost},
			Families: []string{`test\.family`},
		},
		{
			Name:     "ExtractInstancesFail",
			Version:  "1.0.0",
			Stage:    plugins.StageExtraction,
			Hosts:    []string{testHost},
			Families: []string{`test\.family`},
		},
		{
			Name:     "ConformAsset",
			Version:  "1.0.0",
			Stage:    plugins.StageConform,
			Hosts:    []string{testHost},
			Families: []string{`test\.family`},
		},
	}
}

// newTestRegistry writes the fixture plugin set to a temp directory and
// returns a registry scanning it.
func newTestRegistry(t *testing.T) *plugins.Registry {
	t.Helper()
	registerTestRuntimes(t)

	dir := t.TempDir()
	for _, m := range testManifests() {
		pluginDir := filepath.Join(dir, m.Name)
		require.NoError(t, os.MkdirAll(pluginDir, 0755))
		require.NoError(t, plugins.SaveManifest(m, filepath.Join(pluginDir, plugins.ManifestFileName)))
	}

	registry := plugins.NewRegistry(nil)
	require.NoError(t, registry.RegisterPluginPath(dir))
	return registry
}
