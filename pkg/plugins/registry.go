package plugins

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

// manifestCacheSize bounds the parsed-manifest cache. Entries are keyed by
// file path and modification time, so an edited manifest never serves stale.
const manifestCacheSize = 256

// Definition is one discovered plugin: its manifest plus the directory it was
// loaded from. Definitions are descriptions, not live plugins; call New to
// construct a fresh plugin value per invocation.
type Definition struct {
	Manifest *Manifest
	Dir      string
}

// New constructs a fresh plugin from the definition's bound runtime factory.
func (d *Definition) New() (Plugin, error) {
	name := d.Manifest.runtimeName()
	factory, ok := LookupRuntime(name)
	if !ok {
		return nil, fmt.Errorf("no runtime registered for plugin %s (runtime %q)", d.Manifest.Name, name)
	}

	plugin, err := factory(d.Manifest)
	if err != nil {
		return nil, fmt.Errorf("runtime %q failed to construct plugin: %w", name, err)
	}

	return plugin, nil
}

// Registry holds the set of filesystem locations scanned for plugin
// definitions. Discovery is a pure function of the registered paths at call
// time; registering or deregistering a path is visible to the next Discover.
type Registry struct {
	paths []string
	cache *lru.Cache[string, *Manifest]
	mu    sync.RWMutex
	log   *logrus.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *logrus.Logger) *Registry {
	if log == nil {
		log = logrus.New()
	}

	cache, _ := lru.New[string, *Manifest](manifestCacheSize)
	return &Registry{
		cache: cache,
		log:   log,
	}
}

// RegisterPluginPath adds a filesystem location to the scan set. The path must
// exist and be a directory; an unusable path fails immediately with a
// configuration error rather than being silently skipped, so failures are
// attributed at registration time. Registering the same path twice is a no-op
// and never double-counts discovery.
func (r *Registry) RegisterPluginPath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve plugin path %s: %v", ErrConfiguration, path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("%w: plugin path %s is not scannable: %v", ErrConfiguration, abs, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: plugin path %s is not a directory", ErrConfiguration, abs)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.paths {
		if existing == abs {
			return nil
		}
	}

	r.paths = append(r.paths, abs)
	r.log.Debugf("Registered plugin path: %s", abs)
	return nil
}

// DeregisterAll resets the scan set to empty. Safe to call at any time,
// including before any registration.
func (r *Registry) DeregisterAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.paths = nil
	r.cache.Purge()
}

// Paths returns the registered scan locations in registration order.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := make([]string, len(r.paths))
	copy(paths, r.paths)
	return paths
}

// Discover enumerates plugin definitions from the registered paths. An empty
// stage returns every discovered plugin regardless of stage; a non-empty
// pattern keeps only plugins whose name matches it (anchors supported, e.g.
// ".*Fail$"). A location containing a malformed definition never aborts
// discovery of the remaining valid ones; the failure is logged and scanning
// continues. Ordering is deterministic: lexicographic by defining location,
// then by entry name within it.
func (r *Registry) Discover(stage Stage, pattern string) ([]*Definition, error) {
	var nameRegex *regexp.Regexp
	if pattern != "" {
		var err error
		nameRegex, err = regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid discovery pattern %q: %v", ErrConfiguration, pattern, err)
		}
	}

	paths := r.Paths()
	sort.Strings(paths)

	var defs []*Definition
	for _, dir := range paths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			r.log.Warnf("Failed to read plugin path %s: %v", dir, err)
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			pluginDir := filepath.Join(dir, entry.Name())
			manifest, err := r.loadManifest(pluginDir)
			if err != nil {
				r.log.Warnf("Skipping plugin at %s: %v", pluginDir, err)
				continue
			}

			if stage != "" && manifest.Stage != stage {
				continue
			}
			if nameRegex != nil && !nameRegex.MatchString(manifest.Name) {
				continue
			}

			defs = append(defs, &Definition{Manifest: manifest, Dir: pluginDir})
		}
	}

	return defs, nil
}

// loadManifest parses and validates the manifest in pluginDir, serving from
// the cache when the file is unchanged.
func (r *Registry) loadManifest(pluginDir string) (*Manifest, error) {
	manifestPath := filepath.Join(pluginDir, ManifestFileName)

	info, err := os.Stat(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("no manifest: %w", err)
	}

	key := fmt.Sprintf("%s|%d", manifestPath, info.ModTime().UnixNano())
	if manifest, ok := r.cache.Get(key); ok {
		return manifest, nil
	}

	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	if errs := ValidateManifest(manifest); len(errs) > 0 {
		return nil, fmt.Errorf("manifest validation failed: %v", errs)
	}

	r.cache.Add(key, manifest)
	return manifest, nil
}

// InvalidateCache drops all cached manifests. The filesystem watcher calls
// this when a registered location changes.
func (r *Registry) InvalidateCache() {
	r.cache.Purge()
}

// defaultRegistry backs the package-level registry surface.
var defaultRegistry = NewRegistry(nil)

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// RegisterPluginPath adds a path to the process-wide registry.
func RegisterPluginPath(path string) error {
	return defaultRegistry.RegisterPluginPath(path)
}

// DeregisterAll resets the process-wide registry's scan set.
func DeregisterAll() {
	defaultRegistry.DeregisterAll()
}

// Discover enumerates plugin definitions from the process-wide registry.
func Discover(stage Stage, pattern string) ([]*Definition, error) {
	return defaultRegistry.Discover(stage, pattern)
}
