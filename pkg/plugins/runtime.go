package plugins

import (
	"fmt"
	"sync"
)

var (
	// runtimes is the package-level factory table
	runtimes = make(map[string]Factory)
	// mu protects concurrent access to the runtimes map
	mu sync.RWMutex
)

// RegisterRuntime adds a plugin factory to the process-wide table under the
// given runtime name. Manifests bind to it through their runtime field.
func RegisterRuntime(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("cannot register runtime with empty name")
	}
	if factory == nil {
		return fmt.Errorf("cannot register nil factory for runtime %s", name)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := runtimes[name]; exists {
		return fmt.Errorf("runtime already registered: %s", name)
	}

	runtimes[name] = factory
	return nil
}

// UnregisterRuntime removes a factory from the table.
func UnregisterRuntime(name string) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := runtimes[name]; !exists {
		return fmt.Errorf("runtime not found: %s", name)
	}

	delete(runtimes, name)
	return nil
}

// LookupRuntime retrieves a factory by runtime name.
func LookupRuntime(name string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()

	factory, exists := runtimes[name]
	return factory, exists
}

// RuntimeCount returns the number of registered factories.
func RuntimeCount() int {
	mu.RLock()
	defer mu.RUnlock()

	return len(runtimes)
}

// ClearRuntimes removes all registered factories.
func ClearRuntimes() {
	mu.Lock()
	defer mu.Unlock()

	runtimes = make(map[string]Factory)
}
