package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopFactory(m *Manifest) (Plugin, error) {
	return NewProcessorPlugin(m, nil), nil
}

func TestRegisterRuntime(t *testing.T) {
	t.Cleanup(ClearRuntimes)

	require.NoError(t, RegisterRuntime("Noop", noopFactory))

	factory, ok := LookupRuntime("Noop")
	assert.True(t, ok)
	assert.NotNil(t, factory)
	assert.Equal(t, 1, RuntimeCount())
}

func TestRegisterRuntime_Invalid(t *testing.T) {
	t.Cleanup(ClearRuntimes)

	assert.Error(t, RegisterRuntime("", noopFactory))
	assert.Error(t, RegisterRuntime("NilFactory", nil))
}

func TestRegisterRuntime_Duplicate(t *testing.T) {
	t.Cleanup(ClearRuntimes)

	require.NoError(t, RegisterRuntime("Noop", noopFactory))
	assert.Error(t, RegisterRuntime("Noop", noopFactory))
}

func TestUnregisterRuntime(t *testing.T) {
	t.Cleanup(ClearRuntimes)

	require.NoError(t, RegisterRuntime("Noop", noopFactory))
	require.NoError(t, UnregisterRuntime("Noop"))

	_, ok := LookupRuntime("Noop")
	assert.False(t, ok)
	assert.Error(t, UnregisterRuntime("Noop"))
}

func TestClearRuntimes(t *testing.T) {
	require.NoError(t, RegisterRuntime("Noop", noopFactory))
	ClearRuntimes()

	assert.Equal(t, 0, RuntimeCount())
}
