package plugins

import (
	"context"

	"github.com/platinummonkey/publish/pkg/pipeline"
)

// Plugin is the base contract every plugin variant implements: declared
// metadata plus the uniform processing entry point. Plugins are stateless and
// re-instantiable; a fresh value is constructed per invocation.
type Plugin interface {
	// Manifest returns the metadata the plugin was loaded with, including
	// its stage, supported hosts, and family patterns.
	Manifest() *Manifest

	// Process runs the plugin against a context and returns a lazy stream
	// of per-instance outcomes. Per-instance failures travel in the
	// outcome's Err slot and must never abort the stream itself.
	Process(ctx context.Context, c *pipeline.Context) *pipeline.Stream
}

// Stage tags the pipeline phase a plugin belongs to. The set is open ended:
// discovery classifies by whatever tag a manifest declares, and only the four
// conventional stages get constants here.
type Stage string

const (
	StageSelection  Stage = "selectors"
	StageValidation Stage = "validators"
	StageExtraction Stage = "extractors"
	StageConform    Stage = "conforms"
)

// Stages returns the conventional stages in pipeline order.
func Stages() []Stage {
	return []Stage{StageSelection, StageValidation, StageExtraction, StageConform}
}

// Factory constructs a plugin from its manifest. Factories are registered
// process-wide by runtime name and bound to manifests at discovery time.
type Factory func(m *Manifest) (Plugin, error)

// ValidationError represents a manifest validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
