package runner

import (
	"time"

	"github.com/platinummonkey/publish/pkg/pipeline"
	"github.com/platinummonkey/publish/pkg/plugins"
)

// Report summarizes one pipeline run: every per-instance outcome, grouped by
// stage and plugin, plus aggregate counts.
type Report struct {
	RunID    string        `json:"run_id"`
	Host     string        `json:"host,omitempty"`
	Stages   []StageReport `json:"stages"`
	Failures int           `json:"failures"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// StageReport groups the plugin reports of one stage.
type StageReport struct {
	Stage   plugins.Stage  `json:"stage"`
	Plugins []PluginReport `json:"plugins"`
}

// PluginReport records the outcomes of one plugin invocation.
type PluginReport struct {
	Plugin   string          `json:"plugin"`
	Version  string          `json:"version,omitempty"`
	Outcomes []OutcomeRecord `json:"outcomes"`
}

// OutcomeRecord is the serializable form of one per-instance outcome. Err
// retains the original error for errors.Is checks; Error carries its message
// for serialization.
type OutcomeRecord struct {
	Instance InstanceRecord `json:"instance"`
	Error    string         `json:"error,omitempty"`
	Err      error          `json:"-"`
}

// InstanceRecord is the serializable form of an instance at reporting time.
// The publishable marker is keyed by the configured identifier key name, never
// a hardcoded literal.
type InstanceRecord struct {
	ID     string                 `json:"id"`
	Name   string                 `json:"name"`
	Nodes  []string               `json:"nodes,omitempty"`
	Config map[string]interface{} `json:"config,omitempty"`
}

// FirstError returns the first recorded per-instance failure, or nil. This is
// the caller-escalation hook: re-raising it turns a partial failure into a
// run-aborting one.
func (r *Report) FirstError() error {
	for _, stage := range r.Stages {
		for _, plugin := range stage.Plugins {
			for _, outcome := range plugin.Outcomes {
				if outcome.Err != nil {
					return outcome.Err
				}
			}
		}
	}
	return nil
}

// newInstanceRecord snapshots an instance for the report.
func newInstanceRecord(inst *pipeline.Instance, identifierKey string) InstanceRecord {
	record := InstanceRecord{
		ID:    inst.ID,
		Name:  inst.Name,
		Nodes: inst.Nodes(),
	}

	cfg := map[string]interface{}{
		identifierKey: inst.Config.Publishable,
	}
	if inst.Config.Family != "" {
		cfg["family"] = inst.Config.Family
	}
	if inst.Config.Host != "" {
		cfg["host"] = inst.Config.Host
	}
	if inst.Config.AssetID != "" {
		cfg["assetId"] = inst.Config.AssetID
	}
	for key, value := range inst.Config.Metadata {
		cfg[key] = value
	}
	record.Config = cfg

	return record
}
