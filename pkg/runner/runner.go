package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/platinummonkey/publish/pkg/observability"
	"github.com/platinummonkey/publish/pkg/pipeline"
	"github.com/platinummonkey/publish/pkg/plugins"
)

// defaultIdentifierKey is used when Options leaves IdentifierKey empty; real
// deployments read it from pkg/config.
const defaultIdentifierKey = "publishable"

// Options configures a runner.
type Options struct {
	// Host names the authoring application this run publishes from.
	// Plugins restricted to other hosts are skipped entirely; empty runs
	// every plugin.
	Host string

	// IdentifierKey is the config key name used for the publishable marker
	// in serialized instance records.
	IdentifierKey string

	// Stages overrides the conventional stage order. Empty means
	// selection, validation, extraction, conform.
	Stages []plugins.Stage

	// Log receives structured run logging. Nil gets a default logger.
	Log *observability.Logger

	// Metrics receives run metrics. Nil disables metric recording.
	Metrics *observability.Metrics
}

// Runner executes ordered pipeline stages over one context.
type Runner struct {
	registry *plugins.Registry
	opts     Options
	log      *observability.Logger
}

// New creates a runner over a plugin registry.
func New(registry *plugins.Registry, opts Options) *Runner {
	log := opts.Log
	if log == nil {
		log = observability.NewLogger(observability.InfoLevel, nil)
	}
	if opts.IdentifierKey == "" {
		opts.IdentifierKey = defaultIdentifierKey
	}
	if len(opts.Stages) == 0 {
		opts.Stages = plugins.Stages()
	}

	return &Runner{
		registry: registry,
		opts:     opts,
		log:      log,
	}
}

// Run executes every configured stage in order over the context and returns
// the run report. Per-instance failures are recorded, counted, and isolated;
// only discovery or plugin-construction failures abort the run with an error.
func (r *Runner) Run(ctx context.Context, c *pipeline.Context) (*Report, error) {
	runID := uuid.NewString()
	log := r.log.WithField("run_id", runID)
	started := time.Now()

	report := &Report{
		RunID: runID,
		Host:  r.opts.Host,
	}

	for _, stage := range r.opts.Stages {
		stageReport, err := r.runStage(ctx, log, c, stage, report)
		if err != nil {
			return nil, err
		}
		report.Stages = append(report.Stages, *stageReport)
	}

	report.Elapsed = time.Since(started)

	if m := r.opts.Metrics; m != nil {
		m.InstancesInContext.Set(float64(c.Len()))
		result := "ok"
		if report.Failures > 0 {
			result = "partial_failure"
		}
		m.RunsTotal.WithLabelValues(result).Inc()
	}

	log.WithFields(map[string]interface{}{
		"instances": c.Len(),
		"failures":  report.Failures,
		"elapsed":   report.Elapsed.String(),
	}).Info("Pipeline run complete")

	return report, nil
}

// RunStage executes a single stage over the context.
func (r *Runner) RunStage(ctx context.Context, c *pipeline.Context, stage plugins.Stage) (*StageReport, error) {
	report := &Report{}
	stageReport, err := r.runStage(ctx, r.log, c, stage, report)
	if err != nil {
		return nil, err
	}
	return stageReport, nil
}

func (r *Runner) runStage(ctx context.Context, log *observability.Logger, c *pipeline.Context, stage plugins.Stage, report *Report) (*StageReport, error) {
	stageStarted := time.Now()

	defs, err := r.registry.Discover(stage, "")
	if err != nil {
		return nil, fmt.Errorf("discovery failed for stage %s: %w", stage, err)
	}

	if m := r.opts.Metrics; m != nil {
		m.DiscoveryTotal.WithLabelValues(string(stage)).Inc()
		m.DiscoveredPlugins.WithLabelValues(string(stage)).Set(float64(len(defs)))
	}

	stageReport := &StageReport{Stage: stage}
	stageLog := log.WithField("stage", string(stage))

	for _, def := range defs {
		if r.opts.Host != "" && !def.Manifest.SupportsHost(r.opts.Host) {
			stageLog.Debugf("Skipping %s: host %s not supported", def.Manifest.Name, r.opts.Host)
			continue
		}

		pluginReport, err := r.runPlugin(ctx, stageLog, c, stage, def, report)
		if err != nil {
			return nil, err
		}
		stageReport.Plugins = append(stageReport.Plugins, *pluginReport)
	}

	if m := r.opts.Metrics; m != nil {
		m.RunDuration.WithLabelValues(string(stage)).Observe(time.Since(stageStarted).Seconds())
	}

	return stageReport, nil
}

// runPlugin constructs a fresh plugin from its definition and fully drains its
// outcome stream. One plugin's stream is exhausted before the next plugin
// starts, so side effects never interleave across plugins.
func (r *Runner) runPlugin(ctx context.Context, log *observability.Logger, c *pipeline.Context, stage plugins.Stage, def *plugins.Definition, report *Report) (*PluginReport, error) {
	plugin, err := def.New()
	if err != nil {
		return nil, fmt.Errorf("failed to construct plugin %s: %w", def.Manifest.Name, err)
	}

	pluginReport := &PluginReport{
		Plugin:  def.Manifest.Name,
		Version: def.Manifest.Version,
	}
	pluginLog := log.WithField("plugin", def.Manifest.Name)

	stream := plugin.Process(ctx, c)
	for {
		out, ok := stream.Next()
		if !ok {
			break
		}

		record := OutcomeRecord{Err: out.Err}
		if out.Instance != nil {
			record.Instance = newInstanceRecord(out.Instance, r.opts.IdentifierKey)
		}

		result := "ok"
		if out.Err != nil {
			result = "error"
			record.Error = out.Err.Error()
			report.Failures++
			pluginLog.WithError(out.Err).WithField("instance", record.Instance.Name).Warn("Instance failed")
			if m := r.opts.Metrics; m != nil {
				m.InstanceFailuresTotal.WithLabelValues(string(stage), def.Manifest.Name).Inc()
			}
		}

		if m := r.opts.Metrics; m != nil {
			m.InstancesProcessedTotal.WithLabelValues(string(stage), result).Inc()
		}

		pluginReport.Outcomes = append(pluginReport.Outcomes, record)
	}

	return pluginReport, nil
}
