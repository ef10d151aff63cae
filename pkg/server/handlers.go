package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/platinummonkey/publish/pkg/httputil"
	"github.com/platinummonkey/publish/pkg/pipeline"
	"github.com/platinummonkey/publish/pkg/plugins"
	"github.com/platinummonkey/publish/pkg/runner"
)

// PluginInfo is the serialized form of a discovered definition.
type PluginInfo struct {
	Name     string        `json:"name"`
	Version  string        `json:"version"`
	Stage    plugins.Stage `json:"stage"`
	Hosts    []string      `json:"hosts,omitempty"`
	Families []string      `json:"families,omitempty"`
	Dir      string        `json:"dir"`
}

// listPlugins returns the definitions discovered from the registered paths,
// optionally filtered by ?type= (stage tag) and ?regex= (name pattern).
func (s *Server) listPlugins(w http.ResponseWriter, r *http.Request) {
	stage := plugins.Stage(r.URL.Query().Get("type"))
	pattern := r.URL.Query().Get("regex")

	defs, err := s.registry.Discover(stage, pattern)
	if err != nil {
		if errors.Is(err, plugins.ErrConfiguration) {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	infos := make([]PluginInfo, 0, len(defs))
	for _, def := range defs {
		infos = append(infos, PluginInfo{
			Name:     def.Manifest.Name,
			Version:  def.Manifest.Version,
			Stage:    def.Manifest.Stage,
			Hosts:    def.Manifest.Hosts,
			Families: def.Manifest.Families,
			Dir:      def.Dir,
		})
	}

	httputil.WriteSuccess(w, map[string]interface{}{"plugins": infos})
}

// InstanceSpec describes an instance submitted for a pipeline run, bypassing
// selection the way a test harness or remote host integration would.
type InstanceSpec struct {
	Name        string   `json:"name"`
	Nodes       []string `json:"nodes,omitempty"`
	Family      string   `json:"family,omitempty"`
	Host        string   `json:"host,omitempty"`
	Publishable bool     `json:"publishable"`
}

// RunRequest is the body of POST /v1/pipeline/run.
type RunRequest struct {
	Host      string          `json:"host,omitempty"`
	Stages    []plugins.Stage `json:"stages,omitempty"`
	Instances []InstanceSpec  `json:"instances,omitempty"`
}

// runPipeline builds a context from the submitted instances and runs the
// requested stages over it. Per-instance failures are reported, not raised;
// the response is 200 with the failure count in the report.
func (s *Server) runPipeline(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	c := pipeline.NewContext()
	for _, spec := range req.Instances {
		if spec.Name == "" {
			httputil.WriteBadRequest(w, "instance name is required")
			return
		}
		inst := pipeline.NewInstance(spec.Name)
		for _, node := range spec.Nodes {
			inst.Add(node)
		}
		inst.Config.Family = spec.Family
		inst.Config.Host = spec.Host
		inst.Config.Publishable = spec.Publishable
		c.Add(inst)
	}

	host := req.Host
	if host == "" {
		host = s.cfg.Pipeline.Host
	}

	run := runner.New(s.registry, runner.Options{
		Host:          host,
		IdentifierKey: s.cfg.Pipeline.IdentifierKey,
		Stages:        req.Stages,
		Log:           s.log,
		Metrics:       s.metrics,
	})

	report, err := run.Run(r.Context(), c)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteSuccess(w, report)
}
