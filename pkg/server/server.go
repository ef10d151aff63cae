package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/publish/pkg/config"
	"github.com/platinummonkey/publish/pkg/httputil"
	"github.com/platinummonkey/publish/pkg/observability"
	"github.com/platinummonkey/publish/pkg/plugins"
)

// Server handles the HTTP surface over the plugin registry and pipeline.
type Server struct {
	registry *plugins.Registry
	cfg      *config.Config
	log      *observability.Logger
	metrics  *observability.Metrics
	checker  *observability.HealthChecker
}

// New creates a server over a plugin registry.
func New(registry *plugins.Registry, cfg *config.Config, log *observability.Logger, metrics *observability.Metrics) *Server {
	if log == nil {
		log = observability.NewLogger(observability.InfoLevel, nil)
	}

	return &Server{
		registry: registry,
		cfg:      cfg,
		log:      log,
		metrics:  metrics,
		checker:  observability.NewHealthChecker(registry),
	}
}

// Routes builds the HTTP router.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(httputil.RecoveryMiddleware, httputil.LoggingMiddleware)

	r.HandleFunc("/v1/plugins", s.listPlugins).Methods("GET")
	r.HandleFunc("/v1/pipeline/run", s.runPipeline).Methods("POST")
	r.HandleFunc("/v1/health", s.checker.Liveness).Methods("GET")
	r.HandleFunc("/v1/ready", s.checker.Readiness).Methods("GET")

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}

	return r
}

// ListenAndServe starts the server with the configured timeouts.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Host + ":" + s.cfg.Server.Port,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	s.log.Infof("Listening on %s", srv.Addr)
	return srv.ListenAndServe()
}
