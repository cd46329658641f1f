package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/doclayer/formlens/internal/extract"
)

// extractor defines the methods the server needs from the extraction
// service.
type extractor interface {
	Process(ctx extract.Context) (extract.Result, error)
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	service     extractor
	maxUploadMB int64
	timeoutSec  int
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	MaxUploadMB int64
	TimeoutSec  int
}

// HealthResponse is the payload of the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// ErrorResponse is the payload of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer creates a new form extraction server instance.
func NewServer(config Config, service extractor) *Server {
	return &Server{
		service:     service,
		maxUploadMB: config.MaxUploadMB,
		timeoutSec:  config.TimeoutSec,
	}
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.observe(s.healthHandler))
	mux.HandleFunc("/api/forms", s.observe(s.formsHandler))
	mux.HandleFunc("/ws/extract", s.extractWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
