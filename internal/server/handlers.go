package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/doclayer/formlens/internal/extract"
	"github.com/doclayer/formlens/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.GetVersion(),
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("failed to encode health response", "error", err)
	}
}

// formsHandler accepts a form document for extraction and returns the
// structured layout result.
func (s *Server) formsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	upload, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	mode, err := resolveMode(r)
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	result, err := s.service.Process(extract.Context{
		Upload:   upload,
		Filename: filename,
		Mode:     mode,
	})
	if err != nil {
		extractRequestsTotal.WithLabelValues(string(mode), "error").Inc()
		s.writeErrorResponse(w, err.Error(), statusForError(err))
		return
	}

	extractRequestsTotal.WithLabelValues(string(result.ProcessingMode), "success").Inc()
	extractDuration.WithLabelValues(string(result.ProcessingMode)).Observe(time.Since(start).Seconds())
	extractPagesProcessed.WithLabelValues(string(result.ProcessingMode)).Observe(float64(result.Document.Meta.Pages))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("failed to encode extraction response", "error", err)
	}
}

// readUpload reads the optional multipart "file" part. A request without a
// file part is valid, the reference image mode needs no upload.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (data []byte, filename string, ok bool) {
	maxBytes := s.maxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.writeErrorResponse(w, "failed to parse form data", http.StatusBadRequest)
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", true
		}
		s.writeErrorResponse(w, "invalid file upload", http.StatusBadRequest)
		return nil, "", false
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxBytes {
		s.writeErrorResponse(w, "file too large", http.StatusRequestEntityTooLarge)
		return nil, "", false
	}

	data, err = io.ReadAll(file)
	if err != nil {
		s.writeErrorResponse(w, "failed to read upload", http.StatusInternalServerError)
		return nil, "", false
	}
	uploadSizeBytes.Observe(float64(len(data)))

	return data, header.Filename, true
}

// resolveMode reads the optional mode parameter from the query string or the
// multipart form. An empty mode defers to the service default.
func resolveMode(r *http.Request) (extract.ProcessingMode, error) {
	raw := r.URL.Query().Get("mode")
	if raw == "" {
		raw = r.FormValue("mode")
	}
	if raw == "" {
		return "", nil
	}
	return extract.ParseMode(raw)
}

// statusForError maps extraction errors to HTTP status codes.
func statusForError(err error) int {
	if errors.Is(err, extract.ErrInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeErrorResponse writes a JSON error payload with the given status.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
