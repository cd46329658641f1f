package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclayer/formlens/internal/extract"
	"github.com/doclayer/formlens/internal/form"
)

type stubService struct {
	result extract.Result
	err    error
	got    extract.Context
}

func (s *stubService) Process(ctx extract.Context) (extract.Result, error) {
	s.got = ctx
	return s.result, s.err
}

func newTestServer(service extractor) *Server {
	return NewServer(Config{Host: "localhost", Port: 8080, MaxUploadMB: 10, TimeoutSec: 30}, service)
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.healthHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.NotEmpty(t, resp.Time)
}

func TestHealthHandlerRejectsPost(t *testing.T) {
	s := newTestServer(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.healthHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFormsHandlerAccepted(t *testing.T) {
	stub := &stubService{result: extract.Result{
		FileName:       "form.pdf",
		FileSize:       4,
		ProcessingMode: extract.ModePDFUpload,
		Status:         extract.StatusProcessed,
		Document:       form.Document{Meta: form.Meta{SchemaVersion: form.SchemaVersion, Pages: 1}},
	}}
	s := newTestServer(stub)

	body, contentType := multipartBody(t, map[string]string{"mode": "PDF_UPLOAD"}, "form.pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/api/forms", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.formsHandler(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var result extract.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, extract.StatusProcessed, result.Status)
	assert.Equal(t, "2.0", result.Document.Meta.SchemaVersion)

	assert.Equal(t, extract.ModePDFUpload, stub.got.Mode)
	assert.Equal(t, "form.pdf", stub.got.Filename)
	assert.Equal(t, []byte("%PDF"), stub.got.Upload)
}

func TestFormsHandlerModeFromQuery(t *testing.T) {
	stub := &stubService{result: extract.Result{Status: extract.StatusProcessed}}
	s := newTestServer(stub)

	body, contentType := multipartBody(t, nil, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/forms?mode=reference_images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.formsHandler(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, extract.ModeReferenceImages, stub.got.Mode)
	assert.Empty(t, stub.got.Upload)
}

func TestFormsHandlerUnknownMode(t *testing.T) {
	s := newTestServer(&stubService{})

	body, contentType := multipartBody(t, map[string]string{"mode": "GUESSING"}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/forms", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.formsHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFormsHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"input error", fmt.Errorf("%w: empty upload", extract.ErrInput), http.StatusBadRequest},
		{"configuration error", fmt.Errorf("%w: no tessdata", extract.ErrConfiguration), http.StatusInternalServerError},
		{"resource error", fmt.Errorf("%w: missing image", extract.ErrResource), http.StatusInternalServerError},
		{"processing error", fmt.Errorf("%w: bad pdf", extract.ErrProcessing), http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestServer(&stubService{err: c.err})

			body, contentType := multipartBody(t, nil, "", nil)
			req := httptest.NewRequest(http.MethodPost, "/api/forms", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			s.formsHandler(rec, req)

			require.Equal(t, c.want, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestFormsHandlerRejectsGet(t *testing.T) {
	s := newTestServer(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/forms", nil)
	rec := httptest.NewRecorder()
	s.formsHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFormsHandlerBadBody(t *testing.T) {
	s := newTestServer(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/forms", bytes.NewBufferString("not multipart"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.formsHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetupRoutes(t *testing.T) {
	s := newTestServer(&stubService{result: extract.Result{Status: extract.StatusProcessed}})
	mux := http.NewServeMux()
	s.SetupRoutes(mux)

	ts := httptest.NewServer(mux)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	metrics, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = metrics.Body.Close() }()
	assert.Equal(t, http.StatusOK, metrics.StatusCode)
}
