package server

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recruitdesk/internal/ai"
	"recruitdesk/internal/config"
	"recruitdesk/internal/engine"
	"recruitdesk/internal/errors"
	"recruitdesk/internal/observability"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (stubEmbedder) GetModelInfo(ctx context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Name: "stub-model", Available: true}
}

func (stubEmbedder) Close() error { return nil }

func newTestServer(t *testing.T, apiKeys []string) *Server {
	t.Helper()

	appCfg := &config.Config{
		Engine: config.EngineConfig{
			Workers:      1,
			MaxFiles:     3,
			MinTextChars: 10,
		},
		App: config.AppConfig{
			MaxFileSize: 1 << 20,
		},
		Observability: config.ObservabilityConfig{
			HealthCheck: config.HealthCheckConfig{
				Timeout: 2 * time.Second,
			},
		},
	}

	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	eng := engine.New(stubEmbedder{}, appCfg, nil, logger)
	if err := eng.CheckReadiness(context.Background()); err != nil {
		t.Fatalf("CheckReadiness failed: %v", err)
	}

	cfg := ServerConfig{
		Host:           "127.0.0.1",
		Port:           "0",
		Version:        "test",
		APIKeys:        apiKeys,
		MaxRequestSize: 1 << 20,
	}

	return NewServer(appCfg, cfg, eng, stubEmbedder{}, logger)
}

func newTestObservability(t *testing.T, s *Server) *observability.ObservabilityManager {
	t.Helper()

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, s.AppConfig)
	if err != nil {
		t.Fatalf("Failed to create observability manager: %v", err)
	}
	return om
}

// multipartRankRequest builds a POST /rank request with the given job
// description and uploaded files (filename -> content).
func multipartRankRequest(t *testing.T, jobDescription string, files map[string][]byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if jobDescription != "" {
		if err := writer.WriteField("job_description", jobDescription); err != nil {
			t.Fatalf("Failed to write job_description field: %v", err)
		}
	}

	for name, content := range files {
		part, err := writer.CreateFormFile("resumes", name)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/rank", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestAuthMiddlewareNoKeysConfigured(t *testing.T) {
	s := newTestServer(t, nil)

	called := false
	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/rank", nil))

	if !called {
		t.Error("Handler should be called when no API keys are configured")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t, []string{"test-key-12345"})

	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		setHeaders func(r *http.Request)
		wantStatus int
	}{
		{
			name:       "missing API key",
			setHeaders: func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "invalid API key",
			setHeaders: func(r *http.Request) {
				r.Header.Set("X-API-Key", "wrong-key")
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "valid API key header",
			setHeaders: func(r *http.Request) {
				r.Header.Set("X-API-Key", "test-key-12345")
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "valid bearer token",
			setHeaders: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer test-key-12345")
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/rank", nil)
			tt.setHeaders(req)

			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestRankHandlerValidation(t *testing.T) {
	s := newTestServer(t, nil)
	om := newTestObservability(t, s)
	handler := s.createRankHandler(om)

	pdfContent := []byte("%PDF-1.4 fake content")

	tests := []struct {
		name           string
		jobDescription string
		files          map[string][]byte
	}{
		{
			name:           "missing job description",
			jobDescription: "",
			files:          map[string][]byte{"resume.pdf": pdfContent},
		},
		{
			name:           "no resumes uploaded",
			jobDescription: "Backend engineer role",
			files:          nil,
		},
		{
			name:           "too many resumes",
			jobDescription: "Backend engineer role",
			files: map[string][]byte{
				"a.pdf": pdfContent,
				"b.pdf": pdfContent,
				"c.pdf": pdfContent,
				"d.pdf": pdfContent,
			},
		},
		{
			name:           "non-pdf extension",
			jobDescription: "Backend engineer role",
			files:          map[string][]byte{"resume.docx": pdfContent},
		},
		{
			name:           "pdf extension with wrong magic bytes",
			jobDescription: "Backend engineer role",
			files:          map[string][]byte{"resume.pdf": []byte("plain text masquerading as pdf")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := multipartRankRequest(t, tt.jobDescription, tt.files)
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != http.StatusBadRequest {
				body, _ := io.ReadAll(rec.Body)
				t.Errorf("Expected 400, got %d (body: %s)", rec.Code, body)
			}
		})
	}
}

func TestRankHandlerMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil)
	om := newTestObservability(t, s)
	handler := s.createRankHandler(om)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/rank", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for ready engine, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}
}

func TestRateLimiter(t *testing.T) {
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	limiter := NewRateLimiter(2, time.Minute, 2, logger)
	defer limiter.Close()

	if !limiter.Allow("client-a") {
		t.Error("First request should be allowed")
	}
	if !limiter.Allow("client-a") {
		t.Error("Second request should be allowed within burst")
	}
	if limiter.Allow("client-a") {
		t.Error("Third request should be rejected after burst is exhausted")
	}

	// A different key has its own bucket
	if !limiter.Allow("client-b") {
		t.Error("Different client should not share the bucket")
	}

	stats := limiter.GetStats()
	if active, ok := stats["active_limiters"].(int); !ok || active != 2 {
		t.Errorf("Expected 2 active limiters, got %v", stats["active_limiters"])
	}
	if burst, ok := stats["burst_capacity"].(int); !ok || burst != 2 {
		t.Errorf("Expected burst capacity 2, got %v", stats["burst_capacity"])
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		apiKey string
		want   string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"123456789abcdef", "12345678****"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.apiKey); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.apiKey, got, tt.want)
		}
	}
}
