package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	recruitdeskErrors "recruitdesk/internal/errors"
	"recruitdesk/internal/observability"
	"recruitdesk/internal/pdfx"
	"recruitdesk/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createRankHandler wraps the rank handler with observability
func (s *Server) createRankHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("recruitdesk.api")
		ctx, span := tracer.Start(ctx, "api.rank")
		defer span.End()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if err := r.ParseMultipartForm(s.MaxRequestSize); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid multipart form", err.Error(), http.StatusBadRequest)
			return
		}
		defer func() {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				s.Logger.Warn("Failed to clean up multipart form", "error", err.Error())
			}
		}()

		jobDescription := r.FormValue("job_description")
		if strings.TrimSpace(jobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "job_description field is required", http.StatusBadRequest)
			return
		}

		files := r.MultipartForm.File["resumes"]
		maxFiles := s.AppConfig.Engine.MaxFiles
		if len(files) == 0 {
			err := fmt.Errorf("no resumes uploaded")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "No resumes uploaded", "At least one resume file is required in the 'resumes' field", http.StatusBadRequest)
			return
		}
		if len(files) > maxFiles {
			err := fmt.Errorf("too many resumes: %d", len(files))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Too many resumes",
				fmt.Sprintf("A maximum of %d resumes is allowed per request", maxFiles), http.StatusBadRequest)
			return
		}

		// Reject non-PDF uploads before any model work
		for _, fh := range files {
			if err := s.validatePDFUpload(fh); err != nil {
				span.RecordError(err)
				span.SetAttributes(attribute.String("error.type", "validation"))
				writeErrorResponse(w, "Invalid resume file",
					fmt.Sprintf("%s: %s", fh.Filename, err.Error()), http.StatusBadRequest)
				return
			}
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(jobDescription)),
			attribute.Int("request.resume_count", len(files)),
			attribute.String("operation", "rank"),
		)

		docs := s.extractDocuments(files)

		result, err := s.Engine.RankBatch(ctx, jobDescription, docs)
		if err != nil {
			span.RecordError(err)
			s.writeRankError(w, err)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.ranked_count", len(result.RankedResumes)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// validatePDFUpload checks the file size, extension, and magic bytes of an upload
func (s *Server) validatePDFUpload(fh *multipart.FileHeader) error {
	if maxSize := s.AppConfig.App.MaxFileSize; maxSize > 0 && fh.Size > maxSize {
		return fmt.Errorf("file exceeds the maximum size of %d bytes", maxSize)
	}

	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return fmt.Errorf("only PDF files are accepted")
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	header := make([]byte, 5)
	n, err := io.ReadFull(f, header)
	if err != nil && n < len(header) {
		return fmt.Errorf("file is too small to be a PDF")
	}
	if !pdfx.IsPDF(header[:n]) {
		return fmt.Errorf("file content is not a valid PDF")
	}

	return nil
}

// extractDocuments writes each upload to a temp file and extracts its text.
// Per-file failures are carried in DocumentInput.Err so the engine can apply
// its own isolation policy; the batch is never aborted here.
func (s *Server) extractDocuments(files []*multipart.FileHeader) []types.DocumentInput {
	docs := make([]types.DocumentInput, 0, len(files))

	for _, fh := range files {
		text, err := s.extractOneDocument(fh)
		docs = append(docs, types.DocumentInput{
			Filename: fh.Filename,
			Text:     text,
			Err:      err,
		})
	}

	return docs
}

// extractOneDocument copies a single upload to a temp file and runs PDF
// text extraction against it. The temp file is always removed.
func (s *Server) extractOneDocument(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = src.Close() }()

	tmp, err := os.CreateTemp("", "recruitdesk-resume-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			s.Logger.Warn("Failed to remove temp file", "path", tmpPath, "error", err.Error())
		}
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return pdfx.ExtractText(tmpPath)
}

// writeRankError maps engine errors onto HTTP status codes
func (s *Server) writeRankError(w http.ResponseWriter, err error) {
	var appErr *recruitdeskErrors.AppError
	if !errors.As(err, &appErr) {
		writeErrorResponse(w, "Failed to rank resumes", err.Error(), http.StatusInternalServerError)
		return
	}

	switch {
	case appErr.Type == recruitdeskErrors.ErrorTypeValidation:
		writeErrorResponse(w, "Invalid request", appErr.Message, http.StatusBadRequest)
	case appErr.Code == recruitdeskErrors.ErrCodeModelNotReady:
		writeErrorResponse(w, "Model not ready", appErr.Message, http.StatusServiceUnavailable)
	default:
		writeErrorResponse(w, "Failed to rank resumes", appErr.Message, http.StatusInternalServerError)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordRateLimitHit(r.Context(),
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
