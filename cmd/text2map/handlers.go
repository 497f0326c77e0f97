// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	text2map "github.com/nicholasgasior/text2map-go"
	"github.com/nicholasgasior/text2map-go/internal/llm"
)

const (
	// multipartOverhead is allowed on top of the file size limit for form
	// boundaries and part headers.
	multipartOverhead = 1 << 20
	// maxMemory is the part of a multipart form kept in memory.
	maxMemory = 32 << 20
)

type server struct {
	svc *text2map.Service
	cfg text2map.ServerConfig
}

func newServer(svc *text2map.Service, cfg text2map.ServerConfig) *server {
	return &server{svc: svc, cfg: cfg}
}

// routes builds the mux and wraps it in the middleware chain:
// recovery -> cors -> request id -> auth -> logging -> mux
func (s *server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /generate-from-file", s.handleGenerateFromFile)
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("GET /supported-formats", s.handleSupportedFormats)

	var handler http.Handler = mux
	handler = logMiddleware(handler)
	handler = authMiddleware(s.cfg.APIKey, handler)
	handler = requestIDMiddleware(handler)
	handler = corsMiddleware(s.cfg.CORSOrigins, handler)
	handler = recoveryMiddleware(handler)
	return handler
}

// GET /
func (s *server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "text2map backend is running",
		"status":  "healthy",
	})
}

// GET /health
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "ok",
		"status":  "healthy",
	})
}

// POST /generate
// Accepts JSON {"text": "..."}.
func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	// Characters are at most 4 bytes in UTF-8; JSON escaping may add more.
	r.Body = http.MaxBytesReader(w, r.Body, int64(s.svc.MaxTextLength())*6+4096)

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("text exceeds the %d character limit", s.svc.MaxTextLength()), "validation_error")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON: expected {\"text\": \"...\"}", "validation_error")
		return
	}

	md, err := s.svc.GenerateFromText(ctx, req.Text)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"mindmap_data": md,
	})
}

// POST /generate-from-file
// Accepts a multipart upload in the "file" field.
func (s *server) handleGenerateFromFile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	res, err := s.svc.GenerateFromFile(ctx, filename, data)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mindmap_data":   res.Markdown,
		"extracted_text": res.ExtractedText,
		"filename":       res.Filename,
		"file_size":      res.FileSize,
		"format":         res.Format,
		"charset":        res.Charset,
		"content_type":   res.ContentType,
	})
}

// POST /extract
// Returns the normalized text of an upload without calling the model.
func (s *server) handleExtract(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	res, err := s.svc.Dispatcher().Extract(filename, data)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"extracted_text": res.Content,
		"filename":       filename,
		"file_size":      len(data),
		"format":         res.Format,
		"charset":        res.Charset,
		"content_type":   text2map.DetectContentType(data),
	})
}

// GET /supported-formats
func (s *server) handleSupportedFormats(w http.ResponseWriter, r *http.Request) {
	d := s.svc.Dispatcher()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"formats":          d.SupportedExtensions(),
		"max_file_size_mb": d.MaxFileSize() / (1024 * 1024),
	})
}

func (s *server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.cfg.RequestTimeout > 0 {
		return context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	}
	return context.WithCancel(r.Context())
}

// readUpload reads the "file" part of a multipart request. On failure it
// writes the error response and returns false.
func (s *server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	maxSize := s.svc.Dispatcher().MaxFileSize()
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file size exceeds the %d MB limit", maxSize/(1024*1024)), "size_exceeded")
			return "", nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid request: expected multipart form with a file field", "validation_error")
		return "", nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required", "validation_error")
		return "", nil, false
	}
	defer file.Close()

	// Sanitise filename to prevent path traversal.
	name := filepath.Base(header.Filename)
	if header.Filename == "" || name == "." || name == string(filepath.Separator) {
		writeError(w, http.StatusBadRequest, "filename is required", "validation_error")
		return "", nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file", "validation_error")
		slog.Error("reading upload", "filename", name, "error", err)
		return "", nil, false
	}
	return name, data, true
}

// writeServiceError maps extraction and generation errors to HTTP statuses.
func (s *server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := classifyError(err)
	detail := err.Error()
	switch {
	case errors.Is(err, text2map.ErrGenerationFailed):
		detail = "AI service returned no output"
		if cause := errors.Unwrap(err); cause != nil {
			detail = "AI service failed: " + llm.SanitizeForClient(cause)
		}
	case status == http.StatusInternalServerError && text2map.KindOf(err) == 0:
		detail = "internal server error"
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, "request failed",
		"path", r.URL.Path,
		"status", status,
		"error_type", kind,
		"error", err,
		"request_id", requestIDFrom(r.Context()),
	)
	writeError(w, status, detail, kind)
}

// classifyError returns the HTTP status and error_type for err.
func classifyError(err error) (int, string) {
	kind := text2map.KindOf(err)
	switch {
	case errors.Is(err, text2map.ErrSizeExceeded):
		return http.StatusRequestEntityTooLarge, kind.String()
	case errors.Is(err, text2map.ErrEmptyInput), errors.Is(err, text2map.ErrTextTooLong):
		return http.StatusBadRequest, "validation_error"
	case text2map.IsClientError(err):
		return http.StatusBadRequest, kind.String()
	case errors.Is(err, text2map.ErrGenerationFailed):
		return http.StatusBadGateway, "generation_failed"
	case kind != 0:
		return http.StatusInternalServerError, kind.String()
	}
	return http.StatusInternalServerError, "internal_error"
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, errorType string) {
	writeJSON(w, status, map[string]string{
		"detail":     msg,
		"error_type": errorType,
	})
}
