package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tcardoso/minutegen/internal/extract"
	"github.com/tcardoso/minutegen/internal/session"
)

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.session.Snapshot())
}

func (s *Server) handleSetTranscript(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transcript string `json:"transcript"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Transcript) > s.cfg.MaxTranscriptChars {
		jsonError(w, fmt.Sprintf("transcript exceeds max length (%d characters)", s.cfg.MaxTranscriptChars), http.StatusRequestEntityTooLarge)
		return
	}
	if err := s.session.SetTranscript(req.Transcript); err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, s.session.Snapshot())
}

func (s *Server) handleImportTranscript(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}
	if len(data) > s.cfg.MaxTranscriptChars {
		jsonError(w, fmt.Sprintf("transcript exceeds max length (%d characters)", s.cfg.MaxTranscriptChars), http.StatusRequestEntityTooLarge)
		return
	}

	if err := s.session.ImportTranscript(sanitizeFilename(header.Filename), data); err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, s.session.Snapshot())
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.ExtractTimeout)
	defer cancel()

	if err := s.session.Extract(ctx); err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, s.session.Snapshot())
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Back(); err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, s.session.Snapshot())
}

func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Discard(); err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, s.session.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.session.Reset()
	writeJSON(w, s.session.Snapshot())
}

// sessionError maps session and extraction errors onto HTTP status codes:
// bad input is 400, illegal transitions are 409, extraction failures are 502.
func (s *Server) sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, extract.ErrEmptyTranscript), errors.Is(err, session.ErrInvalidFileType):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrConflict):
		jsonError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, extract.ErrExtractionFailed):
		jsonError(w, err.Error(), http.StatusBadGateway)
	default:
		jsonError(w, err.Error(), http.StatusBadGateway)
	}
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
