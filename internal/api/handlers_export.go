package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tcardoso/minutegen/internal/render"
	"github.com/tcardoso/minutegen/internal/session"
)

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	draft, err := s.session.FinalDraft()
	if err != nil {
		s.sessionError(w, err)
		return
	}
	out, err := render.PDF(draft, time.Now())
	if err != nil {
		jsonError(w, "pdf generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.PDFFileName))
	w.Write(out)
}

func (s *Server) handleExportDOCX(w http.ResponseWriter, r *http.Request) {
	draft, err := s.session.FinalDraft()
	if err != nil {
		s.sessionError(w, err)
		return
	}
	out, err := render.DOCX(draft, time.Now())
	if err != nil {
		jsonError(w, "docx generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.DOCXFileName))
	w.Write(out)
}

// handleExportText returns the clipboard-ready plain text rendition.
func (s *Server) handleExportText(w http.ResponseWriter, r *http.Request) {
	draft, err := s.session.FinalDraft()
	if err != nil {
		s.sessionError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, render.PlainText(draft))
}

// handlePreview renders whichever draft is visible, under edit or finalized,
// as an HTML fragment.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	snap := s.session.Snapshot()
	if snap.Draft == nil {
		s.sessionError(w, fmt.Errorf("%w: no draft to preview", session.ErrConflict))
		return
	}
	out, err := render.HTMLPreview(*snap.Draft, time.Now())
	if err != nil {
		jsonError(w, "preview generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(out)
}

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.claude == nil || s.claude.Stats == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model": s.claude.Model(),
		"stats": s.claude.Stats.Snapshot(),
	})
}
