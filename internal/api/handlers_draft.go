package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tcardoso/minutegen/internal/editor"
)

func (s *Server) handleSetObjectives(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.edit(w, func(e *editor.Editor) { e.SetObjectives(req.Value) })
}

func (s *Server) handleSetParticipants(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Values []string `json:"values"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.edit(w, func(e *editor.Editor) { e.SetParticipants(req.Values) })
}

func (s *Server) handleSetDiscussion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Values []string `json:"values"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.edit(w, func(e *editor.Editor) { e.SetDiscussionPoints(req.Values) })
}

func (s *Server) handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	s.edit(w, func(e *editor.Editor) { e.AddParticipant() })
}

func (s *Server) handleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	index, ok := urlIndex(w, r)
	if !ok {
		return
	}
	s.edit(w, func(e *editor.Editor) { e.RemoveParticipant(index) })
}

func (s *Server) handleAddDiscussionPoint(w http.ResponseWriter, r *http.Request) {
	s.edit(w, func(e *editor.Editor) { e.AddDiscussionPoint() })
}

func (s *Server) handleRemoveDiscussionPoint(w http.ResponseWriter, r *http.Request) {
	index, ok := urlIndex(w, r)
	if !ok {
		return
	}
	s.edit(w, func(e *editor.Editor) { e.RemoveDiscussionPoint(index) })
}

func (s *Server) handleAddNextStep(w http.ResponseWriter, r *http.Request) {
	s.edit(w, func(e *editor.Editor) { e.AddNextStep() })
}

func (s *Server) handleUpdateNextStep(w http.ResponseWriter, r *http.Request) {
	index, ok := urlIndex(w, r)
	if !ok {
		return
	}
	var req struct {
		Field editor.StepField `json:"field"`
		Value string           `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	switch req.Field {
	case editor.FieldTask, editor.FieldResponsible, editor.FieldDeadline:
	default:
		jsonError(w, "field must be task, responsible, or deadline", http.StatusBadRequest)
		return
	}
	s.edit(w, func(e *editor.Editor) { e.UpdateNextStep(index, req.Field, req.Value) })
}

func (s *Server) handleRemoveNextStep(w http.ResponseWriter, r *http.Request) {
	index, ok := urlIndex(w, r)
	if !ok {
		return
	}
	s.edit(w, func(e *editor.Editor) { e.RemoveNextStep(index) })
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Save(); err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, s.session.Snapshot())
}

// edit applies fn under the session's edit state and replies with the
// refreshed snapshot.
func (s *Server) edit(w http.ResponseWriter, fn func(*editor.Editor)) {
	if err := s.session.Edit(fn); err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, s.session.Snapshot())
}

func urlIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		jsonError(w, "index must be a non-negative integer", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}
