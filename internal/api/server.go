package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tcardoso/minutegen/internal/config"
	"github.com/tcardoso/minutegen/internal/extract"
	"github.com/tcardoso/minutegen/internal/session"
)

// Server is the HTTP API server for minutegen.
type Server struct {
	router  chi.Router
	session *session.Session
	claude  *extract.Client
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(sess *session.Session, claude *extract.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		session: sess,
		claude:  claude,
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", s.handleSession)
		r.Post("/session/back", s.handleBack)
		r.Post("/session/discard", s.handleDiscard)
		r.Post("/session/reset", s.handleReset)

		r.Post("/transcript", s.handleSetTranscript)
		r.Post("/transcript/import", s.handleImportTranscript)
		r.Post("/extract", s.handleExtract)

		r.Route("/draft", func(r chi.Router) {
			r.Put("/objectives", s.handleSetObjectives)
			r.Put("/participants", s.handleSetParticipants)
			r.Put("/discussion", s.handleSetDiscussion)

			r.Post("/participants", s.handleAddParticipant)
			r.Delete("/participants/{index}", s.handleRemoveParticipant)
			r.Post("/discussion", s.handleAddDiscussionPoint)
			r.Delete("/discussion/{index}", s.handleRemoveDiscussionPoint)
			r.Post("/steps", s.handleAddNextStep)
			r.Put("/steps/{index}", s.handleUpdateNextStep)
			r.Delete("/steps/{index}", s.handleRemoveNextStep)

			r.Post("/save", s.handleSave)
		})

		r.Get("/export/pdf", s.handleExportPDF)
		r.Get("/export/docx", s.handleExportDOCX)
		r.Get("/export/text", s.handleExportText)
		r.Get("/minutes/preview", s.handlePreview)

		r.Get("/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
