// Package session owns the single-user view-state machine wiring transcript
// input, extraction, editing, and finalization.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tcardoso/minutegen/internal/editor"
	"github.com/tcardoso/minutegen/internal/extract"
	"github.com/tcardoso/minutegen/internal/minutes"
)

// State is a view state of the application.
type State string

const (
	StateInput   State = "input"
	StateLoading State = "loading"
	StateEdit    State = "edit"
	StateResult  State = "result"
)

// ErrInvalidFileType rejects a transcript upload that is not plain text,
// before its contents are read into the transcript.
var ErrInvalidFileType = errors.New("only plain-text (.txt) files are accepted")

// ErrConflict reports an operation that is illegal in the current state,
// including a second extraction while one is in flight.
var ErrConflict = errors.New("operation not allowed in current state")

// Extractor derives a draft from a transcript.
type Extractor interface {
	ExtractDraft(ctx context.Context, transcript string) (minutes.Draft, error)
}

// Session is the single-owner state container for one draft lifecycle:
// Input -> Loading -> Edit -> Result, with Result -> Edit (back),
// Edit -> Input (discard), and any state -> Input (reset). The Loading state
// structurally prevents a second extraction from being fired while one is in
// flight. Nothing is ever persisted; reset discards everything.
type Session struct {
	mu         sync.Mutex
	state      State
	transcript string
	editor     *editor.Editor
	final      *minutes.Draft

	extractor Extractor
	log       *slog.Logger
}

func New(extractor Extractor, log *slog.Logger) *Session {
	return &Session{
		state:     StateInput,
		extractor: extractor,
		log:       log,
	}
}

// State returns the current view state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetTranscript stages transcript text while in the Input state.
func (s *Session) SetTranscript(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInput {
		return fmt.Errorf("%w: transcript can only change in input state", ErrConflict)
	}
	s.transcript = text
	return nil
}

// ImportTranscript validates the uploaded file's declared type before reading
// its contents into the transcript. On rejection the staged transcript is
// left unchanged.
func (s *Session) ImportTranscript(filename string, data []byte) error {
	if strings.ToLower(filepath.Ext(filename)) != ".txt" {
		return ErrInvalidFileType
	}
	if !strings.HasPrefix(http.DetectContentType(data), "text/") {
		return ErrInvalidFileType
	}
	return s.SetTranscript(string(data))
}

// Extract runs the extraction round-trip: Input -> Loading, then Edit on
// success or back to Input on failure with no draft retained. The transcript
// survives a failure so the user can retry.
func (s *Session) Extract(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateLoading {
		s.mu.Unlock()
		return fmt.Errorf("%w: extraction already in flight", ErrConflict)
	}
	if s.state != StateInput {
		s.mu.Unlock()
		return fmt.Errorf("%w: extraction starts from input state", ErrConflict)
	}
	transcript := s.transcript
	if strings.TrimSpace(transcript) == "" {
		s.mu.Unlock()
		return extract.ErrEmptyTranscript
	}
	s.state = StateLoading
	s.mu.Unlock()

	// The round-trip runs outside the lock; the Loading state guards against
	// concurrent submits.
	draft, err := s.extractor.ExtractDraft(ctx, transcript)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateInput
		s.editor = nil
		s.log.Error("extraction failed", "error", err)
		return err
	}
	s.editor = editor.New(draft)
	s.state = StateEdit
	s.log.Info("extraction complete",
		"participants", len(draft.Participants),
		"discussion_points", len(draft.DiscussionPoints),
		"next_steps", len(draft.NextSteps),
	)
	return nil
}

// Edit applies fn to the draft editor while in the Edit state.
func (s *Session) Edit(fn func(*editor.Editor)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEdit {
		return fmt.Errorf("%w: no draft under edit", ErrConflict)
	}
	fn(s.editor)
	return nil
}

// Save finalizes the draft: Edit -> Result. The finalized draft is a frozen
// copy; renderers only ever see this value.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEdit {
		return fmt.Errorf("%w: no draft to finalize", ErrConflict)
	}
	final := s.editor.Draft()
	s.final = &final
	s.state = StateResult
	return nil
}

// Back returns from the finalized view to editing: Result -> Edit.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResult {
		return fmt.Errorf("%w: nothing to go back from", ErrConflict)
	}
	s.final = nil
	s.state = StateEdit
	return nil
}

// Discard drops the draft under edit: Edit -> Input. The staged transcript
// is kept.
func (s *Session) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEdit {
		return fmt.Errorf("%w: no draft to discard", ErrConflict)
	}
	s.editor = nil
	s.state = StateInput
	return nil
}

// Reset discards everything and returns to Input from any state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateInput
	s.transcript = ""
	s.editor = nil
	s.final = nil
}

// FinalDraft returns the finalized draft for export. Only legal in Result.
func (s *Session) FinalDraft() (minutes.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResult || s.final == nil {
		return minutes.Draft{}, fmt.Errorf("%w: no finalized draft", ErrConflict)
	}
	return s.final.Clone(), nil
}

// Snapshot is a read-only view of session state for the API.
type Snapshot struct {
	State      State          `json:"state"`
	Transcript string         `json:"transcript,omitempty"`
	Draft      *minutes.Draft `json:"draft,omitempty"`
}

// Snapshot returns the state plus whichever draft is visible in it: the
// draft under edit, or the finalized draft.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{State: s.state, Transcript: s.transcript}
	switch s.state {
	case StateEdit:
		d := s.editor.Draft()
		snap.Draft = &d
	case StateResult:
		d := s.final.Clone()
		snap.Draft = &d
	}
	return snap
}
