package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tcardoso/minutegen/internal/config"
	"github.com/tcardoso/minutegen/internal/extract"
	"github.com/tcardoso/minutegen/internal/minutes"
	"github.com/tcardoso/minutegen/internal/session"
)

type stubExtractor struct {
	draft minutes.Draft
	err   error
	calls int
}

func (s *stubExtractor) ExtractDraft(ctx context.Context, transcript string) (minutes.Draft, error) {
	s.calls++
	if s.err != nil {
		return minutes.Draft{}, s.err
	}
	return s.draft, nil
}

func testConfig() config.Config {
	return config.Config{
		Port:               "0",
		AnthropicAPIKey:    "test-key",
		AnthropicModel:     "test-model",
		ExtractTimeout:     5 * time.Second,
		ExtractRetries:     1,
		MaxUploadBytes:     1 << 20,
		MaxTranscriptChars: 100000,
	}
}

func newTestServer(t *testing.T, ex session.Extractor) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess := session.New(ex, log)
	claude := extract.NewClient("test-key", "test-model", 5*time.Second, 1)
	return NewServer(sess, claude, log, testConfig())
}

func do(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) session.Snapshot {
	t.Helper()
	var snap session.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return snap
}

func sampleDraft() minutes.Draft {
	return minutes.Draft{
		Participants:     []string{"Alice", "Bob"},
		Objectives:       "Plan the launch.",
		DiscussionPoints: []string{"Budget approved.", "Timeline slipped a week."},
		NextSteps: []minutes.ActionItem{
			{Task: "Send invites", Responsible: "Alice", Deadline: "Friday"},
		},
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubExtractor{})
	rec := do(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestExtract_EmptyTranscriptIs400(t *testing.T) {
	ex := &stubExtractor{draft: sampleDraft()}
	srv := newTestServer(t, ex)

	rec := do(t, srv, http.MethodPost, "/api/extract", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if ex.calls != 0 {
		t.Errorf("extractor called %d times", ex.calls)
	}
	snap := decodeSnapshot(t, do(t, srv, http.MethodGet, "/api/session", nil))
	if snap.State != session.StateInput {
		t.Errorf("state = %q, want input", snap.State)
	}
}

func TestExtract_FailureIs502AndReturnsToInput(t *testing.T) {
	ex := &stubExtractor{err: extract.ErrExtractionFailed}
	srv := newTestServer(t, ex)

	rec := do(t, srv, http.MethodPost, "/api/transcript", map[string]string{"transcript": "Alice: hello"})
	if rec.Code != http.StatusOK {
		t.Fatalf("set transcript status = %d: %s", rec.Code, rec.Body.String())
	}
	rec = do(t, srv, http.MethodPost, "/api/extract", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502: %s", rec.Code, rec.Body.String())
	}

	snap := decodeSnapshot(t, do(t, srv, http.MethodGet, "/api/session", nil))
	if snap.State != session.StateInput {
		t.Errorf("state = %q, want input", snap.State)
	}
	if snap.Transcript != "Alice: hello" {
		t.Errorf("transcript = %q, want it preserved", snap.Transcript)
	}
}

func TestImportTranscript(t *testing.T) {
	srv := newTestServer(t, &stubExtractor{})

	upload := func(filename string, contents []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write(contents)
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/transcript/import", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec
	}

	rec := upload("notes.txt", []byte("Alice: the budget is approved."))
	if rec.Code != http.StatusOK {
		t.Fatalf("txt upload status = %d: %s", rec.Code, rec.Body.String())
	}
	snap := decodeSnapshot(t, rec)
	if snap.Transcript != "Alice: the budget is approved." {
		t.Errorf("transcript = %q", snap.Transcript)
	}

	rec = upload("slides.pdf", []byte("%PDF-1.4 not really"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("pdf upload status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	snap = decodeSnapshot(t, do(t, srv, http.MethodGet, "/api/session", nil))
	if snap.Transcript != "Alice: the budget is approved." {
		t.Errorf("rejected upload changed transcript: %q", snap.Transcript)
	}
}

func TestFullFlow(t *testing.T) {
	ex := &stubExtractor{draft: sampleDraft()}
	srv := newTestServer(t, ex)

	rec := do(t, srv, http.MethodPost, "/api/transcript", map[string]string{"transcript": "Alice: let's plan."})
	if rec.Code != http.StatusOK {
		t.Fatalf("set transcript: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, srv, http.MethodPost, "/api/extract", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("extract: %d %s", rec.Code, rec.Body.String())
	}
	snap := decodeSnapshot(t, rec)
	if snap.State != session.StateEdit {
		t.Fatalf("state = %q, want edit", snap.State)
	}

	// Exports are locked until the draft is finalized.
	if rec = do(t, srv, http.MethodGet, "/api/export/pdf", nil); rec.Code != http.StatusConflict {
		t.Errorf("pdf export before save = %d, want 409", rec.Code)
	}

	// Edit: retitle objectives, drop the second discussion point, fill in a step.
	rec = do(t, srv, http.MethodPut, "/api/draft/objectives", map[string]string{"value": "Ship it."})
	if rec.Code != http.StatusOK {
		t.Fatalf("set objectives: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, srv, http.MethodDelete, "/api/draft/discussion/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove discussion point: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, srv, http.MethodPut, "/api/draft/steps/0", map[string]string{"field": "responsible", "value": "Bob"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update step: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, srv, http.MethodPost, "/api/draft/save", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("save: %d %s", rec.Code, rec.Body.String())
	}
	snap = decodeSnapshot(t, rec)
	if snap.State != session.StateResult {
		t.Fatalf("state = %q, want result", snap.State)
	}
	if snap.Draft == nil || snap.Draft.Objectives != "Ship it." {
		t.Fatalf("finalized draft = %+v", snap.Draft)
	}
	if len(snap.Draft.DiscussionPoints) != 1 {
		t.Errorf("discussion points = %v", snap.Draft.DiscussionPoints)
	}
	if snap.Draft.NextSteps[0].Responsible != "Bob" {
		t.Errorf("step responsible = %q", snap.Draft.NextSteps[0].Responsible)
	}

	// Editing is frozen while finalized.
	rec = do(t, srv, http.MethodPut, "/api/draft/objectives", map[string]string{"value": "x"})
	if rec.Code != http.StatusConflict {
		t.Errorf("edit after save = %d, want 409", rec.Code)
	}

	rec = do(t, srv, http.MethodGet, "/api/export/pdf", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pdf export: %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("pdf content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "meeting_minutes.pdf") {
		t.Errorf("pdf disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("pdf body does not start with %PDF")
	}

	rec = do(t, srv, http.MethodGet, "/api/export/docx", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("docx export: %d %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "meeting_minutes.docx") {
		t.Errorf("docx disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("docx body is not a zip package")
	}

	rec = do(t, srv, http.MethodGet, "/api/export/text", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("text export: %d %s", rec.Code, rec.Body.String())
	}
	text := rec.Body.String()
	for _, want := range []string{"MEETING MINUTES", "Ship it.", "Alice, Bob", "Send invites"} {
		if !strings.Contains(text, want) {
			t.Errorf("text export missing %q:\n%s", want, text)
		}
	}

	rec = do(t, srv, http.MethodGet, "/api/minutes/preview", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("preview: %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "<h2>") {
		t.Errorf("preview has no section headings:\n%s", rec.Body.String())
	}

	// Back to editing, then discard everything.
	rec = do(t, srv, http.MethodPost, "/api/session/back", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("back: %d %s", rec.Code, rec.Body.String())
	}
	if snap = decodeSnapshot(t, rec); snap.State != session.StateEdit {
		t.Fatalf("state after back = %q", snap.State)
	}
	rec = do(t, srv, http.MethodPost, "/api/session/discard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("discard: %d %s", rec.Code, rec.Body.String())
	}
	if snap = decodeSnapshot(t, rec); snap.State != session.StateInput || snap.Draft != nil {
		t.Fatalf("state after discard = %+v", snap)
	}
}

func TestDraftEdit_RequiresEditState(t *testing.T) {
	srv := newTestServer(t, &stubExtractor{})
	rec := do(t, srv, http.MethodPost, "/api/draft/participants", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("add participant in input state = %d, want 409", rec.Code)
	}
	rec = do(t, srv, http.MethodPost, "/api/draft/save", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("save in input state = %d, want 409", rec.Code)
	}
}

func TestDraftEdit_BadIndexIs400(t *testing.T) {
	ex := &stubExtractor{draft: sampleDraft()}
	srv := newTestServer(t, ex)
	do(t, srv, http.MethodPost, "/api/transcript", map[string]string{"transcript": "x"})
	do(t, srv, http.MethodPost, "/api/extract", nil)

	rec := do(t, srv, http.MethodDelete, "/api/draft/participants/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric index = %d, want 400", rec.Code)
	}
	rec = do(t, srv, http.MethodPut, "/api/draft/steps/0", map[string]string{"field": "priority", "value": "high"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown step field = %d, want 400", rec.Code)
	}
	// Out of range removals are no-ops, not errors.
	rec = do(t, srv, http.MethodDelete, "/api/draft/participants/99", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("out-of-range index = %d, want 200", rec.Code)
	}
	snap := decodeSnapshot(t, rec)
	if len(snap.Draft.Participants) != 2 {
		t.Errorf("participants = %v, want untouched", snap.Draft.Participants)
	}
}

func TestSetTranscript_TooLongIs413(t *testing.T) {
	srv := newTestServer(t, &stubExtractor{})
	long := strings.Repeat("a", testConfig().MaxTranscriptChars+1)
	rec := do(t, srv, http.MethodPost, "/api/transcript", map[string]string{"transcript": long})
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestLLMStats(t *testing.T) {
	srv := newTestServer(t, &stubExtractor{})
	rec := do(t, srv, http.MethodGet, "/api/stats/llm", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Model string          `json:"model"`
		Stats json.RawMessage `json:"stats"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Model != "test-model" {
		t.Errorf("model = %q", resp.Model)
	}
}
