package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"anoa.com/fedipost/internal/config"
	"anoa.com/fedipost/internal/testutil"
	"anoa.com/fedipost/pkg/apperror"
	"anoa.com/fedipost/pkg/logger"
	"github.com/google/uuid"
)

type allowAll struct{}

func (allowAll) CheckAccess(r *http.Request) error { return nil }

type denyAll struct{}

func (denyAll) CheckAccess(r *http.Request) error { return apperror.ErrUnauthorized }

func newTestServer(t *testing.T, deps Dependencies) (http.Handler, *testutil.RecordingDispatcher) {
	t.Helper()
	dispatcher := &testutil.RecordingDispatcher{}
	if deps.Dispatcher == nil {
		deps.Dispatcher = dispatcher
	}
	cfg := &config.Config{
		AppEnv:         "test",
		Domain:         "social.example",
		AllowedOrigins: []string{"http://localhost:3000"},
	}
	srv := NewServer(cfg, testutil.NewDB(t), logger.Nop(), deps)
	return srv.Handler(), dispatcher
}

func call(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPostLifecycleOverHTTP(t *testing.T) {
	h, dispatcher := newTestServer(t, Dependencies{Access: allowAll{}})

	rec := call(h, http.MethodPost, "/api/posts", `{"text":"hello","visibility":"public","isSensitive":false,"files":[]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: want=%d got=%d body=%s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	rec = call(h, http.MethodGet, "/api/posts/"+created.ID.String(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status: want=%d got=%d body=%s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var got struct {
		Text       string            `json:"text"`
		Visibility string            `json:"visibility"`
		URI        string            `json:"uri"`
		Files      []json.RawMessage `json:"files"`
		Reactions  []json.RawMessage `json:"reactions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode get: %v", err)
	}
	if got.Text != "hello" || got.Visibility != "public" {
		t.Fatalf("post: got text=%q visibility=%q", got.Text, got.Visibility)
	}
	if got.Files == nil || len(got.Files) != 0 || got.Reactions == nil || len(got.Reactions) != 0 {
		t.Fatalf("lists: want [] and [] got files=%v reactions=%v", got.Files, got.Reactions)
	}

	rec = call(h, http.MethodDelete, "/api/posts/"+created.ID.String(), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status: want=%d got=%d", http.StatusNoContent, rec.Code)
	}
	rec = call(h, http.MethodGet, "/api/posts/"+created.ID.String(), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: want=%d got=%d", http.StatusNotFound, rec.Code)
	}

	if len(dispatcher.Calls) != 2 || dispatcher.Calls[0].Type != "Create" || dispatcher.Calls[1].Type != "Delete" {
		t.Fatalf("announcements: got=%+v", dispatcher.Calls)
	}
}

func TestReplyToUnknownPostOverHTTP(t *testing.T) {
	h, _ := newTestServer(t, Dependencies{Access: allowAll{}})

	body := `{"replyId":"` + uuid.NewString() + `","text":"hi","visibility":"home","isSensitive":false,"files":[]}`
	rec := call(h, http.MethodPost, "/api/posts", body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: want=%d got=%d", http.StatusNotFound, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "reply target") {
		t.Fatalf("body: got=%s", rec.Body.String())
	}
}

func TestAccessGateRunsBeforeHandlers(t *testing.T) {
	h, dispatcher := newTestServer(t, Dependencies{Access: denyAll{}})

	rec := call(h, http.MethodPost, "/api/posts", `{"text":"hello","visibility":"public","isSensitive":false,"files":[]}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: want=%d got=%d", http.StatusUnauthorized, rec.Code)
	}
	if len(dispatcher.Calls) != 0 {
		t.Fatalf("announcements: want=0 got=%d", len(dispatcher.Calls))
	}

	rec = call(h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: want=%d got=%d", http.StatusOK, rec.Code)
	}
}
