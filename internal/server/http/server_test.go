package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	cfgpkg "github.com/epochline/epochline/internal/config"
	"github.com/epochline/epochline/internal/runtime"
	"github.com/epochline/epochline/internal/timeline"
	logpkg "github.com/epochline/epochline/pkg/log"
)

const testOwnerToken = "owner-secret"

// memDoc is an in-memory stand-in for the remote versioned store.
type memDoc struct {
	mu  sync.Mutex
	doc []byte
	rev int
}

func (m *memDoc) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		token := fmt.Sprintf("v%d", m.rev)
		switch r.Method {
		case http.MethodGet:
			if m.doc == nil {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("ETag", `"`+token+`"`)
			w.Write(m.doc)
		case http.MethodPut:
			var env struct {
				Content json.RawMessage `json:"content"`
			}
			body, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(body, &env); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if r.Header.Get("If-None-Match") == "*" {
				if m.doc != nil {
					w.WriteHeader(http.StatusPreconditionFailed)
					return
				}
			} else if r.Header.Get("If-Match") != token {
				w.WriteHeader(http.StatusPreconditionFailed)
				return
			}
			m.doc = env.Content
			m.rev++
			w.Header().Set("ETag", fmt.Sprintf("%q", fmt.Sprintf("v%d", m.rev)))
			w.WriteHeader(http.StatusOK)
		}
	})
}

func (m *memDoc) seed(t *testing.T, col timeline.Collection) {
	t.Helper()
	b, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	m.mu.Lock()
	m.doc = b
	m.rev = 1
	m.mu.Unlock()
}

func newServerForTest(t *testing.T, m *memDoc) *Server {
	t.Helper()
	remote := httptest.NewServer(m.handler())
	t.Cleanup(remote.Close)

	cfg := cfgpkg.Default()
	cfg.Store.BaseURL = remote.URL
	cfg.Owner.Token = testOwnerToken
	cfg.CacheTTLMs = 0

	logger := logpkg.NewLogger(logpkg.WithOutput(logpkg.NewNullOutput()))
	rt, err := runtime.Open(runtime.Options{DataDir: t.TempDir(), Config: cfg, Logger: logger})
	if err != nil {
		t.Fatalf("rt open: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	return New(rt)
}

func doReq(s *Server, method, path, body, token string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	return w
}

func seeded(t *testing.T) (*memDoc, *Server) {
	t.Helper()
	m := &memDoc{}
	m.seed(t, timeline.Collection{Events: []timeline.Event{
		{ID: "1", Year: -44, Name: "Caesar assassinated", Category: timeline.CategoryEvent},
		{ID: "2", Year: 1440, Name: "Printing press", Category: timeline.CategoryInvention},
	}})
	return m, newServerForTest(t, m)
}

func TestHealthHandler(t *testing.T) {
	_, s := seeded(t)
	w := doReq(s, http.MethodGet, "/v1/healthz", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestCategoriesHandler(t *testing.T) {
	_, s := seeded(t)
	w := doReq(s, http.MethodGet, "/v1/categories", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Categories) != 5 || resp.Categories[0] != "invention" {
		t.Fatalf("categories: %v", resp.Categories)
	}
}

func TestListHandlerIsPublicAndSorted(t *testing.T) {
	_, s := seeded(t)
	w := doReq(s, http.MethodGet, "/v1/events/list", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var resp struct {
		Events []timeline.Event `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Events) != 2 || resp.Events[0].ID != "2" {
		t.Fatalf("events: %+v", resp.Events)
	}
}

func TestListHandlerFilterQuery(t *testing.T) {
	_, s := seeded(t)
	w := doReq(s, http.MethodGet, "/v1/events/list?category=invention", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var resp struct {
		Events []timeline.Event `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Events) != 1 || resp.Events[0].ID != "2" {
		t.Fatalf("events: %+v", resp.Events)
	}
}

func TestCreateHandler(t *testing.T) {
	_, s := seeded(t)
	body := `{"year":1969,"name":"Moon landing","category":"event"}`
	w := doReq(s, http.MethodPost, "/v1/events/create", body, testOwnerToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: %d body: %s", w.Code, w.Body.String())
	}
	var ev timeline.Event
	if err := json.Unmarshal(w.Body.Bytes(), &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.ID == "" || ev.Name != "Moon landing" {
		t.Fatalf("event: %+v", ev)
	}
}

func TestCreateHandlerRejectsBadToken(t *testing.T) {
	m, s := seeded(t)
	body := `{"year":1969,"name":"Moon landing","category":"event"}`
	for _, token := range []string{"", "wrong"} {
		w := doReq(s, http.MethodPost, "/v1/events/create", body, token)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("token %q: status %d", token, w.Code)
		}
	}
	if m.rev != 1 {
		t.Fatalf("document must be unchanged, rev=%d", m.rev)
	}
}

func TestCreateHandlerValidation(t *testing.T) {
	_, s := seeded(t)
	body := `{"year":99999,"name":"","category":"empire"}`
	w := doReq(s, http.MethodPost, "/v1/events/create", body, testOwnerToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", w.Code)
	}
	var resp struct {
		Fields []timeline.FieldError `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Fields) != 3 {
		t.Fatalf("fields: %+v", resp.Fields)
	}
}

func TestUpdateHandler(t *testing.T) {
	_, s := seeded(t)
	body := `{"id":"1","patch":{"year":-27,"endYear":476}}`
	w := doReq(s, http.MethodPost, "/v1/events/update", body, testOwnerToken)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", w.Code, w.Body.String())
	}
	var ev timeline.Event
	if err := json.Unmarshal(w.Body.Bytes(), &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.ID != "1" || ev.Year != -27 || ev.EndYear == nil || *ev.EndYear != 476 {
		t.Fatalf("event: %+v", ev)
	}
}

func TestUpdateHandlerMissingID(t *testing.T) {
	_, s := seeded(t)
	body := `{"id":"missing","patch":{"year":1}}`
	w := doReq(s, http.MethodPost, "/v1/events/update", body, testOwnerToken)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestDeleteHandler(t *testing.T) {
	_, s := seeded(t)
	w := doReq(s, http.MethodPost, "/v1/events/delete", `{"id":"1"}`, testOwnerToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status: %d", w.Code)
	}
	w = doReq(s, http.MethodGet, "/v1/events/list", "", "")
	var resp struct {
		Events []timeline.Event `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Events) != 1 {
		t.Fatalf("events: %+v", resp.Events)
	}
}

func TestSeedHandlerConflictsWhenDocumentExists(t *testing.T) {
	_, s := seeded(t)
	w := doReq(s, http.MethodPost, "/v1/events/seed", "", testOwnerToken)
	if w.Code != http.StatusConflict {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestAuditHandlerOwnerOnly(t *testing.T) {
	_, s := seeded(t)
	if w := doReq(s, http.MethodGet, "/v1/audit/list", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status: %d", w.Code)
	}

	body := `{"year":1969,"name":"Moon landing","category":"event"}`
	if w := doReq(s, http.MethodPost, "/v1/events/create", body, testOwnerToken); w.Code != http.StatusCreated {
		t.Fatalf("create status: %d", w.Code)
	}

	w := doReq(s, http.MethodGet, "/v1/audit/list", "", testOwnerToken)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var resp struct {
		Entries []struct {
			Action string `json:"action"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].Action != "create" {
		t.Fatalf("entries: %+v", resp.Entries)
	}
}

func TestCORSPreflight(t *testing.T) {
	_, s := seeded(t)
	w := doReq(s, http.MethodOptions, "/v1/events/list", "", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status: %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
}
