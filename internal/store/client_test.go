package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/epochline/epochline/internal/timeline"
)

// fakeRemote implements the remote store contract in memory: GET returns the
// document with an ETag token, PUT requires If-Match against the current
// token and bumps it on success.
type fakeRemote struct {
	mu             sync.Mutex
	doc            []byte
	rev            int
	reads          int
	writes         int
	failReads      int
	conflictWrites int
}

func (f *fakeRemote) token() string { return fmt.Sprintf("v%d", f.rev) }

func (f *fakeRemote) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			f.reads++
			if f.failReads > 0 {
				f.failReads--
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			if f.doc == nil {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("ETag", `"`+f.token()+`"`)
			w.Write(f.doc)
		case http.MethodPut:
			f.writes++
			if f.conflictWrites > 0 {
				f.conflictWrites--
				w.WriteHeader(http.StatusConflict)
				return
			}
			var env struct {
				Content json.RawMessage `json:"content"`
				Message string          `json:"message"`
			}
			body, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(body, &env); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if r.Header.Get("If-None-Match") == "*" {
				if f.doc != nil {
					w.WriteHeader(http.StatusPreconditionFailed)
					return
				}
			} else if r.Header.Get("If-Match") != f.token() {
				w.WriteHeader(http.StatusPreconditionFailed)
				return
			}
			f.doc = env.Content
			f.rev++
			w.Header().Set("ETag", `"`+f.token()+`"`)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func (f *fakeRemote) seed(t *testing.T, col timeline.Collection) {
	t.Helper()
	b, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		t.Fatalf("seed marshal: %v", err)
	}
	f.mu.Lock()
	f.doc = b
	f.rev = 1
	f.mu.Unlock()
}

func newClientForTest(t *testing.T, f *fakeRemote, ttl time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	c, err := New(Options{BaseURL: srv.URL, DocPath: "/timeline.json", CacheTTL: ttl})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func seedCollection() timeline.Collection {
	return timeline.Collection{Events: []timeline.Event{
		{ID: "1", Year: -44, Name: "X", Category: timeline.CategoryEvent},
	}}
}

func TestReadReturnsCollectionAndToken(t *testing.T) {
	f := &fakeRemote{}
	f.seed(t, seedCollection())
	c := newClientForTest(t, f, 0)

	col1, ver1, err := c.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	col2, ver2, err := c.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ver1 != "v1" || ver1 != ver2 {
		t.Fatalf("tokens: %q %q", ver1, ver2)
	}
	if !reflect.DeepEqual(col1, col2) {
		t.Fatalf("reads differ without a write")
	}
}

func TestReadMalformedDocumentIsFatal(t *testing.T) {
	f := &fakeRemote{doc: []byte("{not json"), rev: 1}
	c := newClientForTest(t, f, 0)
	_, _, err := c.Read(context.Background())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected StoreUnavailable, got %v", err)
	}
}

func TestReadNonOKStatus(t *testing.T) {
	f := &fakeRemote{failReads: 1}
	f.seed(t, seedCollection())
	f.failReads = 1
	c := newClientForTest(t, f, 0)
	_, _, err := c.Read(context.Background())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected StoreUnavailable, got %v", err)
	}
}

func TestWriteRequiresCurrentToken(t *testing.T) {
	f := &fakeRemote{}
	f.seed(t, seedCollection())
	c := newClientForTest(t, f, 0)

	_, err := c.Write(context.Background(), seedCollection(), "stale", "edit")
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected VersionConflict, got %v", err)
	}
	if errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("conflict must not match StoreUnavailable")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	f := &fakeRemote{}
	f.seed(t, seedCollection())
	c := newClientForTest(t, f, 0)

	col, ver, err := c.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	end := 476
	col.Events = append(col.Events, timeline.Event{
		ID: "2", Year: -27, Name: "Principate", Category: timeline.CategoryCivilization, EndYear: &end,
	})
	newVer, err := c.Write(context.Background(), col, ver, "add principate")
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if newVer == ver || newVer == "" {
		t.Fatalf("expected fresh token, got %q (was %q)", newVer, ver)
	}

	back, backVer, err := c.Read(context.Background())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if backVer != newVer {
		t.Fatalf("token mismatch after write: %q vs %q", backVer, newVer)
	}
	if !reflect.DeepEqual(col, back) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", col, back)
	}
}

func TestWriteCreateWithEmptyToken(t *testing.T) {
	f := &fakeRemote{}
	c := newClientForTest(t, f, 0)

	_, err := c.Write(context.Background(), seedCollection(), "", "seed")
	if err != nil {
		t.Fatalf("create write: %v", err)
	}
	col, _, err := c.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(col.Events) != 1 {
		t.Fatalf("expected seeded document, got %+v", col)
	}

	// A second create against an existing document conflicts.
	_, err = c.Write(context.Background(), seedCollection(), "", "seed again")
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected conflict on duplicate create, got %v", err)
	}
}

func TestCachedReadServesWithinTTL(t *testing.T) {
	f := &fakeRemote{}
	f.seed(t, seedCollection())
	c := newClientForTest(t, f, time.Minute)

	if _, _, err := c.Read(context.Background()); err != nil {
		t.Fatalf("read: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, _, err := c.CachedRead(context.Background()); err != nil {
			t.Fatalf("cached read: %v", err)
		}
	}
	if f.reads != 1 {
		t.Fatalf("expected 1 remote read, got %d", f.reads)
	}
}

func TestCacheInvalidatedAfterWrite(t *testing.T) {
	f := &fakeRemote{}
	f.seed(t, seedCollection())
	c := newClientForTest(t, f, time.Minute)

	col, ver, err := c.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, err := c.Write(context.Background(), col, ver, "touch"); err != nil {
		t.Fatalf("write: %v", err)
	}
	before := f.reads
	if _, _, err := c.CachedRead(context.Background()); err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if f.reads != before+1 {
		t.Fatalf("expected cache miss after write, reads %d -> %d", before, f.reads)
	}
}

func TestCacheExpiresByTTL(t *testing.T) {
	f := &fakeRemote{}
	f.seed(t, seedCollection())
	c := newClientForTest(t, f, 5*time.Second)

	now := time.Now()
	cacheNow = func() time.Time { return now }
	defer func() { cacheNow = time.Now }()

	if _, _, err := c.Read(context.Background()); err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, _, err := c.CachedRead(context.Background()); err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if f.reads != 1 {
		t.Fatalf("expected cache hit, reads=%d", f.reads)
	}

	now = now.Add(6 * time.Second)
	if _, _, err := c.CachedRead(context.Background()); err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if f.reads != 2 {
		t.Fatalf("expected cache expiry, reads=%d", f.reads)
	}
}

func TestCachedReadReturnsCopy(t *testing.T) {
	f := &fakeRemote{}
	f.seed(t, seedCollection())
	c := newClientForTest(t, f, time.Minute)

	col1, _, err := c.CachedRead(context.Background())
	if err != nil {
		t.Fatalf("cached read: %v", err)
	}
	col1.Events[0].Name = "mutated"
	col2, _, err := c.CachedRead(context.Background())
	if err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if col2.Events[0].Name != "X" {
		t.Fatalf("cache leaked a mutable reference")
	}
}
