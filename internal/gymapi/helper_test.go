package gymapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"gymclub/internal/apiclient"
	"gymclub/internal/session"
	"gymclub/pkg/logger"
)

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

// fakeBackend is a scripted gym backend that records every request.
type fakeBackend struct {
	router *mux.Router

	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Auth:   r.Header.Get("Authorization"),
		Body:   string(body),
	})
	f.mu.Unlock()
	f.router.ServeHTTP(w, r)
}

// reply registers a canned response for method and path (path without /api).
func (f *fakeBackend) reply(method, path string, status int, body string) {
	f.router.HandleFunc("/api"+path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}).Methods(method)
}

// drop closes the connection without replying.
func (f *fakeBackend) drop(method, path string) {
	f.router.HandleFunc("/api"+path, func(w http.ResponseWriter, _ *http.Request) {
		conn, _, err := w.(http.Hijacker).Hijack()
		if err == nil {
			conn.Close()
		}
	}).Methods(method)
}

func (f *fakeBackend) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func newFixture(t *testing.T) (*fakeBackend, *API, *session.Store) {
	t.Helper()

	backend := &fakeBackend{router: mux.NewRouter()}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	store := session.NewStore(session.NewMemoryBackend(), logger.NewNop())
	client, err := apiclient.New(srv.URL+"/api", store, logger.NewNop())
	if err != nil {
		t.Fatalf("apiclient.New() error: %v", err)
	}
	return backend, New(client, store, logger.NewNop()), store
}

func loggedIn(t *testing.T, store *session.Store) {
	t.Helper()
	if err := store.SetToken(context.Background(), "abc"); err != nil {
		t.Fatal(err)
	}
}
