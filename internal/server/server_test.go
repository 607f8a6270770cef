package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gymclub/pkg/logger"
)

type readyFlag bool

func (r readyFlag) Ready() bool { return bool(r) }

func TestEndpoints(t *testing.T) {
	tests := []struct {
		name   string
		ready  Readiness
		path   string
		status int
		body   string
	}{
		{"health", readyFlag(false), "/health", http.StatusOK, "OK"},
		{"ready", readyFlag(true), "/ready", http.StatusOK, "READY"},
		{"not ready", readyFlag(false), "/ready", http.StatusServiceUnavailable, "NOT READY"},
		{"no component", nil, "/ready", http.StatusServiceUnavailable, "NOT READY"},
		{"unknown path", readyFlag(true), "/webhook", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer("0", tt.ready, logger.NewNop())
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}
