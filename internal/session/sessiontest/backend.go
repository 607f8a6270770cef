// Package sessiontest checks session.Backend implementations against the
// behaviour session.Store relies on.
package sessiontest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gymclub/internal/models"
	"gymclub/internal/session"
	"gymclub/pkg/logger"
)

// TestBackend runs the backend contract. newBackend is called once per
// subtest; backends that share storage between calls are fine because
// every subtest uses its own key prefix.
func TestBackend(t *testing.T, newBackend func(t *testing.T) session.Backend) {
	t.Helper()

	tests := []struct {
		name string
		run  func(t *testing.T, b session.Backend, key func(string) string)
	}{
		{"missing key is absent", testMissingKey},
		{"multi-key set", testMultiKeySet},
		{"set overwrites only given keys", testOverwrite},
		{"empty value is present", testEmptyValue},
		{"delete missing key", testDeleteMissing},
		{"delete leaves other keys", testDeleteSubset},
		{"store session survives restart", testStoreRestart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBackend(t)
			prefix := fmt.Sprintf("contract-%d", time.Now().UnixNano())
			key := func(k string) string { return prefix + ":" + k }
			t.Cleanup(func() {
				b.Delete(context.Background(), key("a"), key("b"), key("c"))
			})
			tt.run(t, b, key)
		})
	}
}

func mustGet(t *testing.T, b session.Backend, key string) (string, bool) {
	t.Helper()
	v, ok, err := b.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get(%q) error: %v", key, err)
	}
	return v, ok
}

func mustSet(t *testing.T, b session.Backend, values map[string]string) {
	t.Helper()
	if err := b.Set(context.Background(), values); err != nil {
		t.Fatalf("Set(%v) error: %v", values, err)
	}
}

func testMissingKey(t *testing.T, b session.Backend, key func(string) string) {
	if v, ok := mustGet(t, b, key("a")); ok || v != "" {
		t.Errorf("Get(missing) = %q, %v; want \"\", false", v, ok)
	}
}

func testMultiKeySet(t *testing.T, b session.Backend, key func(string) string) {
	mustSet(t, b, map[string]string{key("a"): "1", key("b"): "2", key("c"): "3"})

	for k, want := range map[string]string{"a": "1", "b": "2", "c": "3"} {
		if v, ok := mustGet(t, b, key(k)); !ok || v != want {
			t.Errorf("Get(%s) = %q, %v; want %q", k, v, ok, want)
		}
	}
}

func testOverwrite(t *testing.T, b session.Backend, key func(string) string) {
	mustSet(t, b, map[string]string{key("a"): "old", key("b"): "keep"})
	mustSet(t, b, map[string]string{key("a"): "new"})

	if v, _ := mustGet(t, b, key("a")); v != "new" {
		t.Errorf("Get(a) = %q, want new", v)
	}
	if v, ok := mustGet(t, b, key("b")); !ok || v != "keep" {
		t.Errorf("Get(b) = %q, %v; want keep", v, ok)
	}
}

func testEmptyValue(t *testing.T, b session.Backend, key func(string) string) {
	mustSet(t, b, map[string]string{key("a"): ""})
	if v, ok := mustGet(t, b, key("a")); !ok || v != "" {
		t.Errorf("Get(a) = %q, %v; want \"\", true", v, ok)
	}
}

func testDeleteMissing(t *testing.T, b session.Backend, key func(string) string) {
	ctx := context.Background()
	if err := b.Delete(ctx, key("a"), key("b")); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
	if err := b.Delete(ctx); err != nil {
		t.Errorf("Delete() with no keys error: %v", err)
	}
}

func testDeleteSubset(t *testing.T, b session.Backend, key func(string) string) {
	mustSet(t, b, map[string]string{key("a"): "1", key("b"): "2", key("c"): "3"})
	if err := b.Delete(context.Background(), key("a"), key("b")); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	for _, k := range []string{"a", "b"} {
		if _, ok := mustGet(t, b, key(k)); ok {
			t.Errorf("Get(%s) still present after delete", k)
		}
	}
	if v, ok := mustGet(t, b, key("c")); !ok || v != "3" {
		t.Errorf("Get(c) = %q, %v; want 3", v, ok)
	}
}

func testStoreRestart(t *testing.T, b session.Backend, key func(string) string) {
	ctx := context.Background()
	ns := key("store")
	want := models.Session{Token: "abc", UserID: 1, UserName: "A", UserEmail: "a@b.com"}

	first := session.NewStore(b, logger.NewNop(), session.WithNamespace(ns))
	if err := first.SetSession(ctx, want); err != nil {
		t.Fatalf("SetSession() error: %v", err)
	}
	t.Cleanup(func() { first.Clear(context.Background()) })

	restarted := session.NewStore(b, logger.NewNop(), session.WithNamespace(ns))
	if got, ok := restarted.Session(ctx); !ok || got != want {
		t.Fatalf("Session() after restart = %+v, %v; want %+v", got, ok, want)
	}

	if err := restarted.Clear(ctx); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, ok := session.NewStore(b, logger.NewNop(), session.WithNamespace(ns)).GetToken(ctx); ok {
		t.Error("token present after Clear and restart")
	}
}
