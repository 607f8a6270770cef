// internal/session/store.go
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"gymclub/internal/models"
	"gymclub/pkg/logger"
)

// Keys under which the session is persisted.
const (
	KeyToken     = "authToken"
	KeyUserID    = "userId"
	KeyUserName  = "userName"
	KeyUserEmail = "userEmail"
)

var allKeys = []string{KeyToken, KeyUserID, KeyUserName, KeyUserEmail}

// Backend is the durable key-value medium behind a Store.
// Delete of a missing key must not fail.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// Store keeps the current session in memory and mirrors it to a Backend.
// All methods are safe for concurrent use.
type Store struct {
	backend   Backend
	namespace string
	logger    *logger.Logger

	mu      sync.RWMutex
	loaded  bool
	current models.Session
}

type Option func(*Store)

// WithNamespace prefixes every key, so one backend can hold many sessions.
func WithNamespace(ns string) Option {
	return func(s *Store) { s.namespace = ns }
}

func NewStore(backend Backend, l *logger.Logger, opts ...Option) *Store {
	s := &Store{backend: backend, logger: l.Named("session")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(k string) string {
	if s.namespace == "" {
		return k
	}
	return s.namespace + ":" + k
}

// GetToken returns the in-memory token, falling back to the durable copy.
// Storage failures are logged and reported as an absent token.
func (s *Store) GetToken(ctx context.Context) (string, bool) {
	s.mu.RLock()
	if s.current.Token != "" {
		token := s.current.Token
		s.mu.RUnlock()
		return token, true
	}
	loaded := s.loaded
	s.mu.RUnlock()

	if loaded {
		return "", false
	}

	sess, err := s.load(ctx)
	if err != nil {
		s.logger.Errorw("Failed to read session", "error", err)
		return "", false
	}
	return sess.Token, sess.Token != ""
}

// Session returns the token together with the cached user identity.
func (s *Store) Session(ctx context.Context) (models.Session, bool) {
	s.mu.RLock()
	if s.loaded || s.current.Token != "" {
		sess := s.current
		s.mu.RUnlock()
		return sess, sess.Token != ""
	}
	s.mu.RUnlock()

	sess, err := s.load(ctx)
	if err != nil {
		s.logger.Errorw("Failed to read session", "error", err)
		return models.Session{}, false
	}
	return sess, sess.Token != ""
}

func (s *Store) load(ctx context.Context) (models.Session, error) {
	values := make(map[string]string, len(allKeys))
	for _, k := range allKeys {
		v, ok, err := s.backend.Get(ctx, s.key(k))
		if err != nil {
			return models.Session{}, fmt.Errorf("get %s: %w", k, err)
		}
		if ok {
			values[k] = v
		}
	}

	sess := models.Session{
		Token:     values[KeyToken],
		UserName:  values[KeyUserName],
		UserEmail: values[KeyUserEmail],
	}
	if raw := values[KeyUserID]; raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.logger.Warnw("Ignoring malformed stored user id", "value", raw)
		}
		sess.UserID = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A concurrent SetToken/Clear wins over what was read from storage.
	if s.loaded || s.current.Token != "" {
		return s.current, nil
	}
	s.current = sess
	s.loaded = true
	return sess, nil
}

// SetToken persists the token and updates the in-memory copy. The memory
// copy is updated even when persistence fails, so the token stays usable
// for the lifetime of the process; the returned error reports the loss
// of durability.
func (s *Store) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	s.current.Token = token
	s.loaded = true
	s.mu.Unlock()

	if err := s.backend.Set(ctx, map[string]string{s.key(KeyToken): token}); err != nil {
		s.logger.Errorw("Failed to persist token", "error", err)
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// SetSession stores the token and the user identity as one write.
func (s *Store) SetSession(ctx context.Context, sess models.Session) error {
	if sess.Token == "" {
		return errors.New("session: empty token")
	}

	s.mu.Lock()
	s.current = sess
	s.loaded = true
	s.mu.Unlock()

	err := s.backend.Set(ctx, map[string]string{
		s.key(KeyToken):     sess.Token,
		s.key(KeyUserID):    strconv.FormatInt(sess.UserID, 10),
		s.key(KeyUserName):  sess.UserName,
		s.key(KeyUserEmail): sess.UserEmail,
	})
	if err != nil {
		s.logger.Errorw("Failed to persist session", "error", err, "user_id", sess.UserID)
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Clear removes the token and user identity. Clearing an empty store is a
// no-op. Memory is cleared even if the backend delete fails.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.current = models.Session{}
	s.loaded = true
	s.mu.Unlock()

	return s.deleteAll(ctx)
}

// Invalidate clears the session only while it still holds token. It is
// used when a request carrying token was rejected, so a session created
// after that request was sent survives the late rejection.
func (s *Store) Invalidate(ctx context.Context, token string) error {
	s.mu.Lock()
	if s.current.Token != token {
		s.mu.Unlock()
		return nil
	}
	s.current = models.Session{}
	s.loaded = true
	s.mu.Unlock()

	return s.deleteAll(ctx)
}

func (s *Store) deleteAll(ctx context.Context) error {
	keys := make([]string, len(allKeys))
	for i, k := range allKeys {
		keys[i] = s.key(k)
	}
	if err := s.backend.Delete(ctx, keys...); err != nil {
		s.logger.Errorw("Failed to clear stored session", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
