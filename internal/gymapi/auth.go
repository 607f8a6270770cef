package gymapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gymclub/internal/apiclient"
	"gymclub/internal/models"
	"gymclub/pkg/logger"
)

type AuthService struct {
	client   *apiclient.Client
	sessions SessionStore
	logger   *logger.Logger
}

// Login authenticates and stores the returned session before returning it.
// A 401 or 422 reply is reported as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.Session, error) {
	sess, err := s.authenticate(ctx, "/login", models.Credentials{Email: email, Password: password})
	if err != nil {
		switch apiclient.KindOf(err) {
		case apiclient.KindAuthentication, apiclient.KindValidation:
			return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return models.Session{}, err
	}
	return sess, nil
}

// Register creates an account. Field errors come back as an
// *apiclient.Error of KindValidation with Fields populated.
func (s *AuthService) Register(ctx context.Context, reg models.Registration) (models.Session, error) {
	return s.authenticate(ctx, "/register", reg)
}

func (s *AuthService) authenticate(ctx context.Context, path string, body any) (models.Session, error) {
	resp, err := s.client.Post(ctx, path, body)
	if err != nil {
		return models.Session{}, err
	}

	auth, err := apiclient.DecodeItem[models.AuthResponse](resp)
	if err != nil {
		return models.Session{}, err
	}
	if auth.Token == "" {
		return models.Session{}, &apiclient.Error{
			Kind:       apiclient.KindMalformedResponse,
			Method:     resp.Method,
			Path:       resp.Path,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Err:        errors.New("response carries no token"),
		}
	}

	sess := auth.Session()
	if err := s.sessions.SetSession(ctx, sess); err != nil {
		// The session is still held in memory for this process.
		s.logger.Warnw("Session not persisted", "error", err, "user_id", sess.UserID)
	}
	return sess, nil
}

// Logout asks the backend to revoke the token and always clears the local
// session, whether or not the backend was reachable.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := send(ctx, s.client, http.MethodPost, "/logout", nil); err != nil {
		s.logger.Warnw("Server-side logout failed", "error", err)
	}
	if err := s.sessions.Clear(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("clear local session: %w", err)
	}
	return nil
}

func (s *AuthService) GetUser(ctx context.Context) (models.User, error) {
	return getItem[models.User](ctx, s.client, "/user")
}
