package bot

import (
	"fmt"
	"time"

	"gymclub/internal/apiclient"
	"gymclub/internal/gymapi"
	"gymclub/internal/session"
	"gymclub/pkg/logger"
)

// Member is one chat's view of the gym backend: its own session and an
// API client that authenticates with it.
type Member struct {
	API     *gymapi.API
	Session *session.Store
}

type MemberFactory func(chatID int64) (*Member, error)

// NewMemberFactory keeps every chat's session in backend under "chat:<id>".
func NewMemberFactory(baseURL string, timeout time.Duration, backend session.Backend, l *logger.Logger) MemberFactory {
	return func(chatID int64) (*Member, error) {
		store := session.NewStore(backend, l, session.WithNamespace(fmt.Sprintf("chat:%d", chatID)))

		var opts []apiclient.Option
		if timeout > 0 {
			opts = append(opts, apiclient.WithTimeout(timeout))
		}

		client, err := apiclient.New(baseURL, store, l.With("chat_id", chatID), opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create API client: %w", err)
		}

		return &Member{
			API:     gymapi.New(client, store, l),
			Session: store,
		}, nil
	}
}
