package gymapi

import (
	"context"
	"fmt"
	"net/http"

	"gymclub/internal/apiclient"
	"gymclub/internal/models"
)

// UserProgressService does not re-validate payloads; callers run
// models.NewUserProgress.Validate first.
type UserProgressService struct {
	client *apiclient.Client
}

func (s *UserProgressService) GetAll(ctx context.Context) ([]models.UserProgress, error) {
	return getList[models.UserProgress](ctx, s.client, "/user-progresses")
}

func (s *UserProgressService) GetHistory(ctx context.Context) ([]models.UserProgress, error) {
	return getList[models.UserProgress](ctx, s.client, "/user-progresses/history")
}

func (s *UserProgressService) Create(ctx context.Context, in models.NewUserProgress) (models.UserProgress, error) {
	return sendItem[models.UserProgress](ctx, s.client, http.MethodPost, "/user-progresses", in)
}

func (s *UserProgressService) Update(ctx context.Context, id int64, in models.NewUserProgress) (models.UserProgress, error) {
	return sendItem[models.UserProgress](ctx, s.client, http.MethodPut, fmt.Sprintf("/user-progresses/%d", id), in)
}

func (s *UserProgressService) Delete(ctx context.Context, id int64) error {
	return send(ctx, s.client, http.MethodDelete, fmt.Sprintf("/user-progresses/%d", id), nil)
}
