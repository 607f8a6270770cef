package gymapi

import (
	"context"
	"fmt"
	"net/http"

	"gymclub/internal/apiclient"
	"gymclub/internal/models"
)

type BranchService struct {
	client *apiclient.Client
}

func (s *BranchService) GetAll(ctx context.Context) ([]models.Branch, error) {
	return getList[models.Branch](ctx, s.client, "/branches")
}

func (s *BranchService) GetByID(ctx context.Context, id int64) (models.Branch, error) {
	return getItem[models.Branch](ctx, s.client, fmt.Sprintf("/branches/%d", id))
}

func (s *BranchService) GetAvailabilities(ctx context.Context, branchID int64) ([]models.Availability, error) {
	return getList[models.Availability](ctx, s.client, fmt.Sprintf("/branches/%d/availabilities", branchID))
}

func (s *BranchService) GetCoaches(ctx context.Context, branchID int64) ([]models.Coach, error) {
	return getList[models.Coach](ctx, s.client, fmt.Sprintf("/branches/%d/coaches", branchID))
}

func (s *BranchService) Create(ctx context.Context, in models.BranchInput) (models.Branch, error) {
	return sendItem[models.Branch](ctx, s.client, http.MethodPost, "/branches", in)
}

func (s *BranchService) Update(ctx context.Context, id int64, in models.BranchInput) (models.Branch, error) {
	return sendItem[models.Branch](ctx, s.client, http.MethodPut, fmt.Sprintf("/branches/%d", id), in)
}

func (s *BranchService) Delete(ctx context.Context, id int64) error {
	return send(ctx, s.client, http.MethodDelete, fmt.Sprintf("/branches/%d", id), nil)
}

type CoachService struct {
	client *apiclient.Client
}

func (s *CoachService) GetByID(ctx context.Context, id int64) (models.Coach, error) {
	return getItem[models.Coach](ctx, s.client, fmt.Sprintf("/coaches/%d", id))
}
