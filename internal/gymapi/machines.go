package gymapi

import (
	"context"
	"fmt"
	"net/http"

	"gymclub/internal/apiclient"
	"gymclub/internal/models"
)

type MachineService struct {
	client *apiclient.Client
}

func (s *MachineService) GetAll(ctx context.Context) ([]models.Machine, error) {
	return getList[models.Machine](ctx, s.client, "/machines")
}

func (s *MachineService) GetByBranch(ctx context.Context, branchID int64) ([]models.Machine, error) {
	return getList[models.Machine](ctx, s.client, fmt.Sprintf("/branches/%d/machines", branchID))
}

func (s *MachineService) GetByID(ctx context.Context, id int64) (models.Machine, error) {
	return getItem[models.Machine](ctx, s.client, fmt.Sprintf("/machines/%d", id))
}

type ExerciseService struct {
	client *apiclient.Client
}

func (s *ExerciseService) Create(ctx context.Context, in models.NewExercise) (models.Exercise, error) {
	return sendItem[models.Exercise](ctx, s.client, http.MethodPost, "/exercises", in)
}

func (s *ExerciseService) GetAll(ctx context.Context) ([]models.Exercise, error) {
	return getList[models.Exercise](ctx, s.client, "/exercises")
}

func (s *ExerciseService) GetByID(ctx context.Context, id int64) (models.Exercise, error) {
	return getItem[models.Exercise](ctx, s.client, fmt.Sprintf("/exercises/%d", id))
}

func (s *ExerciseService) Update(ctx context.Context, id int64, in models.NewExercise) (models.Exercise, error) {
	return sendItem[models.Exercise](ctx, s.client, http.MethodPut, fmt.Sprintf("/exercises/%d", id), in)
}

func (s *ExerciseService) Delete(ctx context.Context, id int64) error {
	return send(ctx, s.client, http.MethodDelete, fmt.Sprintf("/exercises/%d", id), nil)
}

func (s *ExerciseService) GetMovements(ctx context.Context) ([]models.Movement, error) {
	return getList[models.Movement](ctx, s.client, "/movements")
}

func (s *ExerciseService) GetChargesForMachine(ctx context.Context, machineID int64) ([]models.Charge, error) {
	return getList[models.Charge](ctx, s.client, fmt.Sprintf("/machines/%d/charges", machineID))
}

type ProgrammeService struct {
	client *apiclient.Client
}

func (s *ProgrammeService) GetAll(ctx context.Context) ([]models.Programme, error) {
	return getList[models.Programme](ctx, s.client, "/programmes")
}

func (s *ProgrammeService) Activate(ctx context.Context, id int64) error {
	return send(ctx, s.client, http.MethodPost, fmt.Sprintf("/programmes/%d/activate", id), nil)
}
