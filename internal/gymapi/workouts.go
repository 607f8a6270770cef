package gymapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gymclub/internal/apiclient"
	"gymclub/internal/models"
)

type WorkoutService struct {
	client    *apiclient.Client
	exercises *ExerciseService
}

func (s *WorkoutService) GetAll(ctx context.Context) ([]models.Workout, error) {
	return getList[models.Workout](ctx, s.client, "/workouts")
}

func (s *WorkoutService) GetByID(ctx context.Context, id int64) (models.Workout, error) {
	return getItem[models.Workout](ctx, s.client, fmt.Sprintf("/workouts/%d", id))
}

func (s *WorkoutService) Create(ctx context.Context, in models.NewWorkout) (models.Workout, error) {
	return sendItem[models.Workout](ctx, s.client, http.MethodPost, "/workouts", in)
}

func (s *WorkoutService) Update(ctx context.Context, id int64, in models.NewWorkout) (models.Workout, error) {
	return sendItem[models.Workout](ctx, s.client, http.MethodPut, fmt.Sprintf("/workouts/%d", id), in)
}

func (s *WorkoutService) Delete(ctx context.Context, id int64) error {
	return send(ctx, s.client, http.MethodDelete, fmt.Sprintf("/workouts/%d", id), nil)
}

// AttachExercise links an existing exercise with the default pivot
// (order 0, not done, achievement 0).
func (s *WorkoutService) AttachExercise(ctx context.Context, workoutID, exerciseID int64) error {
	return s.AddExercise(ctx, workoutID, models.NewAttachment(exerciseID))
}

// AddExercise links an exercise with a caller-chosen pivot.
func (s *WorkoutService) AddExercise(ctx context.Context, workoutID int64, in models.AttachExercise) error {
	return send(ctx, s.client, http.MethodPost, fmt.Sprintf("/workouts/%d/exercises", workoutID), in)
}

func (s *WorkoutService) UpdateExercisePivot(ctx context.Context, workoutID, exerciseID int64, in models.PivotUpdate) error {
	return send(ctx, s.client, http.MethodPatch, fmt.Sprintf("/workouts/%d/exercises/%d", workoutID, exerciseID), in)
}

// RemoveExercise detaches the exercise; the exercise itself is kept.
func (s *WorkoutService) RemoveExercise(ctx context.Context, workoutID, exerciseID int64) error {
	return send(ctx, s.client, http.MethodDelete, fmt.Sprintf("/workouts/%d/exercises/%d", workoutID, exerciseID), nil)
}

// Cascade steps reported by CascadeError.
const (
	StepDetach = "detach"
	StepDelete = "delete"
)

// CascadeError tells which step of RemoveAndDeleteExercise failed.
type CascadeError struct {
	Step       string
	WorkoutID  int64
	ExerciseID int64
	Err        error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("remove exercise %d from workout %d: %s step: %v", e.ExerciseID, e.WorkoutID, e.Step, e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }

// RemoveAndDeleteExercise detaches the exercise from the workout and then
// deletes the exercise globally, which also removes it from any other
// workout. A 404 at either step counts as already done, so a failed call
// can simply be repeated.
func (s *WorkoutService) RemoveAndDeleteExercise(ctx context.Context, workoutID, exerciseID int64) error {
	if err := s.RemoveExercise(ctx, workoutID, exerciseID); err != nil && !errors.Is(err, apiclient.ErrNotFound) {
		return &CascadeError{Step: StepDetach, WorkoutID: workoutID, ExerciseID: exerciseID, Err: err}
	}
	if err := s.exercises.Delete(ctx, exerciseID); err != nil && !errors.Is(err, apiclient.ErrNotFound) {
		return &CascadeError{Step: StepDelete, WorkoutID: workoutID, ExerciseID: exerciseID, Err: err}
	}
	return nil
}
