// Package gymapi groups the gym backend operations by resource. Every
// method issues exactly one HTTP call through apiclient.Client and returns
// normalized entities; list methods accept both bare and {"data": [...]}
// responses.
package gymapi

import (
	"context"
	"errors"

	"gymclub/internal/apiclient"
	"gymclub/internal/models"
	"gymclub/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionFull        = errors.New("group session is full")
	ErrAlreadyBooked      = errors.New("group session already booked")
)

// SessionStore is the part of session.Store the auth module writes to.
type SessionStore interface {
	SetSession(ctx context.Context, sess models.Session) error
	Clear(ctx context.Context) error
}

type API struct {
	Auth          *AuthService
	Branches      *BranchService
	Coaches       *CoachService
	Machines      *MachineService
	Exercises     *ExerciseService
	Workouts      *WorkoutService
	GroupSessions *GroupSessionService
	Programmes    *ProgrammeService
	UserProgress  *UserProgressService
}

func New(client *apiclient.Client, sessions SessionStore, l *logger.Logger) *API {
	l = l.Named("gymapi")
	exercises := &ExerciseService{client: client}

	return &API{
		Auth:          &AuthService{client: client, sessions: sessions, logger: l},
		Branches:      &BranchService{client: client},
		Coaches:       &CoachService{client: client},
		Machines:      &MachineService{client: client},
		Exercises:     exercises,
		Workouts:      &WorkoutService{client: client, exercises: exercises},
		GroupSessions: &GroupSessionService{client: client},
		Programmes:    &ProgrammeService{client: client},
		UserProgress:  &UserProgressService{client: client},
	}
}
