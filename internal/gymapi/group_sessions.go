package gymapi

import (
	"context"
	"fmt"
	"net/http"

	"gymclub/internal/apiclient"
	"gymclub/internal/models"
)

type GroupSessionService struct {
	client *apiclient.Client
}

func (s *GroupSessionService) GetByBranch(ctx context.Context, branchID int64) ([]models.GroupSession, error) {
	return getList[models.GroupSession](ctx, s.client, fmt.Sprintf("/branches/%d/group-sessions", branchID))
}

func (s *GroupSessionService) GetByID(ctx context.Context, id int64) (models.GroupSession, error) {
	return getItem[models.GroupSession](ctx, s.client, fmt.Sprintf("/group-sessions/%d", id))
}

// CheckBookingStatus is always fetched fresh; spots change server-side.
func (s *GroupSessionService) CheckBookingStatus(ctx context.Context, sessionID int64) (models.BookingStatus, error) {
	return getItem[models.BookingStatus](ctx, s.client, fmt.Sprintf("/group-sessions/%d/booking-status", sessionID))
}

// BookSession reserves a spot. A 409 is reported as ErrSessionFull; a 400
// or 422 rejection as ErrAlreadyBooked. Both still match the apiclient
// sentinel for the status. 401 and 404 are returned unmapped.
func (s *GroupSessionService) BookSession(ctx context.Context, sessionID int64) error {
	err := send(ctx, s.client, http.MethodPost, fmt.Sprintf("/group-sessions/%d/book", sessionID), nil)
	switch apiclient.KindOf(err) {
	case apiclient.KindConflict:
		return fmt.Errorf("%w: %w", ErrSessionFull, err)
	case apiclient.KindBadRequest, apiclient.KindValidation:
		return fmt.Errorf("%w: %w", ErrAlreadyBooked, err)
	}
	return err
}

func (s *GroupSessionService) CancelBooking(ctx context.Context, sessionID int64) error {
	return send(ctx, s.client, http.MethodDelete, fmt.Sprintf("/group-sessions/%d/book", sessionID), nil)
}

func (s *GroupSessionService) GetUserBookings(ctx context.Context) ([]models.GroupSession, error) {
	return getList[models.GroupSession](ctx, s.client, "/user/group-sessions")
}
