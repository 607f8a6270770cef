package models

import (
	"encoding/json"
	"time"
)

type NamedRef struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

type GroupSession struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	SessionDate     string    `json:"session_date"`
	Duration        int       `json:"duration"`
	Coach           *NamedRef `json:"coach,omitempty"`
	Course          *NamedRef `json:"course,omitempty"`
	BranchID        int64     `json:"branch_id"`
	IsForWomen      Bool      `json:"is_for_women"`
	IsForKids       Bool      `json:"is_for_kids"`
	IsFree          Bool      `json:"is_free"`
	MaxParticipants *int      `json:"max_participants,omitempty"`
}

// StartsAt parses SessionDate as an ISO-8601 timestamp.
func (s GroupSession) StartsAt() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s.SessionDate); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s.SessionDate)
}

// BookingStatus is fetched per session since availability changes server-side.
type BookingStatus struct {
	IsBooked            bool `json:"isBooked"`
	AvailableSpots      int  `json:"availableSpots"`
	CurrentParticipants int  `json:"currentParticipants"`
}

// UnmarshalJSON also accepts snake_case keys.
func (b *BookingStatus) UnmarshalJSON(data []byte) error {
	var raw struct {
		IsBooked                 *Bool `json:"isBooked"`
		IsBookedSnake            *Bool `json:"is_booked"`
		AvailableSpots           *int  `json:"availableSpots"`
		AvailableSpotsSnake      *int  `json:"available_spots"`
		CurrentParticipants      *int  `json:"currentParticipants"`
		CurrentParticipantsSnake *int  `json:"current_participants"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*b = BookingStatus{}
	if v := firstOf(raw.IsBooked, raw.IsBookedSnake); v != nil {
		b.IsBooked = bool(*v)
	}
	if v := firstOf(raw.AvailableSpots, raw.AvailableSpotsSnake); v != nil {
		b.AvailableSpots = *v
	}
	if v := firstOf(raw.CurrentParticipants, raw.CurrentParticipantsSnake); v != nil {
		b.CurrentParticipants = *v
	}
	return nil
}

func firstOf[T any](vals ...*T) *T {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

type Video struct {
	ID    int64  `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url"`
}

type Coach struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Bio            string         `json:"bio,omitempty"`
	Certifications string         `json:"certifications,omitempty"`
	PhotoURL       string         `json:"photo_url,omitempty"`
	Specialities   []NamedRef     `json:"specialities,omitempty"`
	Availabilities []Availability `json:"availabilities,omitempty"`
	Videos         []Video        `json:"videos,omitempty"`
	Rating         *Number        `json:"rating,omitempty"`
	TotalSessions  int            `json:"total_sessions,omitempty"`
	TotalEarnings  Number         `json:"total_earnings,omitempty"`
}

// AvailabilityOn returns the first entry for the given weekday.
func (c Coach) AvailabilityOn(day string) (Availability, bool) {
	return availabilityOn(c.Availabilities, day)
}
