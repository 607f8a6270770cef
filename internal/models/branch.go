package models

import "strings"

// Weekday names used by availability entries.
const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// Availability is a recurring weekly window for a branch or a coach.
// Branches use opening/closing hours, coaches start/end times.
type Availability struct {
	ID          int64  `json:"id,omitempty"`
	DayOfWeek   string `json:"day_of_week"`
	OpeningHour string `json:"opening_hour,omitempty"`
	ClosingHour string `json:"closing_hour,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	IsClosed    Bool   `json:"is_closed"`
	IsAvailable *Bool  `json:"is_available,omitempty"`
}

// Opens returns the start of the window whichever naming the backend used.
func (a Availability) Opens() string {
	if a.OpeningHour != "" {
		return a.OpeningHour
	}
	return a.StartTime
}

// Closes returns the end of the window whichever naming the backend used.
func (a Availability) Closes() string {
	if a.ClosingHour != "" {
		return a.ClosingHour
	}
	return a.EndTime
}

type Branch struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Address        string         `json:"address"`
	City           string         `json:"city"`
	Phone          string         `json:"phone"`
	Email          string         `json:"email"`
	Latitude       *Number        `json:"latitude,omitempty"`
	Longitude      *Number        `json:"longitude,omitempty"`
	Availabilities []Availability `json:"availabilities"`
}

// AvailabilityOn returns the first entry for the given weekday. Later
// entries for the same day are ignored.
func (b Branch) AvailabilityOn(day string) (Availability, bool) {
	return availabilityOn(b.Availabilities, day)
}

func availabilityOn(list []Availability, day string) (Availability, bool) {
	for _, a := range list {
		if strings.EqualFold(a.DayOfWeek, day) {
			return a, true
		}
	}
	return Availability{}, false
}

// BranchInput is the payload for branch create/update.
type BranchInput struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Phone     string   `json:"phone,omitempty"`
	Email     string   `json:"email,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
