package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestBoolDecoding(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
		{`"1"`, true},
		{`"0"`, false},
		{`null`, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var b Bool
			if err := json.Unmarshal([]byte(tt.in), &b); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.in, err)
			}
			if bool(b) != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.in, b, tt.want)
			}
		})
	}

	var b Bool
	if err := json.Unmarshal([]byte(`"yes"`), &b); err == nil {
		t.Error("expected error for \"yes\"")
	}
}

func TestNumberDecoding(t *testing.T) {
	var p UserProgress
	body := `{"id":3,"recorded_at":"2024-03-01","weight":"72.50","height":180,"body_fat":null}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if p.Weight == nil || p.Weight.Float64() != 72.5 {
		t.Errorf("Weight = %v, want 72.5", p.Weight)
	}
	if p.Height == nil || p.Height.Float64() != 180 {
		t.Errorf("Height = %v, want 180", p.Height)
	}
	if p.BodyFat != nil {
		t.Errorf("BodyFat = %v, want nil", p.BodyFat)
	}
}

func TestPivotDecoding(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Pivot
	}{
		{"numbers", `{"order":2,"is_done":1,"achievement":12.5}`, Pivot{Order: 2, IsDone: true, Achievement: 12.5}},
		{"strings", `{"order":"3","is_done":"0","achievement":"7"}`, Pivot{Order: 3, Achievement: 7}},
		{"nulls", `{"order":null,"is_done":null,"achievement":null}`, Pivot{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Pivot
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.body, err)
			}
			if p != tt.want {
				t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.body, p, tt.want)
			}
		})
	}

	var p Pivot
	if err := json.Unmarshal([]byte(`{"order":"first"}`), &p); err == nil {
		t.Error("Unmarshal of non-numeric order succeeded, want error")
	}
}

func TestBMI(t *testing.T) {
	got, ok := BMI(80, 200)
	if !ok || got != 20 {
		t.Errorf("BMI(80, 200) = %v, %v; want 20, true", got, ok)
	}
	if _, ok := BMI(80, 0); ok {
		t.Error("BMI with zero height should not be ok")
	}

	imc := Number(22.5)
	p := UserProgress{IMC: &imc}
	if got, _ := p.BMI(); got != 22.5 {
		t.Errorf("stored imc = %v, want 22.5", got)
	}
}

func TestAvailabilityOn(t *testing.T) {
	b := Branch{Availabilities: []Availability{
		{DayOfWeek: "Monday", OpeningHour: "06:00", ClosingHour: "22:00"},
		{DayOfWeek: "monday", OpeningHour: "10:00", ClosingHour: "12:00"},
		{DayOfWeek: "sunday", IsClosed: true},
	}}

	a, ok := b.AvailabilityOn(Monday)
	if !ok || a.Opens() != "06:00" || a.Closes() != "22:00" {
		t.Errorf("monday = %+v, %v; want first entry", a, ok)
	}
	if a, _ := b.AvailabilityOn(Sunday); !bool(a.IsClosed) {
		t.Error("sunday should be closed")
	}
	if _, ok := b.AvailabilityOn(Friday); ok {
		t.Error("friday should be absent")
	}

	c := Coach{Availabilities: []Availability{{DayOfWeek: "friday", StartTime: "09:00", EndTime: "11:00"}}}
	if a, ok := c.AvailabilityOn(Friday); !ok || a.Opens() != "09:00" {
		t.Errorf("coach friday = %+v, %v", a, ok)
	}
}

func TestNewUserProgressValidate(t *testing.T) {
	tests := []struct {
		name      string
		in        NewUserProgress
		wantField string
	}{
		{"weight only", NewUserProgress{RecordedAt: "2024-03-01", Weight: Float(70)}, ""},
		{"no measurement", NewUserProgress{RecordedAt: "2024-03-01"}, "measurements"},
		{"missing date", NewUserProgress{Weight: Float(70)}, "recorded_at"},
		{"loose date", NewUserProgress{RecordedAt: "2024-3-1", Weight: Float(70)}, "recorded_at"},
		{"impossible date", NewUserProgress{RecordedAt: "2024-02-30", Weight: Float(70)}, "recorded_at"},
		{"negative weight", NewUserProgress{RecordedAt: "2024-03-01", Weight: Float(-1)}, "weight"},
		{"body fat over 100", NewUserProgress{RecordedAt: "2024-03-01", BodyFat: Float(101)}, "body_fat"},
		{"muscle mass zero", NewUserProgress{RecordedAt: "2024-03-01", MuscleMass: Float(0)}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() = %v, want ValidationErrors", err)
			}
			if _, ok := verrs[tt.wantField]; !ok {
				t.Errorf("Validate() fields = %v, want %q", verrs, tt.wantField)
			}
		})
	}
}

func TestRegistrationValidate(t *testing.T) {
	ok := Registration{Name: "A", Email: "a@b.com", Password: "Secret123", PasswordConfirmation: "Secret123"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	bad := Registration{Name: " ", Email: "a@b", Password: "secret", PasswordConfirmation: "other"}
	var verrs ValidationErrors
	if !errors.As(bad.Validate(), &verrs) {
		t.Fatal("expected ValidationErrors")
	}
	for _, field := range []string{"name", "email", "password", "password_confirmation"} {
		if _, ok := verrs[field]; !ok {
			t.Errorf("missing error for %q", field)
		}
	}
	// length, digit and uppercase rules are all reported
	if got := len(verrs["password"]); got != 3 {
		t.Errorf("password problems = %v, want 3", verrs["password"])
	}
}

func TestCredentialsValidate(t *testing.T) {
	if err := (Credentials{Email: "a@b.com", Password: "x"}).Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if err := (Credentials{Email: "not-an-email", Password: "x"}).Validate(); err == nil {
		t.Error("expected invalid email error")
	}
}

func TestNewExerciseValidate(t *testing.T) {
	if err := (NewExercise{Name: "Squat", Sets: 3, Reps: 10}).Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if err := (NewExercise{Name: "Squat", Sets: 0, Reps: 10}).Validate(); err == nil {
		t.Error("expected sets error")
	}
}

func TestAttachmentDefaults(t *testing.T) {
	body, err := json.Marshal(NewAttachment(9))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"exercise_id":9,"order":0,"is_done":false,"achievement":0}`
	if string(body) != want {
		t.Errorf("payload = %s, want %s", body, want)
	}
}

func TestBookingStatusDecoding(t *testing.T) {
	want := BookingStatus{IsBooked: true, AvailableSpots: 3, CurrentParticipants: 7}
	for _, body := range []string{
		`{"isBooked":true,"availableSpots":3,"currentParticipants":7}`,
		`{"is_booked":1,"available_spots":3,"current_participants":7}`,
	} {
		var got BookingStatus
		if err := json.Unmarshal([]byte(body), &got); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", body, err)
		}
		if got != want {
			t.Errorf("Unmarshal(%s) = %+v, want %+v", body, got, want)
		}
	}
}
