package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"

	"gymclub/internal/apiclient"
	"gymclub/internal/gymapi"
	"gymclub/internal/models"
	"gymclub/internal/session"
	"gymclub/pkg/logger"
)

type fixture struct {
	router   *mux.Router
	requests atomic.Int32
	member   *Member
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{router: mux.NewRouter()}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		f.router.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	members := NewMemberFactory(srv.URL+"/api", 0, session.NewMemoryBackend(), logger.NewNop())
	m, err := members(42)
	if err != nil {
		t.Fatalf("member: %v", err)
	}
	f.member = m
	return f
}

func (f *fixture) reply(method, path string, status int, body string) {
	f.router.HandleFunc("/api"+path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}).Methods(method)
}

func (f *fixture) loggedIn(t *testing.T) {
	t.Helper()
	err := f.member.Session.SetSession(context.Background(), models.Session{
		Token: "tok", UserID: 7, UserName: "Sam", UserEmail: "sam@gym.io",
	})
	if err != nil {
		t.Fatalf("SetSession: %v", err)
	}
}

func TestLoginCommand(t *testing.T) {
	f := newFixture(t)
	f.reply(http.MethodPost, "/login", http.StatusOK,
		`{"user":{"id":7,"name":"Sam","email":"sam@gym.io"},"token":"tok"}`)
	ctx := context.Background()

	got := login(ctx, f.member, models.Credentials{Email: "sam@gym.io", Password: "Secret123"})
	if got != "Welcome back, Sam!" {
		t.Errorf("login() = %q", got)
	}
	if reply := runCommand(ctx, f.member, "me", ""); reply != "Sam <sam@gym.io>" {
		t.Errorf("/me = %q", reply)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.reply(http.MethodPost, "/login", http.StatusUnauthorized, `{"message":"Invalid credentials"}`)

	got := login(context.Background(), f.member, models.Credentials{Email: "sam@gym.io", Password: "nope"})
	if !strings.HasPrefix(got, "Wrong email or password") {
		t.Errorf("login() = %q", got)
	}
}

func TestLoginValidatesLocally(t *testing.T) {
	f := newFixture(t)

	got := login(context.Background(), f.member, models.Credentials{Email: "not-an-email"})
	if !strings.Contains(got, "valid email") || !strings.Contains(got, "password is required") {
		t.Errorf("login() = %q", got)
	}
	if n := f.requests.Load(); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestRegisterShowsServerFieldErrors(t *testing.T) {
	f := newFixture(t)
	f.reply(http.MethodPost, "/register", http.StatusUnprocessableEntity,
		`{"message":"The given data was invalid.","errors":{"email":["The email has already been taken."]}}`)

	got := register(context.Background(), f.member, models.Registration{
		Name: "Sam", Email: "sam@gym.io", Password: "Secret123", PasswordConfirmation: "Secret123",
	})
	if got != "The email has already been taken." {
		t.Errorf("register() = %q", got)
	}
}

func TestBranchesCommand(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	f.reply(http.MethodGet, "/branches", http.StatusOK,
		`{"data":[{"id":1,"name":"Downtown","address":"1 Main St","city":"Lyon"}]}`)

	got := runCommand(context.Background(), f.member, "branches", "")
	if !strings.Contains(got, "#1 Downtown") || !strings.Contains(got, "1 Main St, Lyon") {
		t.Errorf("/branches = %q", got)
	}
}

func TestExpiredSessionPromptsLogin(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	f.reply(http.MethodGet, "/workouts", http.StatusUnauthorized, `{"message":"Unauthenticated."}`)
	ctx := context.Background()

	if got := runCommand(ctx, f.member, "workouts", ""); got != msgLogin {
		t.Errorf("/workouts = %q, want %q", got, msgLogin)
	}
	if _, ok := f.member.Session.GetToken(ctx); ok {
		t.Error("token still present after 401")
	}
}

func TestBookCommand(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		bookStatus int
		bookBody   string
		want       string
	}{
		{"booked", `{"isBooked":false,"availableSpots":3}`, http.StatusOK, `{}`, "Booked! See you there."},
		{"already booked", `{"isBooked":true}`, http.StatusOK, `{}`, "You have already booked this session."},
		{"full", `{"is_booked":false,"available_spots":0}`, http.StatusConflict, `{"message":"Session is full"}`, "Sorry, this session is full."},
		{"rejected", `{"isBooked":false}`, http.StatusBadRequest, `{"message":"Already booked"}`, "You have already booked this session."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.loggedIn(t)
			f.reply(http.MethodGet, "/group-sessions/5/booking-status", http.StatusOK, tt.status)
			f.reply(http.MethodPost, "/group-sessions/5/book", tt.bookStatus, tt.bookBody)

			if got := runCommand(context.Background(), f.member, "book", "5"); got != tt.want {
				t.Errorf("/book 5 = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandsRequireID(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"machines", "coaches", "sessions", "book", "cancel"} {
		got := runCommand(context.Background(), f.member, name, "abc")
		if !strings.HasPrefix(got, "Please give a") {
			t.Errorf("/%s abc = %q", name, got)
		}
	}
	if n := f.requests.Load(); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture(t)
	if got := runCommand(context.Background(), f.member, "dance", ""); !strings.HasPrefix(got, "Unknown command") {
		t.Errorf("runCommand() = %q", got)
	}
}

func TestLogoutClearsSessionWhenBackendFails(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	f.reply(http.MethodPost, "/logout", http.StatusInternalServerError, `{}`)
	ctx := context.Background()

	if got := runCommand(ctx, f.member, "logout", ""); got != "You are logged out." {
		t.Errorf("/logout = %q", got)
	}
	if _, ok := f.member.Session.Session(ctx); ok {
		t.Error("session still present after logout")
	}
}

func TestSubmitProgressRejectsBeforeSending(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)

	got := submitProgress(context.Background(), f.member, models.NewUserProgress{RecordedAt: "2024-13-45"})
	if !strings.Contains(got, "YYYY-MM-DD") || !strings.Contains(got, "at least one measurement") {
		t.Errorf("submitProgress() = %q", got)
	}
	if n := f.requests.Load(); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

func TestAddProgressCommand(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	f.reply(http.MethodPost, "/user-progresses", http.StatusCreated,
		`{"data":{"id":3,"recorded_at":"2024-03-01","weight":"80","height":180}}`)

	got := runCommand(context.Background(), f.member, "addprogress", "2024-03-01 weight=80 height=180")
	if got != "Progress saved. BMI: 24.69" {
		t.Errorf("/addprogress = %q", got)
	}
}

func TestParseProgressArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		want    models.NewUserProgress
		wantErr bool
	}{
		{"date only", "2024-03-01", models.NewUserProgress{RecordedAt: "2024-03-01"}, false},
		{"all", "2024-03-01 weight=80,5 height=180 fat=18 muscle=40", models.NewUserProgress{
			RecordedAt: "2024-03-01",
			Weight:     models.Float(80.5),
			Height:     models.Float(180),
			BodyFat:    models.Float(18),
			MuscleMass: models.Float(40),
		}, false},
		{"empty", "", models.NewUserProgress{}, true},
		{"no equals", "2024-03-01 80", models.NewUserProgress{}, true},
		{"not a number", "2024-03-01 weight=heavy", models.NewUserProgress{}, true},
		{"unknown field", "2024-03-01 age=30", models.NewUserProgress{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProgressArgs(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseProgressArgs(%q) = %+v, want error", tt.args, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseProgressArgs(%q) error: %v", tt.args, err)
			}
			if fmt.Sprint(deref(got)) != fmt.Sprint(deref(tt.want)) {
				t.Errorf("parseProgressArgs(%q) = %v, want %v", tt.args, deref(got), deref(tt.want))
			}
		})
	}
}

func deref(p models.NewUserProgress) []any {
	val := func(f *float64) any {
		if f == nil {
			return nil
		}
		return *f
	}
	return []any{p.RecordedAt, val(p.Weight), val(p.Height), val(p.BodyFat), val(p.MuscleMass)}
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"local validation", models.ValidationErrors{"email": {"email is required"}}, "email is required"},
		{"auth", &apiclient.Error{Kind: apiclient.KindAuthentication}, msgLogin},
		{"server validation", &apiclient.Error{Kind: apiclient.KindValidation, Message: "bad", Fields: map[string][]string{"name": {"name is taken"}}}, "name is taken"},
		{"validation message only", &apiclient.Error{Kind: apiclient.KindValidation, Message: "bad"}, "bad"},
		{"not found", &apiclient.Error{Kind: apiclient.KindNotFound}, "Not found."},
		{"conflict", &apiclient.Error{Kind: apiclient.KindConflict, Message: "taken"}, "taken"},
		{"network", &apiclient.Error{Kind: apiclient.KindNetwork}, msgUnavailable},
		{"timeout", &apiclient.Error{Kind: apiclient.KindTimeout}, msgUnavailable},
		{"server", &apiclient.Error{Kind: apiclient.KindServer}, msgRetry},
		{"wrapped", fmt.Errorf("%w: %w", gymapi.ErrSessionFull, &apiclient.Error{Kind: apiclient.KindNetwork}), msgUnavailable},
		{"unknown", errors.New("boom"), msgRetry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeError(tt.err); got != tt.want {
				t.Errorf("describeError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatEmptyLists(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{formatBranches(nil), "No branches found."},
		{formatMachines(nil), "No machines in this branch."},
		{formatCoaches(nil), "No coaches in this branch."},
		{formatSessions(nil), "No group sessions scheduled."},
		{formatWorkouts(nil), "No workouts yet."},
		{formatProgress(nil), "No progress recorded yet. Use /addprogress."},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestFormatWorkouts(t *testing.T) {
	got := formatWorkouts([]models.Workout{
		{Title: "Legs", Date: "2024-03-01", Exercises: []models.Exercise{
			{ID: 1, Pivot: &models.Pivot{IsDone: true}},
			{ID: 2, Pivot: &models.Pivot{}},
			{ID: 3},
		}},
		{Title: "Off", Date: "2024-03-02", IsRestDay: true},
	})
	want := "2024-03-01 Legs: 1/3 exercises done\n2024-03-02 Off (rest day)"
	if got != want {
		t.Errorf("formatWorkouts() = %q, want %q", got, want)
	}
}

func TestFormatSessions(t *testing.T) {
	got := formatSessions([]models.GroupSession{{
		ID: 5, Title: "Yoga", SessionDate: "2024-03-01 18:30:00", Duration: 60,
		Coach: &models.NamedRef{Name: "Ana"}, IsForWomen: true, IsFree: true,
	}})
	want := "#5 Yoga - Fri 01 Mar 18:30, 60 min, coach Ana [women, free]"
	if got != want {
		t.Errorf("formatSessions() = %q, want %q", got, want)
	}
}

func TestFormatMachines(t *testing.T) {
	got := formatMachines([]models.Machine{{
		ID: 2, Name: "Leg press", Type: "strength",
		Charges: []models.Charge{{Weight: 20}, {Weight: 42.5}},
	}})
	if want := "#2 Leg press (strength): 20kg, 42.5kg"; got != want {
		t.Errorf("formatMachines() = %q, want %q", got, want)
	}
}
