package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gymclub/internal/apiclient"
	"gymclub/internal/gymapi"
	"gymclub/internal/models"
)

const (
	msgUnavailable = "The service is unavailable right now. Please try again later."
	msgRetry       = "Something went wrong. Please try again."
	msgLogin       = "Your session has expired. Please /login again."
)

const helpText = `Gym club bot

/login - sign in
/register - create an account
/logout - sign out
/me - who am I
/branches - list branches
/machines <branch id> - machines of a branch
/coaches <branch id> - coaches of a branch
/sessions <branch id> - group sessions of a branch
/book <session id> - book a group session
/cancel <session id> - cancel a booking
/bookings - your booked sessions
/workouts - your workouts
/progress - your body progress
/addprogress <YYYY-MM-DD> [weight=..] [height=..] [fat=..] [muscle=..]`

type command func(ctx context.Context, m *Member, args string) string

var commands = map[string]command{
	"start":       func(context.Context, *Member, string) string { return helpText },
	"help":        func(context.Context, *Member, string) string { return helpText },
	"me":          cmdMe,
	"logout":      cmdLogout,
	"branches":    cmdBranches,
	"machines":    withBranch(cmdMachines),
	"coaches":     withBranch(cmdCoaches),
	"sessions":    withBranch(cmdSessions),
	"book":        withID("session", cmdBook),
	"cancel":      withID("session", cmdCancel),
	"bookings":    cmdBookings,
	"workouts":    cmdWorkouts,
	"progress":    cmdProgress,
	"addprogress": cmdAddProgress,
}

// runCommand returns the reply for a slash command.
func runCommand(ctx context.Context, m *Member, name, args string) string {
	cmd, ok := commands[name]
	if !ok {
		return "Unknown command. Use /help to see what I can do."
	}
	return cmd(ctx, m, strings.TrimSpace(args))
}

func withID(what string, next func(ctx context.Context, m *Member, id int64) string) command {
	return func(ctx context.Context, m *Member, args string) string {
		id, err := strconv.ParseInt(args, 10, 64)
		if err != nil || id <= 0 {
			return fmt.Sprintf("Please give a %s id, for example: 12", what)
		}
		return next(ctx, m, id)
	}
}

func withBranch(next func(ctx context.Context, m *Member, id int64) string) command {
	return withID("branch", next)
}

func login(ctx context.Context, m *Member, creds models.Credentials) string {
	if err := creds.Validate(); err != nil {
		return describeError(err)
	}
	sess, err := m.API.Auth.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, gymapi.ErrInvalidCredentials) {
			return "Wrong email or password. Use /login to try again."
		}
		return describeError(err)
	}
	return fmt.Sprintf("Welcome back, %s!", sess.UserName)
}

func register(ctx context.Context, m *Member, reg models.Registration) string {
	if err := reg.Validate(); err != nil {
		return describeError(err) + "\nUse /register to start over."
	}
	sess, err := m.API.Auth.Register(ctx, reg)
	if err != nil {
		return describeError(err)
	}
	return fmt.Sprintf("Welcome, %s! Your account is ready.", sess.UserName)
}

func cmdMe(ctx context.Context, m *Member, _ string) string {
	sess, ok := m.Session.Session(ctx)
	if !ok {
		return "You are not logged in. Use /login."
	}
	return fmt.Sprintf("%s <%s>", sess.UserName, sess.UserEmail)
}

func cmdLogout(ctx context.Context, m *Member, _ string) string {
	if err := m.API.Auth.Logout(ctx); err != nil {
		return msgRetry
	}
	return "You are logged out."
}

func cmdBranches(ctx context.Context, m *Member, _ string) string {
	branches, err := m.API.Branches.GetAll(ctx)
	if err != nil {
		return describeError(err)
	}
	return formatBranches(branches)
}

func cmdMachines(ctx context.Context, m *Member, branchID int64) string {
	machines, err := m.API.Machines.GetByBranch(ctx, branchID)
	if err != nil {
		return describeError(err)
	}
	return formatMachines(machines)
}

func cmdCoaches(ctx context.Context, m *Member, branchID int64) string {
	coaches, err := m.API.Branches.GetCoaches(ctx, branchID)
	if err != nil {
		return describeError(err)
	}
	return formatCoaches(coaches)
}

func cmdSessions(ctx context.Context, m *Member, branchID int64) string {
	sessions, err := m.API.GroupSessions.GetByBranch(ctx, branchID)
	if err != nil {
		return describeError(err)
	}
	return formatSessions(sessions)
}

func cmdBook(ctx context.Context, m *Member, sessionID int64) string {
	status, err := m.API.GroupSessions.CheckBookingStatus(ctx, sessionID)
	if err != nil {
		return describeError(err)
	}
	if status.IsBooked {
		return "You have already booked this session."
	}

	switch err := m.API.GroupSessions.BookSession(ctx, sessionID); {
	case err == nil:
		return "Booked! See you there."
	case errors.Is(err, gymapi.ErrSessionFull):
		return "Sorry, this session is full."
	case errors.Is(err, gymapi.ErrAlreadyBooked):
		return "You have already booked this session."
	default:
		return describeError(err)
	}
}

func cmdCancel(ctx context.Context, m *Member, sessionID int64) string {
	if err := m.API.GroupSessions.CancelBooking(ctx, sessionID); err != nil {
		return describeError(err)
	}
	return "Your booking is cancelled."
}

func cmdBookings(ctx context.Context, m *Member, _ string) string {
	sessions, err := m.API.GroupSessions.GetUserBookings(ctx)
	if err != nil {
		return describeError(err)
	}
	if len(sessions) == 0 {
		return "No sessions booked yet."
	}
	return formatSessions(sessions)
}

func cmdWorkouts(ctx context.Context, m *Member, _ string) string {
	workouts, err := m.API.Workouts.GetAll(ctx)
	if err != nil {
		return describeError(err)
	}
	return formatWorkouts(workouts)
}

func cmdProgress(ctx context.Context, m *Member, _ string) string {
	progress, err := m.API.UserProgress.GetAll(ctx)
	if err != nil {
		return describeError(err)
	}
	return formatProgress(progress)
}

func cmdAddProgress(ctx context.Context, m *Member, args string) string {
	in, err := parseProgressArgs(args)
	if err != nil {
		return "Cannot read progress: " + err.Error() + "\nUsage: /addprogress 2024-03-01 weight=80 height=180 fat=18 muscle=40"
	}
	return submitProgress(ctx, m, in)
}

// submitProgress validates before anything is sent to the backend.
func submitProgress(ctx context.Context, m *Member, in models.NewUserProgress) string {
	if err := in.Validate(); err != nil {
		return describeError(err)
	}
	p, err := m.API.UserProgress.Create(ctx, in)
	if err != nil {
		return describeError(err)
	}
	if bmi, ok := p.BMI(); ok {
		return fmt.Sprintf("Progress saved. BMI: %.2f", bmi)
	}
	return "Progress saved."
}

func parseProgressArgs(args string) (models.NewUserProgress, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return models.NewUserProgress{}, errors.New("missing date")
	}

	in := models.NewUserProgress{RecordedAt: fields[0]}
	for _, f := range fields[1:] {
		key, raw, ok := strings.Cut(f, "=")
		if !ok {
			return in, fmt.Errorf("cannot read %q, expected name=value", f)
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil {
			return in, fmt.Errorf("%q is not a number", raw)
		}
		switch strings.ToLower(key) {
		case "weight":
			in.Weight = &v
		case "height":
			in.Height = &v
		case "fat", "body_fat":
			in.BodyFat = &v
		case "muscle", "muscle_mass":
			in.MuscleMass = &v
		default:
			return in, fmt.Errorf("unknown measurement %q", key)
		}
	}
	return in, nil
}

// describeError turns a failure into what the user should see: field
// messages for validation, a login prompt for an expired session and a
// generic retry prompt for everything else.
func describeError(err error) string {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		return joinFieldMessages(verrs)
	}

	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return msgRetry
	}

	switch apiErr.Kind {
	case apiclient.KindAuthentication:
		return msgLogin
	case apiclient.KindValidation:
		if msgs := apiErr.FieldMessages(); len(msgs) > 0 {
			return strings.Join(msgs, "\n")
		}
		return apiErr.Message
	case apiclient.KindNotFound:
		return "Not found."
	case apiclient.KindConflict, apiclient.KindBadRequest:
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return msgRetry
	case apiclient.KindNetwork, apiclient.KindTimeout:
		return msgUnavailable
	default:
		return msgRetry
	}
}

func joinFieldMessages(v models.ValidationErrors) string {
	e := &apiclient.Error{Fields: v}
	return strings.Join(e.FieldMessages(), "\n")
}
