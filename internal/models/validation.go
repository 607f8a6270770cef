package models

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidationErrors maps a payload field to the rules it broke.
type ValidationErrors map[string][]string

func (v ValidationErrors) add(field, msg string) {
	v[field] = append(v[field], msg)
}

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(v[f], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (v ValidationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidDate accepts YYYY-MM-DD strings naming a real calendar day.
func ValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func (c Credentials) Validate() error {
	errs := ValidationErrors{}
	if c.Email == "" {
		errs.add("email", "email is required")
	} else if !ValidEmail(c.Email) {
		errs.add("email", "please enter a valid email address")
	}
	if c.Password == "" {
		errs.add("password", "password is required")
	}
	return errs.err()
}

func (r Registration) Validate() error {
	errs := ValidationErrors{}
	if strings.TrimSpace(r.Name) == "" {
		errs.add("name", "name is required")
	}
	if r.Email == "" {
		errs.add("email", "email is required")
	} else if !ValidEmail(r.Email) {
		errs.add("email", "please enter a valid email address")
	}
	for _, msg := range passwordProblems(r.Password) {
		errs.add("password", msg)
	}
	if r.Password != r.PasswordConfirmation {
		errs.add("password_confirmation", "passwords do not match")
	}
	return errs.err()
}

func passwordProblems(password string) []string {
	var hasDigit, hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}

	var problems []string
	if len(password) < 8 {
		problems = append(problems, "at least 8 characters")
	}
	if !hasDigit {
		problems = append(problems, "at least one number")
	}
	if !hasUpper {
		problems = append(problems, "at least one uppercase letter")
	}
	if !hasLower {
		problems = append(problems, "at least one lowercase letter")
	}
	return problems
}

// Validate enforces the rules the backend expects before submission:
// a strict YYYY-MM-DD date and at least one measurement.
func (p NewUserProgress) Validate() error {
	errs := ValidationErrors{}
	switch {
	case p.RecordedAt == "":
		errs.add("recorded_at", "date is required")
	case !ValidDate(p.RecordedAt):
		errs.add("recorded_at", "please enter date in YYYY-MM-DD format")
	}
	if p.Weight == nil && p.Height == nil && p.BodyFat == nil && p.MuscleMass == nil {
		errs.add("measurements", "please provide at least one measurement")
	}
	if p.Weight != nil && *p.Weight <= 0 {
		errs.add("weight", "please enter a valid weight")
	}
	if p.Height != nil && *p.Height <= 0 {
		errs.add("height", "please enter a valid height")
	}
	if p.BodyFat != nil && (*p.BodyFat < 0 || *p.BodyFat > 100) {
		errs.add("body_fat", "body fat percentage must be between 0 and 100")
	}
	if p.MuscleMass != nil && (*p.MuscleMass < 0 || *p.MuscleMass > 100) {
		errs.add("muscle_mass", "muscle mass percentage must be between 0 and 100")
	}
	return errs.err()
}

func (e NewExercise) Validate() error {
	errs := ValidationErrors{}
	if strings.TrimSpace(e.Name) == "" {
		errs.add("name", "please enter exercise name")
	}
	if e.Sets < 1 {
		errs.add("sets", "please enter valid sets")
	}
	if e.Reps < 1 {
		errs.add("reps", "please enter valid reps")
	}
	return errs.err()
}
