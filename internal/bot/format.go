package bot

import (
	"fmt"
	"strings"
	"time"

	"gymclub/internal/models"
)

func formatBranches(branches []models.Branch) string {
	if len(branches) == 0 {
		return "No branches found."
	}

	today := strings.ToLower(time.Now().Weekday().String())
	var b strings.Builder
	for _, br := range branches {
		fmt.Fprintf(&b, "#%d %s\n%s, %s\n", br.ID, br.Name, br.Address, br.City)
		if a, ok := br.AvailabilityOn(today); ok {
			if a.IsClosed {
				b.WriteString("Closed today\n")
			} else {
				fmt.Fprintf(&b, "Today %s-%s\n", a.Opens(), a.Closes())
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func formatMachines(machines []models.Machine) string {
	if len(machines) == 0 {
		return "No machines in this branch."
	}

	var b strings.Builder
	for _, m := range machines {
		fmt.Fprintf(&b, "#%d %s", m.ID, m.Name)
		if m.Type != "" {
			fmt.Fprintf(&b, " (%s)", m.Type)
		}
		if len(m.Charges) > 0 {
			weights := make([]string, len(m.Charges))
			for i, c := range m.Charges {
				weights[i] = fmt.Sprintf("%gkg", c.Weight.Float64())
			}
			fmt.Fprintf(&b, ": %s", strings.Join(weights, ", "))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func formatCoaches(coaches []models.Coach) string {
	if len(coaches) == 0 {
		return "No coaches in this branch."
	}

	var b strings.Builder
	for _, c := range coaches {
		fmt.Fprintf(&b, "#%d %s", c.ID, c.Name)
		if len(c.Specialities) > 0 {
			names := make([]string, len(c.Specialities))
			for i, s := range c.Specialities {
				names[i] = s.Name
			}
			fmt.Fprintf(&b, " - %s", strings.Join(names, ", "))
		}
		if c.Rating != nil {
			fmt.Fprintf(&b, " (rating %.1f)", c.Rating.Float64())
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func formatSessions(sessions []models.GroupSession) string {
	if len(sessions) == 0 {
		return "No group sessions scheduled."
	}

	var b strings.Builder
	for _, s := range sessions {
		when := s.SessionDate
		if t, err := s.StartsAt(); err == nil {
			when = t.Format("Mon 02 Jan 15:04")
		}
		fmt.Fprintf(&b, "#%d %s - %s, %d min", s.ID, s.Title, when, s.Duration)
		if s.Coach != nil && s.Coach.Name != "" {
			fmt.Fprintf(&b, ", coach %s", s.Coach.Name)
		}

		var tags []string
		if s.IsForWomen {
			tags = append(tags, "women")
		}
		if s.IsForKids {
			tags = append(tags, "kids")
		}
		if s.IsFree {
			tags = append(tags, "free")
		}
		if len(tags) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(tags, ", "))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func formatWorkouts(workouts []models.Workout) string {
	if len(workouts) == 0 {
		return "No workouts yet."
	}

	var b strings.Builder
	for _, w := range workouts {
		if w.IsRestDay {
			fmt.Fprintf(&b, "%s %s (rest day)\n", w.Date, w.Title)
			continue
		}
		done := 0
		for _, e := range w.Exercises {
			if e.Pivot != nil && e.Pivot.IsDone {
				done++
			}
		}
		fmt.Fprintf(&b, "%s %s: %d/%d exercises done\n", w.Date, w.Title, done, len(w.Exercises))
	}
	return strings.TrimSpace(b.String())
}

func formatProgress(progress []models.UserProgress) string {
	if len(progress) == 0 {
		return "No progress recorded yet. Use /addprogress."
	}

	var b strings.Builder
	for _, p := range progress {
		b.WriteString(p.RecordedAt)
		if p.Weight != nil {
			fmt.Fprintf(&b, " weight %gkg", p.Weight.Float64())
		}
		if p.BodyFat != nil {
			fmt.Fprintf(&b, " fat %g%%", p.BodyFat.Float64())
		}
		if p.MuscleMass != nil {
			fmt.Fprintf(&b, " muscle %g%%", p.MuscleMass.Float64())
		}
		if bmi, ok := p.BMI(); ok {
			fmt.Fprintf(&b, " BMI %.2f", bmi)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
