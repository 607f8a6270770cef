package models

type Workout struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Notes            string     `json:"notes,omitempty"`
	Duration         *int       `json:"duration,omitempty"`
	WaterConsumption *Number    `json:"water_consumption,omitempty"`
	IsRestDay        Bool       `json:"is_rest_day"`
	Date             string     `json:"date"`
	Exercises        []Exercise `json:"exercises"`
}

// NewWorkout is the payload for POST /workouts and PUT /workouts/{id}.
type NewWorkout struct {
	Title            string   `json:"title"`
	Notes            string   `json:"notes,omitempty"`
	Duration         *int     `json:"duration,omitempty"`
	WaterConsumption *float64 `json:"water_consumption,omitempty"`
	IsRestDay        bool     `json:"is_rest_day"`
	Date             string   `json:"date"`
}

// AttachExercise is the body of POST /workouts/{id}/exercises.
type AttachExercise struct {
	ExerciseID  int64   `json:"exercise_id"`
	Order       int     `json:"order"`
	IsDone      bool    `json:"is_done"`
	Achievement float64 `json:"achievement"`
}

// NewAttachment returns the attach payload with the default pivot values.
func NewAttachment(exerciseID int64) AttachExercise {
	return AttachExercise{ExerciseID: exerciseID}
}

// PivotUpdate is a partial update of a workout/exercise pivot. Nil fields
// are left untouched by the backend.
type PivotUpdate struct {
	Order       *int     `json:"order,omitempty"`
	IsDone      *bool    `json:"is_done,omitempty"`
	Achievement *float64 `json:"achievement,omitempty"`
}
