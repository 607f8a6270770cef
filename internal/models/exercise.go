package models

// Pivot holds the attributes of an exercise inside a workout.
type Pivot struct {
	Order       Integer `json:"order"`
	IsDone      Bool    `json:"is_done"`
	Achievement Number  `json:"achievement"`
}

type Exercise struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Title        string `json:"title,omitempty"`
	Sets         int    `json:"sets"`
	Reps         int    `json:"reps"`
	MachineID    *int64 `json:"machine_id,omitempty"`
	MovementID   *int64 `json:"movement_id,omitempty"`
	ChargeID     *int64 `json:"charge_id,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Pivot        *Pivot `json:"pivot,omitempty"`
}

// NewExercise is the payload for POST /exercises and PUT /exercises/{id}.
type NewExercise struct {
	Name         string  `json:"name"`
	Title        *string `json:"title"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	MachineID    *int64  `json:"machine_id"`
	MovementID   *int64  `json:"movement_id"`
	ChargeID     *int64  `json:"charge_id"`
	Instructions *string `json:"instructions"`
}
