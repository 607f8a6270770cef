package models

import "math"

type UserProgress struct {
	ID         int64   `json:"id"`
	RecordedAt string  `json:"recorded_at"`
	Weight     *Number `json:"weight,omitempty"`
	Height     *Number `json:"height,omitempty"`
	BodyFat    *Number `json:"body_fat,omitempty"`
	MuscleMass *Number `json:"muscle_mass,omitempty"`
	IMC        *Number `json:"imc,omitempty"`
}

// BMI returns the stored imc, or derives it from weight and height.
func (p UserProgress) BMI() (float64, bool) {
	if p.IMC != nil {
		return p.IMC.Float64(), true
	}
	if p.Weight == nil || p.Height == nil {
		return 0, false
	}
	return BMI(p.Weight.Float64(), p.Height.Float64())
}

// BMI computes weight (kg) over height (cm) squared, rounded to two decimals.
func BMI(weightKg, heightCm float64) (float64, bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, false
	}
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*100) / 100, true
}

// NewUserProgress is the payload for POST /user-progresses. Only the
// measurements that were provided are sent.
type NewUserProgress struct {
	RecordedAt string   `json:"recorded_at"`
	Weight     *float64 `json:"weight,omitempty"`
	Height     *float64 `json:"height,omitempty"`
	BodyFat    *float64 `json:"body_fat,omitempty"`
	MuscleMass *float64 `json:"muscle_mass,omitempty"`
}
