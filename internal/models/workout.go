package models

import "time"

// WorkoutSession is one logged training event. Dates are calendar days in
// ISO form (YYYY-MM-DD); optional scalar fields are nil when the user left
// them blank or submitted something unparseable.
type WorkoutSession struct {
	ID                int64     `json:"id"`
	Date              string    `json:"workout_date"`
	Type              string    `json:"workout_type"`
	Category          string    `json:"category"`
	DurationMinutes   *int      `json:"duration_minutes"`
	PerformanceRating *int      `json:"performance_rating"`
	FeelingRating     *int      `json:"feeling_rating"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
}

// ExerciseEntry is one exercise owned by exactly one workout session.
// Entries keep their insertion order within the session.
type ExerciseEntry struct {
	ID        int64    `json:"id"`
	WorkoutID int64    `json:"workout_id"`
	Name      string   `json:"exercise_name"`
	Sets      *int     `json:"sets"`
	Reps      *int     `json:"reps"`
	WeightKg  *float64 `json:"weight_kg"`
}

// SessionDetail is a session with its ordered exercises attached.
type SessionDetail struct {
	WorkoutSession
	Exercises []ExerciseEntry `json:"exercises"`
}

// ProfileSnapshot is the single current profile row.
type ProfileSnapshot struct {
	Name           string   `json:"name"`
	Age            *int     `json:"age"`
	HeightCm       *int     `json:"height_cm"`
	WeightKg       *float64 `json:"weight_kg"`
	GoalText       string   `json:"goal_text"`
	GoalWeightKg   *float64 `json:"goal_weight_kg"`
	QuickNotesJSON string   `json:"-"`
}

// PlanSnapshot is the single current custom plan row.
type PlanSnapshot struct {
	WorkoutType      string `json:"workout_type"`
	FrequencyPerWeek int    `json:"frequency_per_week"`
	GoalType         string `json:"goal_type"`
	GoalValue        int    `json:"goal_value"`
	ChecklistJSON    string `json:"-"`
}
