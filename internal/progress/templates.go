package progress

// Template is a canned exercise prefill offered when logging a known workout
// type.
type Template struct {
	Type      string    `json:"workout_type"`
	Exercises []Prefill `json:"exercises"`
}

// Prefill is one suggested exercise row.
type Prefill struct {
	Name     string  `json:"exercise_name"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weight_kg"`
}

// Templates returns the built-in workout templates in a fixed presentation
// order.
func Templates() []Template {
	return []Template{
		{Type: "Strength (Upper)", Exercises: []Prefill{
			{Name: "Incline Bench Press (Dumbbell)", Sets: 3, Reps: 12, WeightKg: 28},
			{Name: "Lat Pulldown", Sets: 3, Reps: 12, WeightKg: 35},
			{Name: "Dumbbell Shoulder Press", Sets: 3, Reps: 10, WeightKg: 14},
		}},
		{Type: "Strength (Lower)", Exercises: []Prefill{
			{Name: "Squats", Sets: 4, Reps: 8, WeightKg: 40},
			{Name: "Deadlifts", Sets: 3, Reps: 6, WeightKg: 50},
			{Name: "Leg Press", Sets: 3, Reps: 12, WeightKg: 80},
		}},
		{Type: "Cardio", Exercises: []Prefill{
			{Name: "Treadmill", Sets: 1, Reps: 20},
			{Name: "Bike", Sets: 1, Reps: 15},
		}},
		{Type: "HIIT", Exercises: []Prefill{
			{Name: "Burpees", Sets: 4, Reps: 10},
			{Name: "Jump Squats", Sets: 4, Reps: 12},
			{Name: "Mountain Climbers", Sets: 4, Reps: 30},
		}},
		{Type: "Mobility / Yoga", Exercises: []Prefill{
			{Name: "Yoga flow", Sets: 1, Reps: 20},
			{Name: "Stretching", Sets: 1, Reps: 15},
		}},
	}
}
