// Package forms decodes the write-side form vocabulary into typed records.
// Every recognized field is enumerated here; anything else in the posted form
// is ignored. Numeric fields go through an explicit parse with a per-field
// policy, so the degrade-vs-reject decision is visible instead of buried in
// blanket error suppression.
package forms

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/trainsphere/internal/category"
	"github.com/meltforce/trainsphere/internal/models"
	"github.com/meltforce/trainsphere/internal/period"
)

// Policy decides what happens when a numeric field fails to parse.
type Policy int

const (
	// Reject fails the whole submission.
	Reject Policy = iota
	// Null degrades the field to absent.
	Null
	// Zero degrades the field to its zero value.
	Zero
)

// IntPolicies maps every recognized integer field to its failure policy.
// Workout metadata is optional: a garbled rating must not lose the session.
// Plan fields are required.
var IntPolicies = map[string]Policy{
	"duration_minutes":   Null,
	"performance_rating": Null,
	"feeling_rating":     Null,
	"sets":               Null,
	"reps":               Null,
	"age":                Null,
	"height_cm":          Null,
	"frequency":          Reject,
	"goal_value":         Reject,
}

// FloatPolicies maps every recognized real-number field to its failure policy.
var FloatPolicies = map[string]Policy{
	"weight_kg":      Null,
	"goal_weight_kg": Null,
}

// FieldError reports a rejected field and why.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

// intField parses one named integer value under its registered policy.
func intField(name, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err == nil {
		return &n, nil
	}
	switch IntPolicies[name] {
	case Reject:
		return nil, &FieldError{Field: name, Reason: "not an integer"}
	case Zero:
		zero := 0
		return &zero, nil
	default:
		return nil, nil
	}
}

// floatField parses one named real value under its registered policy.
func floatField(name, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err == nil {
		return &f, nil
	}
	switch FloatPolicies[name] {
	case Reject:
		return nil, &FieldError{Field: name, Reason: "not a number"}
	case Zero:
		zero := 0.0
		return &zero, nil
	default:
		return nil, nil
	}
}

// parseDate accepts YYYY-MM-DD; anything else falls back to today.
func parseDate(raw string, today time.Time) string {
	raw = strings.TrimSpace(raw)
	if _, err := time.Parse(period.ISO, raw); err == nil {
		return raw
	}
	return today.Format(period.ISO)
}

// ExerciseInput is one row of the parallel exercise lists.
type ExerciseInput struct {
	Name     string
	Sets     *int
	Reps     *int
	WeightKg *float64
}

// WorkoutSubmission is the typed write record for a session. Category is
// always populated: the posted override when present, otherwise derived from
// the workout type.
type WorkoutSubmission struct {
	Date              string
	Type              string
	Category          string
	DurationMinutes   *int
	PerformanceRating *int
	FeelingRating     *int
	Notes             string
	Exercises         []ExerciseInput
}

// ParseWorkout decodes a workout form post. The exercise lists correlate
// index-by-index; rows whose name trims to empty are dropped here, before
// anything reaches storage.
func ParseWorkout(values url.Values, today time.Time) (*WorkoutSubmission, error) {
	workoutType := strings.TrimSpace(values.Get("workout_type"))
	if workoutType == "" {
		workoutType = "Strength (Upper)"
	}

	cat := strings.TrimSpace(values.Get("category"))
	if cat == "" {
		cat = category.Derive(workoutType)
	}

	duration, err := intField("duration_minutes", values.Get("duration_minutes"))
	if err != nil {
		return nil, err
	}
	perf, err := intField("performance_rating", values.Get("performance_rating"))
	if err != nil {
		return nil, err
	}
	feel, err := intField("feeling_rating", values.Get("feeling_rating"))
	if err != nil {
		return nil, err
	}

	sub := &WorkoutSubmission{
		Date:              parseDate(values.Get("workout_date"), today),
		Type:              workoutType,
		Category:          cat,
		DurationMinutes:   duration,
		PerformanceRating: perf,
		FeelingRating:     feel,
		Notes:             strings.TrimSpace(values.Get("notes")),
	}

	names := values["exercise_name"]
	sets := values["sets"]
	reps := values["reps"]
	weights := values["weight_kg"]
	at := func(list []string, i int) string {
		if i < len(list) {
			return list[i]
		}
		return ""
	}

	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s, err := intField("sets", at(sets, i))
		if err != nil {
			return nil, err
		}
		r, err := intField("reps", at(reps, i))
		if err != nil {
			return nil, err
		}
		w, err := floatField("weight_kg", at(weights, i))
		if err != nil {
			return nil, err
		}
		sub.Exercises = append(sub.Exercises, ExerciseInput{Name: name, Sets: s, Reps: r, WeightKg: w})
	}

	return sub, nil
}

// Session converts the submission into a storage-ready session record.
func (s *WorkoutSubmission) Session() models.WorkoutSession {
	return models.WorkoutSession{
		Date:              s.Date,
		Type:              s.Type,
		Category:          s.Category,
		DurationMinutes:   s.DurationMinutes,
		PerformanceRating: s.PerformanceRating,
		FeelingRating:     s.FeelingRating,
		Notes:             s.Notes,
	}
}

// Entries converts the exercise inputs into storage-ready entries.
func (s *WorkoutSubmission) Entries() []models.ExerciseEntry {
	out := make([]models.ExerciseEntry, 0, len(s.Exercises))
	for _, ex := range s.Exercises {
		out = append(out, models.ExerciseEntry{
			Name:     ex.Name,
			Sets:     ex.Sets,
			Reps:     ex.Reps,
			WeightKg: ex.WeightKg,
		})
	}
	return out
}

// ParseProfile decodes a profile form post. Only non-empty fields carry
// meaning; the merge against the existing snapshot happens in storage.
func ParseProfile(values url.Values) (*models.ProfileSnapshot, error) {
	age, err := intField("age", values.Get("age"))
	if err != nil {
		return nil, err
	}
	height, err := intField("height_cm", values.Get("height_cm"))
	if err != nil {
		return nil, err
	}
	weight, err := floatField("weight_kg", values.Get("weight_kg"))
	if err != nil {
		return nil, err
	}
	goalWeight, err := floatField("goal_weight_kg", values.Get("goal_weight_kg"))
	if err != nil {
		return nil, err
	}

	snap := &models.ProfileSnapshot{
		Name:         strings.TrimSpace(values.Get("name")),
		Age:          age,
		HeightCm:     height,
		WeightKg:     weight,
		GoalText:     strings.TrimSpace(values.Get("goal_text")),
		GoalWeightKg: goalWeight,
	}
	if notes := values["quick_notes"]; len(notes) > 0 {
		snap.QuickNotesJSON = marshalList(notes)
	}
	return snap, nil
}

// ParsePlan decodes a plan form post. All four scalar fields are required;
// a missing or malformed value rejects the submission.
func ParsePlan(values url.Values) (*models.PlanSnapshot, error) {
	workoutType := strings.TrimSpace(values.Get("workout_type"))
	goalType := strings.TrimSpace(values.Get("goal_type"))
	if workoutType == "" || goalType == "" {
		return nil, &FieldError{Field: "workout_type", Reason: "plan fields are required"}
	}

	freq, err := intField("frequency", values.Get("frequency"))
	if err != nil {
		return nil, err
	}
	goalValue, err := intField("goal_value", values.Get("goal_value"))
	if err != nil {
		return nil, err
	}
	if freq == nil || goalValue == nil {
		return nil, &FieldError{Field: "frequency", Reason: "plan fields are required"}
	}

	snap := &models.PlanSnapshot{
		WorkoutType:      workoutType,
		FrequencyPerWeek: *freq,
		GoalType:         goalType,
		GoalValue:        *goalValue,
	}
	if checklist := values["checklist"]; len(checklist) > 0 {
		snap.ChecklistJSON = marshalList(checklist)
	}
	return snap, nil
}

func marshalList(items []string) string {
	data, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return string(data)
}
