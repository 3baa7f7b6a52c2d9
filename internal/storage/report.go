package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/meltforce/trainsphere/internal/models"
)

// ReportRows is the raw material the report compiler assembles from. Profile
// and Plan are nil when never stored.
type ReportRows struct {
	Profile  *models.ProfileSnapshot
	Plan     *models.PlanSnapshot
	Workouts []models.SessionDetail
}

// ReportSnapshot reads profile, plan, and the most recent limit sessions with
// their exercises inside a single read transaction, so a concurrently
// committing edit is observed either fully or not at all.
func (db *DB) ReportSnapshot(ctx context.Context, limit int) (*ReportRows, error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning read transaction: %w", err)
	}
	defer tx.Rollback()

	out := &ReportRows{}

	profile, err := scanProfile(tx.QueryRowContext(ctx,
		`SELECT name, age, height_cm, weight_kg, goal_text, goal_weight_kg, quick_notes_json
		 FROM profile WHERE id = ?`, snapshotID))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	out.Profile = profile

	var plan models.PlanSnapshot
	var checklist sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT workout_type, frequency_per_week, goal_type, goal_value, checklist_json
		 FROM custom_plan WHERE id = ?`, snapshotID).
		Scan(&plan.WorkoutType, &plan.FrequencyPerWeek, &plan.GoalType, &plan.GoalValue, &checklist)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("querying plan: %w", err)
	default:
		plan.ChecklistJSON = checklist.String
		out.Plan = &plan
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, workout_date, workout_type, category, duration_minutes,
		 performance_rating, feeling_rating, notes, created_at
		 FROM workouts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent workouts: %w", err)
	}
	defer rows.Close()

	var sessions []models.WorkoutSession
	var ids []int64
	for rows.Next() {
		s, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		sessions = append(sessions, *s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	byID, err := fetchExercises(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	for _, s := range sessions {
		out.Workouts = append(out.Workouts, models.SessionDetail{
			WorkoutSession: s,
			Exercises:      byID[s.ID],
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing read transaction: %w", err)
	}
	return out, nil
}
