package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/meltforce/trainsphere/internal/models"
)

// Profile and plan are structural singletons: one row, fixed id 1, written
// with an upsert. "There is at most one current snapshot" is enforced by the
// schema, not by ordering conventions.
const snapshotID = 1

// UpsertProfile merges the incoming snapshot into the current profile row.
// Incoming non-empty fields win; everything else keeps its stored value. A
// first write with an empty name is ignored, matching the submission contract.
func (db *DB) UpsertProfile(ctx context.Context, snap models.ProfileSnapshot) error {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := scanProfile(tx.QueryRowContext(ctx,
		`SELECT name, age, height_cm, weight_kg, goal_text, goal_weight_kg, quick_notes_json
		 FROM profile WHERE id = ?`, snapshotID))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if snap.Name == "" {
			return nil
		}
	case err != nil:
		return fmt.Errorf("querying profile: %w", err)
	default:
		snap = mergeProfile(*existing, snap)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO profile (id, name, age, height_cm, weight_kg, goal_text, goal_weight_kg, quick_notes_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name, age = excluded.age, height_cm = excluded.height_cm,
		   weight_kg = excluded.weight_kg, goal_text = excluded.goal_text,
		   goal_weight_kg = excluded.goal_weight_kg, quick_notes_json = excluded.quick_notes_json,
		   updated_at = CURRENT_TIMESTAMP`,
		snapshotID, snap.Name, snap.Age, snap.HeightCm, snap.WeightKg,
		snap.GoalText, snap.GoalWeightKg, nullIfEmpty(snap.QuickNotesJSON)); err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing profile: %w", err)
	}
	return nil
}

// GetProfile returns the current profile snapshot, or ErrNotFound if none was
// ever stored.
func (db *DB) GetProfile(ctx context.Context) (*models.ProfileSnapshot, error) {
	snap, err := scanProfile(db.sql.QueryRowContext(ctx,
		`SELECT name, age, height_cm, weight_kg, goal_text, goal_weight_kg, quick_notes_json
		 FROM profile WHERE id = ?`, snapshotID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	return snap, nil
}

// UpsertPlan replaces the current plan snapshot.
func (db *DB) UpsertPlan(ctx context.Context, snap models.PlanSnapshot) error {
	if _, err := db.sql.ExecContext(ctx,
		`INSERT INTO custom_plan (id, workout_type, frequency_per_week, goal_type, goal_value, checklist_json)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   workout_type = excluded.workout_type, frequency_per_week = excluded.frequency_per_week,
		   goal_type = excluded.goal_type, goal_value = excluded.goal_value,
		   checklist_json = excluded.checklist_json, updated_at = CURRENT_TIMESTAMP`,
		snapshotID, snap.WorkoutType, snap.FrequencyPerWeek, snap.GoalType,
		snap.GoalValue, nullIfEmpty(snap.ChecklistJSON)); err != nil {
		return fmt.Errorf("upserting plan: %w", err)
	}
	return nil
}

// GetPlan returns the current plan snapshot, or ErrNotFound if none was ever
// stored.
func (db *DB) GetPlan(ctx context.Context) (*models.PlanSnapshot, error) {
	var snap models.PlanSnapshot
	var checklist sql.NullString
	err := db.sql.QueryRowContext(ctx,
		`SELECT workout_type, frequency_per_week, goal_type, goal_value, checklist_json
		 FROM custom_plan WHERE id = ?`, snapshotID).
		Scan(&snap.WorkoutType, &snap.FrequencyPerWeek, &snap.GoalType, &snap.GoalValue, &checklist)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}
	snap.ChecklistJSON = checklist.String
	return &snap, nil
}

func scanProfile(row *sql.Row) (*models.ProfileSnapshot, error) {
	var snap models.ProfileSnapshot
	var age, height sql.NullInt64
	var weight, goalWeight sql.NullFloat64
	var goalText, quickNotes sql.NullString
	if err := row.Scan(&snap.Name, &age, &height, &weight, &goalText, &goalWeight, &quickNotes); err != nil {
		return nil, err
	}
	snap.Age = intPtr(age)
	snap.HeightCm = intPtr(height)
	snap.WeightKg = floatPtr(weight)
	snap.GoalText = goalText.String
	snap.GoalWeightKg = floatPtr(goalWeight)
	snap.QuickNotesJSON = quickNotes.String
	return &snap, nil
}

func mergeProfile(existing, incoming models.ProfileSnapshot) models.ProfileSnapshot {
	merged := existing
	if incoming.Name != "" {
		merged.Name = incoming.Name
	}
	if incoming.Age != nil {
		merged.Age = incoming.Age
	}
	if incoming.HeightCm != nil {
		merged.HeightCm = incoming.HeightCm
	}
	if incoming.WeightKg != nil {
		merged.WeightKg = incoming.WeightKg
	}
	if incoming.GoalText != "" {
		merged.GoalText = incoming.GoalText
	}
	if incoming.GoalWeightKg != nil {
		merged.GoalWeightKg = incoming.GoalWeightKg
	}
	if incoming.QuickNotesJSON != "" {
		merged.QuickNotesJSON = incoming.QuickNotesJSON
	}
	return merged
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
