package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/meltforce/trainsphere/internal/models"
)

// listLimit caps how many sessions a filtered list returns.
const listLimit = 50

// CreateWorkout inserts a session and its exercises in one transaction and
// returns the new session id. Exercises are written in slice order; entries
// whose name trims to empty are skipped.
func (db *DB) CreateWorkout(ctx context.Context, session models.WorkoutSession, entries []models.ExerciseEntry) (int64, error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO workouts (workout_date, workout_type, category, duration_minutes,
		 performance_rating, feeling_rating, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.Date, session.Type, session.Category, session.DurationMinutes,
		session.PerformanceRating, session.FeelingRating, session.Notes)
	if err != nil {
		return 0, fmt.Errorf("inserting workout: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading workout id: %w", err)
	}

	if err := insertExercises(ctx, tx, id, entries); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing workout: %w", err)
	}
	return id, nil
}

// UpdateWorkout rewrites a session's scalar fields and atomically replaces its
// entire exercise set with the given list. Returns ErrNotFound when the id
// does not exist; any failure rolls the whole operation back.
func (db *DB) UpdateWorkout(ctx context.Context, id int64, session models.WorkoutSession, entries []models.ExerciseEntry) error {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE workouts
		 SET workout_date = ?, workout_type = ?, category = ?, duration_minutes = ?,
		     performance_rating = ?, feeling_rating = ?, notes = ?
		 WHERE id = ?`,
		session.Date, session.Type, session.Category, session.DurationMinutes,
		session.PerformanceRating, session.FeelingRating, session.Notes, id)
	if err != nil {
		return fmt.Errorf("updating workout: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("checking update result: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM workout_exercises WHERE workout_id = ?`, id); err != nil {
		return fmt.Errorf("clearing exercises: %w", err)
	}

	if err := insertExercises(ctx, tx, id, entries); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing workout update: %w", err)
	}
	return nil
}

// DeleteWorkout removes a session and all its exercises in one transaction.
// Returns ErrNotFound when the id does not exist.
func (db *DB) DeleteWorkout(ctx context.Context, id int64) error {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM workout_exercises WHERE workout_id = ?`, id); err != nil {
		return fmt.Errorf("deleting exercises: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing workout delete: %w", err)
	}
	return nil
}

// GetWorkout retrieves one session with its exercises in insertion order.
// Returns ErrNotFound when the id does not exist.
func (db *DB) GetWorkout(ctx context.Context, id int64) (*models.SessionDetail, error) {
	row := db.sql.QueryRowContext(ctx,
		`SELECT id, workout_date, workout_type, category, duration_minutes,
		 performance_rating, feeling_rating, notes, created_at
		 FROM workouts WHERE id = ?`, id)

	session, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying workout: %w", err)
	}

	byID, err := db.ExercisesBySession(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	return &models.SessionDetail{WorkoutSession: *session, Exercises: byID[id]}, nil
}

// ListWorkouts retrieves sessions with a date in [from, to] inclusive,
// optionally restricted to one category, newest first, capped at 50.
func (db *DB) ListWorkouts(ctx context.Context, from, to, categoryFilter string) ([]models.WorkoutSession, error) {
	query := `SELECT id, workout_date, workout_type, category, duration_minutes,
		 performance_rating, feeling_rating, notes, created_at
		 FROM workouts WHERE workout_date BETWEEN ? AND ?`
	args := []any{from, to}
	if categoryFilter != "" {
		query += ` AND category = ?`
		args = append(args, categoryFilter)
	}
	query += ` ORDER BY workout_date DESC, id DESC LIMIT ?`
	args = append(args, listLimit)

	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSession
	for rows.Next() {
		s, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

// RecentWorkouts retrieves the most recently created sessions regardless of
// any date or category filter, newest first.
func (db *DB) RecentWorkouts(ctx context.Context, limit int) ([]models.WorkoutSession, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, workout_date, workout_type, category, duration_minutes,
		 performance_rating, feeling_rating, notes, created_at
		 FROM workouts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent workouts: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSession
	for rows.Next() {
		s, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

// querier is satisfied by both *sql.DB and *sql.Tx, so batched reads can run
// standalone or inside a snapshot transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// ExercisesBySession fetches the exercises for a batch of session ids in one
// query, keyed by session id, each list in insertion order.
func (db *DB) ExercisesBySession(ctx context.Context, ids []int64) (map[int64][]models.ExerciseEntry, error) {
	return fetchExercises(ctx, db.sql, ids)
}

func fetchExercises(ctx context.Context, q querier, ids []int64) (map[int64][]models.ExerciseEntry, error) {
	result := make(map[int64][]models.ExerciseEntry, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	rows, err := q.QueryContext(ctx,
		`SELECT id, workout_id, exercise_name, sets, reps, weight_kg
		 FROM workout_exercises
		 WHERE workout_id IN (`+strings.Join(placeholders, ",")+`)
		 ORDER BY workout_id, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.ExerciseEntry
		var sets, reps sql.NullInt64
		var weight sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.WorkoutID, &e.Name, &sets, &reps, &weight); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		e.Sets = intPtr(sets)
		e.Reps = intPtr(reps)
		e.WeightKg = floatPtr(weight)
		result[e.WorkoutID] = append(result[e.WorkoutID], e)
	}
	return result, rows.Err()
}

// Categories returns the distinct non-empty categories ever stored, sorted.
func (db *DB) Categories(ctx context.Context) ([]string, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT DISTINCT category FROM workouts WHERE category <> '' ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func insertExercises(ctx context.Context, tx *sql.Tx, workoutID int64, entries []models.ExerciseEntry) error {
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO workout_exercises (workout_id, exercise_name, sets, reps, weight_kg)
			 VALUES (?, ?, ?, ?, ?)`,
			workoutID, name, e.Sets, e.Reps, e.WeightKg); err != nil {
			return fmt.Errorf("inserting exercise: %w", err)
		}
	}
	return nil
}

func scanWorkout(row interface{ Scan(dest ...any) error }) (*models.WorkoutSession, error) {
	var s models.WorkoutSession
	var duration, perf, feel sql.NullInt64
	var notes sql.NullString
	if err := row.Scan(&s.ID, &s.Date, &s.Type, &s.Category,
		&duration, &perf, &feel, &notes, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.DurationMinutes = intPtr(duration)
	s.PerformanceRating = intPtr(perf)
	s.FeelingRating = intPtr(feel)
	s.Notes = notes.String
	return &s, nil
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
