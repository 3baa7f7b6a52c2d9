// Package progress resolves a period/category filter into the data the
// progress view needs: the matching sessions with their exercises, the filter
// vocabulary, and an optional session preloaded for editing.
package progress

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/meltforce/trainsphere/internal/category"
	"github.com/meltforce/trainsphere/internal/models"
	"github.com/meltforce/trainsphere/internal/period"
	"github.com/meltforce/trainsphere/internal/storage"
)

// Aggregator answers filtered progress queries against the store.
type Aggregator struct {
	db  *storage.DB
	log *slog.Logger
	now func() time.Time
}

// New creates an Aggregator.
func New(db *storage.DB, log *slog.Logger) *Aggregator {
	return &Aggregator{db: db, log: log, now: time.Now}
}

// Overview is the assembled progress view for one filter combination.
type Overview struct {
	Period     string                 `json:"period"`
	Category   string                 `json:"category"`
	DateFrom   string                 `json:"date_from"`
	DateTo     string                 `json:"date_to"`
	Categories []string               `json:"categories"`
	Sessions   []models.SessionDetail `json:"sessions"`
	Editing    *models.SessionDetail  `json:"editing,omitempty"`
}

// Overview resolves the period keyword to a date window, lists the matching
// sessions, and attaches their exercises with one batched fetch. The category
// vocabulary is computed independently of the filter so the dropdown is
// complete even when the window is empty. editID > 0 additionally preloads
// that session for the edit form; an unknown id simply leaves Editing nil.
func (a *Aggregator) Overview(ctx context.Context, periodKeyword, categoryFilter string, editID int64) (*Overview, error) {
	if periodKeyword != "month" {
		periodKeyword = "week"
	}
	window := period.Resolve(periodKeyword, a.now())

	sessions, err := a.db.ListWorkouts(ctx, window.FromISO(), window.ToISO(), categoryFilter)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	exercises, err := a.db.ExercisesBySession(ctx, ids)
	if err != nil {
		return nil, err
	}

	stored, err := a.db.Categories(ctx)
	if err != nil {
		return nil, err
	}

	out := &Overview{
		Period:     periodKeyword,
		Category:   categoryFilter,
		DateFrom:   window.FromISO(),
		DateTo:     window.ToISO(),
		Categories: category.Vocabulary(stored),
		Sessions:   make([]models.SessionDetail, 0, len(sessions)),
	}
	for _, s := range sessions {
		out.Sessions = append(out.Sessions, models.SessionDetail{
			WorkoutSession: s,
			Exercises:      exercises[s.ID],
		})
	}

	if editID > 0 {
		editing, err := a.db.GetWorkout(ctx, editID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			a.log.Warn("edit preload: session not found", "id", editID)
		case err != nil:
			return nil, err
		default:
			out.Editing = editing
		}
	}

	return out, nil
}
