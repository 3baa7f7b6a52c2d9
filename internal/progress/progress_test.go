package progress

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/meltforce/trainsphere/internal/models"
	"github.com/meltforce/trainsphere/internal/storage"
)

var testToday = time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)

func newTestAggregator(t *testing.T) (*Aggregator, *storage.DB) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "trainsphere.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := New(db, log)
	a.now = func() time.Time { return testToday }
	return a, db
}

func mustCreate(t *testing.T, db *storage.DB, date, cat string, exercises ...string) int64 {
	t.Helper()
	entries := make([]models.ExerciseEntry, 0, len(exercises))
	for _, name := range exercises {
		entries = append(entries, models.ExerciseEntry{Name: name})
	}
	id, err := db.CreateWorkout(context.Background(),
		models.WorkoutSession{Date: date, Type: cat, Category: cat}, entries)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return id
}

// TestOverviewWeekWindow verifies the default week filter returns only
// sessions inside the 7-day window ending today, with exercises attached.
func TestOverviewWeekWindow(t *testing.T) {
	a, db := newTestAggregator(t)

	mustCreate(t, db, "2024-07-03", "Strength") // day before window
	inWindow := mustCreate(t, db, "2024-07-05", "Strength", "Squats", "Deadlifts")
	mustCreate(t, db, "2024-07-11", "Strength") // after today

	got, err := a.Overview(context.Background(), "week", "", 0)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if got.DateFrom != "2024-07-04" || got.DateTo != "2024-07-10" {
		t.Errorf("window = %s..%s, want 2024-07-04..2024-07-10", got.DateFrom, got.DateTo)
	}
	if len(got.Sessions) != 1 || got.Sessions[0].ID != inWindow {
		t.Fatalf("sessions = %+v, want only the in-window one", got.Sessions)
	}
	ex := got.Sessions[0].Exercises
	if len(ex) != 2 || ex[0].Name != "Squats" || ex[1].Name != "Deadlifts" {
		t.Errorf("exercises = %+v, want [Squats Deadlifts]", ex)
	}
}

// TestOverviewCategoryFilter verifies the optional category filter narrows the
// result while the vocabulary still lists everything stored plus the canonical
// buckets.
func TestOverviewCategoryFilter(t *testing.T) {
	a, db := newTestAggregator(t)

	mustCreate(t, db, "2024-07-08", "Strength")
	mustCreate(t, db, "2024-07-09", "Swimming")

	got, err := a.Overview(context.Background(), "week", "Swimming", 0)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(got.Sessions) != 1 || got.Sessions[0].Category != "Swimming" {
		t.Errorf("sessions = %+v, want only Swimming", got.Sessions)
	}

	want := []string{"Cardio", "General", "HIIT", "Mobility", "Strength", "Swimming"}
	if len(got.Categories) != len(want) {
		t.Fatalf("categories = %v, want %v", got.Categories, want)
	}
	for i := range want {
		if got.Categories[i] != want[i] {
			t.Errorf("categories[%d] = %q, want %q", i, got.Categories[i], want[i])
		}
	}
}

// TestOverviewVocabularyOnEmptyStore verifies the dropdown offers the
// canonical buckets even before anything is logged.
func TestOverviewVocabularyOnEmptyStore(t *testing.T) {
	a, _ := newTestAggregator(t)

	got, err := a.Overview(context.Background(), "week", "", 0)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(got.Categories) != 5 {
		t.Errorf("categories = %v, want the 5 canonical buckets", got.Categories)
	}
	if len(got.Sessions) != 0 {
		t.Errorf("sessions = %+v, want empty", got.Sessions)
	}
}

// TestOverviewEditPreload verifies edit=id loads that session with exercises,
// and an unknown id degrades to no preload instead of failing the view.
func TestOverviewEditPreload(t *testing.T) {
	a, db := newTestAggregator(t)

	id := mustCreate(t, db, "2024-01-01", "HIIT", "Burpees")

	got, err := a.Overview(context.Background(), "week", "", id)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if got.Editing == nil || got.Editing.ID != id {
		t.Fatalf("editing = %+v, want session %d", got.Editing, id)
	}
	if len(got.Editing.Exercises) != 1 || got.Editing.Exercises[0].Name != "Burpees" {
		t.Errorf("editing exercises = %+v", got.Editing.Exercises)
	}
	// The edit target is outside the filter window — preload is independent.
	if len(got.Sessions) != 0 {
		t.Errorf("sessions = %+v, want empty window", got.Sessions)
	}

	got, err = a.Overview(context.Background(), "week", "", 9999)
	if err != nil {
		t.Fatalf("overview with unknown edit id: %v", err)
	}
	if got.Editing != nil {
		t.Errorf("editing = %+v, want nil for unknown id", got.Editing)
	}
}

// TestTemplatesStable verifies the canned templates keep their presentation
// order and carry exercise prefills.
func TestTemplatesStable(t *testing.T) {
	ts := Templates()
	if len(ts) != 5 {
		t.Fatalf("templates = %d, want 5", len(ts))
	}
	if ts[0].Type != "Strength (Upper)" || ts[4].Type != "Mobility / Yoga" {
		t.Errorf("template order changed: first %q, last %q", ts[0].Type, ts[4].Type)
	}
	for _, tmpl := range ts {
		if len(tmpl.Exercises) == 0 {
			t.Errorf("template %q has no prefills", tmpl.Type)
		}
	}
}
