package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/meltforce/trainsphere/internal/models"
)

func intp(n int) *int           { return &n }
func floatp(f float64) *float64 { return &f }

func sampleDocument() *models.ReportDocument {
	return &models.ReportDocument{
		Profile: &models.ProfileSnapshot{
			Name:     "Alex",
			Age:      intp(31),
			HeightCm: intp(180),
			WeightKg: floatp(77.5),
			GoalText: "Build strength",
		},
		Plan: &models.PlanSnapshot{
			WorkoutType:      "Strength",
			FrequencyPerWeek: 3,
			GoalType:         "sessions",
			GoalValue:        12,
		},
		Checklist:  []string{"Warm up", "Stretch"},
		QuickNotes: []string{"Knee felt fine"},
		Workouts: []models.SessionDetail{
			{
				WorkoutSession: models.WorkoutSession{
					ID: 2, Date: "2024-07-10", Type: "Strength (Upper)",
					Category:        "Strength",
					DurationMinutes: intp(45),
					Notes:           "solid",
				},
				Exercises: []models.ExerciseEntry{
					{ID: 1, WorkoutID: 2, Name: "Bench Press", Sets: intp(3), Reps: intp(8), WeightKg: floatp(60)},
					{ID: 2, WorkoutID: 2, Name: "Row", Sets: intp(3), Reps: intp(10)},
				},
			},
			{
				WorkoutSession: models.WorkoutSession{
					ID: 1, Date: "2024-07-08", Type: "Cardio", Category: "Cardio",
				},
				Exercises: []models.ExerciseEntry{
					{ID: 3, WorkoutID: 1, Name: "Run"},
				},
			},
		},
	}
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parsing csv: %v", err)
	}
	return rows
}

// TestCSVArtifact checks the artifact metadata and the BOM prefix.
func TestCSVArtifact(t *testing.T) {
	art, err := CSV(sampleDocument())
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	if art.Filename != "trainsphere_report.csv" {
		t.Errorf("filename = %q", art.Filename)
	}
	if art.ContentType != "text/csv" {
		t.Errorf("content type = %q", art.ContentType)
	}
	if !bytes.HasPrefix(art.Data, utf8BOM) {
		t.Error("expected UTF-8 BOM prefix")
	}
}

// TestCSVSectionOrder verifies the fixed section sequence of the export.
func TestCSVSectionOrder(t *testing.T) {
	art, err := CSV(sampleDocument())
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	rows := parseCSV(t, bytes.TrimPrefix(art.Data, utf8BOM))

	want := []string{
		"TrainSphere Report", "PROFILE", "PLAN", "CHECKLIST",
		"QUICK NOTES", "WORKOUTS (latest first)", "EXERCISES",
	}
	idx := 0
	for _, row := range rows {
		if idx < len(want) && len(row) > 0 && row[0] == want[idx] {
			idx++
		}
	}
	if idx != len(want) {
		t.Errorf("found %d of %d section headers in order", idx, len(want))
	}
}

// TestCSVEmptyDocument checks that absent sections keep their headers and
// emit placeholder rows instead of vanishing.
func TestCSVEmptyDocument(t *testing.T) {
	doc := &models.ReportDocument{Checklist: []string{}, QuickNotes: []string{}}
	art, err := CSV(doc)
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	text := string(art.Data)

	for _, want := range []string{"No profile data", "No plan data", "(none)", "No workout data"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing placeholder %q", want)
		}
	}
}

// TestCSVNilOptionalsEmptyCells checks missing numbers render as empty cells,
// not zeroes.
func TestCSVNilOptionalsEmptyCells(t *testing.T) {
	art, err := CSV(sampleDocument())
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	rows := parseCSV(t, bytes.TrimPrefix(art.Data, utf8BOM))

	for _, row := range rows {
		if len(row) == 7 && row[0] == "1" && row[1] == "2024-07-08" {
			if row[3] != "" || row[4] != "" || row[5] != "" {
				t.Errorf("expected empty optional cells, got %v", row)
			}
			return
		}
	}
	t.Fatal("workout row for session 1 not found")
}

// TestCSVExerciseRowsFollowDocumentOrder checks exercises appear grouped by
// session in document order.
func TestCSVExerciseRowsFollowDocumentOrder(t *testing.T) {
	art, err := CSV(sampleDocument())
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	rows := parseCSV(t, bytes.TrimPrefix(art.Data, utf8BOM))

	var names []string
	inExercises := false
	for _, row := range rows {
		if len(row) == 1 && row[0] == "EXERCISES" {
			inExercises = true
			continue
		}
		if inExercises && len(row) == 5 && row[1] != "Exercise" {
			names = append(names, row[1])
		}
	}
	want := []string{"Bench Press", "Row", "Run"}
	if len(names) != len(want) {
		t.Fatalf("exercise rows = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("exercise[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

// TestForFormatDispatch checks format routing including the unknown case.
func TestForFormatDispatch(t *testing.T) {
	doc := sampleDocument()

	art, err := ForFormat("csv", doc)
	if err != nil || art == nil || art.ContentType != "text/csv" {
		t.Errorf("csv dispatch: art=%v err=%v", art, err)
	}

	art, err = ForFormat("pdf", doc)
	if err != nil || art == nil || art.ContentType != "application/pdf" {
		t.Errorf("pdf dispatch: art=%v err=%v", art, err)
	}

	art, err = ForFormat("xlsx", doc)
	if err != nil || art != nil {
		t.Errorf("unknown format should return nil, nil; got art=%v err=%v", art, err)
	}
}
