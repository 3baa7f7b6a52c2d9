package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/meltforce/trainsphere/internal/models"
	"github.com/meltforce/trainsphere/internal/progress"
	"github.com/meltforce/trainsphere/internal/report"
	"github.com/meltforce/trainsphere/internal/storage"
)

const testAPIKey = "test-key-123"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "trainsphere.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(db, progress.New(db, log), report.New(db, log, 0), testAPIKey, log)
}

func doForm(t *testing.T, srv *Server, method, path string, form url.Values, apiKey string) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func doGet(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func workoutForm() url.Values {
	return url.Values{
		"workout_date":       {"2024-07-10"},
		"workout_type":       {"Strength (Upper)"},
		"duration_minutes":   {"45"},
		"performance_rating": {"8"},
		"feeling_rating":     {"7"},
		"notes":              {"solid session"},
		"exercise_name":      {"Bench Press", "Row"},
		"sets":               {"3", "3"},
		"reps":               {"8", "10"},
		"weight_kg":          {"60", "50"},
	}
}

func createWorkout(t *testing.T, srv *Server) int64 {
	t.Helper()
	rec := doForm(t, srv, http.MethodPost, "/api/v1/workouts", workoutForm(), testAPIKey)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	return resp.ID
}

// TestCreateAndGetWorkout covers the create/fetch round trip through the
// HTTP layer, including derived category and exercise order.
func TestCreateAndGetWorkout(t *testing.T) {
	srv := newTestServer(t)
	id := createWorkout(t, srv)

	rec := doGet(t, srv, "/api/v1/workouts/"+strconv.FormatInt(id, 10))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	var detail models.SessionDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decoding detail: %v", err)
	}
	if detail.Date != "2024-07-10" || detail.Category != "Strength" {
		t.Errorf("detail = %+v", detail.WorkoutSession)
	}
	if len(detail.Exercises) != 2 || detail.Exercises[0].Name != "Bench Press" {
		t.Errorf("exercises = %+v", detail.Exercises)
	}
}

// TestMutationsRequireAPIKey verifies the auth middleware guards every
// mutating route while reads stay open.
func TestMutationsRequireAPIKey(t *testing.T) {
	srv := newTestServer(t)

	rec := doForm(t, srv, http.MethodPost, "/api/v1/workouts", workoutForm(), "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing key: status = %d, want 401", rec.Code)
	}

	rec = doForm(t, srv, http.MethodPost, "/api/v1/workouts", workoutForm(), "wrong")
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong key: status = %d, want 403", rec.Code)
	}

	if rec := doGet(t, srv, "/api/v1/progress"); rec.Code != http.StatusOK {
		t.Errorf("unauthenticated read: status = %d, want 200", rec.Code)
	}
}

// TestUpdateWorkoutReplacesExercises checks the update handler swaps the
// exercise list atomically.
func TestUpdateWorkoutReplacesExercises(t *testing.T) {
	srv := newTestServer(t)
	id := createWorkout(t, srv)

	form := workoutForm()
	form["exercise_name"] = []string{"Deadlift"}
	form["sets"] = []string{"5"}
	form["reps"] = []string{"5"}
	form["weight_kg"] = []string{"120"}

	rec := doForm(t, srv, http.MethodPost, "/api/v1/workouts/"+strconv.FormatInt(id, 10), form, testAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}

	var detail models.SessionDetail
	getRec := doGet(t, srv, "/api/v1/workouts/"+strconv.FormatInt(id, 10))
	if err := json.Unmarshal(getRec.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	if len(detail.Exercises) != 1 || detail.Exercises[0].Name != "Deadlift" {
		t.Errorf("exercises after update = %+v", detail.Exercises)
	}
}

// TestUpdateWorkoutNotFound verifies a 404 for an id that was never created.
func TestUpdateWorkoutNotFound(t *testing.T) {
	srv := newTestServer(t)
	rec := doForm(t, srv, http.MethodPost, "/api/v1/workouts/999", workoutForm(), testAPIKey)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// TestDeleteWorkout covers delete plus the 404 on a second lookup.
func TestDeleteWorkout(t *testing.T) {
	srv := newTestServer(t)
	id := createWorkout(t, srv)
	path := "/api/v1/workouts/" + strconv.FormatInt(id, 10)

	rec := doForm(t, srv, http.MethodDelete, path, nil, testAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec := doGet(t, srv, path); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", rec.Code)
	}
}

// TestWorkoutInvalidIDRejected verifies non-numeric ids are a 400, not a
// routing miss.
func TestWorkoutInvalidIDRejected(t *testing.T) {
	srv := newTestServer(t)
	rec := doGet(t, srv, "/api/v1/workouts/abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestProgressBadEditID verifies a non-numeric edit parameter is a 400.
func TestProgressBadEditID(t *testing.T) {
	srv := newTestServer(t)
	rec := doGet(t, srv, "/api/v1/progress?edit=abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestProfileLifecycle covers the 404-before-save, merge-upsert, and read
// path for the profile snapshot.
func TestProfileLifecycle(t *testing.T) {
	srv := newTestServer(t)

	if rec := doGet(t, srv, "/api/v1/profile"); rec.Code != http.StatusNotFound {
		t.Errorf("empty profile: status = %d, want 404", rec.Code)
	}

	form := url.Values{
		"name":      {"Alex"},
		"age":       {"31"},
		"height_cm": {"180"},
		"weight_kg": {"77.5"},
		"goal_text": {"Build strength"},
	}
	rec := doForm(t, srv, http.MethodPost, "/api/v1/profile", form, testAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doGet(t, srv, "/api/v1/profile")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var snap models.ProfileSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Name != "Alex" || snap.Age == nil || *snap.Age != 31 {
		t.Errorf("profile = %+v", snap)
	}
}

// TestPlanLifecycle covers plan upsert and read, plus validation rejects.
func TestPlanLifecycle(t *testing.T) {
	srv := newTestServer(t)

	if rec := doGet(t, srv, "/api/v1/plan"); rec.Code != http.StatusNotFound {
		t.Errorf("empty plan: status = %d, want 404", rec.Code)
	}

	form := url.Values{
		"workout_type": {"Strength"},
		"frequency":    {"3"},
		"goal_type":    {"sessions"},
		"goal_value":   {"12"},
		"checklist":    {"Warm up", "Stretch"},
	}
	rec := doForm(t, srv, http.MethodPost, "/api/v1/plan", form, testAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doGet(t, srv, "/api/v1/plan")
	var snap models.PlanSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.WorkoutType != "Strength" || snap.FrequencyPerWeek != 3 {
		t.Errorf("plan = %+v", snap)
	}

	form.Set("frequency", "three")
	rec = doForm(t, srv, http.MethodPost, "/api/v1/plan", form, testAPIKey)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad frequency: status = %d, want 400", rec.Code)
	}
}

// TestReportExportFormats checks artifact downloads and the JSON fallback
// for unknown formats.
func TestReportExportFormats(t *testing.T) {
	srv := newTestServer(t)
	createWorkout(t, srv)

	rec := doGet(t, srv, "/api/v1/report/export?format=csv")
	if rec.Code != http.StatusOK {
		t.Fatalf("csv status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("csv content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "trainsphere_report.csv") {
		t.Errorf("csv disposition = %q", cd)
	}

	rec = doGet(t, srv, "/api/v1/report/export?format=pdf")
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("pdf content type = %q", ct)
	}

	rec = doGet(t, srv, "/api/v1/report/export?format=docx")
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("fallback content type = %q, want JSON report", ct)
	}
}

// TestMotivation verifies the quote endpoint returns a non-empty quote.
func TestMotivation(t *testing.T) {
	srv := newTestServer(t)
	rec := doGet(t, srv, "/api/v1/motivation")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["quote"] == "" {
		t.Error("empty quote")
	}
}

// TestTemplates verifies the predefined workout templates endpoint.
func TestTemplates(t *testing.T) {
	srv := newTestServer(t)
	rec := doGet(t, srv, "/api/v1/templates")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var templates []progress.Template
	if err := json.Unmarshal(rec.Body.Bytes(), &templates); err != nil {
		t.Fatal(err)
	}
	if len(templates) != 5 {
		t.Errorf("template count = %d, want 5", len(templates))
	}
}
