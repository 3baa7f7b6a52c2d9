package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/meltforce/trainsphere/internal/models"
)

// utf8BOM makes spreadsheet tools detect the encoding, so non-ASCII exercise
// names survive the round trip into Excel.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV renders the report document as a row-oriented table with fixed sections:
// PROFILE, PLAN, CHECKLIST, QUICK NOTES, WORKOUTS, EXERCISES. Empty sections
// keep their header and emit a placeholder row.
func CSV(doc *models.ReportDocument) (*Artifact, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"TrainSphere Report"},
		{},
		{"PROFILE"},
	}
	if p := doc.Profile; p != nil {
		rows = append(rows,
			[]string{"Name", p.Name},
			[]string{"Age", intCell(p.Age)},
			[]string{"Height_cm", intCell(p.HeightCm)},
			[]string{"Weight_kg", floatCell(p.WeightKg)},
			[]string{"Goal_text", p.GoalText},
			[]string{"Goal_weight_kg", floatCell(p.GoalWeightKg)},
		)
	} else {
		rows = append(rows, []string{"No profile data"})
	}

	rows = append(rows, []string{}, []string{"PLAN"})
	if p := doc.Plan; p != nil {
		rows = append(rows,
			[]string{"Workout_type", p.WorkoutType},
			[]string{"Frequency_per_week", strconv.Itoa(p.FrequencyPerWeek)},
			[]string{"Goal_type", p.GoalType},
			[]string{"Goal_value", strconv.Itoa(p.GoalValue)},
		)
	} else {
		rows = append(rows, []string{"No plan data"})
	}

	rows = append(rows, []string{}, []string{"CHECKLIST"})
	rows = append(rows, listRows(doc.Checklist)...)

	rows = append(rows, []string{}, []string{"QUICK NOTES"})
	rows = append(rows, listRows(doc.QuickNotes)...)

	rows = append(rows, []string{}, []string{"WORKOUTS (latest first)"})
	if len(doc.Workouts) > 0 {
		rows = append(rows, []string{
			"Workout_id", "Date", "Type", "Duration_minutes",
			"Performance_rating", "Feeling_rating", "Notes",
		})
		for _, s := range doc.Workouts {
			rows = append(rows, []string{
				strconv.FormatInt(s.ID, 10), s.Date, s.Type,
				intCell(s.DurationMinutes), intCell(s.PerformanceRating),
				intCell(s.FeelingRating), s.Notes,
			})
		}
	} else {
		rows = append(rows, []string{"No workout data"})
	}

	rows = append(rows, []string{}, []string{"EXERCISES"})
	rows = append(rows, []string{"Workout_id", "Exercise", "Sets", "Reps", "Weight_kg"})
	for _, s := range doc.Workouts {
		for _, ex := range s.Exercises {
			rows = append(rows, []string{
				strconv.FormatInt(s.ID, 10), ex.Name,
				intCell(ex.Sets), intCell(ex.Reps), floatCell(ex.WeightKg),
			})
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("writing csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	return &Artifact{
		Filename:    "trainsphere_report.csv",
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

func listRows(items []string) [][]string {
	if len(items) == 0 {
		return [][]string{{"(none)"}}
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item})
	}
	return rows
}

func intCell(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func floatCell(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}
