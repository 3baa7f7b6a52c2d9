package export

import (
	"fmt"
	"strings"

	"github.com/meltforce/trainsphere/internal/models"
)

// line is one drawable row of the paginated export. advance is how far the
// layout cursor moves down after drawing it.
type line struct {
	text    string
	bold    bool
	size    float64
	indent  float64
	advance float64
}

func title(text string) line   { return line{text: text, bold: true, size: 18, advance: 30} }
func header(text string) line  { return line{text: text, bold: true, size: 12, advance: 18} }
func body(text string) line    { return line{text: text, size: 11, advance: 15} }
func item(text string) line    { return line{text: "- " + text, size: 11, indent: 10, advance: 14} }
func gap(advance float64) line { return line{advance: advance} }

// buildLines flattens the report document into the drawable line sequence.
// The section order mirrors the CSV export. Absent optional fields drop their
// token from the composed line; they never drop the line or raise an error.
func buildLines(doc *models.ReportDocument) []line {
	lines := []line{title("TrainSphere Report")}

	lines = append(lines, header("PROFILE"))
	if p := doc.Profile; p != nil {
		lines = append(lines,
			body("Name: "+p.Name),
			body("Age: "+intToken(p.Age)),
			body("Height (cm): "+intToken(p.HeightCm)),
			body("Weight (kg): "+floatToken(p.WeightKg)),
			body("Goal: "+p.GoalText),
			body("Goal weight (kg): "+floatToken(p.GoalWeightKg)),
		)
	} else {
		lines = append(lines, body("No profile data"))
	}

	lines = append(lines, gap(10), header("PLAN"))
	if p := doc.Plan; p != nil {
		lines = append(lines,
			body("Workout type: "+p.WorkoutType),
			body(fmt.Sprintf("Frequency / week: %d", p.FrequencyPerWeek)),
			body("Goal type: "+p.GoalType),
			body(fmt.Sprintf("Goal value: %d", p.GoalValue)),
		)
	} else {
		lines = append(lines, body("No plan data"))
	}

	lines = append(lines, gap(10), header("CHECKLIST"))
	lines = append(lines, itemLines(doc.Checklist)...)

	lines = append(lines, gap(8), header("QUICK NOTES"))
	lines = append(lines, itemLines(doc.QuickNotes)...)

	lines = append(lines, gap(10), header("WORKOUTS (latest first)"))
	if len(doc.Workouts) == 0 {
		lines = append(lines, body("No workout data"))
	}
	for _, s := range doc.Workouts {
		lines = append(lines, workoutLines(s)...)
	}

	return lines
}

// workoutLines renders one session: a bold header, an optional meta line, an
// optional notes line, then its exercises in order.
func workoutLines(s models.SessionDetail) []line {
	out := []line{{text: s.Date + " — " + s.Type, bold: true, size: 11, advance: 14}}

	var meta []string
	if s.DurationMinutes != nil {
		meta = append(meta, fmt.Sprintf("%d min", *s.DurationMinutes))
	}
	if s.PerformanceRating != nil {
		meta = append(meta, fmt.Sprintf("perf %d/10", *s.PerformanceRating))
	}
	if s.FeelingRating != nil {
		meta = append(meta, fmt.Sprintf("feel %d/10", *s.FeelingRating))
	}
	if len(meta) > 0 {
		out = append(out, line{text: strings.Join(meta, " · "), size: 11, advance: 14})
	}
	if s.Notes != "" {
		out = append(out, line{text: "Notes: " + s.Notes, size: 11, advance: 14})
	}

	for _, ex := range s.Exercises {
		out = append(out, item(exerciseToken(ex)))
	}

	out = append(out, gap(6))
	return out
}

// exerciseToken composes "name  (SxR, Wkg)" omitting whatever is absent.
func exerciseToken(ex models.ExerciseEntry) string {
	var details []string
	if ex.Sets != nil && ex.Reps != nil {
		details = append(details, fmt.Sprintf("%dx%d", *ex.Sets, *ex.Reps))
	} else if ex.Sets != nil {
		details = append(details, fmt.Sprintf("%d sets", *ex.Sets))
	} else if ex.Reps != nil {
		details = append(details, fmt.Sprintf("%d reps", *ex.Reps))
	}
	if ex.WeightKg != nil {
		details = append(details, floatToken(ex.WeightKg)+"kg")
	}
	if len(details) == 0 {
		return ex.Name
	}
	return fmt.Sprintf("%s  (%s)", ex.Name, strings.Join(details, ", "))
}

func itemLines(items []string) []line {
	if len(items) == 0 {
		return []line{item("(none)")}
	}
	out := make([]line, 0, len(items))
	for _, it := range items {
		out = append(out, item(it))
	}
	return out
}

func intToken(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}

func floatToken(f *float64) string {
	if f == nil {
		return ""
	}
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", *f), "0"), ".")
}
