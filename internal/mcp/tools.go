package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Retrieve the progress overview for a period: workout sessions with exercises, plus the known category vocabulary."),
	mcp.WithString("period", mcp.Description("Reporting window. Defaults to 'week' (last 7 days including today)."), mcp.Enum("week", "month")),
	mcp.WithString("category", mcp.Description("Filter sessions by category (e.g. 'Strength', 'Cardio', 'HIIT', 'Mobility')")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Fetch a single workout session by id, including its exercises in logged order."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Numeric workout session id")),
)

var toolLogWorkout = mcp.NewTool("log_workout",
	mcp.WithDescription("Log a workout session. Exercises are passed as a JSON array of objects with exercise_name, sets, reps, and weight_kg."),
	mcp.WithString("workout_date", mcp.Description("Session date (YYYY-MM-DD). Defaults to today.")),
	mcp.WithString("workout_type", mcp.Description("Workout type (e.g. 'Strength (Upper)', 'Cardio'). Defaults to 'Strength (Upper)'.")),
	mcp.WithString("duration_minutes", mcp.Description("Session duration in minutes")),
	mcp.WithString("performance_rating", mcp.Description("Performance rating 1-10")),
	mcp.WithString("feeling_rating", mcp.Description("Feeling rating 1-10")),
	mcp.WithString("notes", mcp.Description("Free-form session notes")),
	mcp.WithString("exercises", mcp.Description(`JSON array, e.g. [{"exercise_name":"Bench Press","sets":3,"reps":8,"weight_kg":60}]`)),
)

var toolGetReport = mcp.NewTool("get_report",
	mcp.WithDescription("Build the full training report: profile, plan, checklist, quick notes, and recent workouts with exercises."),
)

// --- Tool handlers ---

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	period := req.GetString("period", "week")
	category := req.GetString("category", "")

	overview, err := h.ds.GetProgress(ctx, period, category)
	if err != nil {
		h.log.Error("mcp get_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(overview)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return mcp.NewToolResultError("id must be a positive integer"), nil
	}

	detail, err := h.ds.GetWorkout(ctx, id)
	if err != nil {
		h.log.Error("mcp get_workout", "id", id, "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(detail)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// exercisePayload is the wire shape of one exercise in the log_workout tool.
type exercisePayload struct {
	Name     string   `json:"exercise_name"`
	Sets     *int     `json:"sets"`
	Reps     *int     `json:"reps"`
	WeightKg *float64 `json:"weight_kg"`
}

func (h *handlers) logWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	form := url.Values{}
	for _, field := range []string{"workout_date", "workout_type", "duration_minutes", "performance_rating", "feeling_rating", "notes"} {
		if v := req.GetString(field, ""); v != "" {
			form.Set(field, v)
		}
	}

	if raw := req.GetString("exercises", ""); raw != "" {
		var exercises []exercisePayload
		if err := json.Unmarshal([]byte(raw), &exercises); err != nil {
			return mcp.NewToolResultError("exercises must be a JSON array: " + err.Error()), nil
		}
		for _, ex := range exercises {
			form.Add("exercise_name", ex.Name)
			form.Add("sets", numToken(ex.Sets))
			form.Add("reps", numToken(ex.Reps))
			form.Add("weight_kg", floatNumToken(ex.WeightKg))
		}
	}

	id, err := h.ds.LogWorkout(ctx, form)
	if err != nil {
		h.log.Error("mcp log_workout", "error", err)
		return mcp.NewToolResultError("logging failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"id": id, "status": "logged"})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := h.ds.GetReport(ctx)
	if err != nil {
		h.log.Error("mcp get_report", "error", err)
		return mcp.NewToolResultError("report build failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(doc)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func numToken(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func floatNumToken(f *float64) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%g", *f)
}
