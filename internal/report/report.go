// Package report assembles the format-neutral report document consumed by the
// exporters and the interactive report view.
package report

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/meltforce/trainsphere/internal/models"
	"github.com/meltforce/trainsphere/internal/storage"
)

// DefaultWorkoutLimit bounds how many recent sessions a report includes when
// the configuration does not say otherwise.
const DefaultWorkoutLimit = 20

// Compiler builds report documents from one consistent storage snapshot.
type Compiler struct {
	db    *storage.DB
	log   *slog.Logger
	limit int
}

// New creates a Compiler. limit <= 0 selects DefaultWorkoutLimit.
func New(db *storage.DB, log *slog.Logger, limit int) *Compiler {
	if limit <= 0 {
		limit = DefaultWorkoutLimit
	}
	return &Compiler{db: db, log: log, limit: limit}
}

// Build reads the current profile and plan snapshots plus the most recent
// sessions and composes the report document. Pure read-assembly: nothing is
// mutated, and malformed stored checklist or quick-note text degrades to an
// empty list rather than failing the report.
func (c *Compiler) Build(ctx context.Context) (*models.ReportDocument, error) {
	rows, err := c.db.ReportSnapshot(ctx, c.limit)
	if err != nil {
		return nil, err
	}

	doc := &models.ReportDocument{
		Profile:    rows.Profile,
		Plan:       rows.Plan,
		Checklist:  []string{},
		QuickNotes: []string{},
		Workouts:   rows.Workouts,
	}
	if rows.Plan != nil {
		doc.Checklist = c.decodeList("checklist", rows.Plan.ChecklistJSON)
	}
	if rows.Profile != nil {
		doc.QuickNotes = c.decodeList("quick notes", rows.Profile.QuickNotesJSON)
	}
	return doc, nil
}

// decodeList decodes a stored JSON string array. Anything unexpected — empty
// text, a parse failure, a JSON null — yields an empty list.
func (c *Compiler) decodeList(what, raw string) []string {
	if raw == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.log.Warn("report: malformed stored list, dropping", "kind", what, "error", err)
		return []string{}
	}
	if items == nil {
		return []string{}
	}
	return items
}
