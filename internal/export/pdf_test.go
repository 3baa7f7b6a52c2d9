package export

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/meltforce/trainsphere/internal/models"
)

// TestPDFArtifact checks the artifact metadata and the PDF magic bytes.
func TestPDFArtifact(t *testing.T) {
	art, err := PDF(sampleDocument())
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if art.Filename != "trainsphere_report.pdf" {
		t.Errorf("filename = %q", art.Filename)
	}
	if art.ContentType != "application/pdf" {
		t.Errorf("content type = %q", art.ContentType)
	}
	if !bytes.HasPrefix(art.Data, []byte("%PDF-")) {
		t.Error("output does not start with PDF magic bytes")
	}
}

// TestPDFPaginatesLongReports checks the cursor spills onto additional pages
// instead of drawing past the bottom margin.
func TestPDFPaginatesLongReports(t *testing.T) {
	doc := &models.ReportDocument{}
	for i := 0; i < 40; i++ {
		detail := models.SessionDetail{
			WorkoutSession: models.WorkoutSession{
				ID:   int64(i + 1),
				Date: "2024-07-10",
				Type: "Strength (Upper)",
			},
		}
		for j := 0; j < 4; j++ {
			detail.Exercises = append(detail.Exercises, models.ExerciseEntry{
				Name: fmt.Sprintf("Exercise %d-%d", i, j),
				Sets: intp(3), Reps: intp(8),
			})
		}
		doc.Workouts = append(doc.Workouts, detail)
	}

	pdf := renderPDF(doc)
	if err := pdf.Error(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := pdf.PageCount(); got < 2 {
		t.Errorf("page count = %d, want at least 2", got)
	}
}

// TestPDFSinglePageWhenShort checks a small document stays on one page.
func TestPDFSinglePageWhenShort(t *testing.T) {
	pdf := renderPDF(&models.ReportDocument{})
	if err := pdf.Error(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := pdf.PageCount(); got != 1 {
		t.Errorf("page count = %d, want 1", got)
	}
}
