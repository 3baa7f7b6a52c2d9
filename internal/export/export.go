// Package export renders a report document into downloadable artifacts: a
// CSV table and a paginated A4 PDF. Both consume the document read-only.
package export

import "github.com/meltforce/trainsphere/internal/models"

// Artifact is a complete in-memory export ready for delivery.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ForFormat dispatches a recognized format selector to its exporter. Any
// other selector, including the empty string, yields (nil, nil): no artifact,
// the caller shows the interactive view instead.
func ForFormat(format string, doc *models.ReportDocument) (*Artifact, error) {
	switch format {
	case "csv":
		return CSV(doc)
	case "pdf":
		return PDF(doc)
	default:
		return nil, nil
	}
}
