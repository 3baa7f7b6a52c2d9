package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/meltforce/trainsphere/internal/models"
)

// A4 geometry in points, matching the layout of the interactive report.
const (
	leftMargin   = 50
	topMargin    = 60
	pageHeight   = 842
	bottomMargin = 80
)

// PDF renders the report document onto fixed-size A4 pages. A vertical cursor
// walks down the page; the page-break check runs before every line, so long
// exercise lists spill onto new pages without losing entries.
func PDF(doc *models.ReportDocument) (*Artifact, error) {
	pdf := renderPDF(doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}

	return &Artifact{
		Filename:    "trainsphere_report.pdf",
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}

func renderPDF(doc *models.ReportDocument) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	fonts := Fonts()
	family := "Helvetica"
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if fonts.Unicode {
		family = "TrainSphere"
		pdf.AddUTF8FontFromBytes(family, "", fonts.Regular)
		pdf.AddUTF8FontFromBytes(family, "B", fonts.Bold)
		translate = func(s string) string { return s }
	}

	pdf.AddPage()
	y := float64(topMargin)

	for _, ln := range buildLines(doc) {
		if y > pageHeight-bottomMargin {
			pdf.AddPage()
			y = topMargin
		}
		if ln.text != "" {
			style := ""
			if ln.bold {
				style = "B"
			}
			pdf.SetFont(family, style, ln.size)
			pdf.Text(leftMargin+ln.indent, y, translate(ln.text))
		}
		y += ln.advance
	}

	return pdf
}
