package evaluation

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// RenderEligibilityReport writes a PDF listing eligible employees grouped
// into assistants and other staff, followed by the not-eligible names.
func RenderEligibilityReport(w io.Writer, result Eligibility, threshold float64, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Bonus Eligibility Report")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s   Threshold: %.2f", generatedAt.Format("2006-01-02 15:04"), threshold))
	pdf.Ln(10)

	var assistants, staff []EligibleEmployee
	for _, e := range result.Eligible {
		if e.IsAssistant {
			assistants = append(assistants, e)
		} else {
			staff = append(staff, e)
		}
	}
	writeEligibleSection(pdf, "Eligible staff", staff)
	writeEligibleSection(pdf, "Eligible assistants", assistants)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Not eligible (%d)", len(result.NotEligible)))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	if len(result.NotEligible) == 0 {
		pdf.Cell(0, 6, "None")
		pdf.Ln(6)
	}
	for _, name := range result.NotEligible {
		pdf.Cell(0, 6, name)
		pdf.Ln(6)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func writeEligibleSection(pdf *gofpdf.Fpdf, title string, employees []EligibleEmployee) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s (%d)", title, len(employees)))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 7, "Employee", "1", 0, "L", false, 0, "")
	pdf.CellFormat(70, 7, "Departments", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Average", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 7, "Count", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, e := range employees {
		pdf.CellFormat(70, 7, displayName(e), "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, strings.Join(e.Departments, ", "), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", e.AverageScore), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", e.EvaluationCount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}
