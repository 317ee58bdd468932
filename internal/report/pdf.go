package report

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"woodsim/internal/domain/game"
)

// WritePDF stores the final report as a single A4 page.
func WritePDF(s game.Summary, output string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Wood rule simulation "+s.RunID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Wood rule simulation results")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Started %s, board %dx%d, komi %d",
		s.StartedAt.Format(time.RFC3339), game.BoardSize, game.BoardSize, game.Komi))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	for _, header := range []string{"Outcome", "Games", "Share"} {
		pdf.CellFormat(50, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 11)
	for _, o := range game.Outcomes {
		pdf.CellFormat(50, 8, string(o), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, fmt.Sprintf("%d", s.Counts[o]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 8, fmt.Sprintf("%.2f%%", s.Percent(o)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Courier", "", 10)
	for _, line := range SummaryLines(s) {
		if line == "" {
			pdf.Ln(3)
			continue
		}
		pdf.MultiCell(0, 5, line, "", "L", false)
	}

	return pdf.OutputFileAndClose(output)
}
