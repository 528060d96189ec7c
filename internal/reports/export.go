package reports

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

func exportFilename(report *PopulatedReport, ext string) string {
	name := strings.ToLower(strings.TrimSpace(report.Name))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		name = "verification_report"
	}
	return fmt.Sprintf("%s_%s.%s", name, report.ID.Hex(), ext)
}

func displayName(ref *RefStub) string {
	if ref == nil {
		return "-"
	}
	return ref.Name
}

// RenderPDF produces a one-page summary document for a verification report.
func RenderPDF(report *PopulatedReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(report.Name, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Verification Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, report.Name, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	rows := [][2]string{
		{"Report ID", report.ID.Hex()},
		{"Project", displayName(report.Project)},
		{"Monitoring Start", report.MonitoringStartPeriod.Format(dateLayout)},
		{"Monitoring End", report.MonitoringEndPeriod.Format(dateLayout)},
		{"Status", report.Status},
		{"Verifier", displayName(report.Verifier)},
		{"Verified Carbon Amount (tCO2e)", fmt.Sprintf("%.2f", report.VerifiedCarbonAmount)},
		{"Verification Tx Hash", valueOrDash(report.VerificationTxHash)},
		{"Created", report.CreatedAt.Format(time.RFC3339)},
		{"Last Updated", report.UpdatedAt.Format(time.RFC3339)},
	}

	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(70, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 8, row[1], "1", 1, "L", false, 0, "")
	}

	if report.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 8, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, report.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderXLSX produces a single-sheet workbook with the report fields as rows.
func RenderXLSX(report *PopulatedReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]interface{}{
		{"Field", "Value"},
		{"Report ID", report.ID.Hex()},
		{"Name", report.Name},
		{"Project", displayName(report.Project)},
		{"Monitoring Start", report.MonitoringStartPeriod.Format(dateLayout)},
		{"Monitoring End", report.MonitoringEndPeriod.Format(dateLayout)},
		{"Status", report.Status},
		{"Verifier", displayName(report.Verifier)},
		{"Verified Carbon Amount (tCO2e)", report.VerifiedCarbonAmount},
		{"Verification Tx Hash", valueOrDash(report.VerificationTxHash)},
		{"Notes", valueOrDash(report.Notes)},
		{"Created", report.CreatedAt.Format(time.RFC3339)},
		{"Last Updated", report.UpdatedAt.Format(time.RFC3339)},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(sheet, "A", "A", 32)
	f.SetColWidth(sheet, "B", "B", 48)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func valueOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
