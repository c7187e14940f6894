package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// ReportCardDoc carries everything printed on one report card.
type ReportCardDoc struct {
	SchoolName     string
	StudentName    string
	GradeLevel     string
	Section        string
	Term           int
	Rows           []ReportCardRow
	AttendanceRate int
	Comment        string
	HeadOfSchool   string
	Signature      string
	AuthCode       string
	IssuedOn       string
}

// ReportCardRow is one graded subject line.
type ReportCardRow struct {
	Subject  string
	Score    float64
	MaxScore float64
}

// ReportCardPDF renders a printable terminal report card.
type ReportCardPDF struct{}

// NewReportCardPDF constructs the report card renderer.
func NewReportCardPDF() *ReportCardPDF {
	return &ReportCardPDF{}
}

// Render produces the report card document.
func (e *ReportCardPDF) Render(doc ReportCardDoc) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, doc.SchoolName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Terminal Report - Term %d", doc.Term), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(40, 7, "Student:", "", 0, "", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, doc.StudentName, "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(40, 7, "Class:", "", 0, "", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("%s, Section %s", doc.GradeLevel, doc.Section), "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(40, 7, "Attendance:", "", 0, "", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("%d%%", doc.AttendanceRate), "", 1, "", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(110, 8, "Subject", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 8, "Score", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Out Of", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, row := range doc.Rows {
		pdf.CellFormat(110, 7, row.Subject, "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.0f", row.Score), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.0f", row.MaxScore), "1", 1, "C", false, 0, "")
	}
	if len(doc.Rows) == 0 {
		pdf.CellFormat(180, 7, "No grades recorded for this term.", "1", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	if doc.Comment != "" {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, "Principal's Comment", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 6, doc.Comment, "", "", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "", 10)
	signature := doc.Signature
	if signature == "" {
		signature = doc.HeadOfSchool
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Head of School: %s", doc.HeadOfSchool), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Signed: %s", signature), "", 1, "", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(0, 5, fmt.Sprintf("Authentication Code: %s", doc.AuthCode), "", 1, "", false, 0, "")
	if doc.IssuedOn != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("Issued: %s", doc.IssuedOn), "", 1, "", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render report card: %w", err)
	}
	return buf.Bytes(), nil
}
