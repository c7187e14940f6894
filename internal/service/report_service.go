package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
	"github.com/cedarcrest/ccis-admin-api/pkg/drafting"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
	"github.com/cedarcrest/ccis-admin-api/pkg/export"
)

type reportStore interface {
	StudentByID(id string) (models.Student, bool)
	ReportSettings() models.ReportSettings
}

// ReportCard is the per-term report projection for one student, stamped
// with the global report settings and a verifiable authentication code.
type ReportCard struct {
	Student        models.Student `json:"student"`
	Term           int            `json:"term"`
	Grades         []models.Grade `json:"grades"`
	AttendanceRate int            `json:"attendanceRate"`
	Comment        string         `json:"comment,omitempty"`
	HeadOfSchool   string         `json:"headOfSchool"`
	Signature      string         `json:"signature"`
	AuthCode       string         `json:"authCode"`
}

// ReportService builds report cards and renders them as printable PDFs.
type ReportService struct {
	store    reportStore
	drafter  *drafting.Service
	renderer *export.ReportCardPDF
	school   string
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportService constructs the report service.
func NewReportService(store reportStore, drafter *drafting.Service, school string, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		store:    store,
		drafter:  drafter,
		renderer: export.NewReportCardPDF(),
		school:   school,
		logger:   logger,
		now:      time.Now,
	}
}

// Card assembles the report card projection for one student and term. When
// withComment is set, a principal's comment is drafted; the draft always
// yields text, falling back to a canned paragraph if generation fails.
func (s *ReportService) Card(ctx context.Context, studentID string, term int, withComment bool) (*ReportCard, error) {
	if term < 1 || term > 3 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term must be between 1 and 3")
	}
	student, ok := s.store.StudentByID(studentID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	settings := s.store.ReportSettings()
	card := &ReportCard{
		Student:        student,
		Term:           term,
		Grades:         gradesForTerm(student, term),
		AttendanceRate: models.AttendanceRate(student.Attendance),
		HeadOfSchool:   settings.HeadOfSchool,
		Signature:      settings.Signature,
		AuthCode:       AuthCode(settings.AuthPrefix, student.ID, term),
	}
	if withComment && s.drafter != nil {
		card.Comment = s.drafter.ReportComment(ctx, termScoped(student, term))
	}
	return card, nil
}

// DraftComment drafts a report comment for one student without assembling
// the full card. Used by the grading screen to stage text before printing.
func (s *ReportService) DraftComment(ctx context.Context, studentID string, term int) (string, error) {
	if term < 1 || term > 3 {
		return "", appErrors.Clone(appErrors.ErrValidation, "term must be between 1 and 3")
	}
	student, ok := s.store.StudentByID(studentID)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if s.drafter == nil {
		return "", appErrors.Clone(appErrors.ErrInternal, "drafting is not configured")
	}
	return s.drafter.ReportComment(ctx, termScoped(student, term)), nil
}

// PDF renders the report card into a printable document.
func (s *ReportService) PDF(ctx context.Context, studentID string, term int, withComment bool) ([]byte, error) {
	card, err := s.Card(ctx, studentID, term, withComment)
	if err != nil {
		return nil, err
	}

	rows := make([]export.ReportCardRow, 0, len(card.Grades))
	for _, g := range card.Grades {
		rows = append(rows, export.ReportCardRow{Subject: g.Subject, Score: g.Score, MaxScore: g.MaxScore})
	}

	doc := export.ReportCardDoc{
		SchoolName:     s.school,
		StudentName:    card.Student.Name,
		GradeLevel:     card.Student.GradeLevel,
		Section:        card.Student.Section,
		Term:           card.Term,
		Rows:           rows,
		AttendanceRate: card.AttendanceRate,
		Comment:        card.Comment,
		HeadOfSchool:   card.HeadOfSchool,
		Signature:      card.Signature,
		AuthCode:       card.AuthCode,
		IssuedOn:       s.now().UTC().Format("2006-01-02"),
	}
	out, err := s.renderer.Render(doc)
	if err != nil {
		s.logger.Error("report card render failed", zap.String("student_id", studentID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report card")
	}
	return out, nil
}

// AuthCode derives the printed verification code from the configured
// prefix, the student id and the term.
func AuthCode(prefix, studentID string, term int) string {
	return fmt.Sprintf("%s-%s-%d", prefix, studentID, term)
}

func gradesForTerm(student models.Student, term int) []models.Grade {
	out := make([]models.Grade, 0, len(student.Grades))
	for _, g := range student.Grades {
		if g.Term == term {
			out = append(out, g)
		}
	}
	return out
}

// termScoped narrows a student's grades to one term so drafted comments
// only speak about the term being reported.
func termScoped(student models.Student, term int) models.Student {
	scoped := student.Clone()
	scoped.Grades = gradesForTerm(student, term)
	return scoped
}
