package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
)

type gradeStore interface {
	Students() []models.Student
	StudentByID(id string) (models.Student, bool)
	UpsertGrade(studentID, subject string, term int, score float64)
}

// UpsertGradeRequest records one score. The (subject, term) pair is the
// dedup key; a second write for the same pair replaces the score.
type UpsertGradeRequest struct {
	Subject string  `json:"subject" validate:"required"`
	Term    int     `json:"term" validate:"required,min=1,max=3"`
	Score   float64 `json:"score" validate:"min=0,max=100"`
}

// GradeTableRow is one student's scores for a term keyed by subject.
type GradeTableRow struct {
	StudentID   string             `json:"studentId"`
	StudentName string             `json:"studentName"`
	GradeLevel  string             `json:"gradeLevel"`
	Section     string             `json:"section"`
	Scores      map[string]float64 `json:"scores"`
	Average     float64            `json:"average"`
}

// GradeService handles grade entry and the per-term grade table projection.
type GradeService struct {
	store     gradeStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeService constructs the grade service.
func NewGradeService(store gradeStore, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{store: store, validator: validate, logger: logger}
}

// Subjects returns the taught subject catalogue.
func (s *GradeService) Subjects(catalogue []string) []string {
	out := make([]string, len(catalogue))
	copy(out, catalogue)
	return out
}

// Upsert validates and records one score for a student. The score range
// check lives here; the store assumes pre-validated input.
func (s *GradeService) Upsert(studentID string, req UpsertGradeRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	if _, ok := s.store.StudentByID(studentID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	s.store.UpsertGrade(studentID, req.Subject, req.Term, req.Score)
	student, _ := s.store.StudentByID(studentID)
	return &student, nil
}

// Table builds the per-term grade table across the whole roster. Recomputed
// from the store on every call.
func (s *GradeService) Table(term int) ([]GradeTableRow, error) {
	if term < 1 || term > 3 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term must be between 1 and 3")
	}
	students := s.store.Students()
	rows := make([]GradeTableRow, 0, len(students))
	for _, student := range students {
		row := GradeTableRow{
			StudentID:   student.ID,
			StudentName: student.Name,
			GradeLevel:  student.GradeLevel,
			Section:     student.Section,
			Scores:      make(map[string]float64),
		}
		total := 0.0
		for _, g := range student.Grades {
			if g.Term != term {
				continue
			}
			row.Scores[g.Subject] = g.Score
			total += g.Score
		}
		if len(row.Scores) > 0 {
			row.Average = total / float64(len(row.Scores))
		}
		rows = append(rows, row)
	}
	return rows, nil
}
