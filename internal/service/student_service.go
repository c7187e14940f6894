package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
)

type studentStore interface {
	Students() []models.Student
	StudentByID(id string) (models.Student, bool)
	AddStudent(student models.Student)
	UpdateStudent(student models.Student) bool
	DeleteStudent(id string)
	BulkDeleteStudents(ids []string)
	SetStudentAttendance(id, date string, status models.AttendanceStatus)
	BulkSetStudentAttendance(ids []string, date string, status models.AttendanceStatus)
}

// RegisterStudentRequest holds payload for registering students.
type RegisterStudentRequest struct {
	ID            string `json:"id"`
	Name          string `json:"name" validate:"required"`
	GradeLevel    string `json:"gradeLevel" validate:"required"`
	Section       string `json:"section"`
	Avatar        string `json:"avatar"`
	GuardianName  string `json:"guardianName" validate:"required"`
	GuardianEmail string `json:"guardianEmail" validate:"required,email"`
	GuardianPhone string `json:"guardianPhone"`
}

// AttendanceRequest marks one entity's attendance for a date. An empty date
// means today (UTC); the reference date is always explicit past this point.
type AttendanceRequest struct {
	Date   string                  `json:"date"`
	Status models.AttendanceStatus `json:"status" validate:"required"`
}

// BulkAttendanceRequest marks attendance for a set of ids on the same date.
type BulkAttendanceRequest struct {
	IDs    []string                `json:"ids" validate:"required,min=1"`
	Date   string                  `json:"date"`
	Status models.AttendanceStatus `json:"status" validate:"required"`
}

// BulkDeleteRequest removes a set of ids.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// GuardianView is the read-only projection served to the guardian portal.
type GuardianView struct {
	Student        models.Student `json:"student"`
	AttendanceRate int            `json:"attendanceRate"`
	RecordedDays   int            `json:"recordedDays"`
}

// StudentService handles roster and attendance use-cases for students.
type StudentService struct {
	store     studentStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(store studentStore, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{store: store, validator: validate, logger: logger, now: time.Now}
}

// List returns students matching the filter plus pagination metadata. The
// projection is recomputed from the store on every call.
func (s *StudentService) List(filter models.StudentFilter, page, pageSize int) ([]models.Student, *models.Pagination, error) {
	all := s.store.Students()
	matched := make([]models.Student, 0, len(all))
	for _, student := range all {
		if filter.Matches(student) {
			matched = append(matched, student)
		}
	}

	page, pageSize = normalizePage(page, pageSize)
	pagination := &models.Pagination{Page: page, PageSize: pageSize, TotalCount: len(matched)}
	return paginate(matched, page, pageSize), pagination, nil
}

// Get returns one student.
func (s *StudentService) Get(id string) (*models.Student, error) {
	student, ok := s.store.StudentByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return &student, nil
}

// Register adds a new student to the roster. An id is generated when the
// caller does not supply one.
func (s *StudentService) Register(req RegisterStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	student := models.Student{
		ID:            id,
		Name:          req.Name,
		GradeLevel:    req.GradeLevel,
		Section:       req.Section,
		Avatar:        req.Avatar,
		GuardianName:  req.GuardianName,
		GuardianEmail: req.GuardianEmail,
		GuardianPhone: req.GuardianPhone,
		Grades:        []models.Grade{},
		Attendance:    map[string]models.AttendanceStatus{},
	}
	s.store.AddStudent(student)
	s.logger.Info("student registered", zap.String("student_id", id))
	return &student, nil
}

// Update replaces identity and guardian fields on an existing student.
// Grades and attendance are owned by their own operations and carry over.
func (s *StudentService) Update(id string, req RegisterStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	current, ok := s.store.StudentByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	current.Name = req.Name
	current.GradeLevel = req.GradeLevel
	current.Section = req.Section
	current.Avatar = req.Avatar
	current.GuardianName = req.GuardianName
	current.GuardianEmail = req.GuardianEmail
	current.GuardianPhone = req.GuardianPhone
	s.store.UpdateStudent(current)
	return &current, nil
}

// Delete removes a student. Absent ids degrade to a no-op.
func (s *StudentService) Delete(id string) {
	s.store.DeleteStudent(id)
}

// BulkDelete removes every listed student; absent ids are ignored.
func (s *StudentService) BulkDelete(req BulkDeleteRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk delete payload")
	}
	s.store.BulkDeleteStudents(req.IDs)
	return nil
}

// MarkAttendance upserts one student's status for the request date.
func (s *StudentService) MarkAttendance(id string, req AttendanceRequest) error {
	date, err := s.resolveAttendance(req.Date, req.Status)
	if err != nil {
		return err
	}
	s.store.SetStudentAttendance(id, date, req.Status)
	return nil
}

// BulkMarkAttendance applies the same date and status to every listed id.
func (s *StudentService) BulkMarkAttendance(req BulkAttendanceRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk attendance payload")
	}
	date, err := s.resolveAttendance(req.Date, req.Status)
	if err != nil {
		return err
	}
	s.store.BulkSetStudentAttendance(req.IDs, date, req.Status)
	return nil
}

// Guardian returns the portal projection for one ward.
func (s *StudentService) Guardian(id string) (*GuardianView, error) {
	student, ok := s.store.StudentByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return &GuardianView{
		Student:        student,
		AttendanceRate: models.AttendanceRate(student.Attendance),
		RecordedDays:   len(student.Attendance),
	}, nil
}

func (s *StudentService) resolveAttendance(date string, status models.AttendanceStatus) (string, error) {
	if !status.IsValid() {
		return "", appErrors.Clone(appErrors.ErrValidation, "invalid attendance status")
	}
	if date == "" {
		return s.now().UTC().Format(models.AttendanceDateLayout), nil
	}
	if _, err := time.Parse(models.AttendanceDateLayout, date); err != nil {
		return "", appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD")
	}
	return date, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return page, pageSize
}

func paginate[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
