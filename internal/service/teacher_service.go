package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
)

type teacherStore interface {
	Teachers() []models.Teacher
	TeacherByID(id string) (models.Teacher, bool)
	AddTeacher(teacher models.Teacher)
	UpdateTeacher(teacher models.Teacher) bool
	DeleteTeacher(id string)
	BulkDeleteTeachers(ids []string)
	SetTeacherAttendance(id, date string, status models.AttendanceStatus)
}

// RegisterTeacherRequest holds payload for adding faculty members.
type RegisterTeacherRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name" validate:"required"`
	Department string `json:"department" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Avatar     string `json:"avatar"`
}

// TeacherService handles faculty roster use-cases.
type TeacherService struct {
	store     teacherStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTeacherService constructs the teacher service.
func NewTeacherService(store teacherStore, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{store: store, validator: validate, logger: logger, now: time.Now}
}

// List returns teachers matching the filter plus pagination metadata.
func (s *TeacherService) List(filter models.TeacherFilter, page, pageSize int) ([]models.Teacher, *models.Pagination, error) {
	all := s.store.Teachers()
	matched := make([]models.Teacher, 0, len(all))
	for _, teacher := range all {
		if filter.Matches(teacher) {
			matched = append(matched, teacher)
		}
	}

	page, pageSize = normalizePage(page, pageSize)
	pagination := &models.Pagination{Page: page, PageSize: pageSize, TotalCount: len(matched)}
	return paginate(matched, page, pageSize), pagination, nil
}

// Get returns one teacher.
func (s *TeacherService) Get(id string) (*models.Teacher, error) {
	teacher, ok := s.store.TeacherByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return &teacher, nil
}

// Register adds a new faculty member.
func (s *TeacherService) Register(req RegisterTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	teacher := models.Teacher{
		ID:         id,
		Name:       req.Name,
		Department: req.Department,
		Email:      req.Email,
		Avatar:     req.Avatar,
		Attendance: map[string]models.AttendanceStatus{},
	}
	s.store.AddTeacher(teacher)
	s.logger.Info("teacher registered", zap.String("teacher_id", id))
	return &teacher, nil
}

// Update replaces identity fields on an existing teacher; attendance
// carries over.
func (s *TeacherService) Update(id string, req RegisterTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	current, ok := s.store.TeacherByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	current.Name = req.Name
	current.Department = req.Department
	current.Email = req.Email
	current.Avatar = req.Avatar
	s.store.UpdateTeacher(current)
	return &current, nil
}

// Delete removes a teacher. Absent ids degrade to a no-op.
func (s *TeacherService) Delete(id string) {
	s.store.DeleteTeacher(id)
}

// BulkDelete removes every listed teacher; absent ids are ignored.
func (s *TeacherService) BulkDelete(req BulkDeleteRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk delete payload")
	}
	s.store.BulkDeleteTeachers(req.IDs)
	return nil
}

// MarkAttendance upserts one teacher's status for the request date.
func (s *TeacherService) MarkAttendance(id string, req AttendanceRequest) error {
	if !req.Status.IsValid() {
		return appErrors.Clone(appErrors.ErrValidation, "invalid attendance status")
	}
	date := req.Date
	if date == "" {
		date = s.now().UTC().Format(models.AttendanceDateLayout)
	} else if _, err := time.Parse(models.AttendanceDateLayout, date); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD")
	}
	s.store.SetTeacherAttendance(id, date, req.Status)
	return nil
}
