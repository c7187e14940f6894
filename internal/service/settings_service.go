package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
)

type settingsStore interface {
	ReportSettings() models.ReportSettings
	SetReportSettings(settings models.ReportSettings)
	SchoolLogo() string
	SetSchoolLogo(logo string)
}

// ReportSettingsRequest replaces the global report settings record.
type ReportSettingsRequest struct {
	HeadOfSchool string `json:"headOfSchool" validate:"required"`
	Signature    string `json:"signature"`
	AuthPrefix   string `json:"authPrefix" validate:"required"`
}

// LogoRequest replaces the stored school logo. The logo travels as an
// opaque data-URL string; an empty value clears it.
type LogoRequest struct {
	Logo string `json:"logo"`
}

// SettingsService manages the report settings singleton and the school logo.
type SettingsService struct {
	store     settingsStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingsService constructs the settings service.
func NewSettingsService(store settingsStore, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{store: store, validator: validate, logger: logger}
}

// Get returns the current report settings.
func (s *SettingsService) Get() models.ReportSettings {
	return s.store.ReportSettings()
}

// Update replaces the report settings record as a whole.
func (s *SettingsService) Update(req ReportSettingsRequest) (*models.ReportSettings, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}
	settings := models.ReportSettings{
		HeadOfSchool: strings.TrimSpace(req.HeadOfSchool),
		Signature:    strings.TrimSpace(req.Signature),
		AuthPrefix:   strings.TrimSpace(req.AuthPrefix),
	}
	s.store.SetReportSettings(settings)
	s.logger.Info("report settings updated", zap.String("head_of_school", settings.HeadOfSchool))
	return &settings, nil
}

// Logo returns the stored school logo, empty when none is set.
func (s *SettingsService) Logo() string {
	return s.store.SchoolLogo()
}

// SetLogo stores the school logo.
func (s *SettingsService) SetLogo(req LogoRequest) {
	s.store.SetSchoolLogo(req.Logo)
}
