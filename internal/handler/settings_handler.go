package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cedarcrest/ccis-admin-api/internal/service"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
	"github.com/cedarcrest/ccis-admin-api/pkg/response"
)

// SettingsHandler exposes report settings and the school logo.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get godoc
// @Summary Get report settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings/report [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.settings.Get(), nil)
}

// Update godoc
// @Summary Replace report settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body service.ReportSettingsRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Router /settings/report [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req service.ReportSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	settings, err := h.settings.Update(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// Logo godoc
// @Summary Get the school logo
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings/logo [get]
func (h *SettingsHandler) Logo(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"logo": h.settings.Logo()}, nil)
}

// SetLogo godoc
// @Summary Replace the school logo
// @Tags Settings
// @Accept json
// @Success 204
// @Param payload body service.LogoRequest true "Logo payload"
// @Router /settings/logo [put]
func (h *SettingsHandler) SetLogo(c *gin.Context) {
	var req service.LogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	h.settings.SetLogo(req)
	response.NoContent(c)
}
