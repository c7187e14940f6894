package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
	"github.com/cedarcrest/ccis-admin-api/internal/service"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
	"github.com/cedarcrest/ccis-admin-api/pkg/response"
)

// NotificationHandler exposes the communication hub: sends, templates and
// the audit log.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Logs godoc
// @Summary List the notification audit log
// @Tags Notifications
// @Produce json
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by delivery status"
// @Param search query string false "Search recipient, student or subject"
// @Success 200 {object} response.Envelope
// @Router /notifications/logs [get]
func (h *NotificationHandler) Logs(c *gin.Context) {
	filter := models.LogFilter{
		Category: models.NotificationCategory(c.Query("category")),
		Status:   models.DeliveryStatus(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	response.JSON(c, http.StatusOK, h.notifications.Logs(filter), nil)
}

// Templates godoc
// @Summary List communication templates
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications/templates [get]
func (h *NotificationHandler) Templates(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.notifications.Templates(), nil)
}

// ReplaceTemplates godoc
// @Summary Replace the template collection
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body []service.TemplateRequest true "Full template collection"
// @Success 200 {object} response.Envelope
// @Router /notifications/templates [put]
func (h *NotificationHandler) ReplaceTemplates(c *gin.Context) {
	var reqs []service.TemplateRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	templates, err := h.notifications.ReplaceTemplates(reqs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, templates, nil)
}

// Send godoc
// @Summary Send one guardian message
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body service.SendMessageRequest true "Message payload"
// @Success 200 {object} response.Envelope
// @Router /notifications/send [post]
func (h *NotificationHandler) Send(c *gin.Context) {
	var req service.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.notifications.Send(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// BulkSend godoc
// @Summary Send the same message to many guardians
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body service.BulkSendRequest true "Bulk message payload"
// @Success 200 {object} response.Envelope
// @Router /notifications/bulk-send [post]
func (h *NotificationHandler) BulkSend(c *gin.Context) {
	var req service.BulkSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.notifications.BulkSend(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
