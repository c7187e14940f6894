package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cedarcrest/ccis-admin-api/internal/service"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
	"github.com/cedarcrest/ccis-admin-api/pkg/response"
)

// ReportHandler exposes report cards and drafted comments.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Card godoc
// @Summary Report card projection for one student and term
// @Tags Reports
// @Produce json
// @Param id path string true "Student ID"
// @Param term query int true "Term (1-3)"
// @Param comment query bool false "Include a drafted principal's comment"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/report [get]
func (h *ReportHandler) Card(c *gin.Context) {
	term, withComment, err := reportQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	card, err := h.reports.Card(c.Request.Context(), c.Param("id"), term, withComment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, card, nil)
}

// PDF godoc
// @Summary Printable report card PDF
// @Tags Reports
// @Produce application/pdf
// @Param id path string true "Student ID"
// @Param term query int true "Term (1-3)"
// @Param comment query bool false "Include a drafted principal's comment"
// @Success 200 {file} binary
// @Router /students/{id}/report.pdf [get]
func (h *ReportHandler) PDF(c *gin.Context) {
	term, withComment, err := reportQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id := c.Param("id")
	out, err := h.reports.PDF(c.Request.Context(), id, term, withComment)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("report-%s-term-%d.pdf", id, term)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", out)
}

// DraftComment godoc
// @Summary Draft a principal's comment for one student and term
// @Tags Reports
// @Produce json
// @Param id path string true "Student ID"
// @Param term query int true "Term (1-3)"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/report/draft-comment [post]
func (h *ReportHandler) DraftComment(c *gin.Context) {
	term, _, err := reportQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	text, err := h.reports.DraftComment(c.Request.Context(), c.Param("id"), term)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"draft": text}, nil)
}

func reportQuery(c *gin.Context) (term int, withComment bool, err error) {
	term, convErr := strconv.Atoi(c.DefaultQuery("term", "1"))
	if convErr != nil {
		return 0, false, appErrors.Clone(appErrors.ErrValidation, "term must be a number")
	}
	withComment = c.Query("comment") == "true"
	return term, withComment, nil
}
