package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cedarcrest/ccis-admin-api/internal/service"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
	"github.com/cedarcrest/ccis-admin-api/pkg/response"
)

// GradeHandler exposes grade entry and the term grade table.
type GradeHandler struct {
	grades   *service.GradeService
	subjects []string
}

// NewGradeHandler constructs GradeHandler with the taught subject catalogue.
func NewGradeHandler(grades *service.GradeService, subjects []string) *GradeHandler {
	return &GradeHandler{grades: grades, subjects: subjects}
}

// Subjects godoc
// @Summary List the taught subject catalogue
// @Tags Grades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /grades/subjects [get]
func (h *GradeHandler) Subjects(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.grades.Subjects(h.subjects), nil)
}

// Upsert godoc
// @Summary Record one score for a student
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.UpsertGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/grades [put]
func (h *GradeHandler) Upsert(c *gin.Context) {
	var req service.UpsertGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.grades.Upsert(c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Table godoc
// @Summary Grade table for one term across the roster
// @Tags Grades
// @Produce json
// @Param term query int true "Term (1-3)"
// @Success 200 {object} response.Envelope
// @Router /grades/table [get]
func (h *GradeHandler) Table(c *gin.Context) {
	term, err := strconv.Atoi(c.DefaultQuery("term", "1"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term must be a number"))
		return
	}
	rows, err := h.grades.Table(term)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}
