package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupPortalRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PortalMode())
	admin := r.Group("/", AdminOnly())
	admin.POST("/students", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/guardian/students/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestAdminOnly_BlocksGuardianPortal(t *testing.T) {
	r := setupPortalRouter()

	req := httptest.NewRequest(http.MethodPost, "/students", nil)
	req.Header.Set(PortalModeHeader, "guardian")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOnly_AllowsAdmin(t *testing.T) {
	r := setupPortalRouter()

	req := httptest.NewRequest(http.MethodPost, "/students", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGuardianRoutes_OpenToGuardianPortal(t *testing.T) {
	r := setupPortalRouter()

	req := httptest.NewRequest(http.MethodGet, "/guardian/students/S001", nil)
	req.Header.Set(PortalModeHeader, "Guardian")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
