package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
	"github.com/cedarcrest/ccis-admin-api/pkg/response"
)

// PortalModeHeader selects the caller's portal. Admin callers omit it;
// guardian portal clients send "guardian" and are restricted to the
// read-only guardian surface.
const PortalModeHeader = "X-Portal-Mode"

// PortalModeGuardian is the guardian portal header value.
const PortalModeGuardian = "guardian"

// ContextPortalKey stores the resolved portal mode on the request context.
const ContextPortalKey = "portalMode"

// PortalMode resolves the caller's portal from the request header and
// stores it for downstream handlers.
func PortalMode() gin.HandlerFunc {
	return func(c *gin.Context) {
		mode := strings.ToLower(strings.TrimSpace(c.GetHeader(PortalModeHeader)))
		c.Set(ContextPortalKey, mode)
		c.Next()
	}
}

// AdminOnly rejects guardian portal callers. Mutations and staff-facing
// projections sit behind this gate.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if mode, _ := c.Get(ContextPortalKey); mode == PortalModeGuardian {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "guardian portal is read-only"))
			c.Abort()
			return
		}
		c.Next()
	}
}
