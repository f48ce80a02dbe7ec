package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"horo-rag/internal/transport/http/response"
)

const (
	ContextTenantIDKey = "tenant_id"
	HeaderTenantID     = "X-Tenant-ID"
)

// TenantID extracts the tenant identity from the X-Tenant-ID header. The
// tenant is not authenticated, only used to partition state; a request
// without one has no partition to act on and is rejected.
func TenantID() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := strings.TrimSpace(c.GetHeader(HeaderTenantID))
		if tenant == "" {
			response.Error(c, 400, response.CodeBadRequest, "missing X-Tenant-ID header")
			c.Abort()
			return
		}
		c.Set(ContextTenantIDKey, tenant)
		c.Next()
	}
}
