package middleware

import (
	"log/slog"
	"net/http"

	"github.com/campbellchri/clara-backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const tenantScopeKey = "tenantScope"

// PracticeScope builds the request's tenant scope from the :practice_id path parameter.
// The scope lives on this request only; handlers pass it explicitly to services.
func PracticeScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, err := domain.NewTenantScope(c.Param("practice_id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "practice_id path parameter is required"})
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("practice_id", scope.PracticeID()))
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), logger))
		c.Set(tenantScopeKey, scope)
		c.Next()
	}
}

// GetTenantScope returns the scope set by PracticeScope.
func GetTenantScope(c *gin.Context) (domain.TenantScope, bool) {
	v, exists := c.Get(tenantScopeKey)
	if !exists {
		return domain.TenantScope{}, false
	}
	scope, ok := v.(domain.TenantScope)
	if !ok || scope.IsZero() {
		return domain.TenantScope{}, false
	}
	return scope, true
}
