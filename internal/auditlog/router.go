package auditlog

import (
	"streakconnect/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAuditLogRoutes(router *gin.RouterGroup, controller Controller) {
	adminRoutes := router.Group("/admin/audit-logs")
	adminRoutes.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminRoutes.GET("", controller.GetAll)
	}
}
