package archives

import (
	"streakconnect/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupArchiveRoutes(router *gin.RouterGroup, controller Controller) {
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminRoutes.POST("/lives/:liveId/archive", controller.ArchiveLive)
		adminRoutes.GET("/archives", controller.GetAllArchives)
		adminRoutes.GET("/archives/:archiveId", controller.GetArchive)
	}
}
