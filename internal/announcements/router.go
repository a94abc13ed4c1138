package announcements

import (
	"streakconnect/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAnnouncementRoutes(router *gin.RouterGroup, controller Controller) {
	announcementRoutes := router.Group("/announcements")
	announcementRoutes.Use(middleware.JWTAuth())
	{
		announcementRoutes.GET("", controller.GetDigest)
	}
}
