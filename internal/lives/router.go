package lives

import (
	"streakconnect/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupLiveRoutes(router *gin.RouterGroup, controller Controller) {
	// Members browse shows
	memberLives := router.Group("/lives")
	memberLives.Use(middleware.JWTAuth())
	{
		memberLives.GET("", controller.GetAllLives)
		memberLives.GET("/upcoming", controller.GetUpcomingLives)
		memberLives.GET("/:liveId", controller.GetLive)
	}

	// Admins manage shows
	adminLives := router.Group("/admin/lives")
	adminLives.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminLives.POST("", controller.CreateLive)
		adminLives.PUT("/:liveId", controller.UpdateLive)
		adminLives.DELETE("/:liveId", controller.DeleteLive)
	}
}
