package medias

import (
	"streakconnect/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupMediaRoutes(router *gin.RouterGroup, controller Controller) {
	memberMedias := router.Group("/medias")
	memberMedias.Use(middleware.JWTAuth())
	{
		memberMedias.GET("", controller.GetAllMedias)
		memberMedias.GET("/:mediaId", controller.GetMedia)
	}

	adminMedias := router.Group("/admin/medias")
	adminMedias.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminMedias.POST("", controller.CreateMedia)
		adminMedias.DELETE("/:mediaId", controller.DeleteMedia)
	}
}
