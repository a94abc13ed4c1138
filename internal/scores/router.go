package scores

import (
	"streakconnect/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupScoreRoutes(router *gin.RouterGroup, controller Controller) {
	memberScores := router.Group("/scores")
	memberScores.Use(middleware.JWTAuth())
	{
		memberScores.GET("", controller.GetAllScores)
		memberScores.GET("/:scoreId", controller.GetScore)
	}

	adminScores := router.Group("/admin/scores")
	adminScores.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminScores.POST("", controller.CreateScore)
		adminScores.PUT("/:scoreId", controller.UpdateScore)
		adminScores.DELETE("/:scoreId", controller.DeleteScore)
	}
}
