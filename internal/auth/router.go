package auth

import (
	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(router *gin.RouterGroup, controller Controller) {
	authRoutes := router.Group("/auth/line")
	{
		authRoutes.POST("/login", controller.StartLogin)
		authRoutes.POST("/callback", controller.Callback)
		authRoutes.POST("/refresh", controller.Refresh)
	}
}
