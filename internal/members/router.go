package members

import (
	"streakconnect/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupMemberRoutes(router *gin.RouterGroup, controller Controller) {
	me := router.Group("/members/me")
	me.Use(middleware.JWTAuth())
	{
		me.GET("", controller.GetMe)
		me.PATCH("", controller.UpdateMe)
		me.POST("/consent", controller.Consent)
	}

	admin := router.Group("/admin/members")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.GetAllMembers)
		admin.PUT("/:memberId/role", controller.SetRole)
		admin.DELETE("/:memberId", controller.DeleteMember)
	}
}
