package votes

import (
	"streakconnect/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupVoteRoutes(router *gin.RouterGroup, controller Controller) {
	memberVotes := router.Group("/votes")
	memberVotes.Use(middleware.JWTAuth())
	{
		memberVotes.GET("", controller.GetAllVotes)
		memberVotes.GET("/:voteId", controller.GetVote)
		memberVotes.PUT("/:voteId/response", controller.CastVote)
		memberVotes.DELETE("/:voteId/response", controller.WithdrawVote)
	}

	adminVotes := router.Group("/admin/votes")
	adminVotes.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminVotes.POST("", controller.CreateVote)
		adminVotes.POST("/:voteId/close", controller.CloseVote)
		adminVotes.DELETE("/:voteId", controller.DeleteVote)
	}
}
