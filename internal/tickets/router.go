package tickets

import (
	"streakconnect/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTicketRoutes(router *gin.RouterGroup, controller Controller) {
	// Per-live reservation, the member's own ticket
	liveTickets := router.Group("/lives/:liveId/tickets/me")
	liveTickets.Use(middleware.JWTAuth(), middleware.RequireConsent())
	{
		liveTickets.PUT("", controller.UpsertReservation)
		liveTickets.DELETE("", controller.CancelReservation)
		liveTickets.GET("", controller.GetMyTicket)
		liveTickets.GET("/qr", controller.GetTicketQR)
	}

	// Remaining stock is readable by any authenticated member
	stock := router.Group("/lives/:liveId/stock")
	stock.Use(middleware.JWTAuth())
	{
		stock.GET("", controller.GetRemainingStock)
	}

	// Cross-live view of the member's reservations
	myTickets := router.Group("/tickets/me")
	myTickets.Use(middleware.JWTAuth())
	{
		myTickets.GET("", controller.GetMyTickets)
	}

	// Door list and head counts
	admin := router.Group("/admin/lives/:liveId/tickets")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.GetLiveTickets)
		admin.GET("/summary", controller.GetSummary)
	}
}
