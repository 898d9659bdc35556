package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "storefix/internal/interfaces/http/handlers/ticket"
	"storefix/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler *tickethandlers.TicketHandler
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(middleware.Actor())
	{
		tickets.POST("", config.TicketHandler.CreateTicket)
		tickets.GET("", config.TicketHandler.ListTickets)

		tickets.POST("/:id/submit", config.TicketHandler.SubmitTicket)
		tickets.POST("/:id/clarification-requests", config.TicketHandler.RequestClarification)
		tickets.POST("/:id/clarification-responses", config.TicketHandler.RespondClarification)
		tickets.POST("/:id/estimation-requests", config.TicketHandler.SendForEstimation)
		tickets.POST("/:id/estimations", config.TicketHandler.SubmitEstimation)
		tickets.POST("/:id/estimation-decisions", config.TicketHandler.DecideEstimation)
		tickets.POST("/:id/reject", config.TicketHandler.RejectTicket)
		tickets.POST("/:id/withdraw", config.TicketHandler.WithdrawTicket)
		tickets.POST("/:id/archive", config.TicketHandler.ArchiveTicket)

		tickets.GET("/:id", config.TicketHandler.GetTicket)
	}
}
