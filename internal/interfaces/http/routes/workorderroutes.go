package routes

import (
	"github.com/gin-gonic/gin"

	workorderhandlers "storefix/internal/interfaces/http/handlers/workorder"
	"storefix/internal/interfaces/http/middleware"
)

type WorkOrderRouteConfig struct {
	WorkOrderHandler *workorderhandlers.WorkOrderHandler
}

func SetupWorkOrderRoutes(engine *gin.Engine, config *WorkOrderRouteConfig) {
	workOrders := engine.Group("/work-orders")
	workOrders.Use(middleware.Actor())
	{
		workOrders.POST("", config.WorkOrderHandler.CreateWorkOrder)
		workOrders.GET("", config.WorkOrderHandler.ListWorkOrders)

		workOrders.POST("/:id/accept", config.WorkOrderHandler.AcceptWorkOrder)
		workOrders.POST("/:id/return", config.WorkOrderHandler.ReturnWorkOrder)
		workOrders.POST("/:id/resend", config.WorkOrderHandler.ResendWorkOrder)
		workOrders.POST("/:id/reject", config.WorkOrderHandler.RejectWorkOrder)
		workOrders.POST("/:id/corrections", config.WorkOrderHandler.ReturnForCorrection)
		workOrders.POST("/:id/service-outcome", config.WorkOrderHandler.FinishService)
		workOrders.POST("/:id/cost-proposals", config.WorkOrderHandler.PrepareCostProposal)
		workOrders.POST("/:id/cost-proposal-decisions", config.WorkOrderHandler.DecideCostProposal)
		workOrders.POST("/:id/cost-proposal-resubmissions", config.WorkOrderHandler.ResubmitProposal)
		workOrders.POST("/:id/qr-tokens", config.WorkOrderHandler.GenerateQR)
		workOrders.POST("/:id/scans", config.WorkOrderHandler.ScanQR)

		workOrders.GET("/:id", config.WorkOrderHandler.GetWorkOrder)
	}
}
