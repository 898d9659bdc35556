package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	ticketusecases "storefix/internal/application/ticket/usecases"
	workorderusecases "storefix/internal/application/workorder/usecases"
	"storefix/internal/domain/approval"
	"storefix/internal/domain/workflow"
	"storefix/internal/infrastructure/config"
	"storefix/internal/infrastructure/repository"
	"storefix/internal/infrastructure/services"
	tickethandlers "storefix/internal/interfaces/http/handlers/ticket"
	workorderhandlers "storefix/internal/interfaces/http/handlers/workorder"
	"storefix/internal/interfaces/http/middleware"
	"storefix/internal/interfaces/http/routes"
	"storefix/internal/shared/db"
	"storefix/internal/shared/logger"
	"storefix/internal/shared/services/markdown"
)

// Router wires repositories, the workflow engine and the use cases into
// the HTTP surface.
type Router struct {
	engine           *gin.Engine
	cfg              *config.Config
	logger           logger.Interface
	ticketHandler    *tickethandlers.TicketHandler
	workOrderHandler *workorderhandlers.WorkOrderHandler
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(gormDB *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	ticketRepo := repository.NewTicketRepository(gormDB)
	workOrderRepo := repository.NewWorkOrderRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	qrRepo := repository.NewQRScanTokenRepository(gormDB)
	approvalRepo := repository.NewApprovalRecordRepository(gormDB)
	auditRepo := repository.NewAuditEntryRepository(gormDB)
	estimationRepo := repository.NewCostEstimationRepository(gormDB)

	txManager := db.NewTransactionManager(gormDB)
	numberGen := services.NewTicketNumberGenerator(gormDB)
	markdownSvc := markdown.NewMarkdownService()
	engineRules := workflow.NewEngine()
	chainResolver := approval.NewChainResolver(userRepo)
	qrTokenTTL := time.Duration(cfg.Workflow.QRTokenTTLMinutes) * time.Minute

	ticketHandler := tickethandlers.NewTicketHandler(
		ticketusecases.NewCreateTicketUseCase(ticketRepo, numberGen, markdownSvc, log),
		ticketusecases.NewSubmitTicketUseCase(ticketRepo, userRepo, auditRepo, engineRules, txManager, log),
		ticketusecases.NewRequestClarificationUseCase(ticketRepo, auditRepo, engineRules, txManager, log),
		ticketusecases.NewRespondClarificationUseCase(ticketRepo, auditRepo, engineRules, markdownSvc, txManager, log),
		ticketusecases.NewSendForEstimationUseCase(ticketRepo, userRepo, auditRepo, engineRules, txManager, log),
		ticketusecases.NewSubmitEstimationUseCase(ticketRepo, estimationRepo, auditRepo, chainResolver, engineRules, txManager, log),
		ticketusecases.NewDecideEstimationUseCase(ticketRepo, estimationRepo, approvalRepo, auditRepo, userRepo, chainResolver, engineRules, txManager, log),
		ticketusecases.NewRejectTicketUseCase(ticketRepo, approvalRepo, auditRepo, engineRules, txManager, log),
		ticketusecases.NewWithdrawTicketUseCase(ticketRepo, auditRepo, engineRules, txManager, log),
		ticketusecases.NewArchiveTicketUseCase(ticketRepo, workOrderRepo, auditRepo, engineRules, txManager, log),
		ticketusecases.NewGetTicketUseCase(ticketRepo, estimationRepo, approvalRepo, auditRepo, markdownSvc, log),
		ticketusecases.NewListTicketsUseCase(ticketRepo, log),
	)

	workOrderHandler := workorderhandlers.NewWorkOrderHandler(
		workorderusecases.NewCreateWorkOrderUseCase(workOrderRepo, ticketRepo, userRepo, auditRepo, engineRules, txManager, log),
		workorderusecases.NewAcceptWorkOrderUseCase(workOrderRepo, userRepo, auditRepo, engineRules, txManager, log),
		workorderusecases.NewReturnWorkOrderUseCase(workOrderRepo, userRepo, auditRepo, engineRules, txManager, log),
		workorderusecases.NewResendWorkOrderUseCase(workOrderRepo, userRepo, auditRepo, engineRules, txManager, log),
		workorderusecases.NewRejectWorkOrderUseCase(workOrderRepo, userRepo, auditRepo, engineRules, txManager, log),
		workorderusecases.NewReturnForCorrectionUseCase(workOrderRepo, userRepo, auditRepo, engineRules, txManager, log),
		workorderusecases.NewFinishServiceUseCase(workOrderRepo, userRepo, auditRepo, engineRules, txManager, log),
		workorderusecases.NewPrepareCostProposalUseCase(workOrderRepo, userRepo, auditRepo, engineRules, txManager, log),
		workorderusecases.NewDecideCostProposalUseCase(workOrderRepo, userRepo, auditRepo, engineRules, txManager, log),
		workorderusecases.NewResubmitProposalUseCase(workOrderRepo, userRepo, auditRepo, engineRules, txManager, log),
		workorderusecases.NewGenerateQRUseCase(workOrderRepo, userRepo, qrRepo, auditRepo, engineRules, txManager, qrTokenTTL, log),
		workorderusecases.NewScanQRUseCase(workOrderRepo, userRepo, qrRepo, auditRepo, engineRules, txManager, log),
		workorderusecases.NewGetWorkOrderUseCase(workOrderRepo, qrRepo, auditRepo, log),
		workorderusecases.NewListWorkOrdersUseCase(workOrderRepo, log),
	)

	return &Router{
		engine:           engine,
		cfg:              cfg,
		logger:           log,
		ticketHandler:    ticketHandler,
		workOrderHandler: workOrderHandler,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler: r.ticketHandler,
	})
	routes.SetupWorkOrderRoutes(r.engine, &routes.WorkOrderRouteConfig{
		WorkOrderHandler: r.workOrderHandler,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
