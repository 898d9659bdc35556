package workorder

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefix/internal/application/workorder/usecases"
	"storefix/internal/interfaces/http/middleware"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
	"storefix/internal/shared/utils"
)

// WorkOrderHandler exposes the vendor execution flow: open, accept, the
// visit boundaries gated by QR tokens, and the cost proposal settlement.
type WorkOrderHandler struct {
	createUC              *usecases.CreateWorkOrderUseCase
	acceptUC              *usecases.AcceptWorkOrderUseCase
	returnUC              *usecases.ReturnWorkOrderUseCase
	resendUC              *usecases.ResendWorkOrderUseCase
	rejectUC              *usecases.RejectWorkOrderUseCase
	returnForCorrectionUC *usecases.ReturnForCorrectionUseCase
	finishServiceUC       *usecases.FinishServiceUseCase
	prepareProposalUC     *usecases.PrepareCostProposalUseCase
	decideProposalUC      *usecases.DecideCostProposalUseCase
	resubmitProposalUC    *usecases.ResubmitProposalUseCase
	generateQRUC          *usecases.GenerateQRUseCase
	scanQRUC              *usecases.ScanQRUseCase
	getUC                 *usecases.GetWorkOrderUseCase
	listUC                *usecases.ListWorkOrdersUseCase
	logger                logger.Interface
}

func NewWorkOrderHandler(
	createUC *usecases.CreateWorkOrderUseCase,
	acceptUC *usecases.AcceptWorkOrderUseCase,
	returnUC *usecases.ReturnWorkOrderUseCase,
	resendUC *usecases.ResendWorkOrderUseCase,
	rejectUC *usecases.RejectWorkOrderUseCase,
	returnForCorrectionUC *usecases.ReturnForCorrectionUseCase,
	finishServiceUC *usecases.FinishServiceUseCase,
	prepareProposalUC *usecases.PrepareCostProposalUseCase,
	decideProposalUC *usecases.DecideCostProposalUseCase,
	resubmitProposalUC *usecases.ResubmitProposalUseCase,
	generateQRUC *usecases.GenerateQRUseCase,
	scanQRUC *usecases.ScanQRUseCase,
	getUC *usecases.GetWorkOrderUseCase,
	listUC *usecases.ListWorkOrdersUseCase,
) *WorkOrderHandler {
	return &WorkOrderHandler{
		createUC:              createUC,
		acceptUC:              acceptUC,
		returnUC:              returnUC,
		resendUC:              resendUC,
		rejectUC:              rejectUC,
		returnForCorrectionUC: returnForCorrectionUC,
		finishServiceUC:       finishServiceUC,
		prepareProposalUC:     prepareProposalUC,
		decideProposalUC:      decideProposalUC,
		resubmitProposalUC:    resubmitProposalUC,
		generateQRUC:          generateQRUC,
		scanQRUC:              scanQRUC,
		getUC:                 getUC,
		listUC:                listUC,
		logger:                logger.NewLogger(),
	}
}

// CreateWorkOrder handles POST /work-orders
func (h *WorkOrderHandler) CreateWorkOrder(c *gin.Context) {
	var req CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create work order", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateWorkOrderCommand{
		TicketID:  req.TicketID,
		VendorID:  req.VendorID,
		ActorID:   middleware.ActorID(c),
		ActorRole: middleware.ActorRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Work order created successfully")
}

// AcceptWorkOrder handles POST /work-orders/:id/accept
func (h *WorkOrderHandler) AcceptWorkOrder(c *gin.Context) {
	workOrderID, err := parseWorkOrderID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AcceptWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.acceptUC.Execute(c.Request.Context(), usecases.AcceptWorkOrderCommand{
		WorkOrderID:  workOrderID,
		ActorID:      middleware.ActorID(c),
		ActorRole:    middleware.ActorRole(c),
		TechnicianID: req.TechnicianID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work order accepted", result)
}

// ReturnWorkOrder handles POST /work-orders/:id/return
func (h *WorkOrderHandler) ReturnWorkOrder(c *gin.Context) {
	workOrderID, err := parseWorkOrderID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	req := parseComment(c)
	result, err := h.returnUC.Execute(c.Request.Context(), usecases.ReturnWorkOrderCommand{
		WorkOrderID: workOrderID,
		ActorID:     middleware.ActorID(c),
		ActorRole:   middleware.ActorRole(c),
		Comment:     req.Comment,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work order returned", result)
}

// ResendWorkOrder handles POST /work-orders/:id/resend
func (h *WorkOrderHandler) ResendWorkOrder(c *gin.Context) {
	workOrderID, err := parseWorkOrderID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.resendUC.Execute(c.Request.Context(), usecases.ResendWorkOrderCommand{
		WorkOrderID: workOrderID,
		ActorID:     middleware.ActorID(c),
		ActorRole:   middleware.ActorRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work order resent", result)
}

// RejectWorkOrder handles POST /work-orders/:id/reject
func (h *WorkOrderHandler) RejectWorkOrder(c *gin.Context) {
	workOrderID, err := parseWorkOrderID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	req := parseComment(c)
	result, err := h.rejectUC.Execute(c.Request.Context(), usecases.RejectWorkOrderCommand{
		WorkOrderID: workOrderID,
		ActorID:     middleware.ActorID(c),
		ActorRole:   middleware.ActorRole(c),
		Comment:     req.Comment,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work order rejected", result)
}

// ReturnForCorrection handles POST /work-orders/:id/corrections
func (h *WorkOrderHandler) ReturnForCorrection(c *gin.Context) {
	workOrderID, err := parseWorkOrderID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	req := parseComment(c)
	result, err := h.returnForCorrectionUC.Execute(c.Request.Context(), usecases.ReturnForCorrectionCommand{
		WorkOrderID: workOrderID,
		ActorID:     middleware.ActorID(c),
		ActorRole:   middleware.ActorRole(c),
		Comment:     req.Comment,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work order returned for correction", result)
}

// FinishService handles POST /work-orders/:id/service-outcome
func (h *WorkOrderHandler) FinishService(c *gin.Context) {
	workOrderID, err := parseWorkOrderID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req FinishServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.finishServiceUC.Execute(c.Request.Context(), usecases.FinishServiceCommand{
		WorkOrderID: workOrderID,
		ActorID:     middleware.ActorID(c),
		ActorRole:   middleware.ActorRole(c),
		Outcome:     req.Outcome,
		Comment:     req.Comment,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service outcome recorded", result)
}

// PrepareCostProposal handles POST /work-orders/:id/cost-proposals
func (h *WorkOrderHandler) PrepareCostProposal(c *gin.Context) {
	workOrderID, err := parseWorkOrderID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.prepareProposalUC.Execute(c.Request.Context(), usecases.PrepareCostProposalCommand{
		WorkOrderID: workOrderID,
		ActorID:     middleware.ActorID(c),
		ActorRole:   middleware.ActorRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cost proposal prepared", result)
}

// DecideCostProposal handles POST /work-orders/:id/cost-proposal-decisions
func (h *WorkOrderHandler) DecideCostProposal(c *gin.Context) {
	workOrderID, err := parseWorkOrderID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req DecideCostProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.decideProposalUC.Execute(c.Request.Context(), usecases.DecideCostProposalCommand{
		WorkOrderID: workOrderID,
		ActorID:     middleware.ActorID(c),
		ActorRole:   middleware.ActorRole(c),
		Decision:    req.Decision,
		Comment:     req.Comment,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cost proposal decision recorded", result)
}

// ResubmitProposal handles POST /work-orders/:id/cost-proposal-resubmissions
func (h *WorkOrderHandler) ResubmitProposal(c *gin.Context) {
	workOrderID, err := parseWorkOrderID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.resubmitProposalUC.Execute(c.Request.Context(), usecases.ResubmitProposalCommand{
		WorkOrderID: workOrderID,
		ActorID:     middleware.ActorID(c),
		ActorRole:   middleware.ActorRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cost proposal resubmitted", result)
}

// GenerateQR handles POST /work-orders/:id/qr-tokens
func (h *WorkOrderHandler) GenerateQR(c *gin.Context) {
	workOrderID, err := parseWorkOrderID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req GenerateQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.generateQRUC.Execute(c.Request.Context(), usecases.GenerateQRCommand{
		WorkOrderID:             workOrderID,
		ActorID:                 middleware.ActorID(c),
		ActorRole:               middleware.ActorRole(c),
		ScanType:                req.ScanType,
		DeclaredTechnicianCount: req.DeclaredTechnicianCount,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "QR token generated", gin.H{
		"work_order_id": result.WorkOrderID,
		"token":         result.Token,
		"scan_type":     result.ScanType,
		"expires_at":    result.ExpiresAt,
		"png_base64":    base64.StdEncoding.EncodeToString(result.PNG),
		"status":        result.Status,
		"owner_id":      result.OwnerID,
	})
}

// ScanQR handles POST /work-orders/:id/scans
func (h *WorkOrderHandler) ScanQR(c *gin.Context) {
	workOrderID, err := parseWorkOrderID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ScanQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.scanQRUC.Execute(c.Request.Context(), usecases.ScanQRCommand{
		WorkOrderID: workOrderID,
		Token:       req.Token,
		ActorID:     middleware.ActorID(c),
		ActorRole:   middleware.ActorRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scan accepted", result)
}

// GetWorkOrder handles GET /work-orders/:id
func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	workOrderID, err := parseWorkOrderID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetWorkOrderCommand{WorkOrderID: workOrderID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListWorkOrders handles GET /work-orders
func (h *WorkOrderHandler) ListWorkOrders(c *gin.Context) {
	var query ListWorkOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), query.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ValidatePagination(query.Page, query.PageSize)
	utils.ListSuccessResponse(c, result.WorkOrders, result.Total, p.Page, p.PageSize)
}

func parseWorkOrderID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid work order ID")
	}
	return uint(id), nil
}

// parseComment tolerates an empty body on comment-only endpoints.
func parseComment(c *gin.Context) CommentRequest {
	var req CommentRequest
	_ = c.ShouldBindJSON(&req)
	return req
}
