package ticket

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefix/internal/application/ticket/usecases"
	"storefix/internal/interfaces/http/middleware"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
	"storefix/internal/shared/utils"
)

// TicketHandler exposes the maintenance ticket lifecycle over HTTP. Every
// state change goes through a use case; the handler only parses requests
// and maps results.
type TicketHandler struct {
	createUC               *usecases.CreateTicketUseCase
	submitUC               *usecases.SubmitTicketUseCase
	requestClarificationUC *usecases.RequestClarificationUseCase
	respondClarificationUC *usecases.RespondClarificationUseCase
	sendForEstimationUC    *usecases.SendForEstimationUseCase
	submitEstimationUC     *usecases.SubmitEstimationUseCase
	decideEstimationUC     *usecases.DecideEstimationUseCase
	rejectUC               *usecases.RejectTicketUseCase
	withdrawUC             *usecases.WithdrawTicketUseCase
	archiveUC              *usecases.ArchiveTicketUseCase
	getUC                  *usecases.GetTicketUseCase
	listUC                 *usecases.ListTicketsUseCase
	logger                 logger.Interface
}

func NewTicketHandler(
	createUC *usecases.CreateTicketUseCase,
	submitUC *usecases.SubmitTicketUseCase,
	requestClarificationUC *usecases.RequestClarificationUseCase,
	respondClarificationUC *usecases.RespondClarificationUseCase,
	sendForEstimationUC *usecases.SendForEstimationUseCase,
	submitEstimationUC *usecases.SubmitEstimationUseCase,
	decideEstimationUC *usecases.DecideEstimationUseCase,
	rejectUC *usecases.RejectTicketUseCase,
	withdrawUC *usecases.WithdrawTicketUseCase,
	archiveUC *usecases.ArchiveTicketUseCase,
	getUC *usecases.GetTicketUseCase,
	listUC *usecases.ListTicketsUseCase,
) *TicketHandler {
	return &TicketHandler{
		createUC:               createUC,
		submitUC:               submitUC,
		requestClarificationUC: requestClarificationUC,
		respondClarificationUC: respondClarificationUC,
		sendForEstimationUC:    sendForEstimationUC,
		submitEstimationUC:     submitEstimationUC,
		decideEstimationUC:     decideEstimationUC,
		rejectUC:               rejectUC,
		withdrawUC:             withdrawUC,
		archiveUC:              archiveUC,
		getUC:                  getUC,
		listUC:                 listUC,
		logger:                 logger.NewLogger(),
	}
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand(middleware.ActorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// SubmitTicket handles POST /tickets/:id/submit
func (h *TicketHandler) SubmitTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.submitUC.Execute(c.Request.Context(), usecases.SubmitTicketCommand{
		TicketID:  ticketID,
		ActorID:   middleware.ActorID(c),
		ActorRole: middleware.ActorRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket submitted", result)
}

// RequestClarification handles POST /tickets/:id/clarification-requests
func (h *TicketHandler) RequestClarification(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.requestClarificationUC.Execute(c.Request.Context(), usecases.RequestClarificationCommand{
		TicketID:  ticketID,
		ActorID:   middleware.ActorID(c),
		ActorRole: middleware.ActorRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Clarification requested", result)
}

// RespondClarification handles POST /tickets/:id/clarification-responses
func (h *TicketHandler) RespondClarification(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RespondClarificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.respondClarificationUC.Execute(c.Request.Context(), usecases.RespondClarificationCommand{
		TicketID:           ticketID,
		ActorID:            middleware.ActorID(c),
		ActorRole:          middleware.ActorRole(c),
		UpdatedDescription: req.UpdatedDescription,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Clarification answered", result)
}

// SendForEstimation handles POST /tickets/:id/estimation-requests
func (h *TicketHandler) SendForEstimation(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.sendForEstimationUC.Execute(c.Request.Context(), usecases.SendForEstimationCommand{
		TicketID:  ticketID,
		ActorID:   middleware.ActorID(c),
		ActorRole: middleware.ActorRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket sent for estimation", result)
}

// SubmitEstimation handles POST /tickets/:id/estimations
func (h *TicketHandler) SubmitEstimation(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SubmitEstimationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.submitEstimationUC.Execute(c.Request.Context(), usecases.SubmitEstimationCommand{
		TicketID:  ticketID,
		ActorID:   middleware.ActorID(c),
		ActorRole: middleware.ActorRole(c),
		Amount:    req.Amount,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Estimation submitted", result)
}

// DecideEstimation handles POST /tickets/:id/estimation-decisions
func (h *TicketHandler) DecideEstimation(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req DecideEstimationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.decideEstimationUC.Execute(c.Request.Context(), usecases.DecideEstimationCommand{
		TicketID:  ticketID,
		ActorID:   middleware.ActorID(c),
		ActorRole: middleware.ActorRole(c),
		Decision:  req.Decision,
		Comment:   req.Comment,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Estimation decision recorded", result)
}

// RejectTicket handles POST /tickets/:id/reject
func (h *TicketHandler) RejectTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RejectTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.rejectUC.Execute(c.Request.Context(), usecases.RejectTicketCommand{
		TicketID:  ticketID,
		ActorID:   middleware.ActorID(c),
		ActorRole: middleware.ActorRole(c),
		Comment:   req.Comment,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket rejected", result)
}

// WithdrawTicket handles POST /tickets/:id/withdraw
func (h *TicketHandler) WithdrawTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.withdrawUC.Execute(c.Request.Context(), usecases.WithdrawTicketCommand{
		TicketID:  ticketID,
		ActorID:   middleware.ActorID(c),
		ActorRole: middleware.ActorRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket withdrawn", result)
}

// ArchiveTicket handles POST /tickets/:id/archive
func (h *TicketHandler) ArchiveTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.archiveUC.Execute(c.Request.Context(), usecases.ArchiveTicketCommand{
		TicketID:  ticketID,
		ActorID:   middleware.ActorID(c),
		ActorRole: middleware.ActorRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket archived", result)
}

// GetTicket handles GET /tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetTicketCommand{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	var query ListTicketsQuery
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
	utils.ListSuccessResponse(c, result.Tickets, result.Total, p.Page, p.PageSize)
}

func parseTicketID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid ticket ID")
	}
	return uint(id), nil
}
