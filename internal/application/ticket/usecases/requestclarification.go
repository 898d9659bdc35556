package usecases

import (
	"context"
	"fmt"

	"storefix/internal/application/common/transition"
	"storefix/internal/domain/audit"
	"storefix/internal/domain/ticket"
	vo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/domain/workflow"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
)

type RequestClarificationCommand struct {
	TicketID  uint
	ActorID   uint
	ActorRole string
}

type RequestClarificationResult struct {
	TicketID uint
	Status   string
	OwnerID  *uint
}

// RequestClarificationUseCase hands the ticket back to its creator for more
// detail. The requesting reviewer is recorded on the ticket so the response
// routes back to exactly this user, whichever round this is.
type RequestClarificationUseCase struct {
	ticketRepo ticket.Repository
	auditRepo  audit.Repository
	engine     *workflow.Engine
	txManager  TransactionManager
	logger     logger.Interface
}

func NewRequestClarificationUseCase(
	ticketRepo ticket.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *RequestClarificationUseCase {
	return &RequestClarificationUseCase{
		ticketRepo: ticketRepo,
		auditRepo:  auditRepo,
		engine:     engine,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *RequestClarificationUseCase) Execute(ctx context.Context, cmd RequestClarificationCommand) (*RequestClarificationResult, error) {
	uc.logger.Infow("executing request clarification use case", "ticket_id", cmd.TicketID, "actor_id", cmd.ActorID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}

	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	from := workflow.Status(t.Status())
	decision, err := uc.engine.Evaluate(workflow.Request{
		Kind:      workflow.KindTicket,
		Status:    from,
		OwnerID:   t.OwnerID(),
		Action:    workflow.ActionRequestClarification,
		ActorID:   cmd.ActorID,
		ActorRole: cmd.ActorRole,
	})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}
	if !decision.Allowed {
		return nil, transition.DenialError(decision)
	}

	if err := t.BeginClarification(cmd.ActorID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	creator := t.CreatorID()
	if err := t.ApplyTransition(vo.TicketStatus(decision.NewStatus), &creator); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	entry, err := ticketAuditEntry(t, workflow.ActionRequestClarification, from, cmd.ActorID, workflow.NormalizeRole(cmd.ActorRole),
		map[string]any{"requester_id": cmd.ActorID})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		return uc.auditRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist clarification request", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	return &RequestClarificationResult{
		TicketID: t.ID(),
		Status:   t.Status().String(),
		OwnerID:  t.OwnerID(),
	}, nil
}
