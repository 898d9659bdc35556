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
	"storefix/internal/shared/services/markdown"
)

type RespondClarificationCommand struct {
	TicketID  uint
	ActorID   uint
	ActorRole string
	// UpdatedDescription amends the working description when non-empty.
	// The original description never changes.
	UpdatedDescription string
}

type RespondClarificationResult struct {
	TicketID uint
	Status   string
	OwnerID  *uint
}

// RespondClarificationUseCase sends the store's answer back to whichever
// reviewer asked for clarification in this round.
type RespondClarificationUseCase struct {
	ticketRepo ticket.Repository
	auditRepo  audit.Repository
	engine     *workflow.Engine
	markdown   markdown.MarkdownService
	txManager  TransactionManager
	logger     logger.Interface
}

func NewRespondClarificationUseCase(
	ticketRepo ticket.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	markdownSvc markdown.MarkdownService,
	txManager TransactionManager,
	logger logger.Interface,
) *RespondClarificationUseCase {
	return &RespondClarificationUseCase{
		ticketRepo: ticketRepo,
		auditRepo:  auditRepo,
		engine:     engine,
		markdown:   markdownSvc,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *RespondClarificationUseCase) Execute(ctx context.Context, cmd RespondClarificationCommand) (*RespondClarificationResult, error) {
	uc.logger.Infow("executing respond clarification use case", "ticket_id", cmd.TicketID, "actor_id", cmd.ActorID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}
	if len(cmd.UpdatedDescription) > 5000 {
		return nil, errors.NewValidationError("description exceeds maximum length of 5000 characters")
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
		Action:    workflow.ActionRespondClarification,
		ActorID:   cmd.ActorID,
		ActorRole: cmd.ActorRole,
	})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}
	if !decision.Allowed {
		return nil, transition.DenialError(decision)
	}

	requesterID, err := t.EndClarification()
	if err != nil {
		uc.logger.Errorw("no clarification requester recorded", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewConflictError(err.Error())
	}

	if len(cmd.UpdatedDescription) > 0 {
		if err := t.AmendDescription(uc.markdown.SanitizePlain(cmd.UpdatedDescription)); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := t.ApplyTransition(vo.TicketStatus(decision.NewStatus), &requesterID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	entry, err := ticketAuditEntry(t, workflow.ActionRespondClarification, from, cmd.ActorID, workflow.NormalizeRole(cmd.ActorRole),
		map[string]any{"routed_to": requesterID, "description_amended": len(cmd.UpdatedDescription) > 0})
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
		uc.logger.Errorw("failed to persist clarification response", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	return &RespondClarificationResult{
		TicketID: t.ID(),
		Status:   t.Status().String(),
		OwnerID:  t.OwnerID(),
	}, nil
}
