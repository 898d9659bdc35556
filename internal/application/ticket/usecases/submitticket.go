package usecases

import (
	"context"
	"fmt"

	"storefix/internal/application/common/transition"
	"storefix/internal/domain/audit"
	"storefix/internal/domain/ticket"
	vo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
)

type SubmitTicketCommand struct {
	TicketID  uint
	ActorID   uint
	ActorRole string
}

type SubmitTicketResult struct {
	TicketID uint
	Status   string
	OwnerID  *uint
}

// SubmitTicketUseCase moves a draft into review. Urgent tickets route
// straight to the area maintenance manager; everything else goes to the
// area manager first.
type SubmitTicketUseCase struct {
	ticketRepo ticket.Repository
	userRepo   user.Repository
	auditRepo  audit.Repository
	engine     *workflow.Engine
	txManager  TransactionManager
	logger     logger.Interface
}

func NewSubmitTicketUseCase(
	ticketRepo ticket.Repository,
	userRepo user.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *SubmitTicketUseCase {
	return &SubmitTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		engine:     engine,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *SubmitTicketUseCase) Execute(ctx context.Context, cmd SubmitTicketCommand) (*SubmitTicketResult, error) {
	uc.logger.Infow("executing submit ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.ActorID)

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
		Action:    workflow.ActionSubmit,
		ActorID:   cmd.ActorID,
		ActorRole: cmd.ActorRole,
		Context:   map[string]any{workflow.ContextKeyUrgent: t.Urgent()},
	})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}
	if !decision.Allowed {
		uc.logger.Infow("submit denied", "ticket_id", cmd.TicketID, "code", decision.Code)
		return nil, transition.DenialError(decision)
	}

	reviewerRole := workflow.RoleAreaManager
	if t.Urgent() {
		reviewerRole = workflow.RoleAreaMaintenanceManager
	}
	reviewer, err := uc.userRepo.FindActiveByRole(ctx, reviewerRole)
	if err != nil {
		uc.logger.Errorw("failed to resolve reviewer", "role", reviewerRole, "error", err)
		return nil, errors.NewInternalError(fmt.Sprintf("no active %s to review ticket", reviewerRole))
	}
	reviewerID := reviewer.ID()

	if err := t.ApplyTransition(vo.TicketStatus(decision.NewStatus), &reviewerID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	entry, err := ticketAuditEntry(t, workflow.ActionSubmit, from, cmd.ActorID, workflow.NormalizeRole(cmd.ActorRole),
		map[string]any{"urgent": t.Urgent(), "reviewer_id": reviewerID})
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
		uc.logger.Errorw("failed to persist submit transition", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket submitted", "ticket_id", t.ID(), "status", t.Status(), "owner_id", reviewerID)

	return &SubmitTicketResult{
		TicketID: t.ID(),
		Status:   t.Status().String(),
		OwnerID:  t.OwnerID(),
	}, nil
}
