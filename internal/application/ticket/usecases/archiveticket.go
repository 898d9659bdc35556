package usecases

import (
	"context"
	"fmt"

	"storefix/internal/application/common/transition"
	"storefix/internal/domain/audit"
	"storefix/internal/domain/ticket"
	vo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
)

type ArchiveTicketCommand struct {
	TicketID  uint
	ActorID   uint
	ActorRole string
}

type ArchiveTicketResult struct {
	TicketID uint
	Status   string
}

// ArchiveTicketUseCase closes out a ticket. A ticket executing work orders
// can only be archived once every work order has reached a terminal status;
// archiving clears the owner, which is the single owner change the guard
// permits in that phase.
type ArchiveTicketUseCase struct {
	ticketRepo    ticket.Repository
	workOrderRepo workorder.Repository
	auditRepo     audit.Repository
	engine        *workflow.Engine
	txManager     TransactionManager
	logger        logger.Interface
}

func NewArchiveTicketUseCase(
	ticketRepo ticket.Repository,
	workOrderRepo workorder.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *ArchiveTicketUseCase {
	return &ArchiveTicketUseCase{
		ticketRepo:    ticketRepo,
		workOrderRepo: workOrderRepo,
		auditRepo:     auditRepo,
		engine:        engine,
		txManager:     txManager,
		logger:        logger,
	}
}

func (uc *ArchiveTicketUseCase) Execute(ctx context.Context, cmd ArchiveTicketCommand) (*ArchiveTicketResult, error) {
	uc.logger.Infow("executing archive ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.ActorID)

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
		Action:    workflow.ActionArchive,
		ActorID:   cmd.ActorID,
		ActorRole: cmd.ActorRole,
		Context:   map[string]any{workflow.ContextKeyUrgent: t.Urgent()},
	})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}
	if !decision.Allowed {
		return nil, transition.DenialError(decision)
	}

	if t.Status() == vo.StatusWorkOrderInProgress {
		active, err := uc.workOrderRepo.CountActiveByTicketID(ctx, t.ID())
		if err != nil {
			return nil, errors.NewInternalError(err.Error())
		}
		if active > 0 {
			uc.logger.Infow("archive refused, active work orders remain", "ticket_id", t.ID(), "active", active)
			return nil, errors.NewConflictError(fmt.Sprintf("ticket %d still has %d active work orders", t.ID(), active))
		}
		if err := ticket.GuardOwnerChange(t, active, nil); err != nil {
			return nil, errors.NewConflictError(err.Error())
		}
	}

	if err := t.ApplyTransition(vo.TicketStatus(decision.NewStatus), nil); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	entry, err := ticketAuditEntry(t, workflow.ActionArchive, from, cmd.ActorID, workflow.NormalizeRole(cmd.ActorRole), nil)
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
		uc.logger.Errorw("failed to persist archive transition", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	return &ArchiveTicketResult{
		TicketID: t.ID(),
		Status:   t.Status().String(),
	}, nil
}
