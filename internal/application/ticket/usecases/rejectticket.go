package usecases

import (
	"context"
	"fmt"

	"storefix/internal/application/common/transition"
	"storefix/internal/domain/approval"
	"storefix/internal/domain/audit"
	"storefix/internal/domain/ticket"
	vo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/domain/workflow"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
)

type RejectTicketCommand struct {
	TicketID  uint
	ActorID   uint
	ActorRole string
	Comment   string
}

type RejectTicketResult struct {
	TicketID uint
	Status   string
}

// RejectTicketUseCase rejects a ticket at any review or approval position.
// A rejection during cost estimation approval additionally appends a
// REJECTED approval record so the chain history stays complete.
type RejectTicketUseCase struct {
	ticketRepo ticket.Repository
	recordRepo approval.RecordRepository
	auditRepo  audit.Repository
	engine     *workflow.Engine
	txManager  TransactionManager
	logger     logger.Interface
}

func NewRejectTicketUseCase(
	ticketRepo ticket.Repository,
	recordRepo approval.RecordRepository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *RejectTicketUseCase {
	return &RejectTicketUseCase{
		ticketRepo: ticketRepo,
		recordRepo: recordRepo,
		auditRepo:  auditRepo,
		engine:     engine,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *RejectTicketUseCase) Execute(ctx context.Context, cmd RejectTicketCommand) (*RejectTicketResult, error) {
	uc.logger.Infow("executing reject ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.ActorID)

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
	inApproval := t.Status() == vo.StatusCostEstimationApprovalNeeded

	decision, err := uc.engine.Evaluate(workflow.Request{
		Kind:      workflow.KindTicket,
		Status:    from,
		OwnerID:   t.OwnerID(),
		Action:    workflow.ActionReject,
		ActorID:   cmd.ActorID,
		ActorRole: cmd.ActorRole,
	})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}
	if !decision.Allowed {
		return nil, transition.DenialError(decision)
	}

	if err := t.ApplyTransition(vo.TicketStatus(decision.NewStatus), nil); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var record *approval.Record
	if inApproval {
		record, err = approval.NewRecord(t.ID(), cmd.ActorID, workflow.NormalizeRole(cmd.ActorRole), approval.OutcomeRejected, cmd.Comment)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	entry, err := ticketAuditEntry(t, workflow.ActionReject, from, cmd.ActorID, workflow.NormalizeRole(cmd.ActorRole),
		map[string]any{"comment": cmd.Comment})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		if record != nil {
			if err := uc.recordRepo.Append(txCtx, record); err != nil {
				return err
			}
		}
		return uc.auditRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist reject transition", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	return &RejectTicketResult{
		TicketID: t.ID(),
		Status:   t.Status().String(),
	}, nil
}
