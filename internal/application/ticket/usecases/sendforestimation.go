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

type SendForEstimationCommand struct {
	TicketID  uint
	ActorID   uint
	ActorRole string
}

type SendForEstimationResult struct {
	TicketID uint
	Status   string
	OwnerID  *uint
}

// SendForEstimationUseCase routes a reviewed ticket to the area maintenance
// manager for a cost estimation.
type SendForEstimationUseCase struct {
	ticketRepo ticket.Repository
	userRepo   user.Repository
	auditRepo  audit.Repository
	engine     *workflow.Engine
	txManager  TransactionManager
	logger     logger.Interface
}

func NewSendForEstimationUseCase(
	ticketRepo ticket.Repository,
	userRepo user.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *SendForEstimationUseCase {
	return &SendForEstimationUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		engine:     engine,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *SendForEstimationUseCase) Execute(ctx context.Context, cmd SendForEstimationCommand) (*SendForEstimationResult, error) {
	uc.logger.Infow("executing send for estimation use case", "ticket_id", cmd.TicketID, "actor_id", cmd.ActorID)

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
		Action:    workflow.ActionSendForEstimation,
		ActorID:   cmd.ActorID,
		ActorRole: cmd.ActorRole,
	})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}
	if !decision.Allowed {
		return nil, transition.DenialError(decision)
	}

	// An area maintenance manager resuming after a clarification keeps the
	// estimation instead of handing it to whichever manager the directory
	// would pick.
	var newOwner *uint
	if workflow.NormalizeRole(cmd.ActorRole) == decision.NewOwnerRole {
		actorID := cmd.ActorID
		newOwner = &actorID
	} else {
		newOwner, err = newOwnerFromDecision(ctx, uc.userRepo, t, decision, nil)
		if err != nil {
			return nil, err
		}
	}

	if err := t.ApplyTransition(vo.TicketStatus(decision.NewStatus), newOwner); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	entry, err := ticketAuditEntry(t, workflow.ActionSendForEstimation, from, cmd.ActorID, workflow.NormalizeRole(cmd.ActorRole), nil)
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
		uc.logger.Errorw("failed to persist estimation routing", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	return &SendForEstimationResult{
		TicketID: t.ID(),
		Status:   t.Status().String(),
		OwnerID:  t.OwnerID(),
	}, nil
}
