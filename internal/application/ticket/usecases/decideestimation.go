package usecases

import (
	"context"
	"fmt"

	"storefix/internal/application/common/transition"
	"storefix/internal/domain/approval"
	"storefix/internal/domain/audit"
	"storefix/internal/domain/ticket"
	vo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
)

// Estimation decisions an approver can take at their chain position.
const (
	EstimationDecisionApprove = "APPROVE"
	EstimationDecisionReturn  = "RETURN"
	EstimationDecisionReject  = "REJECT"
)

type DecideEstimationCommand struct {
	TicketID  uint
	ActorID   uint
	ActorRole string
	Decision  string
	Comment   string
}

type DecideEstimationResult struct {
	TicketID uint
	Status   string
	OwnerID  *uint
	// Escalated is true when the approval moved to the next chain position
	// instead of finalizing.
	Escalated bool
	// NextApproverID is set when Escalated.
	NextApproverID *uint
}

// DecideEstimationUseCase advances the approval chain one position. An
// approval either escalates to the next required approver or, when the
// actor is the final chain position for the amount, finalizes the ticket.
// Returns go unconditionally back to the area maintenance manager for a new
// estimate. Every decision appends one approval record.
type DecideEstimationUseCase struct {
	ticketRepo     ticket.Repository
	estimationRepo ticket.CostEstimationRepository
	recordRepo     approval.RecordRepository
	auditRepo      audit.Repository
	userRepo       user.Repository
	resolver       *approval.ChainResolver
	engine         *workflow.Engine
	txManager      TransactionManager
	logger         logger.Interface
}

func NewDecideEstimationUseCase(
	ticketRepo ticket.Repository,
	estimationRepo ticket.CostEstimationRepository,
	recordRepo approval.RecordRepository,
	auditRepo audit.Repository,
	userRepo user.Repository,
	resolver *approval.ChainResolver,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *DecideEstimationUseCase {
	return &DecideEstimationUseCase{
		ticketRepo:     ticketRepo,
		estimationRepo: estimationRepo,
		recordRepo:     recordRepo,
		auditRepo:      auditRepo,
		userRepo:       userRepo,
		resolver:       resolver,
		engine:         engine,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *DecideEstimationUseCase) Execute(ctx context.Context, cmd DecideEstimationCommand) (*DecideEstimationResult, error) {
	uc.logger.Infow("executing decide estimation use case",
		"ticket_id", cmd.TicketID, "actor_id", cmd.ActorID, "decision", cmd.Decision)

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	estimation, err := uc.estimationRepo.FindByTicketID(ctx, t.ID())
	if err != nil {
		return nil, errors.NewConflictError(fmt.Sprintf("ticket %d has no cost estimation", t.ID()))
	}

	actorRole := workflow.NormalizeRole(cmd.ActorRole)
	from := workflow.Status(t.Status())

	var (
		action         workflow.Action
		outcome        approval.RecordOutcome
		escalated      bool
		nextApproverID *uint
	)

	switch cmd.Decision {
	case EstimationDecisionApprove:
		action = workflow.ActionApprove
		outcome = approval.OutcomeApproved
	case EstimationDecisionReturn:
		action = workflow.ActionReturn
		outcome = approval.OutcomeReturned
	case EstimationDecisionReject:
		action = workflow.ActionReject
		outcome = approval.OutcomeRejected
	}

	evaluate := func(action workflow.Action) (workflow.Decision, error) {
		return uc.engine.Evaluate(workflow.Request{
			Kind:      workflow.KindTicket,
			Status:    from,
			OwnerID:   t.OwnerID(),
			Action:    action,
			ActorID:   cmd.ActorID,
			ActorRole: cmd.ActorRole,
		})
	}

	// The engine rules on status, role and ownership before the chain is
	// consulted, so refusals carry the same denial codes as every other
	// transition instead of a chain-position conflict.
	decision, err := evaluate(action)
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}
	if !decision.Allowed {
		return nil, transition.DenialError(decision)
	}

	if cmd.Decision == EstimationDecisionApprove {
		next, err := uc.resolver.NextApprover(ctx, t.ID(), estimation.Amount(), actorRole)
		if err != nil {
			uc.logger.Errorw("failed to resolve next approver", "ticket_id", t.ID(), "error", err)
			return nil, errors.NewConflictError(err.Error())
		}
		if next != nil {
			action = workflow.ActionEscalate
			escalated = true
			id := next.ID()
			nextApproverID = &id

			decision, err = evaluate(action)
			if err != nil {
				return nil, errors.NewInternalError(err.Error())
			}
			if !decision.Allowed {
				return nil, transition.DenialError(decision)
			}
		}
	}

	newOwner, err := newOwnerFromDecision(ctx, uc.userRepo, t, decision, nextApproverID)
	if err != nil {
		return nil, err
	}

	if err := t.ApplyTransition(vo.TicketStatus(decision.NewStatus), newOwner); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	record, err := approval.NewRecord(t.ID(), cmd.ActorID, actorRole, outcome, cmd.Comment)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	detail := map[string]any{"decision": cmd.Decision, "amount": estimation.Amount()}
	if nextApproverID != nil {
		detail["next_approver_id"] = *nextApproverID
	}
	entry, err := ticketAuditEntry(t, action, from, cmd.ActorID, actorRole, detail)
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		if err := uc.recordRepo.Append(txCtx, record); err != nil {
			return err
		}
		return uc.auditRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist estimation decision", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("estimation decision recorded",
		"ticket_id", t.ID(), "decision", cmd.Decision, "status", t.Status(), "escalated", escalated)

	return &DecideEstimationResult{
		TicketID:       t.ID(),
		Status:         t.Status().String(),
		OwnerID:        t.OwnerID(),
		Escalated:      escalated,
		NextApproverID: nextApproverID,
	}, nil
}

func (uc *DecideEstimationUseCase) validateCommand(cmd DecideEstimationCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return errors.NewValidationError("actor ID is required")
	}
	switch cmd.Decision {
	case EstimationDecisionApprove, EstimationDecisionReturn, EstimationDecisionReject:
		return nil
	default:
		return errors.NewValidationError("decision must be APPROVE, RETURN or REJECT")
	}
}
