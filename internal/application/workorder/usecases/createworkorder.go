package usecases

import (
	"context"
	"fmt"

	"storefix/internal/application/common/transition"
	"storefix/internal/domain/audit"
	"storefix/internal/domain/ticket"
	tvo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
)

type CreateWorkOrderCommand struct {
	TicketID  uint
	VendorID  uint
	ActorID   uint
	ActorRole string
}

type CreateWorkOrderResult struct {
	WorkOrderID  uint
	TicketID     uint
	TicketStatus string
	Status       string
	OwnerID      *uint
}

// CreateWorkOrderUseCase opens a work order against a vendor company. The
// parent ticket enters work-order execution through the engine in the same
// transaction, either from an approved estimation or on the urgent fast
// path straight from review.
type CreateWorkOrderUseCase struct {
	workOrderRepo workorder.Repository
	ticketRepo    ticket.Repository
	userRepo      user.Repository
	auditRepo     audit.Repository
	engine        *workflow.Engine
	txManager     TransactionManager
	logger        logger.Interface
}

func NewCreateWorkOrderUseCase(
	workOrderRepo workorder.Repository,
	ticketRepo ticket.Repository,
	userRepo user.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *CreateWorkOrderUseCase {
	return &CreateWorkOrderUseCase{
		workOrderRepo: workOrderRepo,
		ticketRepo:    ticketRepo,
		userRepo:      userRepo,
		auditRepo:     auditRepo,
		engine:        engine,
		txManager:     txManager,
		logger:        logger,
	}
}

func (uc *CreateWorkOrderUseCase) Execute(ctx context.Context, cmd CreateWorkOrderCommand) (*CreateWorkOrderResult, error) {
	uc.logger.Infow("executing create work order use case",
		"ticket_id", cmd.TicketID, "vendor_id", cmd.VendorID, "actor_id", cmd.ActorID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.VendorID == 0 {
		return nil, errors.NewValidationError("vendor ID is required")
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
		Action:    workflow.ActionOpenWorkOrder,
		ActorID:   cmd.ActorID,
		ActorRole: cmd.ActorRole,
		Context:   map[string]any{workflow.ContextKeyUrgent: t.Urgent()},
	})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}
	if !decision.Allowed {
		uc.logger.Infow("work order creation denied", "ticket_id", cmd.TicketID, "code", decision.Code)
		return nil, transition.DenialError(decision)
	}

	vendorAdmin, err := uc.userRepo.FindActiveByRoleAndCompany(ctx, workflow.RoleVendorServiceAdmin, cmd.VendorID)
	if err != nil {
		uc.logger.Errorw("no active service admin for vendor", "vendor_id", cmd.VendorID, "error", err)
		return nil, errors.NewValidationError(fmt.Sprintf("vendor %d has no active service admin", cmd.VendorID))
	}

	w, err := workorder.NewWorkOrder(t.ID(), cmd.VendorID, vendorAdmin.ID())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	ticketOwner, err := transition.ResolveOwner(ctx, uc.userRepo, decision, 0, t.OwnerID())
	if err != nil {
		return nil, err
	}
	if err := t.ApplyTransition(tvo.TicketStatus(decision.NewStatus), ticketOwner); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	actorRole := workflow.NormalizeRole(cmd.ActorRole)
	ticketEntry, err := audit.NewEntry(workflow.KindTicket, t.ID(), workflow.ActionOpenWorkOrder,
		from, workflow.Status(t.Status()), cmd.ActorID, actorRole,
		map[string]any{"vendor_id": cmd.VendorID})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.workOrderRepo.Save(txCtx, w); err != nil {
			return err
		}
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		woEntry, err := workOrderAuditEntry(w, workflow.ActionOpenWorkOrder, workflow.Status(w.Status()),
			cmd.ActorID, actorRole, map[string]any{"ticket_id": t.ID(), "vendor_id": cmd.VendorID})
		if err != nil {
			return err
		}
		if err := uc.auditRepo.Append(txCtx, woEntry); err != nil {
			return err
		}
		return uc.auditRepo.Append(txCtx, ticketEntry)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist work order creation", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("work order created",
		"work_order_id", w.ID(), "ticket_id", t.ID(), "vendor_id", cmd.VendorID)

	return &CreateWorkOrderResult{
		WorkOrderID:  w.ID(),
		TicketID:     t.ID(),
		TicketStatus: t.Status().String(),
		Status:       w.Status().String(),
		OwnerID:      w.OwnerID(),
	}, nil
}
