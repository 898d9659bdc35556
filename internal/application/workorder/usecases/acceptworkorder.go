package usecases

import (
	"context"
	"fmt"

	"storefix/internal/application/common/transition"
	"storefix/internal/domain/audit"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	wvo "storefix/internal/domain/workorder/valueobjects"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
)

type AcceptWorkOrderCommand struct {
	WorkOrderID  uint
	ActorID      uint
	ActorRole    string
	TechnicianID uint
}

type AcceptWorkOrderResult struct {
	WorkOrderID  uint
	Status       string
	TechnicianID uint
	OwnerID      *uint
}

// AcceptWorkOrderUseCase is the vendor service admin accepting an order and
// assigning one of their technicians, who becomes the owner.
type AcceptWorkOrderUseCase struct {
	workOrderRepo workorder.Repository
	userRepo      user.Repository
	auditRepo     audit.Repository
	engine        *workflow.Engine
	txManager     TransactionManager
	logger        logger.Interface
}

func NewAcceptWorkOrderUseCase(
	workOrderRepo workorder.Repository,
	userRepo user.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *AcceptWorkOrderUseCase {
	return &AcceptWorkOrderUseCase{
		workOrderRepo: workOrderRepo,
		userRepo:      userRepo,
		auditRepo:     auditRepo,
		engine:        engine,
		txManager:     txManager,
		logger:        logger,
	}
}

func (uc *AcceptWorkOrderUseCase) Execute(ctx context.Context, cmd AcceptWorkOrderCommand) (*AcceptWorkOrderResult, error) {
	uc.logger.Infow("executing accept work order use case",
		"work_order_id", cmd.WorkOrderID, "technician_id", cmd.TechnicianID)

	if cmd.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}
	if cmd.TechnicianID == 0 {
		return nil, errors.NewValidationError("technician ID is required")
	}

	w, err := uc.workOrderRepo.FindByID(ctx, cmd.WorkOrderID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("work order %d not found", cmd.WorkOrderID))
	}

	from := workflow.Status(w.Status())
	decision, err := uc.engine.Evaluate(workflow.Request{
		Kind:      workflow.KindWorkOrder,
		Status:    from,
		OwnerID:   w.OwnerID(),
		Action:    workflow.ActionAccept,
		ActorID:   cmd.ActorID,
		ActorRole: cmd.ActorRole,
	})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}
	if !decision.Allowed {
		return nil, transition.DenialError(decision)
	}

	technician, err := uc.userRepo.FindByID(ctx, cmd.TechnicianID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("technician %d not found", cmd.TechnicianID))
	}
	if technician.Role() != workflow.RoleVendorTechnician || !technician.Active() {
		return nil, errors.NewValidationError(fmt.Sprintf("user %d is not an active technician", cmd.TechnicianID))
	}
	if technician.CompanyID() != w.VendorID() {
		return nil, errors.NewValidationError(
			fmt.Sprintf("technician %d does not belong to vendor %d", cmd.TechnicianID, w.VendorID()))
	}

	if err := w.AssignTechnician(cmd.TechnicianID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	techID := cmd.TechnicianID
	if err := w.ApplyTransition(wvo.WorkOrderStatus(decision.NewStatus), decision.NewOwnerType, &techID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	entry, err := workOrderAuditEntry(w, workflow.ActionAccept, from, cmd.ActorID, workflow.NormalizeRole(cmd.ActorRole),
		map[string]any{"technician_id": cmd.TechnicianID})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.workOrderRepo.Update(txCtx, w); err != nil {
			return err
		}
		return uc.auditRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist work order acceptance", "work_order_id", cmd.WorkOrderID, "error", err)
		return nil, err
	}

	return &AcceptWorkOrderResult{
		WorkOrderID:  w.ID(),
		Status:       w.Status().String(),
		TechnicianID: cmd.TechnicianID,
		OwnerID:      w.OwnerID(),
	}, nil
}
