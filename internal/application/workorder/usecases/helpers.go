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

// resolveOwner maps an allowed work order decision to the next owner id.
// Vendor roles resolve within the order's vendor company; the assigned
// technician takes precedence over a directory lookup when the rule targets
// the technician role, so a returned or rescheduled order always lands with
// the technician who holds it.
func resolveOwner(
	ctx context.Context,
	users user.Repository,
	w *workorder.WorkOrder,
	d workflow.Decision,
	fallback *uint,
) (*uint, error) {
	if d.NewOwnerRole == workflow.RoleVendorTechnician && w.TechnicianID() != nil {
		id := *w.TechnicianID()
		return &id, nil
	}
	return transition.ResolveOwner(ctx, users, d, w.VendorID(), fallback)
}

// transitioner is the shared plumbing of the single-entity work order
// transitions: evaluate, resolve the next owner, apply, persist with the
// audit entry in one transaction.
type transitioner struct {
	workOrderRepo workorder.Repository
	userRepo      user.Repository
	auditRepo     audit.Repository
	engine        *workflow.Engine
	txManager     TransactionManager
	logger        logger.Interface
}

func (tr *transitioner) apply(
	ctx context.Context,
	workOrderID uint,
	action workflow.Action,
	actorID uint,
	actorRole string,
	detail map[string]any,
) (*workorder.WorkOrder, error) {
	if workOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}
	if actorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}

	w, err := tr.workOrderRepo.FindByID(ctx, workOrderID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("work order %d not found", workOrderID))
	}

	from := workflow.Status(w.Status())
	decision, err := tr.engine.Evaluate(workflow.Request{
		Kind:      workflow.KindWorkOrder,
		Status:    from,
		OwnerID:   w.OwnerID(),
		Action:    action,
		ActorID:   actorID,
		ActorRole: actorRole,
	})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}
	if !decision.Allowed {
		tr.logger.Infow("work order transition denied",
			"work_order_id", workOrderID, "action", action, "code", decision.Code)
		return nil, transition.DenialError(decision)
	}

	newOwner, err := resolveOwner(ctx, tr.userRepo, w, decision, w.OwnerID())
	if err != nil {
		return nil, err
	}
	ownerType := decision.NewOwnerType
	if ownerType == "" {
		ownerType = w.OwnerType()
	}
	if err := w.ApplyTransition(wvo.WorkOrderStatus(decision.NewStatus), ownerType, newOwner); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	entry, err := workOrderAuditEntry(w, action, from, actorID, workflow.NormalizeRole(actorRole), detail)
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	err = tr.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := tr.workOrderRepo.Update(txCtx, w); err != nil {
			return err
		}
		return tr.auditRepo.Append(txCtx, entry)
	})
	if err != nil {
		tr.logger.Errorw("failed to persist work order transition",
			"work_order_id", workOrderID, "action", action, "error", err)
		return nil, err
	}

	return w, nil
}

func workOrderAuditEntry(
	w *workorder.WorkOrder,
	action workflow.Action,
	from workflow.Status,
	actorID uint,
	actorRole workflow.Role,
	detail map[string]any,
) (*audit.Entry, error) {
	return audit.NewEntry(
		workflow.KindWorkOrder,
		w.ID(),
		action,
		from,
		workflow.Status(w.Status()),
		actorID,
		actorRole,
		detail,
	)
}
