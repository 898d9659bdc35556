package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"storefix/internal/application/common/transition"
	"storefix/internal/domain/audit"
	"storefix/internal/domain/qr"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	wvo "storefix/internal/domain/workorder/valueobjects"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
	"storefix/internal/shared/utils/logutil"
)

type ScanQRCommand struct {
	WorkOrderID uint
	Token       string
	ActorID     uint
	ActorRole   string
}

type ScanQRResult struct {
	WorkOrderID     uint
	ScanType        string
	TechnicianCount int
	Status          string
	OwnerID         *uint
}

// ScanQRUseCase consumes a presence token and applies the visit boundary it
// gates. The token flip, the work order transition and the audit entry
// commit in one transaction, so a token can never be spent without its
// check-in or check-out taking effect.
type ScanQRUseCase struct {
	workOrderRepo workorder.Repository
	userRepo      user.Repository
	qrRepo        qr.Repository
	auditRepo     audit.Repository
	engine        *workflow.Engine
	txManager     TransactionManager
	logger        logger.Interface
}

func NewScanQRUseCase(
	workOrderRepo workorder.Repository,
	userRepo user.Repository,
	qrRepo qr.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *ScanQRUseCase {
	return &ScanQRUseCase{
		workOrderRepo: workOrderRepo,
		userRepo:      userRepo,
		qrRepo:        qrRepo,
		auditRepo:     auditRepo,
		engine:        engine,
		txManager:     txManager,
		logger:        logger,
	}
}

func (uc *ScanQRUseCase) Execute(ctx context.Context, cmd ScanQRCommand) (*ScanQRResult, error) {
	uc.logger.Infow("executing scan qr use case", "work_order_id", cmd.WorkOrderID)

	if cmd.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}
	if strings.TrimSpace(cmd.Token) == "" {
		return nil, errors.NewValidationError("token is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}

	record, err := uc.qrRepo.FindByToken(ctx, cmd.Token)
	if err != nil {
		return nil, qrFailure(err)
	}

	w, err := uc.workOrderRepo.FindByID(ctx, cmd.WorkOrderID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("work order %d not found", cmd.WorkOrderID))
	}

	now := time.Now()
	if err := record.Consume(cmd.WorkOrderID, now); err != nil {
		return nil, qrFailure(err)
	}

	var action workflow.Action
	switch record.ScanType() {
	case qr.ScanCheckIn:
		action = workflow.ActionCheckIn
	case qr.ScanCheckOut:
		action = workflow.ActionCheckOut
	default:
		return nil, errors.NewInternalError(fmt.Sprintf("unknown scan type on record %d", record.ID()))
	}

	from := workflow.Status(w.Status())
	decision, err := uc.engine.Evaluate(workflow.Request{
		Kind:      workflow.KindWorkOrder,
		Status:    from,
		OwnerID:   w.OwnerID(),
		Action:    action,
		ActorID:   cmd.ActorID,
		ActorRole: cmd.ActorRole,
	})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}
	if !decision.Allowed {
		return nil, transition.DenialError(decision)
	}

	newOwner, err := resolveOwner(ctx, uc.userRepo, w, decision, w.OwnerID())
	if err != nil {
		return nil, err
	}
	if err := w.ApplyTransition(wvo.WorkOrderStatus(decision.NewStatus), decision.NewOwnerType, newOwner); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	switch record.ScanType() {
	case qr.ScanCheckIn:
		w.MarkCheckedIn(now)
		if err := w.DeclareTechnicianCount(record.DeclaredTechnicianCount()); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	case qr.ScanCheckOut:
		w.MarkCheckedOut(now)
	}

	detail := map[string]any{"scan_type": string(record.ScanType())}
	if record.ScanType() == qr.ScanCheckIn {
		detail["technician_count"] = record.DeclaredTechnicianCount()
	}
	entry, err := workOrderAuditEntry(w, action, from,
		cmd.ActorID, workflow.NormalizeRole(cmd.ActorRole), detail)
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.qrRepo.MarkUsed(txCtx, record); err != nil {
			return err
		}
		if err := uc.workOrderRepo.Update(txCtx, w); err != nil {
			return err
		}
		return uc.auditRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist qr scan", "work_order_id", cmd.WorkOrderID, "error", err)
		return nil, err
	}

	uc.logger.Infow("qr token consumed",
		"work_order_id", w.ID(), "scan_type", record.ScanType(),
		"token", logutil.TruncateForLog(record.Token(), 8),
		"new_status", w.Status())

	return &ScanQRResult{
		WorkOrderID:     w.ID(),
		ScanType:        string(record.ScanType()),
		TechnicianCount: w.DeclaredTechnicianCount(),
		Status:          w.Status().String(),
		OwnerID:         w.OwnerID(),
	}, nil
}

// qrFailure maps a token refusal to the transport error class: an unknown
// token is a not-found, everything else conflicts with the token's state.
func qrFailure(err error) error {
	var verr *qr.ValidationError
	if stderrors.As(err, &verr) {
		if verr.Reason == qr.ReasonNotFound {
			return errors.NewNotFoundError("qr token not found")
		}
		return errors.NewConflictError(verr.Error())
	}
	return errors.NewInternalError(err.Error())
}
