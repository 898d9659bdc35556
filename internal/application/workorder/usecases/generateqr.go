package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"storefix/internal/application/common/transition"
	"storefix/internal/domain/audit"
	"storefix/internal/domain/qr"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	wvo "storefix/internal/domain/workorder/valueobjects"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/id"
	"storefix/internal/shared/logger"
	"storefix/internal/shared/utils/logutil"
)

const qrImageSize = 256

type GenerateQRCommand struct {
	WorkOrderID uint
	ActorID     uint
	ActorRole   string
	ScanType    string
	// DeclaredTechnicianCount announces how many technicians will show up;
	// only meaningful for check-in tokens.
	DeclaredTechnicianCount int
}

type GenerateQRResult struct {
	WorkOrderID uint
	Token       string
	ScanType    string
	ExpiresAt   time.Time
	// PNG is the rendered QR image for display at the store.
	PNG     []byte
	Status  string
	OwnerID *uint
}

// GenerateQRUseCase issues the short-lived single-use token a technician
// scans at the store. A follow-up order is first rescheduled back into the
// accepted status through the engine, and an order sitting with the vendor
// side is handed back to its technician, so the same check-in flow applies
// uniformly. The expiry window is fixed at construction from config.
type GenerateQRUseCase struct {
	workOrderRepo workorder.Repository
	userRepo      user.Repository
	qrRepo        qr.Repository
	auditRepo     audit.Repository
	engine        *workflow.Engine
	txManager     TransactionManager
	tokenTTL      time.Duration
	logger        logger.Interface
}

func NewGenerateQRUseCase(
	workOrderRepo workorder.Repository,
	userRepo user.Repository,
	qrRepo qr.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	tokenTTL time.Duration,
	logger logger.Interface,
) *GenerateQRUseCase {
	return &GenerateQRUseCase{
		workOrderRepo: workOrderRepo,
		userRepo:      userRepo,
		qrRepo:        qrRepo,
		auditRepo:     auditRepo,
		engine:        engine,
		txManager:     txManager,
		tokenTTL:      tokenTTL,
		logger:        logger,
	}
}

func (uc *GenerateQRUseCase) Execute(ctx context.Context, cmd GenerateQRCommand) (*GenerateQRResult, error) {
	uc.logger.Infow("executing generate qr use case",
		"work_order_id", cmd.WorkOrderID, "scan_type", cmd.ScanType)

	if cmd.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}
	if workflow.NormalizeRole(cmd.ActorRole) != workflow.RoleStore {
		return nil, errors.NewForbiddenError("only the store may generate scan tokens")
	}

	scanType := qr.ScanType(strings.ToUpper(strings.TrimSpace(cmd.ScanType)))
	if !scanType.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid scan type: %s", cmd.ScanType))
	}

	w, err := uc.workOrderRepo.FindByID(ctx, cmd.WorkOrderID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("work order %d not found", cmd.WorkOrderID))
	}
	if w.TechnicianID() == nil {
		return nil, errors.NewConflictError(fmt.Sprintf("work order %d has no assigned technician", w.ID()))
	}

	technician, err := uc.userRepo.FindByID(ctx, *w.TechnicianID())
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("technician %d not resolved", *w.TechnicianID()))
	}

	var rescheduleEntry *audit.Entry
	if w.Status() == wvo.StatusFollowUpRequested {
		from := workflow.Status(w.Status())
		decision, err := uc.engine.Evaluate(workflow.Request{
			Kind:      workflow.KindWorkOrder,
			Status:    from,
			OwnerID:   w.OwnerID(),
			Action:    workflow.ActionReschedule,
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

		rescheduleEntry, err = workOrderAuditEntry(w, workflow.ActionReschedule, from,
			cmd.ActorID, workflow.NormalizeRole(cmd.ActorRole), nil)
		if err != nil {
			return nil, errors.NewInternalError(err.Error())
		}
	} else if scanType == qr.ScanCheckIn && (w.OwnerID() == nil || *w.OwnerID() != technician.ID()) {
		// A returned or store-held order goes back to its technician before
		// the visit starts.
		if err := w.ReassignOwner(workflow.OwnerVendor, technician.ID()); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := qr.CanGenerate(w, technician, scanType, cmd.DeclaredTechnicianCount); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if scanType == qr.ScanCheckIn {
		if err := w.DeclareTechnicianCount(cmd.DeclaredTechnicianCount); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	token, err := id.NewQRToken()
	if err != nil {
		return nil, errors.NewInternalError("failed to generate token")
	}

	record, err := qr.NewRecord(w.ID(), token, scanType, cmd.DeclaredTechnicianCount, time.Now(), uc.tokenTTL)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	png, err := qrcode.Encode(token, qrcode.Medium, qrImageSize)
	if err != nil {
		uc.logger.Errorw("failed to render qr image", "work_order_id", w.ID(), "error", err)
		return nil, errors.NewInternalError("failed to render QR image")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.qrRepo.Save(txCtx, record); err != nil {
			return err
		}
		if err := uc.workOrderRepo.Update(txCtx, w); err != nil {
			return err
		}
		if rescheduleEntry != nil {
			return uc.auditRepo.Append(txCtx, rescheduleEntry)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to persist qr token", "work_order_id", cmd.WorkOrderID, "error", err)
		return nil, err
	}

	uc.logger.Infow("qr token generated",
		"work_order_id", w.ID(), "scan_type", scanType,
		"token", logutil.TruncateForLog(record.Token(), 8),
		"expires_at", record.ExpiresAt())

	return &GenerateQRResult{
		WorkOrderID: w.ID(),
		Token:       record.Token(),
		ScanType:    string(record.ScanType()),
		ExpiresAt:   record.ExpiresAt(),
		PNG:         png,
		Status:      w.Status().String(),
		OwnerID:     w.OwnerID(),
	}, nil
}
