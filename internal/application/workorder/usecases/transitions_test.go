package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	wvo "storefix/internal/domain/workorder/valueobjects"
	apperrors "storefix/internal/shared/errors"
)

type workOrderHarness struct {
	order  *workorder.WorkOrder
	audits *mockAuditRepository
	deps   transitioner
}

func newWorkOrderHarness(t *testing.T, status wvo.WorkOrderStatus, ownerID, technicianID *uint) *workOrderHarness {
	t.Helper()
	w := reconstructTestWorkOrder(t, 1, status, workflow.OwnerVendor, ownerID, technicianID)
	audits := &mockAuditRepository{}
	return &workOrderHarness{
		order:  w,
		audits: audits,
		deps: transitioner{
			workOrderRepo: sharedWorkOrderRepo(w),
			userRepo:      vendorUserRepo(t),
			auditRepo:     audits,
			engine:        workflow.NewEngine(),
			txManager:     &mockTxManager{},
			logger:        &mockLogger{},
		},
	}
}

func TestAcceptWorkOrderUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	newAccept := func(h *workOrderHarness) *AcceptWorkOrderUseCase {
		return NewAcceptWorkOrderUseCase(h.deps.workOrderRepo, h.deps.userRepo, h.deps.auditRepo,
			h.deps.engine, h.deps.txManager, h.deps.logger)
	}

	t.Run("service admin assigns a technician who becomes the owner", func(t *testing.T) {
		adminID := testAdminID
		h := newWorkOrderHarness(t, wvo.StatusCreated, &adminID, nil)

		result, err := newAccept(h).Execute(ctx, AcceptWorkOrderCommand{
			WorkOrderID: 1, ActorID: testAdminID, ActorRole: "V_SERVICE_ADMIN",
			TechnicianID: testTechnicianID,
		})
		require.NoError(t, err)
		assert.Equal(t, "ACCEPTED_TECHNICIAN_ASSIGNED", result.Status)
		require.NotNil(t, result.OwnerID)
		assert.Equal(t, testTechnicianID, *result.OwnerID)
		require.NotNil(t, h.order.TechnicianID())
		assert.Equal(t, testTechnicianID, *h.order.TechnicianID())
		require.Len(t, h.audits.appended, 1)
		assert.Equal(t, testTechnicianID, h.audits.appended[0].Detail()["technician_id"])
	})

	t.Run("technician from another vendor is refused", func(t *testing.T) {
		adminID := testAdminID
		h := newWorkOrderHarness(t, wvo.StatusCreated, &adminID, nil)
		h.deps.userRepo = &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
				return testUser(t, id, workflow.RoleVendorTechnician, 99), nil
			},
		}

		_, err := newAccept(h).Execute(ctx, AcceptWorkOrderCommand{
			WorkOrderID: 1, ActorID: testAdminID, ActorRole: "V_SERVICE_ADMIN",
			TechnicianID: 500,
		})
		requireErrorType(t, err, apperrors.ErrorTypeValidation)
	})

	t.Run("non-owner admin cannot accept", func(t *testing.T) {
		ammID := testAMMID
		h := newWorkOrderHarness(t, wvo.StatusCreated, &ammID, nil)

		_, err := newAccept(h).Execute(ctx, AcceptWorkOrderCommand{
			WorkOrderID: 1, ActorID: testAdminID, ActorRole: "V_SERVICE_ADMIN",
			TechnicianID: testTechnicianID,
		})
		requireErrorType(t, err, apperrors.ErrorTypeForbidden)
	})

	t.Run("missing technician ID", func(t *testing.T) {
		adminID := testAdminID
		h := newWorkOrderHarness(t, wvo.StatusCreated, &adminID, nil)

		_, err := newAccept(h).Execute(ctx, AcceptWorkOrderCommand{
			WorkOrderID: 1, ActorID: testAdminID, ActorRole: "V_SERVICE_ADMIN",
		})
		requireErrorType(t, err, apperrors.ErrorTypeValidation)
	})
}

func TestReturnResendCycle(t *testing.T) {
	ctx := context.Background()
	adminID := testAdminID
	h := newWorkOrderHarness(t, wvo.StatusCreated, &adminID, nil)

	returned, err := NewReturnWorkOrderUseCase(h.deps.workOrderRepo, h.deps.userRepo, h.deps.auditRepo,
		h.deps.engine, h.deps.txManager, h.deps.logger).
		Execute(ctx, ReturnWorkOrderCommand{
			WorkOrderID: 1, ActorID: testAdminID, ActorRole: "V_SERVICE_ADMIN",
			Comment: "wrong site address",
		})
	require.NoError(t, err)
	assert.Equal(t, "CREATED", returned.Status)
	require.NotNil(t, returned.OwnerID)
	assert.Equal(t, testAMMID, *returned.OwnerID)
	assert.Equal(t, workflow.OwnerInternal, h.order.OwnerType())

	resent, err := NewResendWorkOrderUseCase(h.deps.workOrderRepo, h.deps.userRepo, h.deps.auditRepo,
		h.deps.engine, h.deps.txManager, h.deps.logger).
		Execute(ctx, ResendWorkOrderCommand{
			WorkOrderID: 1, ActorID: testAMMID, ActorRole: "AREA_MAINTENANCE_MANAGER",
		})
	require.NoError(t, err)
	assert.Equal(t, "CREATED", resent.Status)
	require.NotNil(t, resent.OwnerID)
	assert.Equal(t, testAdminID, *resent.OwnerID)
	assert.Equal(t, workflow.OwnerVendor, h.order.OwnerType())

	require.Len(t, h.audits.appended, 2)
	assert.Equal(t, "wrong site address", h.audits.appended[0].Detail()["comment"])
}

func TestReturnForCorrectionUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("store sends an accepted order back to the service admin", func(t *testing.T) {
		techID := testTechnicianID
		h := newWorkOrderHarness(t, wvo.StatusAcceptedTechnicianAssigned, &techID, &techID)

		result, err := NewReturnForCorrectionUseCase(h.deps.workOrderRepo, h.deps.userRepo, h.deps.auditRepo,
			h.deps.engine, h.deps.txManager, h.deps.logger).
			Execute(ctx, ReturnForCorrectionCommand{
				WorkOrderID: 1, ActorID: testStoreUserID, ActorRole: "STORE",
				Comment: "technician scheduled outside opening hours",
			})
		require.NoError(t, err)
		assert.Equal(t, "ACCEPTED_TECHNICIAN_ASSIGNED", result.Status)
		require.NotNil(t, result.OwnerID)
		assert.Equal(t, testAdminID, *result.OwnerID)
	})

	t.Run("vendor side cannot use the store correction path", func(t *testing.T) {
		techID := testTechnicianID
		h := newWorkOrderHarness(t, wvo.StatusAcceptedTechnicianAssigned, &techID, &techID)

		_, err := NewReturnForCorrectionUseCase(h.deps.workOrderRepo, h.deps.userRepo, h.deps.auditRepo,
			h.deps.engine, h.deps.txManager, h.deps.logger).
			Execute(ctx, ReturnForCorrectionCommand{
				WorkOrderID: 1, ActorID: testTechnicianID, ActorRole: "V_TECHNICIAN",
			})
		requireErrorType(t, err, apperrors.ErrorTypeForbidden)
	})
}

func TestFinishServiceUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	newFinish := func(h *workOrderHarness) *FinishServiceUseCase {
		return NewFinishServiceUseCase(h.deps.workOrderRepo, h.deps.userRepo, h.deps.auditRepo,
			h.deps.engine, h.deps.txManager, h.deps.logger)
	}

	tests := []struct {
		name      string
		outcome   string
		wantState string
		wantOwner uint
	}{
		{"follow-up visit needed", ServiceOutcomeFollowUp, "FOLLOW_UP_REQUESTED", testAdminID},
		{"fresh work order needed", ServiceOutcomeNewWorkOrder, "NEW_WORK_ORDER_NEEDED", testAMMID},
		{"repair failed", ServiceOutcomeUnsuccessful, "REPAIR_UNSUCCESSFUL", testAMMID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			techID := testTechnicianID
			h := newWorkOrderHarness(t, wvo.StatusServiceInProgress, &techID, &techID)

			result, err := newFinish(h).Execute(ctx, FinishServiceCommand{
				WorkOrderID: 1, ActorID: testTechnicianID, ActorRole: "V_TECHNICIAN",
				Outcome: tt.outcome, Comment: "part unavailable",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, result.Status)
			require.NotNil(t, result.OwnerID)
			assert.Equal(t, tt.wantOwner, *result.OwnerID)
			require.Len(t, h.audits.appended, 1)
			assert.Equal(t, tt.outcome, h.audits.appended[0].Detail()["outcome"])
		})
	}

	t.Run("unknown outcome", func(t *testing.T) {
		techID := testTechnicianID
		h := newWorkOrderHarness(t, wvo.StatusServiceInProgress, &techID, &techID)

		_, err := newFinish(h).Execute(ctx, FinishServiceCommand{
			WorkOrderID: 1, ActorID: testTechnicianID, ActorRole: "V_TECHNICIAN",
			Outcome: "GAVE_UP",
		})
		requireErrorType(t, err, apperrors.ErrorTypeValidation)
	})

	t.Run("only the owning technician reports", func(t *testing.T) {
		techID := testTechnicianID
		adminID := testAdminID
		h := newWorkOrderHarness(t, wvo.StatusServiceInProgress, &adminID, &techID)

		_, err := newFinish(h).Execute(ctx, FinishServiceCommand{
			WorkOrderID: 1, ActorID: testTechnicianID, ActorRole: "V_TECHNICIAN",
			Outcome: ServiceOutcomeFollowUp,
		})
		requireErrorType(t, err, apperrors.ErrorTypeForbidden)
	})
}

func TestCostProposalFlow(t *testing.T) {
	ctx := context.Background()

	newPrepare := func(h *workOrderHarness) *PrepareCostProposalUseCase {
		return NewPrepareCostProposalUseCase(h.deps.workOrderRepo, h.deps.userRepo, h.deps.auditRepo,
			h.deps.engine, h.deps.txManager, h.deps.logger)
	}
	newDecide := func(h *workOrderHarness) *DecideCostProposalUseCase {
		return NewDecideCostProposalUseCase(h.deps.workOrderRepo, h.deps.userRepo, h.deps.auditRepo,
			h.deps.engine, h.deps.txManager, h.deps.logger)
	}
	newResubmit := func(h *workOrderHarness) *ResubmitProposalUseCase {
		return NewResubmitProposalUseCase(h.deps.workOrderRepo, h.deps.userRepo, h.deps.auditRepo,
			h.deps.engine, h.deps.txManager, h.deps.logger)
	}

	t.Run("prepare, revise, resubmit, approve", func(t *testing.T) {
		backOfficeID := testBackOfficeID
		techID := testTechnicianID
		h := newWorkOrderHarness(t, wvo.StatusServiceCompleted, &backOfficeID, &techID)

		prepared, err := newPrepare(h).Execute(ctx, PrepareCostProposalCommand{
			WorkOrderID: 1, ActorID: testBackOfficeID, ActorRole: "V_BACK_OFFICE",
		})
		require.NoError(t, err)
		assert.Equal(t, "COST_PROPOSAL_PREPARED", prepared.Status)
		require.NotNil(t, prepared.OwnerID)
		assert.Equal(t, testAMMID, *prepared.OwnerID)

		revised, err := newDecide(h).Execute(ctx, DecideCostProposalCommand{
			WorkOrderID: 1, ActorID: testAMMID, ActorRole: "AREA_MAINTENANCE_MANAGER",
			Decision: CostProposalDecisionRevise, Comment: "labor rate disputed",
		})
		require.NoError(t, err)
		assert.Equal(t, "COST_REVISION_REQUESTED", revised.Status)
		require.NotNil(t, revised.OwnerID)
		assert.Equal(t, testBackOfficeID, *revised.OwnerID)

		resubmitted, err := newResubmit(h).Execute(ctx, ResubmitProposalCommand{
			WorkOrderID: 1, ActorID: testBackOfficeID, ActorRole: "V_BACK_OFFICE",
		})
		require.NoError(t, err)
		assert.Equal(t, "COST_PROPOSAL_PREPARED", resubmitted.Status)

		approved, err := newDecide(h).Execute(ctx, DecideCostProposalCommand{
			WorkOrderID: 1, ActorID: testAMMID, ActorRole: "AREA_MAINTENANCE_MANAGER",
			Decision: CostProposalDecisionApprove,
		})
		require.NoError(t, err)
		assert.Equal(t, "COST_PROPOSAL_APPROVED", approved.Status)
		assert.False(t, h.order.IsActive())
	})

	t.Run("reject is terminal", func(t *testing.T) {
		ammID := testAMMID
		techID := testTechnicianID
		h := newWorkOrderHarness(t, wvo.StatusCostProposalPrepared, &ammID, &techID)

		result, err := newDecide(h).Execute(ctx, DecideCostProposalCommand{
			WorkOrderID: 1, ActorID: testAMMID, ActorRole: "AREA_MAINTENANCE_MANAGER",
			Decision: CostProposalDecisionReject, Comment: "duplicate billing",
		})
		require.NoError(t, err)
		assert.Equal(t, "REJECTED", result.Status)
		assert.False(t, h.order.IsActive())
	})

	t.Run("close an in-progress order without cost", func(t *testing.T) {
		techID := testTechnicianID
		h := newWorkOrderHarness(t, wvo.StatusServiceInProgress, &techID, &techID)

		result, err := newDecide(h).Execute(ctx, DecideCostProposalCommand{
			WorkOrderID: 1, ActorID: testAMMID, ActorRole: "AREA_MAINTENANCE_MANAGER",
			Decision: CostProposalDecisionClose,
		})
		require.NoError(t, err)
		assert.Equal(t, "CLOSED_WITHOUT_COST", result.Status)
	})

	t.Run("unknown decision", func(t *testing.T) {
		ammID := testAMMID
		h := newWorkOrderHarness(t, wvo.StatusCostProposalPrepared, &ammID, nil)

		_, err := newDecide(h).Execute(ctx, DecideCostProposalCommand{
			WorkOrderID: 1, ActorID: testAMMID, ActorRole: "AREA_MAINTENANCE_MANAGER",
			Decision: "MAYBE",
		})
		requireErrorType(t, err, apperrors.ErrorTypeValidation)
	})

	t.Run("approving a terminal order conflicts", func(t *testing.T) {
		h := newWorkOrderHarness(t, wvo.StatusRejected, nil, nil)

		_, err := newDecide(h).Execute(ctx, DecideCostProposalCommand{
			WorkOrderID: 1, ActorID: testAMMID, ActorRole: "AREA_MAINTENANCE_MANAGER",
			Decision: CostProposalDecisionApprove,
		})
		requireErrorType(t, err, apperrors.ErrorTypeConflict)
	})
}

func TestRejectWorkOrderUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	adminID := testAdminID
	h := newWorkOrderHarness(t, wvo.StatusCreated, &adminID, nil)

	result, err := NewRejectWorkOrderUseCase(h.deps.workOrderRepo, h.deps.userRepo, h.deps.auditRepo,
		h.deps.engine, h.deps.txManager, h.deps.logger).
		Execute(ctx, RejectWorkOrderCommand{
			WorkOrderID: 1, ActorID: testAdminID, ActorRole: "V_SERVICE_ADMIN",
			Comment: "outside service area",
		})
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", result.Status)
	assert.False(t, h.order.IsActive())
}
