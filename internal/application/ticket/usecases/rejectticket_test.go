package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefix/internal/domain/approval"
	vo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/domain/workflow"
	apperrors "storefix/internal/shared/errors"
)

func TestRejectTicketUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	amID := testAMID

	newUseCase := func(repo *mockTicketRepository, records *mockRecordRepository) *RejectTicketUseCase {
		return NewRejectTicketUseCase(repo, records, &mockAuditRepository{},
			workflow.NewEngine(), &mockTxManager{}, &mockLogger{})
	}

	t.Run("reviewer rejection during review leaves no approval record", func(t *testing.T) {
		tk := reconstructTestTicket(t, 1, vo.StatusSubmitted, &amID, false)
		records := &mockRecordRepository{}
		uc := newUseCase(sharedTicketRepo(tk), records)

		result, err := uc.Execute(ctx, RejectTicketCommand{
			TicketID: 1, ActorID: testAMID, ActorRole: "AREA_MANAGER", Comment: "Duplicate of an open ticket.",
		})
		require.NoError(t, err)

		assert.Equal(t, vo.StatusRejected.String(), result.Status)
		assert.Nil(t, tk.OwnerID())
		assert.Empty(t, records.appended)
	})

	t.Run("rejection during approval appends a rejected record", func(t *testing.T) {
		tk := reconstructTestTicket(t, 1, vo.StatusCostEstimationApprovalNeeded, &amID, false)
		records := &mockRecordRepository{}
		uc := newUseCase(sharedTicketRepo(tk), records)

		result, err := uc.Execute(ctx, RejectTicketCommand{
			TicketID: 1, ActorID: testAMID, ActorRole: "AREA_MANAGER", Comment: "Too expensive.",
		})
		require.NoError(t, err)

		assert.Equal(t, vo.StatusRejected.String(), result.Status)
		require.Len(t, records.appended, 1)
		record := records.appended[0]
		assert.Equal(t, approval.OutcomeRejected, record.Outcome())
		assert.Equal(t, "Too expensive.", record.Comment())
	})

	t.Run("store user cannot reject", func(t *testing.T) {
		tk := reconstructTestTicket(t, 1, vo.StatusSubmitted, &amID, false)
		uc := newUseCase(sharedTicketRepo(tk), &mockRecordRepository{})

		_, err := uc.Execute(ctx, RejectTicketCommand{TicketID: 1, ActorID: testStoreUserID, ActorRole: "STORE"})
		requireErrorType(t, err, apperrors.ErrorTypeForbidden)
	})
}

func TestWithdrawTicketUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	creator := testStoreUserID

	newUseCase := func(repo *mockTicketRepository) *WithdrawTicketUseCase {
		return NewWithdrawTicketUseCase(repo, &mockAuditRepository{},
			workflow.NewEngine(), &mockTxManager{}, &mockLogger{})
	}

	t.Run("creator withdraws while asked for clarification", func(t *testing.T) {
		tk := reconstructTestTicket(t, 1, vo.StatusAwaitingCreatorResponse, &creator, false)
		uc := newUseCase(sharedTicketRepo(tk))

		result, err := uc.Execute(ctx, WithdrawTicketCommand{TicketID: 1, ActorID: creator, ActorRole: "STORE"})
		require.NoError(t, err)

		assert.Equal(t, vo.StatusWithdrawn.String(), result.Status)
		assert.Nil(t, tk.OwnerID())
	})

	t.Run("withdrawal outside a clarification round is a conflict", func(t *testing.T) {
		amID := testAMID
		tk := reconstructTestTicket(t, 1, vo.StatusSubmitted, &amID, false)
		uc := newUseCase(sharedTicketRepo(tk))

		_, err := uc.Execute(ctx, WithdrawTicketCommand{TicketID: 1, ActorID: creator, ActorRole: "STORE"})
		requireErrorType(t, err, apperrors.ErrorTypeConflict)
	})
}
