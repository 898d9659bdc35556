package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/domain/workflow"
	apperrors "storefix/internal/shared/errors"
	"storefix/internal/shared/services/markdown"
)

func newClarificationUseCases(repo *mockTicketRepository, auditRepo *mockAuditRepository) (*RequestClarificationUseCase, *RespondClarificationUseCase) {
	engine := workflow.NewEngine()
	request := NewRequestClarificationUseCase(repo, auditRepo, engine, &mockTxManager{}, &mockLogger{})
	respond := NewRespondClarificationUseCase(repo, auditRepo, engine, markdown.NewMarkdownService(), &mockTxManager{}, &mockLogger{})
	return request, respond
}

func TestClarificationRouting_ResponseAlwaysReachesTheRequester(t *testing.T) {
	ctx := context.Background()
	amID := testAMID

	tk := reconstructTestTicket(t, 1, vo.StatusSubmitted, &amID, false)
	repo := sharedTicketRepo(tk)
	request, respond := newClarificationUseCases(repo, &mockAuditRepository{})
	sendForEstimation := NewSendForEstimationUseCase(repo, directoryUserRepo(t), &mockAuditRepository{}, workflow.NewEngine(), &mockTxManager{}, &mockLogger{})

	// Round 1 is raised by the area manager during initial review. After the
	// store's answer the ticket moves on to estimation, so rounds 2 through 5
	// belong to the area maintenance manager. Each response must land with
	// whoever asked in that round, not with a fixed reviewer.
	round := func(requesterID uint, requesterRole string, answer string) {
		t.Helper()

		reqResult, err := request.Execute(ctx, RequestClarificationCommand{
			TicketID: 1, ActorID: requesterID, ActorRole: requesterRole,
		})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusAwaitingCreatorResponse.String(), reqResult.Status)
		require.NotNil(t, reqResult.OwnerID)
		assert.Equal(t, testStoreUserID, *reqResult.OwnerID, "question goes to the ticket creator")

		respResult, err := respond.Execute(ctx, RespondClarificationCommand{
			TicketID: 1, ActorID: testStoreUserID, ActorRole: "STORE", UpdatedDescription: answer,
		})
		require.NoError(t, err)
		require.NotNil(t, respResult.OwnerID)
		assert.Equal(t, requesterID, *respResult.OwnerID, "answer goes back to this round's requester")
		assert.Nil(t, tk.ClarificationRequesterID(), "requester slot clears once answered")
	}

	round(testAMID, "AREA_MANAGER", "It is the compressor, round 1.")

	_, err := sendForEstimation.Execute(ctx, SendForEstimationCommand{TicketID: 1, ActorID: testAMID, ActorRole: "AREA_MANAGER"})
	require.NoError(t, err)
	require.NotNil(t, tk.OwnerID())
	require.Equal(t, testAMMID, *tk.OwnerID())

	for i := 2; i <= 5; i++ {
		round(testAMMID, "AREA_MAINTENANCE_MANAGER", fmt.Sprintf("More detail, round %d.", i))
	}

	// The maintenance manager resumes the estimation with the answers in
	// hand, without the ticket making a detour through the area manager.
	resumeResult, err := sendForEstimation.Execute(ctx, SendForEstimationCommand{
		TicketID: 1, ActorID: testAMMID, ActorRole: "AREA_MAINTENANCE_MANAGER",
	})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusCostEstimationNeeded.String(), resumeResult.Status)
	require.NotNil(t, resumeResult.OwnerID)
	assert.Equal(t, testAMMID, *resumeResult.OwnerID, "estimation stays with the manager who asked")
	assert.Equal(t, vo.StatusCostEstimationNeeded, tk.Status())
}

func TestRequestClarificationUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	amID := testAMID

	t.Run("reviewer who does not own the ticket is refused", func(t *testing.T) {
		tk := reconstructTestTicket(t, 1, vo.StatusSubmitted, &amID, false)
		request, _ := newClarificationUseCases(sharedTicketRepo(tk), &mockAuditRepository{})

		_, err := request.Execute(ctx, RequestClarificationCommand{
			TicketID: 1, ActorID: testAMMID, ActorRole: "AREA_MAINTENANCE_MANAGER",
		})
		requireErrorType(t, err, apperrors.ErrorTypeForbidden)
		assert.Nil(t, tk.ClarificationRequesterID())
	})

	t.Run("store role cannot request clarification", func(t *testing.T) {
		tk := reconstructTestTicket(t, 1, vo.StatusSubmitted, &amID, false)
		request, _ := newClarificationUseCases(sharedTicketRepo(tk), &mockAuditRepository{})

		_, err := request.Execute(ctx, RequestClarificationCommand{
			TicketID: 1, ActorID: testStoreUserID, ActorRole: "STORE",
		})
		requireErrorType(t, err, apperrors.ErrorTypeForbidden)
	})

	t.Run("clarification from a draft is a conflict", func(t *testing.T) {
		creator := testStoreUserID
		tk := reconstructTestTicket(t, 1, vo.StatusDraft, &creator, false)
		request, _ := newClarificationUseCases(sharedTicketRepo(tk), &mockAuditRepository{})

		_, err := request.Execute(ctx, RequestClarificationCommand{
			TicketID: 1, ActorID: testAMID, ActorRole: "AREA_MANAGER",
		})
		requireErrorType(t, err, apperrors.ErrorTypeConflict)
	})
}

func TestRespondClarificationUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	setupAwaiting := func(t *testing.T) (*mockTicketRepository, *RespondClarificationUseCase) {
		t.Helper()
		amID := testAMID
		tk := reconstructTestTicket(t, 1, vo.StatusSubmitted, &amID, false)
		repo := sharedTicketRepo(tk)
		request, respond := newClarificationUseCases(repo, &mockAuditRepository{})
		_, err := request.Execute(ctx, RequestClarificationCommand{
			TicketID: 1, ActorID: testAMID, ActorRole: "AREA_MANAGER",
		})
		require.NoError(t, err)
		return repo, respond
	}

	t.Run("response with markup amends the working description only", func(t *testing.T) {
		repo, respond := setupAwaiting(t)
		tk, _ := repo.FindByID(ctx, 1)
		original := tk.OriginalDescription()

		_, err := respond.Execute(ctx, RespondClarificationCommand{
			TicketID: 1, ActorID: testStoreUserID, ActorRole: "STORE",
			UpdatedDescription: "Compressor model <script>alert(1)</script> XJ-900 rattles on startup.",
		})
		require.NoError(t, err)

		assert.NotContains(t, tk.Description(), "<script>")
		assert.Contains(t, tk.Description(), "XJ-900")
		assert.Equal(t, original, tk.OriginalDescription())
	})

	t.Run("response without an update keeps the description", func(t *testing.T) {
		repo, respond := setupAwaiting(t)
		tk, _ := repo.FindByID(ctx, 1)
		before := tk.Description()

		result, err := respond.Execute(ctx, RespondClarificationCommand{
			TicketID: 1, ActorID: testStoreUserID, ActorRole: "STORE",
		})
		require.NoError(t, err)
		assert.Equal(t, before, tk.Description())
		assert.Equal(t, vo.StatusUpdatedSubmitted.String(), result.Status)
	})

	t.Run("reviewer cannot answer on the store's behalf", func(t *testing.T) {
		_, respond := setupAwaiting(t)

		_, err := respond.Execute(ctx, RespondClarificationCommand{
			TicketID: 1, ActorID: testAMID, ActorRole: "AREA_MANAGER",
		})
		requireErrorType(t, err, apperrors.ErrorTypeForbidden)
	})
}
