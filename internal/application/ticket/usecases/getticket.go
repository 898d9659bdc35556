package usecases

import (
	"context"
	"fmt"
	"time"

	"storefix/internal/domain/approval"
	"storefix/internal/domain/audit"
	"storefix/internal/domain/ticket"
	"storefix/internal/domain/workflow"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
	"storefix/internal/shared/services/markdown"
)

type GetTicketCommand struct {
	TicketID uint
}

type ApprovalRecordView struct {
	ApproverID uint
	Role       string
	Outcome    string
	Comment    string
	CreatedAt  time.Time
}

type AuditEntryView struct {
	Action     string
	FromStatus string
	ToStatus   string
	ActorID    uint
	ActorRole  string
	CreatedAt  time.Time
}

type GetTicketResult struct {
	TicketID            uint
	Number              string
	StoreID             uint
	CreatorID           uint
	Title               string
	OriginalDescription string
	Description         string
	// DescriptionHTML is the working description rendered as sanitized
	// markdown for detail views.
	DescriptionHTML  string
	Category         string
	Urgent           bool
	Status           string
	OwnerID          *uint
	AssetID          *uint
	Archived         bool
	EstimationAmount *int64
	ApprovalRecords  []ApprovalRecordView
	History          []AuditEntryView
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type GetTicketUseCase struct {
	ticketRepo     ticket.Repository
	estimationRepo ticket.CostEstimationRepository
	recordRepo     approval.RecordRepository
	auditRepo      audit.Repository
	markdown       markdown.MarkdownService
	logger         logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.Repository,
	estimationRepo ticket.CostEstimationRepository,
	recordRepo approval.RecordRepository,
	auditRepo audit.Repository,
	markdownSvc markdown.MarkdownService,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		estimationRepo: estimationRepo,
		recordRepo:     recordRepo,
		auditRepo:      auditRepo,
		markdown:       markdownSvc,
		logger:         logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, cmd GetTicketCommand) (*GetTicketResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	rendered, err := uc.markdown.ToHTMLSanitized(t.Description())
	if err != nil {
		uc.logger.Warnw("failed to render ticket description", "ticket_id", t.ID(), "error", err)
		rendered = ""
	}

	result := &GetTicketResult{
		TicketID:            t.ID(),
		Number:              t.Number(),
		StoreID:             t.StoreID(),
		CreatorID:           t.CreatorID(),
		Title:               t.Title(),
		OriginalDescription: t.OriginalDescription(),
		Description:         t.Description(),
		DescriptionHTML:     rendered,
		Category:            t.Category().String(),
		Urgent:              t.Urgent(),
		Status:              t.Status().String(),
		OwnerID:             t.OwnerID(),
		AssetID:             t.AssetID(),
		Archived:            t.Archived(),
		CreatedAt:           t.CreatedAt(),
		UpdatedAt:           t.UpdatedAt(),
	}

	if estimation, err := uc.estimationRepo.FindByTicketID(ctx, t.ID()); err == nil && estimation != nil {
		amount := estimation.Amount()
		result.EstimationAmount = &amount
	}

	records, err := uc.recordRepo.FindByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Warnw("failed to load approval records", "ticket_id", t.ID(), "error", err)
	}
	for _, r := range records {
		result.ApprovalRecords = append(result.ApprovalRecords, ApprovalRecordView{
			ApproverID: r.ApproverID(),
			Role:       r.Role().String(),
			Outcome:    string(r.Outcome()),
			Comment:    r.Comment(),
			CreatedAt:  r.CreatedAt(),
		})
	}

	entries, err := uc.auditRepo.FindByEntity(ctx, workflow.KindTicket, t.ID())
	if err != nil {
		uc.logger.Warnw("failed to load audit history", "ticket_id", t.ID(), "error", err)
	}
	for _, e := range entries {
		result.History = append(result.History, AuditEntryView{
			Action:     e.Action().String(),
			FromStatus: e.FromStatus().String(),
			ToStatus:   e.ToStatus().String(),
			ActorID:    e.ActorID(),
			ActorRole:  e.ActorRole().String(),
			CreatedAt:  e.CreatedAt(),
		})
	}

	return result, nil
}
