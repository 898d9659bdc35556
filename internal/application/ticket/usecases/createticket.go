package usecases

import (
	"context"
	"time"

	"storefix/internal/domain/ticket"
	vo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
	"storefix/internal/shared/services/markdown"
)

type CreateTicketCommand struct {
	StoreID     uint
	CreatorID   uint
	Title       string
	Description string
	Category    string
	Urgent      bool
	AssetID     *uint
}

type CreateTicketResult struct {
	TicketID  uint
	Number    string
	Status    string
	OwnerID   *uint
	CreatedAt time.Time
}

// CreateTicketUseCase creates a ticket in DRAFT owned by its creator. The
// urgent flag is fixed here and never changes afterwards.
type CreateTicketUseCase struct {
	ticketRepo ticket.Repository
	numberGen  ticket.NumberGenerator
	markdown   markdown.MarkdownService
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	numberGen ticket.NumberGenerator,
	markdownSvc markdown.MarkdownService,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		numberGen:  numberGen,
		markdown:   markdownSvc,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "store_id", cmd.StoreID, "creator_id", cmd.CreatorID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid create ticket command", "error", err)
		return nil, err
	}

	title := uc.markdown.SanitizePlain(cmd.Title)
	description := uc.markdown.SanitizePlain(cmd.Description)

	newTicket, err := ticket.NewTicket(
		cmd.StoreID,
		cmd.CreatorID,
		title,
		description,
		vo.Category(cmd.Category),
		cmd.Urgent,
		cmd.AssetID,
	)
	if err != nil {
		uc.logger.Errorw("failed to create ticket entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	number, err := uc.numberGen.Generate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate ticket number", "error", err)
		return nil, errors.NewInternalError("failed to generate ticket number")
	}
	if err := newTicket.SetNumber(number); err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	if err := uc.ticketRepo.Save(ctx, newTicket); err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID(), "number", newTicket.Number())

	return &CreateTicketResult{
		TicketID:  newTicket.ID(),
		Number:    newTicket.Number(),
		Status:    newTicket.Status().String(),
		OwnerID:   newTicket.OwnerID(),
		CreatedAt: newTicket.CreatedAt(),
	}, nil
}

func (uc *CreateTicketUseCase) validateCommand(cmd CreateTicketCommand) error {
	if cmd.StoreID == 0 {
		return errors.NewValidationError("store ID is required")
	}
	if cmd.CreatorID == 0 {
		return errors.NewValidationError("creator ID is required")
	}
	if len(cmd.Title) == 0 {
		return errors.NewValidationError("title is required")
	}
	if len(cmd.Title) > 200 {
		return errors.NewValidationError("title exceeds maximum length of 200 characters")
	}
	if len(cmd.Description) == 0 {
		return errors.NewValidationError("description is required")
	}
	if len(cmd.Description) > 5000 {
		return errors.NewValidationError("description exceeds maximum length of 5000 characters")
	}
	if !vo.Category(cmd.Category).IsValid() {
		return errors.NewValidationError("invalid category")
	}
	return nil
}
