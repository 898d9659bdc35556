package usecases

import (
	"context"
	"time"

	"storefix/internal/domain/ticket"
	vo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
	"storefix/internal/shared/mapper"
	"storefix/internal/shared/query"
)

type ListTicketsCommand struct {
	Status   string
	StoreID  *uint
	OwnerID  *uint
	Urgent   *bool
	Archived *bool

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type TicketSummary struct {
	TicketID  uint
	Number    string
	StoreID   uint
	Title     string
	Category  string
	Urgent    bool
	Status    string
	OwnerID   *uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ListTicketsResult struct {
	Tickets []TicketSummary
	Total   int64
}

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.Repository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, cmd ListTicketsCommand) (*ListTicketsResult, error) {
	filter := ticket.Filter{
		BaseFilter: query.NewBaseFilter(
			query.WithPage(cmd.Page, cmd.PageSize),
			query.WithSort(cmd.SortBy, cmd.SortOrder),
		),
		StoreID:  cmd.StoreID,
		OwnerID:  cmd.OwnerID,
		Urgent:   cmd.Urgent,
		Archived: cmd.Archived,
	}

	if len(cmd.Status) > 0 {
		status, err := vo.NewTicketStatus(cmd.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	summaries := mapper.MapSlice(tickets, func(t *ticket.Ticket) TicketSummary {
		return TicketSummary{
			TicketID:  t.ID(),
			Number:    t.Number(),
			StoreID:   t.StoreID(),
			Title:     t.Title(),
			Category:  t.Category().String(),
			Urgent:    t.Urgent(),
			Status:    t.Status().String(),
			OwnerID:   t.OwnerID(),
			CreatedAt: t.CreatedAt(),
			UpdatedAt: t.UpdatedAt(),
		}
	})

	return &ListTicketsResult{Tickets: summaries, Total: total}, nil
}
