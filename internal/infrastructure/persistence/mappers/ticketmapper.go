package mappers

import (
	"fmt"

	"storefix/internal/domain/ticket"
	vo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	// ToModel converts a ticket domain entity to a persistence model.
	ToModel(t *ticket.Ticket) *models.TicketModel

	// ToDomain converts a ticket persistence model to a domain entity.
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

// ToModel converts a ticket domain entity to a persistence model.
func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:                       t.ID(),
		Number:                   t.Number(),
		StoreID:                  t.StoreID(),
		CreatorID:                t.CreatorID(),
		Title:                    t.Title(),
		OriginalDescription:      t.OriginalDescription(),
		Description:              t.Description(),
		Category:                 t.Category().String(),
		Urgent:                   t.Urgent(),
		Status:                   t.Status().String(),
		OwnerID:                  t.OwnerID(),
		ClarificationRequesterID: t.ClarificationRequesterID(),
		AssetID:                  t.AssetID(),
		Archived:                 t.Archived(),
		Version:                  t.Version(),
		CreatedAt:                t.CreatedAt().UnixMilli(),
		UpdatedAt:                t.UpdatedAt().UnixMilli(),
	}
}

// ToDomain converts a ticket persistence model to a domain entity.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	category, err := vo.NewCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket category (id=%d): %w", model.ID, err)
	}
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket status (id=%d): %w", model.ID, err)
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Number,
		model.StoreID,
		model.CreatorID,
		model.Title,
		model.OriginalDescription,
		model.Description,
		category,
		model.Urgent,
		status,
		model.OwnerID,
		model.ClarificationRequesterID,
		model.AssetID,
		model.Archived,
		model.Version,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
