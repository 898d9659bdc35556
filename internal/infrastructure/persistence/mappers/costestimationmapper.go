package mappers

import (
	"storefix/internal/domain/ticket"
	"storefix/internal/infrastructure/persistence/models"
)

// CostEstimationMapper converts cost estimations between domain and persistence.
type CostEstimationMapper interface {
	ToModel(c *ticket.CostEstimation) *models.CostEstimationModel
	ToDomain(model *models.CostEstimationModel) (*ticket.CostEstimation, error)
}

type CostEstimationMapperImpl struct{}

func NewCostEstimationMapper() CostEstimationMapper {
	return &CostEstimationMapperImpl{}
}

func (m *CostEstimationMapperImpl) ToModel(c *ticket.CostEstimation) *models.CostEstimationModel {
	return &models.CostEstimationModel{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		Amount:    c.Amount(),
		CreatorID: c.CreatorID(),
		CreatedAt: c.CreatedAt().UnixMilli(),
	}
}

func (m *CostEstimationMapperImpl) ToDomain(model *models.CostEstimationModel) (*ticket.CostEstimation, error) {
	return ticket.ReconstructCostEstimation(
		model.ID,
		model.TicketID,
		model.Amount,
		model.CreatorID,
		millisToTime(model.CreatedAt),
	)
}
