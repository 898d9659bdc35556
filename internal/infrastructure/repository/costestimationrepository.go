package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"storefix/internal/domain/ticket"
	"storefix/internal/infrastructure/persistence/mappers"
	"storefix/internal/infrastructure/persistence/models"
	db "storefix/internal/shared/db"
)

type CostEstimationRepository struct {
	db     *gorm.DB
	mapper mappers.CostEstimationMapper
}

func NewCostEstimationRepository(db *gorm.DB) *CostEstimationRepository {
	return &CostEstimationRepository{
		db:     db,
		mapper: mappers.NewCostEstimationMapper(),
	}
}

func (r *CostEstimationRepository) Save(ctx context.Context, e *ticket.CostEstimation) error {
	model := r.mapper.ToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save cost estimation: %w", err)
	}

	if e.ID() == 0 {
		if err := e.SetID(model.ID); err != nil {
			return err
		}
	}

	return nil
}

// FindByTicketID returns the latest estimation for the ticket. A ticket
// re-enters estimation after a RETURN, so newer rows supersede older ones.
func (r *CostEstimationRepository) FindByTicketID(ctx context.Context, ticketID uint) (*ticket.CostEstimation, error) {
	var model models.CostEstimationModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("id DESC").
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("cost estimation not found")
		}
		return nil, fmt.Errorf("failed to find cost estimation: %w", err)
	}

	return r.mapper.ToDomain(&model)
}
