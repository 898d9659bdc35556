package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"storefix/internal/domain/approval"
	"storefix/internal/infrastructure/persistence/mappers"
	"storefix/internal/infrastructure/persistence/models"
	db "storefix/internal/shared/db"
)

type ApprovalRecordRepository struct {
	db     *gorm.DB
	mapper mappers.ApprovalRecordMapper
}

func NewApprovalRecordRepository(db *gorm.DB) *ApprovalRecordRepository {
	return &ApprovalRecordRepository{
		db:     db,
		mapper: mappers.NewApprovalRecordMapper(),
	}
}

func (r *ApprovalRecordRepository) Append(ctx context.Context, rec *approval.Record) error {
	model := r.mapper.ToModel(rec)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append approval record: %w", err)
	}

	if rec.ID() == 0 {
		if err := rec.SetID(model.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *ApprovalRecordRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*approval.Record, error) {
	var recordModels []models.ApprovalRecordModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("id ASC").
		Find(&recordModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find approval records: %w", err)
	}

	records := make([]*approval.Record, len(recordModels))
	for i := range recordModels {
		rec, err := r.mapper.ToDomain(&recordModels[i])
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}

	return records, nil
}
