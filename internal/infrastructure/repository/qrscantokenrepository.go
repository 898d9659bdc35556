package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"storefix/internal/domain/qr"
	"storefix/internal/infrastructure/persistence/mappers"
	"storefix/internal/infrastructure/persistence/models"
	db "storefix/internal/shared/db"
)

type QRScanTokenRepository struct {
	db     *gorm.DB
	mapper mappers.QRScanTokenMapper
}

func NewQRScanTokenRepository(db *gorm.DB) *QRScanTokenRepository {
	return &QRScanTokenRepository{
		db:     db,
		mapper: mappers.NewQRScanTokenMapper(),
	}
}

func (r *QRScanTokenRepository) Save(ctx context.Context, rec *qr.Record) error {
	model := r.mapper.ToModel(rec)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save qr scan token: %w", err)
	}

	if rec.ID() == 0 {
		if err := rec.SetID(model.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *QRScanTokenRepository) FindByToken(ctx context.Context, token string) (*qr.Record, error) {
	var model models.QRScanTokenModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("token = ?", token).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &qr.ValidationError{Reason: qr.ReasonNotFound}
		}
		return nil, fmt.Errorf("failed to find qr scan token: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// MarkUsed persists the consumed state. The conditional write keeps the
// token single-use even when two scans race outside one transaction.
func (r *QRScanTokenRepository) MarkUsed(ctx context.Context, rec *qr.Record) error {
	tx := db.GetTxFromContext(ctx, r.db)

	usedAt := rec.UsedAt()
	if usedAt == nil {
		return fmt.Errorf("qr scan token is not consumed")
	}

	result := tx.
		Model(&models.QRScanTokenModel{}).
		Where("id = ? AND used = ?", rec.ID(), false).
		Updates(map[string]interface{}{
			"used":    true,
			"used_at": usedAt.UnixMilli(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark qr scan token used: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return &qr.ValidationError{Reason: qr.ReasonAlreadyUsed}
	}

	return nil
}

func (r *QRScanTokenRepository) FindByWorkOrderID(ctx context.Context, workOrderID uint) ([]*qr.Record, error) {
	var tokenModels []models.QRScanTokenModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("work_order_id = ?", workOrderID).
		Order("id ASC").
		Find(&tokenModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find qr scan tokens: %w", err)
	}

	records := make([]*qr.Record, len(tokenModels))
	for i := range tokenModels {
		rec, err := r.mapper.ToDomain(&tokenModels[i])
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}

	return records, nil
}
