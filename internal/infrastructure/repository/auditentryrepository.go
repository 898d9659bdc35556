package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"storefix/internal/domain/audit"
	"storefix/internal/domain/workflow"
	"storefix/internal/infrastructure/persistence/mappers"
	"storefix/internal/infrastructure/persistence/models"
	db "storefix/internal/shared/db"
	"storefix/internal/shared/mapper"
)

type AuditEntryRepository struct {
	db     *gorm.DB
	mapper mappers.AuditEntryMapper
}

func NewAuditEntryRepository(db *gorm.DB) *AuditEntryRepository {
	return &AuditEntryRepository{
		db:     db,
		mapper: mappers.NewAuditEntryMapper(),
	}
}

func (r *AuditEntryRepository) Append(ctx context.Context, entry *audit.Entry) error {
	model, err := r.mapper.ToModel(entry)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	if entry.ID() == 0 {
		if err := entry.SetID(model.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *AuditEntryRepository) FindByEntity(ctx context.Context, kind workflow.EntityKind, entityID uint) ([]*audit.Entry, error) {
	var entryModels []models.AuditEntryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("entity_kind = ? AND entity_id = ?", string(kind), entityID).
		Order("id ASC").
		Find(&entryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find audit entries: %w", err)
	}

	return mapper.MapSliceWithError(entryModels, func(m models.AuditEntryModel) (*audit.Entry, error) {
		return r.mapper.ToDomain(&m)
	})
}
