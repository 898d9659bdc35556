package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"storefix/internal/domain/audit"
	"storefix/internal/domain/workflow"
	"storefix/internal/infrastructure/persistence/models"
)

// AuditEntryMapper converts audit entries between domain and persistence.
type AuditEntryMapper interface {
	ToModel(e *audit.Entry) (*models.AuditEntryModel, error)
	ToDomain(model *models.AuditEntryModel) (*audit.Entry, error)
}

type AuditEntryMapperImpl struct{}

func NewAuditEntryMapper() AuditEntryMapper {
	return &AuditEntryMapperImpl{}
}

func (m *AuditEntryMapperImpl) ToModel(e *audit.Entry) (*models.AuditEntryModel, error) {
	model := &models.AuditEntryModel{
		ID:         e.ID(),
		EntityKind: string(e.EntityKind()),
		EntityID:   e.EntityID(),
		Action:     string(e.Action()),
		FromStatus: string(e.FromStatus()),
		ToStatus:   string(e.ToStatus()),
		ActorID:    e.ActorID(),
		ActorRole:  string(e.ActorRole()),
		CreatedAt:  e.CreatedAt().UnixMilli(),
	}

	if len(e.Detail()) > 0 {
		detailJSON, err := json.Marshal(e.Detail())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal audit detail: %w", err)
		}
		model.Detail = datatypes.JSON(detailJSON)
	}

	return model, nil
}

func (m *AuditEntryMapperImpl) ToDomain(model *models.AuditEntryModel) (*audit.Entry, error) {
	var detail map[string]any
	if len(model.Detail) > 0 {
		if err := json.Unmarshal(model.Detail, &detail); err != nil {
			return nil, fmt.Errorf("failed to unmarshal audit detail (id=%d): %w", model.ID, err)
		}
	}

	return audit.ReconstructEntry(
		model.ID,
		workflow.EntityKind(model.EntityKind),
		model.EntityID,
		workflow.Action(model.Action),
		workflow.Status(model.FromStatus),
		workflow.Status(model.ToStatus),
		model.ActorID,
		workflow.Role(model.ActorRole),
		detail,
		millisToTime(model.CreatedAt),
	), nil
}
