package mappers

import (
	"storefix/internal/domain/approval"
	"storefix/internal/domain/workflow"
	"storefix/internal/infrastructure/persistence/models"
)

// ApprovalRecordMapper converts approval records between domain and persistence.
type ApprovalRecordMapper interface {
	ToModel(r *approval.Record) *models.ApprovalRecordModel
	ToDomain(model *models.ApprovalRecordModel) (*approval.Record, error)
}

type ApprovalRecordMapperImpl struct{}

func NewApprovalRecordMapper() ApprovalRecordMapper {
	return &ApprovalRecordMapperImpl{}
}

func (m *ApprovalRecordMapperImpl) ToModel(r *approval.Record) *models.ApprovalRecordModel {
	return &models.ApprovalRecordModel{
		ID:         r.ID(),
		TicketID:   r.TicketID(),
		ApproverID: r.ApproverID(),
		Role:       string(r.Role()),
		Outcome:    string(r.Outcome()),
		Comment:    r.Comment(),
		CreatedAt:  r.CreatedAt().UnixMilli(),
	}
}

func (m *ApprovalRecordMapperImpl) ToDomain(model *models.ApprovalRecordModel) (*approval.Record, error) {
	return approval.ReconstructRecord(
		model.ID,
		model.TicketID,
		model.ApproverID,
		workflow.Role(model.Role),
		approval.RecordOutcome(model.Outcome),
		model.Comment,
		millisToTime(model.CreatedAt),
	)
}
