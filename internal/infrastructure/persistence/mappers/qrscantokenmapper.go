package mappers

import (
	"storefix/internal/domain/qr"
	"storefix/internal/infrastructure/persistence/models"
)

// QRScanTokenMapper converts QR scan records between domain and persistence.
type QRScanTokenMapper interface {
	ToModel(r *qr.Record) *models.QRScanTokenModel
	ToDomain(model *models.QRScanTokenModel) (*qr.Record, error)
}

type QRScanTokenMapperImpl struct{}

func NewQRScanTokenMapper() QRScanTokenMapper {
	return &QRScanTokenMapperImpl{}
}

func (m *QRScanTokenMapperImpl) ToModel(r *qr.Record) *models.QRScanTokenModel {
	return &models.QRScanTokenModel{
		ID:                      r.ID(),
		WorkOrderID:             r.WorkOrderID(),
		Token:                   r.Token(),
		ScanType:                string(r.ScanType()),
		DeclaredTechnicianCount: r.DeclaredTechnicianCount(),
		GeneratedAt:             r.GeneratedAt().UnixMilli(),
		ExpiresAt:               r.ExpiresAt().UnixMilli(),
		Used:                    r.Used(),
		UsedAt:                  timePtrToMillisPtr(r.UsedAt()),
	}
}

func (m *QRScanTokenMapperImpl) ToDomain(model *models.QRScanTokenModel) (*qr.Record, error) {
	return qr.ReconstructRecord(
		model.ID,
		model.WorkOrderID,
		model.Token,
		qr.ScanType(model.ScanType),
		model.DeclaredTechnicianCount,
		millisToTime(model.GeneratedAt),
		millisToTime(model.ExpiresAt),
		model.Used,
		millisPtrToTimePtr(model.UsedAt),
	)
}
