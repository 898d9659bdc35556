package migration

import (
	"storefix/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.TicketModel{},
		&models.CostEstimationModel{},
		&models.WorkOrderModel{},
		&models.ApprovalRecordModel{},
		&models.QRScanTokenModel{},
		&models.AuditEntryModel{},
	}
}
