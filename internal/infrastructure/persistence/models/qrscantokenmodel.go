package models

type QRScanTokenModel struct {
	ID                      uint   `gorm:"primaryKey"`
	WorkOrderID             uint   `gorm:"not null;index"`
	Token                   string `gorm:"uniqueIndex;size:100;not null"`
	ScanType                string `gorm:"size:20;not null"`
	DeclaredTechnicianCount int    `gorm:"not null;default:0"`
	GeneratedAt             int64  `gorm:"not null"`
	ExpiresAt               int64  `gorm:"not null;index"`
	Used                    bool   `gorm:"not null;default:false"`
	UsedAt                  *int64
	CreatedAt               int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt               int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (QRScanTokenModel) TableName() string {
	return "qr_scan_tokens"
}
