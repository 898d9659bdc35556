package models

type WorkOrderModel struct {
	ID                      uint   `gorm:"primaryKey"`
	TicketID                uint   `gorm:"not null;index"`
	VendorID                uint   `gorm:"not null;index"`
	TechnicianID            *uint  `gorm:"index"`
	Status                  string `gorm:"size:50;not null;index"`
	OwnerType               string `gorm:"size:20;not null"`
	OwnerID                 *uint  `gorm:"index"`
	DeclaredTechnicianCount int    `gorm:"not null;default:0"`
	CheckInAt               *int64
	CheckOutAt              *int64
	InvoiceBatchID          *uint `gorm:"index"`
	Version                 int   `gorm:"not null;default:1"`
	CreatedAt               int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt               int64 `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (WorkOrderModel) TableName() string {
	return "work_orders"
}
