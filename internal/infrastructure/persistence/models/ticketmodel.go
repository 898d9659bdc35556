package models

type TicketModel struct {
	ID                       uint   `gorm:"primaryKey"`
	Number                   string `gorm:"uniqueIndex;size:50;not null"`
	StoreID                  uint   `gorm:"not null;index"`
	CreatorID                uint   `gorm:"not null;index"`
	Title                    string `gorm:"size:200;not null"`
	OriginalDescription      string `gorm:"type:text;not null"`
	Description              string `gorm:"type:text;not null"`
	Category                 string `gorm:"size:50;not null;index"`
	Urgent                   bool   `gorm:"not null;default:false;index"`
	Status                   string `gorm:"size:50;not null;index"`
	OwnerID                  *uint  `gorm:"index"`
	ClarificationRequesterID *uint
	AssetID                  *uint `gorm:"index"`
	Archived                 bool  `gorm:"not null;default:false;index"`
	Version                  int   `gorm:"not null;default:1"`
	CreatedAt                int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt                int64 `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}
