package models

import "gorm.io/datatypes"

type AuditEntryModel struct {
	ID         uint           `gorm:"primaryKey"`
	EntityKind string         `gorm:"size:20;not null;index:idx_audit_entries_entity"`
	EntityID   uint           `gorm:"not null;index:idx_audit_entries_entity"`
	Action     string         `gorm:"size:50;not null"`
	FromStatus string         `gorm:"size:50;not null"`
	ToStatus   string         `gorm:"size:50;not null"`
	ActorID    uint           `gorm:"not null;index"`
	ActorRole  string         `gorm:"size:50;not null"`
	Detail     datatypes.JSON `gorm:"type:json"`
	CreatedAt  int64          `gorm:"autoCreateTime:milli;not null;index"`
}

func (AuditEntryModel) TableName() string {
	return "audit_entries"
}
