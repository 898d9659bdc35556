package models

type ApprovalRecordModel struct {
	ID         uint   `gorm:"primaryKey"`
	TicketID   uint   `gorm:"not null;index"`
	ApproverID uint   `gorm:"not null;index"`
	Role       string `gorm:"size:50;not null"`
	Outcome    string `gorm:"size:20;not null"`
	Comment    string `gorm:"type:text"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (ApprovalRecordModel) TableName() string {
	return "approval_records"
}
