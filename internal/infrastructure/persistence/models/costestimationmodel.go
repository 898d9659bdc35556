package models

type CostEstimationModel struct {
	ID        uint  `gorm:"primaryKey"`
	TicketID  uint  `gorm:"not null;index"`
	Amount    int64 `gorm:"not null"`
	CreatorID uint  `gorm:"not null;index"`
	CreatedAt int64 `gorm:"autoCreateTime:milli;not null"`
}

func (CostEstimationModel) TableName() string {
	return "cost_estimations"
}
