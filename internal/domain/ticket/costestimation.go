package ticket

import (
	"fmt"
	"time"
)

// CostEstimation is the one-to-one amount estimate that drives the approval
// chain thresholds. Amounts are whole currency units.
type CostEstimation struct {
	id        uint
	ticketID  uint
	amount    int64
	creatorID uint
	createdAt time.Time
}

func NewCostEstimation(ticketID uint, amount int64, creatorID uint) (*CostEstimation, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("estimation amount must be positive")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	return &CostEstimation{
		ticketID:  ticketID,
		amount:    amount,
		creatorID: creatorID,
		createdAt: time.Now(),
	}, nil
}

func ReconstructCostEstimation(id, ticketID uint, amount int64, creatorID uint, createdAt time.Time) (*CostEstimation, error) {
	if id == 0 {
		return nil, fmt.Errorf("cost estimation ID cannot be zero")
	}
	return &CostEstimation{
		id:        id,
		ticketID:  ticketID,
		amount:    amount,
		creatorID: creatorID,
		createdAt: createdAt,
	}, nil
}

func (c *CostEstimation) ID() uint             { return c.id }
func (c *CostEstimation) TicketID() uint       { return c.ticketID }
func (c *CostEstimation) Amount() int64        { return c.amount }
func (c *CostEstimation) CreatorID() uint      { return c.creatorID }
func (c *CostEstimation) CreatedAt() time.Time { return c.createdAt }

func (c *CostEstimation) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("cost estimation ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("cost estimation ID cannot be zero")
	}
	c.id = id
	return nil
}
