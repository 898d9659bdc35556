package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"storefix/internal/shared/biztime"
	"storefix/internal/shared/constants"
)

// TicketNumberGenerator issues MT-YYYYMMDD-NNNN numbers backed by the
// tickets table, so the daily sequence survives restarts. The date part is
// the business-timezone date.
type TicketNumberGenerator struct {
	db    *gorm.DB
	mu    sync.Mutex
	cache map[string]int
}

func NewTicketNumberGenerator(db *gorm.DB) *TicketNumberGenerator {
	return &TicketNumberGenerator{
		db:    db,
		cache: make(map[string]int),
	}
}

func (g *TicketNumberGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dateStr := biztime.BizDate(time.Now())

	seq, err := g.getNextSequence(ctx, dateStr)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("MT-%s-%04d", dateStr, seq), nil
}

func (g *TicketNumberGenerator) getNextSequence(ctx context.Context, dateStr string) (int, error) {
	if seq, ok := g.cache[dateStr]; ok {
		g.cache[dateStr] = seq + 1
		return seq + 1, nil
	}

	var maxNumber string
	pattern := fmt.Sprintf("MT-%s-%%", dateStr)

	err := g.db.WithContext(ctx).
		Table(constants.TableTickets).
		Select("MAX(number)").
		Where("number LIKE ?", pattern).
		Scan(&maxNumber).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return 0, fmt.Errorf("failed to get max ticket number: %w", err)
	}

	seq := 1
	if maxNumber != "" {
		var parsed int
		if _, err := fmt.Sscanf(maxNumber, "MT-"+dateStr+"-%04d", &parsed); err == nil {
			seq = parsed + 1
		}
	}

	g.cache[dateStr] = seq
	return seq, nil
}
