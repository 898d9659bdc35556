package ticket

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefix/internal/shared/biztime"
)

// NumberGenerator issues ticket numbers in the form MT-YYYYMMDD-NNNN where
// the date is the business-timezone date and NNNN restarts daily.
type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

type DefaultNumberGenerator struct {
	mu       sync.Mutex
	counters map[string]int
}

func NewDefaultNumberGenerator() *DefaultNumberGenerator {
	return &DefaultNumberGenerator{
		counters: make(map[string]int),
	}
}

func (g *DefaultNumberGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dateKey := biztime.BizDate(time.Now())

	counter := g.counters[dateKey]
	counter++
	g.counters[dateKey] = counter

	return fmt.Sprintf("MT-%s-%04d", dateKey, counter), nil
}
