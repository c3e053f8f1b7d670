// File: services/janitor.go
package services

import (
	"context"
	"sync"
	"time"

	"cashplayzz-web/logger"
)

// Sweeper drops per-session state not used since cutoff and reports how
// many sessions it removed.
type Sweeper interface {
	Sweep(cutoff time.Time) int
}

// Janitor evicts per-session state once a browser session has been idle
// for longer than its cookie can live.
type Janitor struct {
	idle time.Duration
	now  func() time.Time

	mu     sync.Mutex
	stores []Sweeper
}

// NewJanitor creates a Janitor evicting state idle for longer than idle.
func NewJanitor(idle time.Duration, stores ...Sweeper) *Janitor {
	return &Janitor{idle: idle, now: time.Now, stores: stores}
}

// Add registers more stores.
func (j *Janitor) Add(stores ...Sweeper) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.stores = append(j.stores, stores...)
}

// SweepOnce runs every store once and returns the total removed.
func (j *Janitor) SweepOnce() int {
	j.mu.Lock()
	stores := append([]Sweeper(nil), j.stores...)
	j.mu.Unlock()

	cutoff := j.now().Add(-j.idle)
	removed := 0
	for _, s := range stores {
		removed += s.Sweep(cutoff)
	}
	return removed
}

// Run sweeps on every tick of period until ctx is done.
func (j *Janitor) Run(ctx context.Context, period time.Duration) {
	if period <= 0 {
		logger.Error.Printf("[Janitor] invalid sweep period %s, idle sessions will not be evicted", period)
		return
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := j.SweepOnce(); n > 0 {
				logger.Info.Printf("[Janitor] evicted %d idle session entries", n)
			}
		}
	}
}
