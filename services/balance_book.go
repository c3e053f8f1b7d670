// File: services/balance_book.go
package services

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceBook is the single source of the balance shown to each browser
// session. Writers take a sequence number with Begin before they start
// their work and present it when they finish; a write is applied only if
// no later-begun write has been applied already. Server values (Commit)
// and local adjustments (Adjust) follow the same rule, so a stale profile
// fetch cannot undo a newer withdrawal, and a late optimistic debit cannot
// overwrite a fresher server balance.
type BalanceBook struct {
	mu      sync.Mutex
	entries map[string]*balanceEntry
	now     func() time.Time
}

type balanceEntry struct {
	value   decimal.Decimal
	known   bool
	next    uint64
	applied uint64
	touched time.Time
}

// NewBalanceBook creates an empty book.
func NewBalanceBook() *BalanceBook {
	return &BalanceBook{entries: make(map[string]*balanceEntry), now: time.Now}
}

func (b *BalanceBook) entry(key string) *balanceEntry {
	e, ok := b.entries[key]
	if !ok {
		e = &balanceEntry{}
		b.entries[key] = e
	}
	e.touched = b.now()
	return e
}

// Begin reserves the next sequence number for key.
func (b *BalanceBook) Begin(key string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := b.entry(key)
	e.next++
	return e.next
}

// Commit stores an authoritative server balance. It reports whether the
// value was applied.
func (b *BalanceBook) Commit(key string, seq uint64, value decimal.Decimal) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := b.entry(key)
	if seq <= e.applied {
		return false
	}
	e.value = value
	e.known = true
	e.applied = seq
	return true
}

// Adjust applies a local delta on top of the last known balance. It is
// dropped when the balance is unknown or a later write already landed.
func (b *BalanceBook) Adjust(key string, seq uint64, delta decimal.Decimal) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := b.entry(key)
	if !e.known || seq <= e.applied {
		return false
	}
	e.value = e.value.Add(delta)
	e.applied = seq
	return true
}

// Get returns the current balance for key and whether one is known.
func (b *BalanceBook) Get(key string) (decimal.Decimal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[key]
	if !ok {
		return decimal.Zero, false
	}
	e.touched = b.now()
	if !e.known {
		return decimal.Zero, false
	}
	return e.value, true
}

// Forget drops everything known about key, e.g. at logout.
func (b *BalanceBook) Forget(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, key)
}

// Sweep drops the entries not used since cutoff and returns how many.
func (b *BalanceBook) Sweep(cutoff time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for key, e := range b.entries {
		if e.touched.Before(cutoff) {
			delete(b.entries, key)
			n++
		}
	}
	return n
}
