// File: services/tournament_book.go
package services

import (
	"sync"
	"time"

	"cashplayzz-web/models"
)

// TournamentBook keeps one tournament list per browser session and mode.
// The mock listings live here until the session goes idle; live listings
// are cached here between fetches so the join flow can look records up.
type TournamentBook struct {
	mu    sync.Mutex
	lists map[string]*sessionLists
	seed  func(mode models.Mode, now time.Time) []models.TournamentRecord
}

type sessionLists struct {
	byMode  map[models.Mode][]models.TournamentRecord
	touched time.Time
}

// NewTournamentBook creates a book. seed, when non-nil, fills a missing
// list on Load and Update.
func NewTournamentBook(seed func(mode models.Mode, now time.Time) []models.TournamentRecord) *TournamentBook {
	return &TournamentBook{
		lists: make(map[string]*sessionLists),
		seed:  seed,
	}
}

// list returns the stored slice. With create set, a missing session entry
// is added and a missing list seeded. Callers hold mu.
func (b *TournamentBook) list(key string, mode models.Mode, now time.Time, create bool) ([]models.TournamentRecord, bool) {
	sl, ok := b.lists[key]
	if !ok {
		if !create {
			return nil, false
		}
		sl = &sessionLists{byMode: make(map[models.Mode][]models.TournamentRecord)}
		b.lists[key] = sl
	}
	sl.touched = now
	recs, ok := sl.byMode[mode]
	if !ok && create && b.seed != nil {
		recs = b.seed(mode, now)
		sl.byMode[mode] = recs
		ok = true
	}
	return recs, ok
}

// Load returns a copy of the list for key and mode, seeding it first if
// the book has a seed.
func (b *TournamentBook) Load(key string, mode models.Mode, now time.Time) ([]models.TournamentRecord, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	recs, ok := b.list(key, mode, now, true)
	if !ok {
		return nil, false
	}
	return cloneRecords(recs), true
}

// Get returns a copy of the stored list for key and mode.
func (b *TournamentBook) Get(key string, mode models.Mode, now time.Time) ([]models.TournamentRecord, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	recs, ok := b.list(key, mode, now, false)
	if !ok {
		return nil, false
	}
	return cloneRecords(recs), true
}

// Put replaces the list for key and mode.
func (b *TournamentBook) Put(key string, mode models.Mode, now time.Time, recs []models.TournamentRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sl, ok := b.lists[key]
	if !ok {
		sl = &sessionLists{byMode: make(map[models.Mode][]models.TournamentRecord)}
		b.lists[key] = sl
	}
	sl.touched = now
	sl.byMode[mode] = cloneRecords(recs)
}

// Find returns a copy of one stored record.
func (b *TournamentBook) Find(key string, mode models.Mode, id string, now time.Time) (models.TournamentRecord, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	recs, _ := b.list(key, mode, now, false)
	for _, r := range recs {
		if r.ID == id {
			return r, true
		}
	}
	return models.TournamentRecord{}, false
}

// Update runs fn on one record while the book is locked. The record is
// changed only when fn returns nil.
func (b *TournamentBook) Update(key string, mode models.Mode, id string, now time.Time, fn func(*models.TournamentRecord) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	recs, _ := b.list(key, mode, now, true)
	for i := range recs {
		if recs[i].ID != id {
			continue
		}
		draft := recs[i]
		if err := fn(&draft); err != nil {
			return err
		}
		recs[i] = draft
		return nil
	}
	return ErrTournamentNotFound
}

// Forget drops every list held for key.
func (b *TournamentBook) Forget(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.lists, key)
}

// Sweep drops the sessions not used since cutoff and returns how many.
func (b *TournamentBook) Sweep(cutoff time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for key, sl := range b.lists {
		if sl.touched.Before(cutoff) {
			delete(b.lists, key)
			n++
		}
	}
	return n
}

func cloneRecords(recs []models.TournamentRecord) []models.TournamentRecord {
	if recs == nil {
		return nil
	}
	out := make([]models.TournamentRecord, len(recs))
	copy(out, recs)
	return out
}
