// Package websocket test_helpers.go
package websocket

import (
	"context"
	"sync"
	"time"

	"cashplayzz-web/models"
	"cashplayzz-web/services"
)

// recordingMessenger collects pushes for assertions.
type recordingMessenger struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *recordingMessenger) Push(msg Message) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return true
}

func (r *recordingMessenger) ofType(typ string) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Message
	for _, m := range r.msgs {
		if m.Type == typ {
			out = append(out, m)
		}
	}
	return out
}

// stubProfiles answers Load with a fixed result after an optional delay.
type stubProfiles struct {
	mu      sync.Mutex
	calls   int
	profile models.UserProfile
	err     error
	delay   func(call int) time.Duration
}

func (s *stubProfiles) Load(ctx context.Context, _ models.Session) (models.UserProfile, error) {
	s.mu.Lock()
	s.calls++
	call := s.calls
	s.mu.Unlock()
	if s.delay != nil {
		select {
		case <-time.After(s.delay(call)):
		case <-ctx.Done():
			return models.UserProfile{}, ctx.Err()
		}
	}
	return s.profile, s.err
}

func (s *stubProfiles) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubLeaderboard struct{}

func (stubLeaderboard) Generate(hour int) []models.LeaderboardEntry {
	return []models.LeaderboardEntry{{Rank: 1, Name: "Ace", Prize: int64(6000 + hour)}}
}

// stubBoard counts refreshes and reports a fixed result.
type stubBoard struct {
	mu     sync.Mutex
	calls  int
	report services.RefreshReport
	board  services.AdminBoard
}

func (s *stubBoard) Refresh(context.Context, models.Session) services.RefreshReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.report
}

func (s *stubBoard) Board(string) services.AdminBoard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

func (s *stubBoard) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
