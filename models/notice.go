// File: models/notice.go
package models

import (
	"encoding/gob"
	"time"
)

// Notice kinds.
const (
	NoticeSuccess = "success"
	NoticeWarning = "warning"
	NoticeError   = "error"
)

// Notice is a transient message shown after an action. A zero ExpiresAt
// keeps the notice until it is displayed once.
type Notice struct {
	Kind      string
	Text      string
	ExpiresAt time.Time
}

// Expired reports whether the notice should no longer be shown.
func (n Notice) Expired(now time.Time) bool {
	return !n.ExpiresAt.IsZero() && !now.Before(n.ExpiresAt)
}

// Remaining returns the display time left, in milliseconds.
func (n Notice) Remaining(now time.Time) int64 {
	if n.ExpiresAt.IsZero() {
		return 0
	}
	if d := n.ExpiresAt.Sub(now); d > 0 {
		return d.Milliseconds()
	}
	return 0
}

// LeaderboardEntry is one row of the mock leaderboard.
type LeaderboardEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Prize int64  `json:"prize"`
}

func init() {
	// notices travel through the cookie session as flashes
	gob.Register(Notice{})
}
