// File: services/countdown.go
package services

import (
	"fmt"
	"time"
)

// StartedLabel is shown once the target time has passed.
const StartedLabel = "Started"

// FormatRemaining renders a millisecond duration as M:SS, or H:MM:SS once
// it reaches an hour. Every segment is floored so the display never runs
// ahead of the real clock.
func FormatRemaining(ms int64) string {
	if ms < 0 {
		return StartedLabel
	}
	totalSeconds := ms / 1000
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	if minutes >= 60 {
		return fmt.Sprintf("%d:%02d:%02d", minutes/60, minutes%60, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// TimeUntil is the FormatRemaining input for target as seen at now.
func TimeUntil(target, now time.Time) int64 {
	return target.Sub(now).Milliseconds()
}

// NextHour returns the top of the hour following now on now's wall clock.
// time.Truncate would be off in half-hour zones such as IST.
func NextHour(now time.Time) time.Time {
	top := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	return top.Add(time.Hour)
}
