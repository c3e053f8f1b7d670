// file: services/countdown_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{-1, "Started"},
		{-60000, "Started"},
		{0, "0:00"},
		{999, "0:00"},
		{1000, "0:01"},
		{65000, "1:05"},
		{65999, "1:05"},
		{3599999, "59:59"},
		{3600000, "1:00:00"},
		{3665000, "1:01:05"},
		{36000000, "10:00:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatRemaining(tc.ms), "ms=%d", tc.ms)
	}
}

func TestTimeUntilAndNextHour(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 58, 55, 500_000_000, time.UTC)

	next := NextHour(now)
	assert.Equal(t, time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC), next)
	assert.Equal(t, int64(64500), TimeUntil(next, now))
	assert.Equal(t, "1:04", FormatRemaining(TimeUntil(next, now)))
}

func TestNextHour_HalfHourZone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2026, 10, 15, 21, 10, 0, 0, ist)

	assert.Equal(t, time.Date(2026, 10, 15, 22, 0, 0, 0, ist), NextHour(now))
}
