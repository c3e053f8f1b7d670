// File: services/leaderboard.go
package services

import (
	"math/rand"
	"sync"
	"time"

	"cashplayzz-web/models"
)

// Prize draw bounds. Each prize is base + hour*perHour with base drawn from
// [baseMin, baseMax) and perHour from [perHourMin, perHourMax).
const (
	leaderboardSize = 3
	prizeBaseMin    = 6000
	prizeBaseMax    = 10000
	prizePerHourMin = 5000
	prizePerHourMax = 17000
)

// LeaderboardNames is the fixed pool the mock leaderboard draws from.
var LeaderboardNames = []string{
	"SniperKing", "HeadshotHero", "RushMaster", "GhostRider", "BoomBaazi",
	"ProPlayer07", "NightHawk", "Desi_Gamer", "BlazeFury", "SilentKiller",
}

// Leaderboard produces the decorative top-3 list on the dashboard.
type Leaderboard struct {
	mu    sync.Mutex
	rng   *rand.Rand
	names []string
}

// NewLeaderboard builds a generator over the default name pool. A nil rng
// is seeded from the clock.
func NewLeaderboard(rng *rand.Rand) *Leaderboard {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404
	}
	names := make([]string, len(LeaderboardNames))
	copy(names, LeaderboardNames)
	return &Leaderboard{rng: rng, names: names}
}

// Generate draws three distinct names and their prizes for hourOfDay.
// Hours outside 0..23 are clamped.
func (l *Leaderboard) Generate(hourOfDay int) []models.LeaderboardEntry {
	if hourOfDay < 0 {
		hourOfDay = 0
	}
	if hourOfDay > 23 {
		hourOfDay = 23
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	pool := make([]string, len(l.names))
	copy(pool, l.names)
	l.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	n := leaderboardSize
	if len(pool) < n {
		n = len(pool)
	}
	out := make([]models.LeaderboardEntry, 0, n)
	for i := 0; i < n; i++ {
		base := prizeBaseMin + l.rng.Int63n(prizeBaseMax-prizeBaseMin)
		perHour := prizePerHourMin + l.rng.Int63n(prizePerHourMax-prizePerHourMin)
		out = append(out, models.LeaderboardEntry{
			Rank:  i + 1,
			Name:  pool[i],
			Prize: base + int64(hourOfDay)*perHour,
		})
	}
	return out
}
