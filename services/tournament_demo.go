// File: services/tournament_demo.go
package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cashplayzz-web/models"
)

var battleRoyaleRules = []string{
	"Mobile devices only, emulators are not allowed.",
	"Teaming up with other squads leads to disqualification.",
	"Room ID and password are shared 15 minutes before start.",
	"Prize is credited within 24 hours of the match result.",
}

var clashSquadRules = []string{
	"Mobile devices only, emulators are not allowed.",
	"Default character skills only, no gun skins.",
	"Best of 7 rounds, the first squad to 4 wins.",
	"Room ID and password are shared 15 minutes before start.",
}

type demoMatch struct {
	squad      string
	mapName    string
	fee        int64
	prize      int64
	startsIn   time.Duration
	players    int
	maxPlayers int
}

var demoMatches = map[models.Mode][]demoMatch{
	models.ModeBattleRoyale: {
		{"Solo", "Bermuda", 20, 800, 45 * time.Minute, 31, 48},
		{"Duo", "Purgatory", 40, 1500, 2 * time.Hour, 18, 48},
		{"Squad", "Kalahari", 80, 3000, 4 * time.Hour, 20, 48},
		{"Squad", "Bermuda", 150, 6000, 8 * time.Hour, 4, 48},
	},
	models.ModeClashSquad: {
		{"1v1", "Bermuda", 10, 18, 30 * time.Minute, 1, 2},
		{"2v2", "Kalahari", 25, 90, 90 * time.Minute, 2, 4},
		{"4v4", "Purgatory", 50, 360, 3 * time.Hour, 3, 8},
		{"4v4", "Bermuda", 100, 720, 6 * time.Hour, 0, 8},
	},
}

// DemoTournaments builds the static demo listing for mode, with start times
// relative to now.
func DemoTournaments(mode models.Mode, now time.Time) []models.TournamentRecord {
	matches := demoMatches[mode]
	rules := battleRoyaleRules
	if mode == models.ModeClashSquad {
		rules = clashSquadRules
	}

	start := now.Truncate(time.Minute)
	out := make([]models.TournamentRecord, 0, len(matches))
	for i, m := range matches {
		out = append(out, models.TournamentRecord{
			ID:             fmt.Sprintf("%s-%d", mode, i+1),
			Title:          fmt.Sprintf("%s %s #%d", mode.Title(), m.squad, i+1),
			Mode:           mode,
			Map:            m.mapName,
			SquadType:      m.squad,
			EntryFee:       decimal.NewFromInt(m.fee),
			PrizePool:      decimal.NewFromInt(m.prize),
			StartTime:      start.Add(m.startsIn),
			CurrentPlayers: m.players,
			MaxPlayers:     m.maxPlayers,
			RoomID:         fmt.Sprintf("%d%04d", 7+i, 1000+i*37),
			RoomPassword:   fmt.Sprintf("cp%03d", 100+i*11),
			Rules:          rules,
		})
	}
	return out
}
