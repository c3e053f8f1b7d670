// File: models/tournament.go
package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Mode identifies a tournament listing.
type Mode string

const (
	ModeBattleRoyale Mode = "battleroyale"
	ModeClashSquad   Mode = "clashsquad"
)

// Modes lists every listing in display order.
var Modes = []Mode{ModeBattleRoyale, ModeClashSquad}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeBattleRoyale || m == ModeClashSquad
}

// Title is the display name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeBattleRoyale:
		return "Battle Royale"
	case ModeClashSquad:
		return "Clash Squad"
	}
	return string(m)
}

// TournamentRecord mirrors one scheduled match.
type TournamentRecord struct {
	ID             string          `json:"id"`
	Title          string          `json:"title,omitempty"`
	Mode           Mode            `json:"mode,omitempty"`
	Map            string          `json:"map,omitempty"`
	SquadType      string          `json:"squadType"`
	EntryFee       decimal.Decimal `json:"entryFee"`
	PrizePool      decimal.Decimal `json:"prizePool"`
	StartTime      time.Time       `json:"startTime"`
	Joined         bool            `json:"joined"`
	CurrentPlayers int             `json:"currentPlayers"`
	MaxPlayers     int             `json:"maxPlayers"`
	RoomID         string          `json:"roomId,omitempty"`
	RoomPassword   string          `json:"roomPassword,omitempty"`
	Rules          []string        `json:"rules,omitempty"`
}

// UnmarshalJSON accepts the backend's "_id" spelling as well as "id".
func (t *TournamentRecord) UnmarshalJSON(data []byte) error {
	type plain TournamentRecord
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = aux.MongoID
	}
	return nil
}

// Full reports whether every slot is taken.
func (t TournamentRecord) Full() bool {
	return t.MaxPlayers > 0 && t.CurrentPlayers >= t.MaxPlayers
}

// JoinRequest is the body of POST /api/user/join-match.
type JoinRequest struct {
	EntryFee decimal.Decimal `json:"entryFee"`
	MatchID  string          `json:"matchId"`
}

// JoinResult mirrors the join-match reply.
type JoinResult struct {
	Success bool                `json:"success"`
	Balance decimal.NullDecimal `json:"balance"`
	Message string              `json:"message"`
}

// TournamentInput is the admin create/update body.
type TournamentInput struct {
	Title        string          `json:"title"`
	Mode         Mode            `json:"mode"`
	Map          string          `json:"map,omitempty"`
	SquadType    string          `json:"squadType"`
	EntryFee     decimal.Decimal `json:"entryFee"`
	PrizePool    decimal.Decimal `json:"prizePool"`
	StartTime    time.Time       `json:"startTime"`
	MaxPlayers   int             `json:"maxPlayers"`
	RoomID       string          `json:"roomId,omitempty"`
	RoomPassword string          `json:"roomPassword,omitempty"`
	Rules        []string        `json:"rules,omitempty"`
}
