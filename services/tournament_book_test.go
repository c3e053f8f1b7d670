// file: services/tournament_book_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashplayzz-web/models"
)

func TestTournamentBook_ReadsDoNotCreate(t *testing.T) {
	book := NewTournamentBook(DemoTournaments)

	_, ok := book.Get("s1", models.ModeBattleRoyale, testNow)
	assert.False(t, ok)
	_, ok = book.Find("s1", models.ModeBattleRoyale, "battleroyale-1", testNow)
	assert.False(t, ok)
	assert.Empty(t, book.lists)

	recs, ok := book.Load("s1", models.ModeBattleRoyale, testNow)
	require.True(t, ok)
	require.NotEmpty(t, recs)
	rec, ok := book.Find("s1", models.ModeBattleRoyale, recs[0].ID, testNow)
	require.True(t, ok)
	assert.Equal(t, recs[0].ID, rec.ID)
}

func TestTournamentBook_SweepKeepsRecentlyUsed(t *testing.T) {
	book := NewTournamentBook(nil)
	book.Put("old", models.ModeClashSquad, testNow, []models.TournamentRecord{{ID: "m1"}})
	book.Put("fresh", models.ModeClashSquad, testNow, []models.TournamentRecord{{ID: "m2"}})
	_, _ = book.Get("fresh", models.ModeClashSquad, testNow.Add(2*time.Hour))

	assert.Equal(t, 1, book.Sweep(testNow.Add(time.Hour)))

	_, ok := book.Get("old", models.ModeClashSquad, testNow)
	assert.False(t, ok)
	recs, ok := book.Get("fresh", models.ModeClashSquad, testNow)
	require.True(t, ok)
	assert.Equal(t, "m2", recs[0].ID)
}
