// controllers/tournament_controller_test.go
//go:build unit
// +build unit

package controllers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cashplayzz-web/apiclient"
	"cashplayzz-web/config"
	"cashplayzz-web/middleware"
	"cashplayzz-web/models"
	"cashplayzz-web/services"
)

func setupTournamentRouter(t *testing.T, st userStack) (*gin.Engine, *http.Cookie) {
	router := setupTestRouter(t)
	tc := NewTournamentController(st.tournaments)
	authed := router.Group("/", middleware.AuthRequired)
	authed.GET("/tournaments/:mode", tc.List)
	authed.POST("/tournaments/:mode/:id/join", tc.Join)

	cookie := SetSession(router, "/set-session", map[string]interface{}{
		models.SessionKeyToken: "tok",
	})
	require.NotNil(t, cookie)
	return router, cookie
}

func TestTournamentList_Mock(t *testing.T) {
	st := newUserStack(nil)
	expectProfile(st.api, "100")
	router, cookie := setupTournamentRouter(t, st)

	w := perform(router, http.MethodGet, "/tournaments/battleroyale?open=battleroyale-2", nil, cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "mode=battleroyale balance=100.00")
	assert.Contains(t, body, "battleroyale-1:joined=false")
	assert.Contains(t, body, "battleroyale-2:joined=false,players=")
	assert.Contains(t, body, ",open=true")
}

func TestTournamentList_UnknownMode(t *testing.T) {
	st := newUserStack(nil)
	router, cookie := setupTournamentRouter(t, st)

	w := perform(router, http.MethodGet, "/tournaments/chess", nil, cookie)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown tournament mode.")
}

func TestTournamentJoin_MockTwice(t *testing.T) {
	st := newUserStack(nil)
	st.api.On("Profile", mock.Anything, "tok").
		Return(models.UserProfile{Username: "ace", Balance: decimal.NewFromInt(100)}, nil).Once()
	router, cookie := setupTournamentRouter(t, st)

	w, cookie := follow(t, router, http.MethodPost, "/tournaments/battleroyale/battleroyale-2/join", nil, cookie)
	body := w.Body.String()
	assert.Contains(t, body, "[success] Successfully joined the match!")
	assert.NotContains(t, body, "ttl=0;")
	assert.Contains(t, body, "balance=60.00")
	assert.Contains(t, body, "battleroyale-2:joined=true")

	w, _ = follow(t, router, http.MethodPost, "/tournaments/battleroyale/battleroyale-2/join", nil, cookie)
	assert.Contains(t, w.Body.String(), "[warning] "+services.ErrAlreadyJoined.Message)
	assert.Contains(t, w.Body.String(), "balance=60.00")
	st.api.AssertExpectations(t)
}

func TestTournamentList_LiveFailureKeepsListing(t *testing.T) {
	st := newUserStack(map[models.Mode]string{models.ModeClashSquad: config.SourceLive})
	expectProfile(st.api, "100")
	rec := models.TournamentRecord{
		ID:         "m1",
		SquadType:  "4v4",
		EntryFee:   decimal.NewFromInt(10),
		StartTime:  time.Now().Add(time.Hour),
		MaxPlayers: 8,
	}
	st.api.On("Tournaments", mock.Anything, "tok", models.ModeClashSquad).Return([]models.TournamentRecord{rec}, nil).Once()
	st.api.On("Tournaments", mock.Anything, "tok", models.ModeClashSquad).
		Return(nil, &apiclient.NetworkError{Err: errors.New("timeout")}).Once()
	router, cookie := setupTournamentRouter(t, st)

	first := perform(router, http.MethodGet, "/tournaments/clashsquad", nil, cookie)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "m1:joined=false")

	second := perform(router, http.MethodGet, "/tournaments/clashsquad", nil, sessionCookie(first, cookie))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "[error] "+apiclient.MsgNetwork)
	assert.Contains(t, second.Body.String(), "m1:joined=false")
}

func TestTournamentJoin_LiveServerMessageVerbatim(t *testing.T) {
	st := newUserStack(map[models.Mode]string{models.ModeClashSquad: config.SourceLive})
	expectProfile(st.api, "100")
	rec := models.TournamentRecord{
		ID:         "m1",
		SquadType:  "4v4",
		EntryFee:   decimal.NewFromInt(10),
		StartTime:  time.Now().Add(time.Hour),
		MaxPlayers: 8,
	}
	st.api.On("Tournaments", mock.Anything, "tok", models.ModeClashSquad).Return([]models.TournamentRecord{rec}, nil)
	st.api.On("JoinMatch", mock.Anything, "tok", mock.Anything).
		Return(models.JoinResult{}, &apiclient.ServerError{Status: http.StatusBadRequest, Message: "Registration closed"}).Once()
	router, cookie := setupTournamentRouter(t, st)

	w, _ := follow(t, router, http.MethodPost, "/tournaments/clashsquad/m1/join", nil, cookie)

	assert.Contains(t, w.Body.String(), "[error] Registration closed")
	assert.Contains(t, w.Body.String(), "m1:joined=false")
	assert.Contains(t, w.Body.String(), "balance=100.00")
}
