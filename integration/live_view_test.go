//go:build integration
// +build integration

// integration/live_view_test.go
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashplayzz-web/apiclient"
	"cashplayzz-web/middleware"
	"cashplayzz-web/services"
	"cashplayzz-web/websocket"
)

// startLiveServer runs the dashboard live view against a fake backend and
// returns the server and a signed-in session cookie.
func startLiveServer(t *testing.T) (*httptest.Server, *websocket.Hub, *http.Cookie) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"username":"ace","balance":75.5}`))
	}))
	t.Cleanup(backend.Close)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	store, err := middleware.NewSessionStore("integration-secret", false)
	require.NoError(t, err)
	router.Use(sessions.Sessions(middleware.SessionCookieName, store), middleware.EnsureSession())

	api := apiclient.New(backend.URL, 5*time.Second)
	balances := services.NewBalanceBook()
	hub := websocket.NewHub(nil)
	handler := websocket.NewHandler(hub,
		services.NewProfileService(api, balances),
		services.NewLeaderboard(nil),
		services.NewAdminService(api),
		websocket.Intervals{Tick: 50 * time.Millisecond, ProfilePoll: time.Hour, Leaderboard: time.Hour, AdminRefresh: time.Hour},
	)

	router.GET("/sign-in", func(c *gin.Context) {
		if err := middleware.SetUserToken(c, "tok"); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	router.GET("/ws/dashboard", middleware.AuthRequired, handler.ServeDashboard)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/sign-in")
	require.NoError(t, err)
	defer resp.Body.Close()
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	return server, hub, cookie
}

func TestDashboardLiveView(t *testing.T) {
	server, hub, cookie := startLiveServer(t)

	header := http.Header{}
	header.Add("Cookie", cookie.String())
	conn, _, err := gorilla.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws/dashboard", header)
	require.NoError(t, err, "WebSocket connection should succeed")
	defer conn.Close()

	seen := map[string]int{}
	var balance websocket.BalancePayload
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for seen[websocket.TypeCountdown] < 3 || seen[websocket.TypeBalance] == 0 {
		var msg struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		require.NoError(t, conn.ReadJSON(&msg))
		seen[msg.Type]++
		if msg.Type == websocket.TypeBalance {
			require.NoError(t, json.Unmarshal(msg.Data, &balance))
		}
	}

	assert.Equal(t, "75.50", balance.Balance)
	assert.Equal(t, "ace", balance.Username)
	assert.Equal(t, 1, seen[websocket.TypeLeaderboard])
	assert.Equal(t, 1, hub.Count(websocket.ViewDashboard))
}

func TestDashboardLiveView_RequiresLogin(t *testing.T) {
	server, _, _ := startLiveServer(t)

	_, resp, err := gorilla.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws/dashboard", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
