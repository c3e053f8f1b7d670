// file: websocket/handler_test.go
package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashplayzz-web/middleware"
	"cashplayzz-web/models"
)

func newTestServer(t *testing.T) (*httptest.Server, *Hub, *stubProfiles) {
	gin.SetMode(gin.TestMode)
	store, err := middleware.NewSessionStore("test-secret", false)
	require.NoError(t, err)

	hub := NewHub(nil)
	profiles := &stubProfiles{profile: models.UserProfile{Username: "ace"}}
	h := NewHandler(hub, profiles, stubLeaderboard{}, &stubBoard{}, Intervals{
		Tick:         time.Hour,
		ProfilePoll:  time.Hour,
		Leaderboard:  time.Hour,
		AdminRefresh: time.Hour,
	}, "https://cashplayzz.example")

	router := gin.New()
	router.Use(sessions.Sessions(middleware.SessionCookieName, store), middleware.EnsureSession())
	router.GET("/ws/dashboard", h.ServeDashboard)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, hub, profiles
}

// Test: WebSocket connection should be upgraded and receive the first pushes
func TestServeDashboard_Success(t *testing.T) {
	srv, hub, _ := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/dashboard"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err, "Expected WebSocket connection to succeed")
	defer conn.Close()

	seen := map[string]bool{}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for len(seen) < 3 {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var m Message
		require.NoError(t, json.Unmarshal(data, &m))
		seen[m.Type] = true
	}
	assert.True(t, seen[TypeCountdown])
	assert.True(t, seen[TypeLeaderboard])
	assert.True(t, seen[TypeBalance])
	assert.Equal(t, 1, hub.Count(ViewDashboard))

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Count(ViewDashboard) == 0 }, 2*time.Second, 10*time.Millisecond)
}

// Test: cross-site origins are refused
func TestServeDashboard_ForeignOrigin(t *testing.T) {
	srv, _, _ := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/dashboard"
	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Test: WebSocket upgrade should fail with a non-WebSocket request
func TestServeDashboard_NotAnUpgrade(t *testing.T) {
	srv, hub, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/ws/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, hub.Count(ViewDashboard))
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://cashplayzz.example"})

	req := httptest.NewRequest("GET", "http://internal:8080/ws/dashboard", nil)
	assert.True(t, check(req), "no Origin header")

	req.Header.Set("Origin", "https://cashplayzz.example")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://internal:8080")
	assert.True(t, check(req), "same host")

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))
}
