// file: websocket/handler.go
package websocket

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"cashplayzz-web/logger"
	"cashplayzz-web/middleware"
	"cashplayzz-web/models"
)

// View names, as reported to the ViewObserver.
const (
	ViewDashboard = "dashboard"
	ViewAdmin     = "admin"
)

// Intervals of the live view timers.
type Intervals struct {
	Tick         time.Duration
	ProfilePoll  time.Duration
	Leaderboard  time.Duration
	AdminRefresh time.Duration
}

// Handler upgrades live view requests.
type Handler struct {
	Hub         *Hub
	Profiles    ProfileLoader
	Leaderboard LeaderboardSource
	Board       BoardRefresher
	Intervals   Intervals

	upgrader websocket.Upgrader
}

// NewHandler creates a Handler accepting upgrades from allowedOrigins.
// An empty list accepts same-host requests only.
func NewHandler(hub *Hub, profiles ProfileLoader, leaderboard LeaderboardSource, board BoardRefresher, iv Intervals, allowedOrigins ...string) *Handler {
	h := &Handler{
		Hub:         hub,
		Profiles:    profiles,
		Leaderboard: leaderboard,
		Board:       board,
		Intervals:   iv,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			set[strings.ToLower(u.Scheme+"://"+u.Host)] = true
		}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if set[strings.ToLower(u.Scheme+"://"+u.Host)] {
			return true
		}
		return strings.EqualFold(u.Host, r.Host)
	}
}

// upgrade opens a Connection and starts its pumps.
func (h *Handler) upgrade(c *gin.Context, view string, sess models.Session) (*Connection, bool) {
	wsConn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already replied with an error status
		logger.Error.Printf("[ServeWs] WebSocket upgrade error: %v", err)
		return nil, false
	}
	logger.Info.Printf("[ServeWs] %s view connected: remoteAddr=%v", view, wsConn.RemoteAddr())

	// the request context ends when this handler returns
	conn := newConnection(context.WithoutCancel(c.Request.Context()), wsConn, view, sess.ID)
	h.Hub.register(conn)
	go conn.writePump()
	go conn.readPump()
	return conn, true
}

// ServeDashboard serves GET /ws/dashboard.
func (h *Handler) ServeDashboard(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	conn, ok := h.upgrade(c, ViewDashboard, sess)
	if !ok {
		return
	}
	go func() {
		defer h.Hub.unregister(conn)
		(&DashboardView{
			Messenger:    conn,
			Session:      sess,
			Profiles:     h.Profiles,
			Leaderboard:  h.Leaderboard,
			TickInterval: h.Intervals.Tick,
			PollInterval: h.Intervals.ProfilePoll,
			RollInterval: h.Intervals.Leaderboard,
		}).Run(conn.Context())
	}()
}

// ServeAdmin serves GET /ws/admin.
func (h *Handler) ServeAdmin(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	conn, ok := h.upgrade(c, ViewAdmin, sess)
	if !ok {
		return
	}
	go func() {
		defer h.Hub.unregister(conn)
		(&AdminView{
			Messenger: conn,
			Session:   sess,
			Board:     h.Board,
			Interval:  h.Intervals.AdminRefresh,
		}).Run(conn.Context())
	}()
}
