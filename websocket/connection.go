// Package websocket serves the live dashboard and admin views. Each
// connection owns its timers; closing the connection stops them.
// file: websocket/connection.go
package websocket

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/gorilla/websocket"

	"cashplayzz-web/logger"
)

// WSConn is the part of *websocket.Conn a Connection uses.
type WSConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	ReadMessage() (int, []byte, error)
	Close() error
	RemoteAddr() net.Addr
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
}

// Configuration constants.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

// Message is one server push.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Message types.
const (
	TypeCountdown      = "countdown"
	TypeBalance        = "balance"
	TypeLeaderboard    = "leaderboard"
	TypeAdminBoard     = "adminBoard"
	TypeSessionExpired = "sessionExpired"
)

// Connection is one browser tab's live view.
type Connection struct {
	conn      WSConn
	send      chan []byte
	view      string
	sessionID string

	ctx    context.Context
	cancel context.CancelFunc
}

func newConnection(parent context.Context, conn WSConn, view, sessionID string) *Connection {
	ctx, cancel := context.WithCancel(parent)
	return &Connection{
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		view:      view,
		sessionID: sessionID,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Context is cancelled when the connection closes.
func (c *Connection) Context() context.Context { return c.ctx }

// Push queues msg for the browser. It reports false when the message was
// dropped because the connection is closed or too slow.
func (c *Connection) Push(msg Message) bool {
	if c.ctx.Err() != nil {
		return false
	}
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error.Printf("[Push] Error marshalling %s message: %v", msg.Type, err)
		return false
	}
	select {
	case c.send <- data:
		return true
	case <-c.ctx.Done():
		return false
	default:
		logger.Warn.Printf("[Push] Dropping %s message for %v", msg.Type, c.conn.RemoteAddr())
		return false
	}
}

// readPump only watches for the browser going away; live views take no
// input.
func (c *Connection) readPump() {
	defer c.cancel()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn.Printf("[readPump] Read error from %v: %v", c.conn.RemoteAddr(), err)
			}
			return
		}
	}
}

// writePump sends queued messages and periodic pings until the
// connection's context ends.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.cancel()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn.Printf("[writePump] Error writing to %v: %v", c.conn.RemoteAddr(), err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Warn.Printf("[writePump] Ping error for %v: %v", c.conn.RemoteAddr(), err)
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
