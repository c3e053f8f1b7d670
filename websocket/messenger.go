// file: websocket/messenger.go
package websocket

// Messenger delivers pushes to one browser. *Connection implements it;
// tests use a recorder.
type Messenger interface {
	Push(msg Message) bool
}

var _ Messenger = (*Connection)(nil)
