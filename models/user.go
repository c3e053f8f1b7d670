// Package models defines data structures used across the application.
// Every value here is a client-held mirror of backend state; none of it is
// authoritative.
// File: models/user.go
package models

import "github.com/shopspring/decimal"

// ----------------------- session keys -----------------------

// Cookie-session keys. "token" and "adminToken" keep the names the browser
// client used in local storage.
const (
	SessionKeyToken      = "token"
	SessionKeyAdminToken = "adminToken"
	SessionKeyID         = "sid"
)

// Session is the per-request view of the browser session.
type Session struct {
	ID         string // stable per-browser id, keys in-memory state
	Token      string // user bearer token
	AdminToken string // admin bearer token
}

// HasUser reports whether a user token is present.
func (s Session) HasUser() bool { return s.Token != "" }

// HasAdmin reports whether an admin token is present.
func (s Session) HasAdmin() bool { return s.AdminToken != "" }

// ----------------------- user model -----------------------

// UserProfile mirrors GET /api/user/profile.
type UserProfile struct {
	Username string          `json:"username"`
	Balance  decimal.Decimal `json:"balance"`
}

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login. Identifier is either
// an email address or a username.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// LoginResult is what a user login produced. Token is empty when the
// backend neither returned one in the body nor set a token cookie.
type LoginResult struct {
	Message string
	Token   string
}
