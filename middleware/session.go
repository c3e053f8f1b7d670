// Package middleware provides session handling, route guards and request
// instrumentation for the web frontend.
// File: middleware/session.go
package middleware

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	"cashplayzz-web/logger"
	"cashplayzz-web/models"
)

// SessionCookieName is the name of the browser session cookie.
const SessionCookieName = "cashplayzz_session"

const sessionMaxAge = 7 * 24 * 60 * 60

// SessionLifetime is how long a session cookie stays valid.
const SessionLifetime = sessionMaxAge * time.Second

// deriveKey expands the configured secret into a purpose-bound key.
func deriveKey(secret, info string, size int) ([]byte, error) {
	key := make([]byte, size)
	r := hkdf.New(sha256.New, []byte(secret), []byte("cashplayzz-session"), []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return key, nil
}

// NewSessionStore builds the encrypted cookie store. The signing and
// encryption keys are both derived from secret.
func NewSessionStore(secret string, secure bool) (sessions.Store, error) {
	authKey, err := deriveKey(secret, "auth", 64)
	if err != nil {
		return nil, err
	}
	encKey, err := deriveKey(secret, "encrypt", 32)
	if err != nil {
		return nil, err
	}
	store := cookie.NewStore(authKey, encKey)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// EnsureSession gives every browser a stable session id.
func EnsureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if id, _ := session.Get(models.SessionKeyID).(string); id == "" {
			session.Set(models.SessionKeyID, uuid.NewString())
			if err := session.Save(); err != nil {
				logger.Error.Printf("EnsureSession: failed to save session: %v", err)
			}
		}
		c.Next()
	}
}

// CurrentSession reads the session of the current request.
func CurrentSession(c *gin.Context) models.Session {
	session := sessions.Default(c)
	var s models.Session
	s.ID, _ = session.Get(models.SessionKeyID).(string)
	s.Token, _ = session.Get(models.SessionKeyToken).(string)
	s.AdminToken, _ = session.Get(models.SessionKeyAdminToken).(string)
	return s
}

func setKey(c *gin.Context, key string, value string) error {
	session := sessions.Default(c)
	if value == "" {
		session.Delete(key)
	} else {
		session.Set(key, value)
	}
	return session.Save()
}

// SetUserToken stores the user bearer token.
func SetUserToken(c *gin.Context, token string) error {
	return setKey(c, models.SessionKeyToken, token)
}

// ClearUserToken drops the user bearer token.
func ClearUserToken(c *gin.Context) error {
	return setKey(c, models.SessionKeyToken, "")
}

// SetAdminToken stores the admin bearer token.
func SetAdminToken(c *gin.Context, token string) error {
	return setKey(c, models.SessionKeyAdminToken, token)
}

// ClearAdminToken drops the admin bearer token.
func ClearAdminToken(c *gin.Context) error {
	return setKey(c, models.SessionKeyAdminToken, "")
}

// AddNotice queues a notice for the next rendered page.
func AddNotice(c *gin.Context, n models.Notice) {
	session := sessions.Default(c)
	session.AddFlash(n)
	if err := session.Save(); err != nil {
		logger.Error.Printf("AddNotice: failed to save session: %v", err)
	}
}

// TakeNotices pops the queued notices, dropping expired ones.
func TakeNotices(c *gin.Context, now time.Time) []models.Notice {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		logger.Error.Printf("TakeNotices: failed to save session: %v", err)
	}
	out := make([]models.Notice, 0, len(flashes))
	for _, f := range flashes {
		if n, ok := f.(models.Notice); ok && !n.Expired(now) {
			out = append(out, n)
		}
	}
	return out
}
