// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cashplayzz-web/logger"
)

// LoginPath is where signed-out players are sent.
const LoginPath = "/?auth=login"

// -------------- authentication middleware --------------

// AuthRequired is a middleware that ensures a player is signed in.
// How it works:
// - Reads the session of the request.
// - Checks that a user token is present.
// - If not, redirects page requests to the landing page with the login
//   form open; websocket upgrades and other requests get a 401.
// - Otherwise, the request proceeds.
// Usage:
//
//	router.GET("/dashboard", AuthRequired, handler)
func AuthRequired(c *gin.Context) {
	sess := CurrentSession(c)

	// block request if token is missing
	if !sess.HasUser() {
		logger.Warn.Printf("AuthRequired: no user token in session %s", sess.ID)
		reject(c, LoginPath)
		return
	}

	logger.Debug.Println("[AuthRequired] User authenticated - proceeding with request")
	c.Next()
}

// reject aborts a signed-out request: browser pages are redirected to
// loginPath, anything else gets a 401.
func reject(c *gin.Context, loginPath string) {
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, loginPath)
	} else {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	c.Abort()
}
