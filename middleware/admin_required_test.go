//go:build unit
// +build unit

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Unique function name to avoid conflicts with other test files
func setupAdminTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Set up session middleware
	store, err := NewSessionStore("test-secret", false)
	require.NoError(t, err)
	router.Use(sessions.Sessions(SessionCookieName, store))

	router.GET("/set-admin", func(c *gin.Context) {
		require.NoError(t, SetAdminToken(c, "atok"))
		c.String(http.StatusOK, "ok")
	})

	// Sample route that requires admin
	router.GET("/admin-only", AdminRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome, admin!"})
	})

	return router
}

// TestAdminRequired_Success ensures an admin can access the protected route
func TestAdminRequired_Success(t *testing.T) {
	router := setupAdminTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/set-admin", nil))
	cookie := sessionCookie(t, w)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Admin should be allowed")
	assert.Contains(t, w.Body.String(), "Welcome, admin!")
}

// TestAdminRequired_PageRedirects ensures browsers are sent to the admin login
func TestAdminRequired_PageRedirects(t *testing.T) {
	router := setupAdminTestRouter(t)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, AdminLoginPath, w.Header().Get("Location"))
}

// TestAdminRequired_MissingSession ensures missing session results in unauthorized access
func TestAdminRequired_MissingSession(t *testing.T) {
	router := setupAdminTestRouter(t)

	req, _ := http.NewRequest("GET", "/admin-only", nil)
	w := httptest.NewRecorder()

	// Perform request **without** setting up a session
	router.ServeHTTP(w, req)

	// Validate response
	assert.Equal(t, http.StatusUnauthorized, w.Code, "Missing session should block access")
	assert.Contains(t, w.Body.String(), "Unauthorized")
}
