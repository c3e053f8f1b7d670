// file: controllers/test_helpers.go
//go:build unit
// +build unit

package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"cashplayzz-web/middleware"
)

// setupTestRouter creates a new Gin engine with the real session store and
// fake HTML templates.
func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	store, err := middleware.NewSessionStore("test-secret", false)
	require.NoError(t, err)
	router.Use(sessions.Sessions(middleware.SessionCookieName, store), middleware.EnsureSession())

	// Create minimal templates to avoid panics during testing.
	tmpDir := t.TempDir()
	if err := createDummyTemplates(tmpDir); err != nil {
		t.Fatalf("Failed to create dummy templates: %v", err)
	}
	router.LoadHTMLGlob(filepath.Join(tmpDir, "*.html"))
	return router
}

const noticesTmpl = `{{range .Notices}}[{{.Kind}}] {{.Text}} ttl={{.TTL}};{{end}}`

// createDummyTemplates writes a set of minimal HTML templates to the provided directory.
func createDummyTemplates(dir string) error {
	templates := map[string]string{
		"landing.html":     noticesTmpl + ` auth={{.AuthMode}} loggedIn={{.LoggedIn}}`,
		"dashboard.html":   noticesTmpl + ` user={{.Username}} balance={{.Balance}} amount={{.Deposit.Amount}} txn={{.Deposit.TransactionID}} key={{.Deposit.IdempotencyKey}} upi={{.Withdraw.UpiID}} board={{len .Leaderboard}}`,
		"tournaments.html": noticesTmpl + ` mode={{.Mode}} balance={{.Balance}}{{range .Tournaments}} {{.ID}}:joined={{.Joined}},players={{.CurrentPlayers}},open={{.Expanded}}{{end}}`,
		"admin_login.html": noticesTmpl + ` error={{.Error}}`,
		"admin.html":       noticesTmpl + ` deposits={{len .Board.Deposits}} users={{len .Board.Users}} depositFilter={{.Board.Filters.DepositStatus}}`,
		"error.html":       `{{.Status}} {{.Message}}`,
	}

	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// SetSession sets the given key/value pairs in the session using a helper route
// and returns the session cookie that can be attached to subsequent test requests.
func SetSession(router *gin.Engine, route string, data map[string]interface{}) *http.Cookie {
	// Create a helper route for setting session values.
	router.GET(route, func(c *gin.Context) {
		session := sessions.Default(c)
		for key, value := range data {
			session.Set(key, value)
		}
		if err := session.Save(); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "session set")
	})

	req, _ := http.NewRequest("GET", route, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return sessionCookie(w, nil)
}

// sessionCookie returns the last session cookie written to w, or prev when
// the response did not touch the session.
func sessionCookie(w *httptest.ResponseRecorder, prev *http.Cookie) *http.Cookie {
	found := prev
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			found = cookie
		}
	}
	return found
}

// perform sends one request; form, when non-nil, is posted url-encoded.
func perform(router *gin.Engine, method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req, _ = http.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// follow performs a request and then the GET of its redirect with the
// updated session cookie, returning the final response.
func follow(t *testing.T, router *gin.Engine, method, path string, form url.Values, cookie *http.Cookie) (*httptest.ResponseRecorder, *http.Cookie) {
	w := perform(router, method, path, form, cookie)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	cookie = sessionCookie(w, cookie)
	next := perform(router, http.MethodGet, w.Header().Get("Location"), nil, cookie)
	return next, sessionCookie(next, cookie)
}

// closeRecorder records CloseSession calls.
type closeRecorder struct {
	mu     sync.Mutex
	closed []string
}

func (r *closeRecorder) CloseSession(sessionID string, views ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = append(r.closed, sessionID+":"+strings.Join(views, ","))
}
