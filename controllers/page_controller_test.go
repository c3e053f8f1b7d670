// controllers/page_controller_test.go
//go:build unit
// +build unit

package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"cashplayzz-web/models"
)

// TestHealth tests the Health function
func TestHealth(t *testing.T) {
	router := setupTestRouter(t)
	router.GET("/health", NewPageController().Health)

	w := perform(router, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestLanding_AuthMode(t *testing.T) {
	router := setupTestRouter(t)
	router.GET("/", NewPageController().Landing)

	tests := []struct {
		query string
		want  string
	}{
		{"", "auth= "},
		{"?auth=login", "auth=login "},
		{"?auth=signup", "auth=signup "},
		{"?auth=<script>", "auth= "},
	}
	for _, tt := range tests {
		w := perform(router, http.MethodGet, "/"+tt.query, nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), tt.want, tt.query)
	}
}

func TestLanding_LoggedIn(t *testing.T) {
	router := setupTestRouter(t)
	router.GET("/", NewPageController().Landing)
	cookie := SetSession(router, "/set-session", map[string]interface{}{
		models.SessionKeyToken: "tok",
	})

	w := perform(router, http.MethodGet, "/", nil, cookie)

	assert.Contains(t, w.Body.String(), "loggedIn=true")
}

func TestNotFound(t *testing.T) {
	router := setupTestRouter(t)
	router.NoRoute(NewPageController().NotFound)

	w := perform(router, http.MethodGet, "/nowhere", nil, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found.")
}
