// Package controllers file: controllers/page_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cashplayzz-web/logger"
	"cashplayzz-web/middleware"
	"cashplayzz-web/models"
)

// PageController serves the pages that need no backend data.
type PageController struct{}

// NewPageController creates a PageController.
func NewPageController() *PageController {
	return &PageController{}
}

// Health reports that the process is up.
func (pc *PageController) Health(c *gin.Context) {
	logger.Debug.Println("Health: Health check requested")
	c.String(http.StatusOK, "OK")
}

// Landing renders the landing page. ?auth=login or ?auth=signup opens the
// matching form.
func (pc *PageController) Landing(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	authMode := c.Query("auth")
	if authMode != "login" && authMode != "signup" {
		authMode = ""
	}
	render(c, http.StatusOK, "landing.html", gin.H{
		"AuthMode": authMode,
		"LoggedIn": sess.HasUser(),
		"Modes":    models.Modes,
	})
}

// NotFound renders the error page for unknown routes.
func (pc *PageController) NotFound(c *gin.Context) {
	logger.Warn.Printf("NotFound: %s %s", c.Request.Method, c.Request.URL.Path)
	render(c, http.StatusNotFound, "error.html", gin.H{
		"Status":  http.StatusNotFound,
		"Message": "Page not found.",
	})
}
