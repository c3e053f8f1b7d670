// Package controllers holds the page and form handlers of the web frontend.
// File: controllers/render.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cashplayzz-web/apiclient"
	"cashplayzz-web/middleware"
	"cashplayzz-web/models"
)

// SessionCloser ends the live views of a browser session.
type SessionCloser interface {
	CloseSession(sessionID string, views ...string)
}

// clock is the time source of every controller.
var clock = time.Now

// NoticeView is a notice as handed to the templates. TTL is the remaining
// display time in milliseconds, 0 for notices that stay until dismissed.
type NoticeView struct {
	Kind string
	Text string
	TTL  int64
}

func noticeViews(notices []models.Notice, now time.Time) []NoticeView {
	out := make([]NoticeView, 0, len(notices))
	for _, n := range notices {
		out = append(out, NoticeView{Kind: n.Kind, Text: n.Text, TTL: n.Remaining(now)})
	}
	return out
}

// render writes template name with the queued notices, followed by any
// notices raised while handling this request.
func render(c *gin.Context, status int, name string, data gin.H, inline ...models.Notice) {
	now := clock()
	notices := append(middleware.TakeNotices(c, now), inline...)
	data["Notices"] = noticeViews(notices, now)
	c.HTML(status, name, data)
}

func flash(c *gin.Context, kind, text string) {
	middleware.AddNotice(c, models.Notice{Kind: kind, Text: text})
}

// errorNotice turns err into a notice. Input problems are warnings,
// everything else is an error.
func errorNotice(err error) models.Notice {
	kind := models.NoticeError
	var ve *apiclient.ValidationError
	if errors.As(err, &ve) {
		kind = models.NoticeWarning
	}
	return models.Notice{Kind: kind, Text: apiclient.UserMessage(err)}
}

// errorStatus picks the status of a page re-rendered after err.
func errorStatus(err error) int {
	var ve *apiclient.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// expireUser drops the user token after a 401 and sends the player to the
// login form. It reports whether it handled err.
func expireUser(c *gin.Context, err error) bool {
	if !apiclient.IsUnauthorized(err) {
		return false
	}
	if clearErr := middleware.ClearUserToken(c); clearErr != nil {
		c.Error(clearErr) //nolint:errcheck
	}
	middleware.AddNotice(c, errorNotice(err))
	c.Redirect(http.StatusFound, middleware.LoginPath)
	return true
}

// expireAdmin is expireUser for the admin token.
func expireAdmin(c *gin.Context, err error) bool {
	if !apiclient.IsUnauthorized(err) {
		return false
	}
	if clearErr := middleware.ClearAdminToken(c); clearErr != nil {
		c.Error(clearErr) //nolint:errcheck
	}
	middleware.AddNotice(c, errorNotice(err))
	c.Redirect(http.StatusFound, middleware.AdminLoginPath)
	return true
}
