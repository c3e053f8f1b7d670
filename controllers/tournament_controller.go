// File: controllers/tournament_controller.go
package controllers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"cashplayzz-web/logger"
	"cashplayzz-web/middleware"
	"cashplayzz-web/models"
	"cashplayzz-web/services"
)

// TournamentController serves the match listings and the join flow.
type TournamentController struct {
	Tournaments *services.TournamentService
}

// NewTournamentController creates a TournamentController.
func NewTournamentController(tournaments *services.TournamentService) *TournamentController {
	return &TournamentController{Tournaments: tournaments}
}

func listingPath(mode models.Mode, openID string) string {
	path := "/tournaments/" + url.PathEscape(string(mode))
	if openID != "" {
		path += "?open=" + url.QueryEscape(openID)
	}
	return path
}

// List renders the listing of :mode. ?open= expands one match.
func (tc *TournamentController) List(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	mode := models.Mode(c.Param("mode"))

	listing, err := tc.Tournaments.List(c.Request.Context(), sess, mode, c.Query("open"))
	var inline []models.Notice
	if err != nil {
		if errors.Is(err, services.ErrUnknownMode) {
			render(c, http.StatusNotFound, "error.html", gin.H{
				"Status":  http.StatusNotFound,
				"Message": "Unknown tournament mode.",
			})
			return
		}
		if expireUser(c, err) {
			return
		}
		logger.Warn.Printf("Tournaments: listing %s failed for session %s: %v", mode, sess.ID, err)
		inline = append(inline, errorNotice(err))
	}

	render(c, http.StatusOK, "tournaments.html", gin.H{
		"Mode":         listing.Mode,
		"Title":        listing.Mode.Title(),
		"Source":       listing.Source,
		"Tournaments":  listing.Views,
		"Balance":      listing.Balance.StringFixed(2),
		"BalanceKnown": listing.BalanceKnown,
		"Modes":        models.Modes,
	}, inline...)
}

// Join enters the player into :id of :mode and returns to the listing
// with the match expanded.
func (tc *TournamentController) Join(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	mode := models.Mode(c.Param("mode"))
	id := c.Param("id")

	outcome, err := tc.Tournaments.Join(c.Request.Context(), sess, mode, id)
	if err != nil {
		if expireUser(c, err) {
			return
		}
		logger.Warn.Printf("Join: %s/%s failed for session %s: %v", mode, id, sess.ID, err)
		middleware.AddNotice(c, errorNotice(err))
		if !mode.Valid() {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
		c.Redirect(http.StatusFound, listingPath(mode, id))
		return
	}

	logger.Info.Printf("Join: session %s joined %s/%s", sess.ID, mode, id)
	middleware.AddNotice(c, outcome.Notice)
	c.Redirect(http.StatusFound, listingPath(mode, id))
}
