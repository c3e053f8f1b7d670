// Package controllers file: controllers/admin_controller.go
package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cashplayzz-web/apiclient"
	"cashplayzz-web/logger"
	"cashplayzz-web/middleware"
	"cashplayzz-web/models"
	"cashplayzz-web/services"
	"cashplayzz-web/websocket"
)

// AdminController handles admin login and the admin panel.
type AdminController struct {
	Admin    *services.AdminService
	Live     SessionCloser
	Location *time.Location // zone of the tournament start time inputs
}

// NewAdminController creates an AdminController.
func NewAdminController(admin *services.AdminService, live SessionCloser, loc *time.Location) *AdminController {
	if loc == nil {
		loc = time.Local
	}
	return &AdminController{Admin: admin, Live: live, Location: loc}
}

// ---------------- admin login ----------------

// LoginPage renders the admin login form.
func (ac *AdminController) LoginPage(c *gin.Context) {
	if middleware.CurrentSession(c).HasAdmin() {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	render(c, http.StatusOK, "admin_login.html", gin.H{})
}

// Login signs an admin in.
func (ac *AdminController) Login(c *gin.Context) {
	username := c.PostForm("username")
	token, err := ac.Admin.Login(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		logger.Warn.Printf("AdminLogin: failed for %q: %v", username, err)
		status := errorStatus(err)
		if apiclient.IsUnauthorized(err) {
			status = http.StatusUnauthorized
		}
		render(c, status, "admin_login.html", gin.H{
			"Username": username,
			"Error":    adminLoginMessage(err),
		})
		return
	}

	if err := middleware.SetAdminToken(c, token); err != nil {
		logger.Error.Printf("AdminLogin: failed to save session: %v", err)
		render(c, http.StatusInternalServerError, "admin_login.html", gin.H{
			"Username": username,
			"Error":    apiclient.MsgGeneric,
		})
		return
	}
	logger.Info.Printf("AdminLogin: %s signed in", username)
	c.Redirect(http.StatusFound, "/admin")
}

// adminLoginMessage keeps a wrong password from reading as an expired
// session.
func adminLoginMessage(err error) string {
	if apiclient.IsUnauthorized(err) {
		return "Invalid username or password."
	}
	return apiclient.UserMessage(err)
}

// Logout clears the admin token and closes the admin live views.
func (ac *AdminController) Logout(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	ac.Admin.Forget(sess.ID)
	if ac.Live != nil {
		ac.Live.CloseSession(sess.ID, websocket.ViewAdmin)
	}
	if err := middleware.ClearAdminToken(c); err != nil {
		logger.Error.Printf("AdminLogout: Error saving session: %v", err)
	}
	c.Redirect(http.StatusFound, middleware.AdminLoginPath)
}

// ---------------- admin panel ----------------

// Panel refreshes the board and renders it. ?depositStatus= and
// ?withdrawalStatus= change the request list filters.
func (ac *AdminController) Panel(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	var inline []models.Notice

	dep, hasDep := c.GetQuery("depositStatus")
	wd, hasWd := c.GetQuery("withdrawalStatus")
	if hasDep || hasWd {
		filters := ac.Admin.Board(sess.ID).Filters
		if hasDep {
			filters.DepositStatus = models.RequestStatus(dep)
		}
		if hasWd {
			filters.WithdrawalStatus = models.RequestStatus(wd)
		}
		if err := ac.Admin.SetFilters(sess.ID, filters); err != nil {
			inline = append(inline, errorNotice(err))
		}
	}

	report := ac.Admin.Refresh(c.Request.Context(), sess)
	if ac.expireOnReport(c, report) {
		return
	}
	inline = append(inline, failureNotices(report)...)

	board := ac.Admin.Board(sess.ID)
	render(c, http.StatusOK, "admin.html", gin.H{
		"Board":           board,
		"Statuses":        []models.RequestStatus{models.StatusPending, models.StatusApproved, models.StatusRejected},
		"Modes":           models.Modes,
		"StartTimeLayout": services.StartTimeLayout,
		"Location":        ac.Location,
	}, inline...)
}

func (ac *AdminController) expireOnReport(c *gin.Context, report services.RefreshReport) bool {
	for _, f := range report.Failures {
		if expireAdmin(c, f.Err) {
			return true
		}
	}
	return false
}

func failureNotices(report services.RefreshReport) []models.Notice {
	out := make([]models.Notice, 0, len(report.Failures))
	for _, f := range report.Failures {
		out = append(out, models.Notice{
			Kind: models.NoticeWarning,
			Text: fmt.Sprintf("Could not load %s: %s", f.Section, apiclient.UserMessage(f.Err)),
		})
	}
	return out
}

// ---------------- admin actions ----------------

type adminAction func(ctx context.Context, sess models.Session) (services.ActionResult, error)

// run performs an action and returns to the panel with its outcome.
func (ac *AdminController) run(c *gin.Context, name, fallback string, action adminAction) {
	sess := middleware.CurrentSession(c)
	result, err := action(c.Request.Context(), sess)
	if err != nil {
		if expireAdmin(c, err) {
			return
		}
		logger.Warn.Printf("AdminAction: %s failed: %v", name, err)
		middleware.AddNotice(c, errorNotice(err))
	} else {
		msg := result.Message
		if msg == "" {
			msg = fallback
		}
		flash(c, models.NoticeSuccess, msg)
	}
	if ac.expireOnReport(c, result.Report) {
		return
	}
	for _, n := range failureNotices(result.Report) {
		middleware.AddNotice(c, n)
	}
	c.Redirect(http.StatusFound, "/admin")
}

func (ac *AdminController) tournamentForm(c *gin.Context) services.TournamentForm {
	return services.TournamentForm{
		Title:        c.PostForm("title"),
		Mode:         c.PostForm("mode"),
		Map:          c.PostForm("map"),
		SquadType:    c.PostForm("squadType"),
		EntryFee:     c.PostForm("entryFee"),
		PrizePool:    c.PostForm("prizePool"),
		StartTime:    c.PostForm("startTime"),
		MaxPlayers:   c.PostForm("maxPlayers"),
		RoomID:       c.PostForm("roomId"),
		RoomPassword: c.PostForm("roomPassword"),
		Rules:        c.PostForm("rules"),
		Location:     ac.Location,
	}
}

// CreateTournament handles POST /admin/tournaments.
func (ac *AdminController) CreateTournament(c *gin.Context) {
	form := ac.tournamentForm(c)
	ac.run(c, "create tournament", "Tournament created.", func(ctx context.Context, sess models.Session) (services.ActionResult, error) {
		return ac.Admin.CreateTournament(ctx, sess, form)
	})
}

// UpdateTournament handles POST /admin/tournaments/:id.
func (ac *AdminController) UpdateTournament(c *gin.Context) {
	id, form := c.Param("id"), ac.tournamentForm(c)
	ac.run(c, "update tournament", "Tournament updated.", func(ctx context.Context, sess models.Session) (services.ActionResult, error) {
		return ac.Admin.UpdateTournament(ctx, sess, id, form)
	})
}

// DeleteTournament handles POST /admin/tournaments/:id/delete.
func (ac *AdminController) DeleteTournament(c *gin.Context) {
	id := c.Param("id")
	ac.run(c, "delete tournament", "Tournament deleted.", func(ctx context.Context, sess models.Session) (services.ActionResult, error) {
		return ac.Admin.DeleteTournament(ctx, sess, id)
	})
}

// ReviewDeposit handles POST /admin/deposits/:id/:decision.
func (ac *AdminController) ReviewDeposit(c *gin.Context) {
	id, decision := c.Param("id"), c.Param("decision")
	ac.run(c, decision+" deposit", "Deposit updated.", func(ctx context.Context, sess models.Session) (services.ActionResult, error) {
		return ac.Admin.ReviewDeposit(ctx, sess, id, decision)
	})
}

// ReviewWithdrawal handles POST /admin/withdrawals/:id/:decision.
func (ac *AdminController) ReviewWithdrawal(c *gin.Context) {
	id, decision := c.Param("id"), c.Param("decision")
	ac.run(c, decision+" withdrawal", "Withdrawal updated.", func(ctx context.Context, sess models.Session) (services.ActionResult, error) {
		return ac.Admin.ReviewWithdrawal(ctx, sess, id, decision)
	})
}

// UpdateUserBalance handles POST /admin/users/:id.
func (ac *AdminController) UpdateUserBalance(c *gin.Context) {
	id, balance := c.Param("id"), c.PostForm("balance")
	ac.run(c, "update user", "User updated.", func(ctx context.Context, sess models.Session) (services.ActionResult, error) {
		return ac.Admin.UpdateUserBalance(ctx, sess, id, balance)
	})
}

// DeleteUser handles POST /admin/users/:id/delete.
func (ac *AdminController) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	ac.run(c, "delete user", "User deleted.", func(ctx context.Context, sess models.Session) (services.ActionResult, error) {
		return ac.Admin.DeleteUser(ctx, sess, id)
	})
}
