// Package controllers file: controllers/auth_controller.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cashplayzz-web/apiclient"
	"cashplayzz-web/logger"
	"cashplayzz-web/middleware"
	"cashplayzz-web/models"
	"cashplayzz-web/services"
	"cashplayzz-web/websocket"
)

const signupPath = "/?auth=signup"

// AuthController handles player signup, login and logout.
type AuthController struct {
	Users       services.UserAPI
	Profiles    *services.ProfileService
	Tournaments *services.TournamentService
	Live        SessionCloser
}

// NewAuthController creates an AuthController.
func NewAuthController(users services.UserAPI, profiles *services.ProfileService, tournaments *services.TournamentService, live SessionCloser) *AuthController {
	return &AuthController{Users: users, Profiles: profiles, Tournaments: tournaments, Live: live}
}

// ------------------ signup ------------------

// Signup registers a new player and opens the login form on success.
func (ac *AuthController) Signup(c *gin.Context) {
	req := models.SignupRequest{
		Email:    strings.TrimSpace(c.PostForm("email")),
		Username: strings.TrimSpace(c.PostForm("username")),
		Password: c.PostForm("password"),
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		logger.Warn.Println("Signup: Missing email, username or password")
		flash(c, models.NoticeWarning, "Please fill in all fields.")
		c.Redirect(http.StatusFound, signupPath)
		return
	}

	msg, err := ac.Users.Signup(c.Request.Context(), req)
	if err != nil {
		logger.Warn.Printf("Signup: failed for %s: %v", req.Username, err)
		middleware.AddNotice(c, errorNotice(err))
		c.Redirect(http.StatusFound, signupPath)
		return
	}
	if msg == "" {
		msg = "Signup successful! Please log in."
	}
	logger.Info.Printf("Signup: created account %s", req.Username)
	flash(c, models.NoticeSuccess, msg)
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

// ------------------ login handling ------------------

// Login signs a player in with an email or username and a password.
func (ac *AuthController) Login(c *gin.Context) {
	req := models.LoginRequest{
		Identifier: strings.TrimSpace(c.PostForm("identifier")),
		Password:   c.PostForm("password"),
	}
	if req.Identifier == "" || req.Password == "" {
		logger.Warn.Println("Login: Missing identifier or password")
		flash(c, models.NoticeWarning, "Please fill in all fields.")
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	result, err := ac.Users.Login(c.Request.Context(), req)
	if err != nil {
		logger.Warn.Printf("Login: failed for %s: %v", req.Identifier, err)
		middleware.AddNotice(c, errorNotice(err))
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}
	if result.Token == "" {
		// the dashboard guard will send the player straight back
		logger.Warn.Printf("Login: backend accepted %s but returned no token", req.Identifier)
	}

	// drop state a previous player of this browser left behind
	sess := middleware.CurrentSession(c)
	ac.forget(sess)

	if err := middleware.SetUserToken(c, result.Token); err != nil {
		logger.Error.Printf("Login: failed to save session: %v", err)
		flash(c, models.NoticeError, apiclient.MsgGeneric)
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}
	msg := result.Message
	if msg == "" {
		msg = "Login successful!"
	}
	logger.Info.Printf("Login: %s signed in", req.Identifier)
	flash(c, models.NoticeSuccess, msg)
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the player token and closes the player's live views.
func (ac *AuthController) Logout(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	ac.forget(sess)
	if ac.Live != nil {
		ac.Live.CloseSession(sess.ID, websocket.ViewDashboard)
	}
	if err := middleware.ClearUserToken(c); err != nil {
		logger.Error.Printf("Logout: Error saving session during logout: %v", err)
	} else {
		logger.Info.Println("Logout: Session cleared successfully")
	}
	c.Redirect(http.StatusFound, "/")
}

func (ac *AuthController) forget(sess models.Session) {
	ac.Profiles.Forget(sess)
	ac.Tournaments.Forget(sess)
}
