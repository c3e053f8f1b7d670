// router.go
package main

import (
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"cashplayzz-web/config"
	"cashplayzz-web/controllers"
	"cashplayzz-web/metrics"
	"cashplayzz-web/middleware"
	"cashplayzz-web/models"
	"cashplayzz-web/services"
	"cashplayzz-web/websocket"
)

// backend is everything the frontend asks of the CashPlayzz API.
type backend interface {
	services.UserAPI
	services.AdminAPI
}

// deps are the long-lived objects shared by the handlers.
type deps struct {
	cfg      *config.Config
	api      backend
	recorder *metrics.Recorder
	hub      *websocket.Hub
	store    sessions.Store
	janitor  *services.Janitor
}

// templateFuncs are available in every page template.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"formatTime": func(t time.Time, layout string) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(layout)
		},
		"inZone": func(t time.Time, loc *time.Location) time.Time {
			if loc == nil {
				return t
			}
			return t.In(loc)
		},
		"lines": func(lines []string) string { return strings.Join(lines, "\n") },
	}
}

// sourceMap turns the per-mode source settings into the service map.
func sourceMap(cfg *config.Config) map[models.Mode]string {
	return map[models.Mode]string{
		models.ModeBattleRoyale: cfg.BattleRoyaleSource,
		models.ModeClashSquad:   cfg.ClashSquadSource,
	}
}

// setupRouter wires the services, controllers and routes.
func setupRouter(d deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.RequestID(), middleware.Metrics(d.recorder))
	router.Use(sessions.Sessions(middleware.SessionCookieName, d.store), middleware.EnsureSession())

	router.SetFuncMap(templateFuncs())
	router.LoadHTMLGlob(filepath.Join(d.cfg.TemplatesDir, "*.html"))

	// ---------------- services ----------------
	balances := services.NewBalanceBook()
	profiles := services.NewProfileService(d.api, balances)
	tournaments := services.NewTournamentService(d.api, balances, sourceMap(d.cfg), d.cfg.RoomRevealWindow)
	wallet := services.NewWalletService(d.api, balances)
	leaderboard := services.NewLeaderboard(nil)
	admin := services.NewAdminService(d.api)
	if d.janitor != nil {
		d.janitor.Add(balances, tournaments, admin)
	}

	// ---------------- controllers ----------------
	pageController := controllers.NewPageController()
	authController := controllers.NewAuthController(d.api, profiles, tournaments, d.hub)
	dashboardController := controllers.NewDashboardController(profiles, wallet, leaderboard, d.cfg.UPIID, d.cfg.UPIPayeeName, d.cfg.WebsocketURL)
	tournamentController := controllers.NewTournamentController(tournaments)
	adminController := controllers.NewAdminController(admin, d.hub, time.Local)
	live := websocket.NewHandler(d.hub, profiles, leaderboard, admin, websocket.Intervals{
		Tick:         time.Second,
		ProfilePoll:  d.cfg.ProfilePollInterval,
		Leaderboard:  d.cfg.LeaderboardInterval,
		AdminRefresh: d.cfg.AdminRefreshInterval,
	}, d.cfg.ApplicationURL)

	// Public routes
	router.GET("/health", pageController.Health)
	router.GET("/metrics", gin.WrapH(d.recorder.Handler()))
	router.GET("/", pageController.Landing)
	router.POST("/signup", authController.Signup)
	router.POST("/login", authController.Login)
	router.GET("/logout", authController.Logout)

	// Player routes
	protected := router.Group("/", middleware.AuthRequired)
	{
		protected.GET("/dashboard", dashboardController.Dashboard)
		protected.POST("/dashboard/deposit", dashboardController.Deposit)
		protected.POST("/dashboard/withdraw", dashboardController.Withdraw)
		protected.GET("/dashboard/deposit/qr.png", dashboardController.DepositQRCode)
		protected.GET("/tournaments/:mode", tournamentController.List)
		protected.POST("/tournaments/:mode/:id/join", tournamentController.Join)
		protected.GET("/ws/dashboard", live.ServeDashboard)
	}

	// Admin routes
	router.GET("/admin/login", adminController.LoginPage)
	router.POST("/admin/login", adminController.Login)
	router.GET("/admin/logout", adminController.Logout)
	adminRoutes := router.Group("/admin", middleware.AdminRequired())
	{
		adminRoutes.GET("", adminController.Panel)
		adminRoutes.POST("/tournaments", adminController.CreateTournament)
		adminRoutes.POST("/tournaments/:id", adminController.UpdateTournament)
		adminRoutes.POST("/tournaments/:id/delete", adminController.DeleteTournament)
		adminRoutes.POST("/deposits/:id/:decision", adminController.ReviewDeposit)
		adminRoutes.POST("/withdrawals/:id/:decision", adminController.ReviewWithdrawal)
		adminRoutes.POST("/users/:id", adminController.UpdateUserBalance)
		adminRoutes.POST("/users/:id/delete", adminController.DeleteUser)
	}
	router.GET("/ws/admin", middleware.AdminRequired(), live.ServeAdmin)

	router.NoRoute(pageController.NotFound)
	return router
}
