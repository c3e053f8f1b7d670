// controllers/admin_controller_test.go
//go:build unit
// +build unit

package controllers

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cashplayzz-web/apiclient"
	"cashplayzz-web/middleware"
	"cashplayzz-web/models"
	"cashplayzz-web/services"
)

func setupAdminRouter(t *testing.T, api *services.MockAdminAPI, live SessionCloser) *gin.Engine {
	router := setupTestRouter(t)
	ac := NewAdminController(services.NewAdminService(api), live, time.UTC)

	router.GET("/admin/login", ac.LoginPage)
	router.POST("/admin/login", ac.Login)
	router.GET("/admin/logout", ac.Logout)
	admin := router.Group("/admin", middleware.AdminRequired())
	admin.GET("", ac.Panel)
	admin.POST("/tournaments", ac.CreateTournament)
	admin.POST("/tournaments/:id", ac.UpdateTournament)
	admin.POST("/tournaments/:id/delete", ac.DeleteTournament)
	admin.POST("/deposits/:id/:decision", ac.ReviewDeposit)
	admin.POST("/withdrawals/:id/:decision", ac.ReviewWithdrawal)
	admin.POST("/users/:id", ac.UpdateUserBalance)
	admin.POST("/users/:id/delete", ac.DeleteUser)
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, "admin="+middleware.CurrentSession(c).AdminToken)
	})
	return router
}

func adminCookie(t *testing.T, router *gin.Engine) *http.Cookie {
	cookie := SetSession(router, "/set-session", map[string]interface{}{
		models.SessionKeyAdminToken: "atok",
	})
	require.NotNil(t, cookie)
	return cookie
}

// expectBoard answers every refresh with the same board.
func expectBoard(api *services.MockAdminAPI, usersErr error) {
	api.On("AdminStats", mock.Anything, "atok").Return(models.AdminStats{PendingDeposits: 1}, nil)
	api.On("AdminTournaments", mock.Anything, "atok").Return([]models.TournamentRecord{{ID: "t1"}}, nil)
	api.On("AdminDeposits", mock.Anything, "atok", mock.Anything).Return([]models.Deposit{{ID: "d1", Status: models.StatusPending}}, nil)
	api.On("AdminWithdrawals", mock.Anything, "atok", mock.Anything).Return([]models.Withdrawal{}, nil)
	if usersErr != nil {
		api.On("AdminUsers", mock.Anything, "atok").Return(nil, usersErr)
	} else {
		api.On("AdminUsers", mock.Anything, "atok").Return([]models.AdminUser{{ID: "u1"}, {ID: "u2"}}, nil)
	}
}

func TestAdminPanel_Unauthorized(t *testing.T) {
	router := setupAdminRouter(t, new(services.MockAdminAPI), nil)

	w := perform(router, http.MethodGet, "/admin", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminPanel_RendersBoard(t *testing.T) {
	api := new(services.MockAdminAPI)
	expectBoard(api, nil)
	router := setupAdminRouter(t, api, nil)

	w := perform(router, http.MethodGet, "/admin", nil, adminCookie(t, router))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deposits=1 users=2")
}

func TestAdminPanel_FilterChange(t *testing.T) {
	api := new(services.MockAdminAPI)
	api.On("AdminStats", mock.Anything, "atok").Return(models.AdminStats{}, nil)
	api.On("AdminTournaments", mock.Anything, "atok").Return([]models.TournamentRecord{}, nil)
	api.On("AdminDeposits", mock.Anything, "atok", models.StatusPending).Return([]models.Deposit{{ID: "d1"}}, nil).Once()
	api.On("AdminWithdrawals", mock.Anything, "atok", models.RequestStatus("")).Return([]models.Withdrawal{}, nil).Once()
	api.On("AdminUsers", mock.Anything, "atok").Return([]models.AdminUser{}, nil)
	router := setupAdminRouter(t, api, nil)

	w := perform(router, http.MethodGet, "/admin?depositStatus=pending", nil, adminCookie(t, router))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "depositFilter=pending")
	api.AssertExpectations(t)
}

func TestAdminPanel_SectionFailureWarns(t *testing.T) {
	api := new(services.MockAdminAPI)
	expectBoard(api, &apiclient.ServerError{Status: http.StatusOK, Message: "db timeout"})
	router := setupAdminRouter(t, api, nil)

	w := perform(router, http.MethodGet, "/admin", nil, adminCookie(t, router))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "[warning] Could not load users: db timeout")
	assert.Contains(t, w.Body.String(), "deposits=1 users=0")
}

func TestAdminPanel_ExpiredTokenIsDropped(t *testing.T) {
	api := new(services.MockAdminAPI)
	unauthorized := &apiclient.ServerError{Status: http.StatusUnauthorized, Message: "jwt expired"}
	api.On("AdminStats", mock.Anything, "atok").Return(models.AdminStats{}, unauthorized)
	api.On("AdminTournaments", mock.Anything, "atok").Return(nil, unauthorized)
	api.On("AdminDeposits", mock.Anything, "atok", mock.Anything).Return(nil, unauthorized)
	api.On("AdminWithdrawals", mock.Anything, "atok", mock.Anything).Return(nil, unauthorized)
	api.On("AdminUsers", mock.Anything, "atok").Return(nil, unauthorized)
	router := setupAdminRouter(t, api, nil)

	w := perform(router, http.MethodGet, "/admin", nil, adminCookie(t, router))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.AdminLoginPath, w.Header().Get("Location"))
	who := perform(router, http.MethodGet, "/whoami", nil, sessionCookie(w, nil))
	assert.Equal(t, "admin=", who.Body.String())
}

// ---------------- admin login ----------------

func TestAdminLogin_Success(t *testing.T) {
	api := new(services.MockAdminAPI)
	api.On("AdminLogin", mock.Anything, models.AdminLoginRequest{Username: "root", Password: "pw"}).Return("atok", nil).Once()
	router := setupAdminRouter(t, api, nil)

	w := perform(router, http.MethodPost, "/admin/login", url.Values{"username": {"root"}, "password": {"pw"}}, nil)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
	who := perform(router, http.MethodGet, "/whoami", nil, sessionCookie(w, nil))
	assert.Equal(t, "admin=atok", who.Body.String())
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	api := new(services.MockAdminAPI)
	api.On("AdminLogin", mock.Anything, mock.Anything).
		Return("", &apiclient.ServerError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}).Once()
	router := setupAdminRouter(t, api, nil)

	w := perform(router, http.MethodPost, "/admin/login", url.Values{"username": {"root"}, "password": {"bad"}}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "error=Invalid username or password.")
}

func TestAdminLogin_MissingFieldsMakesNoCall(t *testing.T) {
	api := new(services.MockAdminAPI)
	router := setupAdminRouter(t, api, nil)

	w := perform(router, http.MethodPost, "/admin/login", url.Values{"username": {"root"}}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error=Please enter your password.")
	api.AssertNotCalled(t, "AdminLogin", mock.Anything, mock.Anything)
}

func TestAdminLogout_ClosesAdminView(t *testing.T) {
	live := &closeRecorder{}
	router := setupAdminRouter(t, new(services.MockAdminAPI), live)
	cookie := adminCookie(t, router)

	w := perform(router, http.MethodGet, "/admin/logout", nil, cookie)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.AdminLoginPath, w.Header().Get("Location"))
	require.Len(t, live.closed, 1)
	assert.Contains(t, live.closed[0], ":admin")
	who := perform(router, http.MethodGet, "/whoami", nil, sessionCookie(w, cookie))
	assert.Equal(t, "admin=", who.Body.String())
}

// ---------------- admin actions ----------------

func TestAdminAction_FailureStillRefreshes(t *testing.T) {
	api := new(services.MockAdminAPI)
	expectBoard(api, nil)
	api.On("ReviewDeposit", mock.Anything, "atok", "d1", services.DecisionApprove).
		Return("", &apiclient.ServerError{Status: http.StatusBadRequest, Message: "Already processed"}).Once()
	router := setupAdminRouter(t, api, nil)

	w, _ := follow(t, router, http.MethodPost, "/admin/deposits/d1/approve", url.Values{}, adminCookie(t, router))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "[error] Already processed")
	// once after the action, once for the panel
	api.AssertNumberOfCalls(t, "AdminStats", 2)
}

func TestAdminAction_Success(t *testing.T) {
	api := new(services.MockAdminAPI)
	expectBoard(api, nil)
	api.On("DeleteUser", mock.Anything, "atok", "u2").Return("User removed", nil).Once()
	router := setupAdminRouter(t, api, nil)

	w, _ := follow(t, router, http.MethodPost, "/admin/users/u2/delete", url.Values{}, adminCookie(t, router))

	assert.Contains(t, w.Body.String(), "[success] User removed")
	api.AssertExpectations(t)
}

func TestAdminAction_InvalidInputSkipsCall(t *testing.T) {
	api := new(services.MockAdminAPI)
	expectBoard(api, nil)
	router := setupAdminRouter(t, api, nil)

	w, _ := follow(t, router, http.MethodPost, "/admin/users/u1", url.Values{"balance": {"-5"}}, adminCookie(t, router))

	assert.Contains(t, w.Body.String(), "[warning] Please enter a valid balance.")
	api.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	api.AssertNumberOfCalls(t, "AdminStats", 1)
}

func TestAdminAction_CreateTournament(t *testing.T) {
	api := new(services.MockAdminAPI)
	expectBoard(api, nil)
	api.On("CreateTournament", mock.Anything, "atok", mock.MatchedBy(func(in models.TournamentInput) bool {
		return in.Title == "Evening Cup" && in.StartTime.Equal(time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC))
	})).Return("Tournament created successfully", nil).Once()
	router := setupAdminRouter(t, api, nil)

	w, _ := follow(t, router, http.MethodPost, "/admin/tournaments", url.Values{
		"title":      {"Evening Cup"},
		"mode":       {"battleroyale"},
		"squadType":  {"Solo"},
		"entryFee":   {"20"},
		"prizePool":  {"500"},
		"startTime":  {"2026-10-15T18:30"},
		"maxPlayers": {"48"},
		"rules":      {"No emulators\nNo teaming"},
	}, adminCookie(t, router))

	assert.Contains(t, w.Body.String(), "[success] Tournament created successfully")
	api.AssertExpectations(t)
}
