// controllers/dashboard_controller_test.go
//go:build unit
// +build unit

package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cashplayzz-web/apiclient"
	"cashplayzz-web/middleware"
	"cashplayzz-web/models"
	"cashplayzz-web/services"
)

const testKey = "5f0c9a52-8a8e-4d8e-9b4f-3f1d2a7c6b10"

func setupDashboardRouter(t *testing.T, st userStack) (*gin.Engine, *DashboardController, *http.Cookie) {
	router := setupTestRouter(t)
	dc := NewDashboardController(st.profiles, st.wallet, services.NewLeaderboard(nil), "cashplayzz@upi", "CashPlayzz", "ws://localhost")
	pc := NewPageController()
	router.GET("/", pc.Landing)
	authed := router.Group("/", middleware.AuthRequired)
	authed.GET("/dashboard", dc.Dashboard)
	authed.POST("/dashboard/deposit", dc.Deposit)
	authed.POST("/dashboard/withdraw", dc.Withdraw)
	authed.GET("/dashboard/deposit/qr.png", dc.DepositQRCode)
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, "token="+middleware.CurrentSession(c).Token)
	})

	cookie := SetSession(router, "/set-session", map[string]interface{}{
		models.SessionKeyToken: "tok",
	})
	require.NotNil(t, cookie)
	return router, dc, cookie
}

func expectProfile(api *services.MockUserAPI, balance string) {
	api.On("Profile", mock.Anything, "tok").
		Return(models.UserProfile{Username: "ace", Balance: decimal.RequireFromString(balance)}, nil)
}

func TestDashboard_RendersProfile(t *testing.T) {
	st := newUserStack(nil)
	expectProfile(st.api, "120.5")
	router, _, cookie := setupDashboardRouter(t, st)

	w := perform(router, http.MethodGet, "/dashboard", nil, cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "user=ace balance=120.50")
	assert.Contains(t, body, "board=3")
	assert.NotContains(t, body, "key= ")
}

func TestDashboard_Unauthenticated(t *testing.T) {
	st := newUserStack(nil)
	router, _, _ := setupDashboardRouter(t, st)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
	st.api.AssertNotCalled(t, "Profile", mock.Anything, mock.Anything)
}

func TestDashboard_ExpiredTokenIsDropped(t *testing.T) {
	st := newUserStack(nil)
	st.api.On("Profile", mock.Anything, "tok").
		Return(models.UserProfile{}, &apiclient.ServerError{Status: http.StatusUnauthorized, Message: "jwt expired"}).Once()
	router, _, cookie := setupDashboardRouter(t, st)

	w, cookie := follow(t, router, http.MethodGet, "/dashboard", nil, cookie)

	assert.Contains(t, w.Body.String(), "jwt expired "+apiclient.MsgSessionExpired)
	who := perform(router, http.MethodGet, "/whoami", nil, cookie)
	assert.Equal(t, "token=", who.Body.String())
}

func TestDashboard_ProfileFailureKeepsPage(t *testing.T) {
	st := newUserStack(nil)
	st.api.On("Profile", mock.Anything, "tok").Return(models.UserProfile{}, &apiclient.NetworkError{Err: errors.New("refused")}).Once()
	router, _, cookie := setupDashboardRouter(t, st)

	w := perform(router, http.MethodGet, "/dashboard", nil, cookie)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "[error] "+apiclient.MsgNetwork)
	assert.Contains(t, w.Body.String(), "balance=0.00")
}

// ---------------- deposit ----------------

func TestDeposit_EmptyFieldMakesNoCall(t *testing.T) {
	st := newUserStack(nil)
	expectProfile(st.api, "50")
	router, _, cookie := setupDashboardRouter(t, st)

	w := perform(router, http.MethodPost, "/dashboard/deposit", url.Values{
		"amount":         {"100"},
		"transactionId":  {"  "},
		"senderName":     {"Ace"},
		"idempotencyKey": {testKey},
	}, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "[warning] Please enter your transaction ID.")
	assert.Contains(t, body, "amount=100")
	assert.Contains(t, body, "key="+testKey)
	st.api.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeposit_Success(t *testing.T) {
	st := newUserStack(nil)
	expectProfile(st.api, "50")
	st.api.On("Deposit", mock.Anything, "tok", models.DepositRequest{
		Amount:        decimal.RequireFromString("100"),
		TransactionID: "T123",
		SenderName:    "Ace",
	}, testKey).Return("Deposit request received", nil).Once()
	router, _, cookie := setupDashboardRouter(t, st)

	w, _ := follow(t, router, http.MethodPost, "/dashboard/deposit", url.Values{
		"amount":         {"100"},
		"transactionId":  {"T123"},
		"senderName":     {"Ace"},
		"idempotencyKey": {testKey},
	}, cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "[success] Deposit request received")
	// the form is cleared and gets a fresh key
	assert.Contains(t, body, "amount= ")
	assert.NotContains(t, body, testKey)
	st.api.AssertExpectations(t)
}

func TestDeposit_ServerErrorKeepsForm(t *testing.T) {
	st := newUserStack(nil)
	expectProfile(st.api, "50")
	st.api.On("Deposit", mock.Anything, "tok", mock.Anything, testKey).
		Return("", &apiclient.ServerError{Status: http.StatusConflict, Message: "Duplicate transaction ID"}).Once()
	router, _, cookie := setupDashboardRouter(t, st)

	w := perform(router, http.MethodPost, "/dashboard/deposit", url.Values{
		"amount":         {"100"},
		"transactionId":  {"T123"},
		"senderName":     {"Ace"},
		"idempotencyKey": {testKey},
	}, cookie)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "[error] Duplicate transaction ID")
	assert.Contains(t, w.Body.String(), "txn=T123")
}

// ---------------- withdraw ----------------

func TestWithdraw_MissingUPIMakesNoCall(t *testing.T) {
	st := newUserStack(nil)
	expectProfile(st.api, "50")
	router, _, cookie := setupDashboardRouter(t, st)

	w := perform(router, http.MethodPost, "/dashboard/withdraw", url.Values{"amount": {"20"}}, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "[warning] Please enter your UPI ID.")
	st.api.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything, mock.Anything)
}

func TestWithdraw_UnauthorizedDropsToken(t *testing.T) {
	st := newUserStack(nil)
	st.api.On("Withdraw", mock.Anything, "tok", mock.Anything).
		Return("", &apiclient.ServerError{Status: http.StatusUnauthorized}).Once()
	router, _, cookie := setupDashboardRouter(t, st)

	w := perform(router, http.MethodPost, "/dashboard/withdraw", url.Values{"amount": {"20"}, "upiId": {"ace@upi"}}, cookie)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
	who := perform(router, http.MethodGet, "/whoami", nil, sessionCookie(w, cookie))
	assert.Equal(t, "token=", who.Body.String())
}

// ---------------- deposit QR ----------------

func TestDepositQRCode(t *testing.T) {
	st := newUserStack(nil)
	router, dc, cookie := setupDashboardRouter(t, st)
	var content string
	dc.encode = func(c string, level qrcode.RecoveryLevel, size int) ([]byte, error) {
		content = c
		return []byte("png"), nil
	}

	w := perform(router, http.MethodGet, "/dashboard/deposit/qr.png?amount=250", nil, cookie)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png", w.Body.String())
	assert.True(t, strings.HasPrefix(content, "upi://pay?"))
	assert.Contains(t, content, "am=250.00")
}

func TestDepositQRCode_NoUPIConfigured(t *testing.T) {
	st := newUserStack(nil)
	router, dc, cookie := setupDashboardRouter(t, st)
	dc.UPIID = ""

	w := perform(router, http.MethodGet, "/dashboard/deposit/qr.png", nil, cookie)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
