// File: controllers/dashboard_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cashplayzz-web/logger"
	"cashplayzz-web/middleware"
	"cashplayzz-web/models"
	"cashplayzz-web/services"
)

const qrCodeSize = 256

// DashboardController serves the player dashboard and its wallet forms.
type DashboardController struct {
	Profiles     *services.ProfileService
	Wallet       *services.WalletService
	Leaderboard  *services.Leaderboard
	UPIID        string
	UPIPayeeName string
	WebsocketURL string

	// encode is swapped in tests
	encode services.QRCodeEncoder
}

// NewDashboardController creates a DashboardController.
func NewDashboardController(profiles *services.ProfileService, wallet *services.WalletService, leaderboard *services.Leaderboard, upiID, payeeName, websocketURL string) *DashboardController {
	return &DashboardController{
		Profiles:     profiles,
		Wallet:       wallet,
		Leaderboard:  leaderboard,
		UPIID:        upiID,
		UPIPayeeName: payeeName,
		WebsocketURL: websocketURL,
	}
}

// dashboardForms holds the values echoed back into the wallet forms.
type dashboardForms struct {
	Deposit  services.DepositForm
	Withdraw services.WithdrawForm
}

// Dashboard renders the dashboard with a fresh profile.
func (dc *DashboardController) Dashboard(c *gin.Context) {
	dc.renderDashboard(c, http.StatusOK, dashboardForms{})
}

// renderDashboard loads the profile and renders the page. A failed load
// falls back to the last known balance.
func (dc *DashboardController) renderDashboard(c *gin.Context, status int, forms dashboardForms, inline ...models.Notice) {
	sess := middleware.CurrentSession(c)
	profile, err := dc.Profiles.Load(c.Request.Context(), sess)
	if err != nil {
		if expireUser(c, err) {
			return
		}
		logger.Warn.Printf("Dashboard: profile load failed for session %s: %v", sess.ID, err)
		inline = append(inline, errorNotice(err))
		profile.Balance, _ = dc.Profiles.Balance(sess)
	}

	if forms.Deposit.IdempotencyKey == "" {
		forms.Deposit.IdempotencyKey = uuid.NewString()
	}

	now := clock()
	target := services.NextHour(now)
	render(c, status, "dashboard.html", gin.H{
		"Username":        profile.Username,
		"Balance":         profile.Balance.StringFixed(2),
		"Countdown":       services.FormatRemaining(services.TimeUntil(target, now)),
		"CountdownTarget": target,
		"Leaderboard":     dc.Leaderboard.Generate(now.Hour()),
		"Modes":           models.Modes,
		"UPIID":           dc.UPIID,
		"UPIPayeeName":    dc.UPIPayeeName,
		"Deposit":         forms.Deposit,
		"Withdraw":        forms.Withdraw,
		"WebsocketURL":    dc.WebsocketURL,
	}, inline...)
}

// ---------------- wallet forms ----------------

// Deposit submits a deposit request. On failure the page is rendered
// again with the entered values and the same idempotency key.
func (dc *DashboardController) Deposit(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	form := services.DepositForm{
		Amount:         c.PostForm("amount"),
		TransactionID:  c.PostForm("transactionId"),
		SenderName:     c.PostForm("senderName"),
		IdempotencyKey: c.PostForm("idempotencyKey"),
	}
	if _, err := uuid.Parse(form.IdempotencyKey); err != nil {
		form.IdempotencyKey = uuid.NewString()
	}

	msg, err := dc.Wallet.Deposit(c.Request.Context(), sess, form)
	if err != nil {
		if expireUser(c, err) {
			return
		}
		logger.Warn.Printf("Deposit: request failed for session %s: %v", sess.ID, err)
		dc.renderDashboard(c, errorStatus(err), dashboardForms{Deposit: form}, errorNotice(err))
		return
	}
	if msg == "" {
		msg = "Deposit request submitted."
	}
	flash(c, models.NoticeSuccess, msg)
	c.Redirect(http.StatusFound, "/dashboard")
}

// Withdraw submits a withdrawal request.
func (dc *DashboardController) Withdraw(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	form := services.WithdrawForm{
		Amount: c.PostForm("amount"),
		UpiID:  c.PostForm("upiId"),
	}

	msg, err := dc.Wallet.Withdraw(c.Request.Context(), sess, form)
	if err != nil {
		if expireUser(c, err) {
			return
		}
		logger.Warn.Printf("Withdraw: request failed for session %s: %v", sess.ID, err)
		dc.renderDashboard(c, errorStatus(err), dashboardForms{Withdraw: form}, errorNotice(err))
		return
	}
	if msg == "" {
		msg = "Withdrawal request submitted."
	}
	flash(c, models.NoticeSuccess, msg)
	c.Redirect(http.StatusFound, "/dashboard")
}

// DepositQRCode serves the UPI payment QR code as a PNG. An optional
// ?amount= is embedded when it is a valid positive amount.
func (dc *DashboardController) DepositQRCode(c *gin.Context) {
	amount := decimal.Zero
	if raw := strings.TrimSpace(c.Query("amount")); raw != "" {
		if a, err := services.ParseAmount(raw); err == nil {
			amount = a
		}
	}

	png, err := services.GenerateUPIQRCode(dc.UPIID, dc.UPIPayeeName, amount, qrCodeSize, dc.encode)
	if err != nil {
		if errors.Is(err, services.ErrNoUPIID) {
			c.String(http.StatusNotFound, "No UPI account configured")
			return
		}
		logger.Error.Printf("DepositQRCode: Failed to generate QR code: %v", err)
		c.String(http.StatusInternalServerError, "Failed to generate QR code")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
