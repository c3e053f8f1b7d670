// File: services/wallet_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"cashplayzz-web/apiclient"
	"cashplayzz-web/logger"
	"cashplayzz-web/models"
)

// DepositForm is the raw deposit form as posted by the browser.
type DepositForm struct {
	Amount         string
	TransactionID  string
	SenderName     string
	IdempotencyKey string
}

// WithdrawForm is the raw withdrawal form as posted by the browser.
type WithdrawForm struct {
	Amount string
	UpiID  string
}

// WalletService submits deposit and withdrawal requests. Nothing is sent
// until every field passes validation.
type WalletService struct {
	api      UserAPI
	balances *BalanceBook
}

// NewWalletService creates a WalletService.
func NewWalletService(api UserAPI, balances *BalanceBook) *WalletService {
	return &WalletService{api: api, balances: balances}
}

// ParseAmount validates a user-entered money amount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, &apiclient.ValidationError{Field: "amount", Message: "Please enter an amount."}
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, &apiclient.ValidationError{Field: "amount", Message: "Please enter a valid amount."}
	}
	return amount, nil
}

func required(field, value, label string) error {
	if strings.TrimSpace(value) == "" {
		return &apiclient.ValidationError{Field: field, Message: fmt.Sprintf("Please enter your %s.", label)}
	}
	return nil
}

// Deposit validates and submits a deposit request. The returned string is
// the server's confirmation message.
func (w *WalletService) Deposit(ctx context.Context, sess models.Session, form DepositForm) (string, error) {
	amount, err := ParseAmount(form.Amount)
	if err != nil {
		return "", err
	}
	if err := required("transactionId", form.TransactionID, "transaction ID"); err != nil {
		return "", err
	}
	if err := required("senderName", form.SenderName, "sender name"); err != nil {
		return "", err
	}

	req := models.DepositRequest{
		Amount:        amount,
		TransactionID: strings.TrimSpace(form.TransactionID),
		SenderName:    strings.TrimSpace(form.SenderName),
	}
	msg, err := w.api.Deposit(ctx, sess.Token, req, form.IdempotencyKey)
	if err != nil {
		return "", fmt.Errorf("deposit: %w", err)
	}
	logger.Info.Printf("WalletService: deposit of %s submitted for session %s", amount, sess.ID)
	return msg, nil
}

// Withdraw validates and submits a withdrawal. On success the amount is
// taken off the shown balance until the next server value replaces it.
func (w *WalletService) Withdraw(ctx context.Context, sess models.Session, form WithdrawForm) (string, error) {
	amount, err := ParseAmount(form.Amount)
	if err != nil {
		return "", err
	}
	if err := required("upiId", form.UpiID, "UPI ID"); err != nil {
		return "", err
	}

	seq := w.balances.Begin(sess.ID)
	req := models.WithdrawRequest{Amount: amount, UpiID: strings.TrimSpace(form.UpiID)}
	msg, err := w.api.Withdraw(ctx, sess.Token, req)
	if err != nil {
		return "", fmt.Errorf("withdraw: %w", err)
	}
	if !w.balances.Adjust(sess.ID, seq, amount.Neg()) {
		logger.Debug.Printf("WalletService: optimistic debit superseded for session %s", sess.ID)
	}
	logger.Info.Printf("WalletService: withdrawal of %s submitted for session %s", amount, sess.ID)
	return msg, nil
}
