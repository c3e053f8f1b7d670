// File: models/wallet.go
package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the server-driven state of a deposit or withdrawal.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Valid reports whether s is a known status. The empty status means "all".
func (s RequestStatus) Valid() bool {
	switch s {
	case "", StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// DepositRequest is the body of POST /api/deposit.
type DepositRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transactionId"`
	SenderName    string          `json:"senderName"`
}

// WithdrawRequest is the body of POST /api/withdraw.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
	UpiID  string          `json:"upiId"`
}

// Deposit mirrors an admin deposit listing row.
type Deposit struct {
	ID            string          `json:"id"`
	Username      string          `json:"username"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transactionId"`
	SenderName    string          `json:"senderName"`
	Status        RequestStatus   `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// UnmarshalJSON accepts "_id" as well as "id".
func (d *Deposit) UnmarshalJSON(data []byte) error {
	type plain Deposit
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if d.ID == "" {
		d.ID = aux.MongoID
	}
	return nil
}

// Withdrawal mirrors an admin withdrawal listing row.
type Withdrawal struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Amount    decimal.Decimal `json:"amount"`
	UpiID     string          `json:"upiId"`
	Status    RequestStatus   `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// UnmarshalJSON accepts "_id" as well as "id".
func (w *Withdrawal) UnmarshalJSON(data []byte) error {
	type plain Withdrawal
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(w)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if w.ID == "" {
		w.ID = aux.MongoID
	}
	return nil
}
