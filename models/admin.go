// File: models/admin.go
package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AdminLoginRequest is the body of POST /api/admin/login.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminStats mirrors GET /api/admin/dashboard.
type AdminStats struct {
	TotalUsers         int             `json:"totalUsers"`
	TotalTournaments   int             `json:"totalTournaments"`
	PendingDeposits    int             `json:"pendingDeposits"`
	PendingWithdrawals int             `json:"pendingWithdrawals"`
	TotalDeposited     decimal.Decimal `json:"totalDeposited"`
	TotalWithdrawn     decimal.Decimal `json:"totalWithdrawn"`
}

// AdminUser mirrors one row of GET /api/admin/users.
type AdminUser struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
}

// UnmarshalJSON accepts "_id" as well as "id".
func (u *AdminUser) UnmarshalJSON(data []byte) error {
	type plain AdminUser
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// AdminUserUpdate is the admin user edit body.
type AdminUserUpdate struct {
	Balance decimal.Decimal `json:"balance"`
}
