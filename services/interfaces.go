// Package services holds the client-side behaviour of the CashPlayzz web
// frontend: formatting helpers, the join flow, wallet forms and the admin
// board. All money and approval decisions stay with the backend.
// File: services/interfaces.go
package services

import (
	"context"

	"cashplayzz-web/models"
)

// UserAPI is the part of the backend a signed-in player talks to.
type UserAPI interface {
	Signup(ctx context.Context, req models.SignupRequest) (string, error)
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error)
	Profile(ctx context.Context, token string) (models.UserProfile, error)
	Tournaments(ctx context.Context, token string, mode models.Mode) ([]models.TournamentRecord, error)
	JoinMatch(ctx context.Context, token string, req models.JoinRequest) (models.JoinResult, error)
	Deposit(ctx context.Context, token string, req models.DepositRequest, idempotencyKey string) (string, error)
	Withdraw(ctx context.Context, token string, req models.WithdrawRequest) (string, error)
}

// AdminAPI is the admin-protected part of the backend.
type AdminAPI interface {
	AdminLogin(ctx context.Context, req models.AdminLoginRequest) (string, error)
	AdminStats(ctx context.Context, token string) (models.AdminStats, error)
	AdminTournaments(ctx context.Context, token string) ([]models.TournamentRecord, error)
	AdminDeposits(ctx context.Context, token string, status models.RequestStatus) ([]models.Deposit, error)
	AdminWithdrawals(ctx context.Context, token string, status models.RequestStatus) ([]models.Withdrawal, error)
	AdminUsers(ctx context.Context, token string) ([]models.AdminUser, error)
	CreateTournament(ctx context.Context, token string, in models.TournamentInput) (string, error)
	UpdateTournament(ctx context.Context, token, id string, in models.TournamentInput) (string, error)
	DeleteTournament(ctx context.Context, token, id string) (string, error)
	ReviewDeposit(ctx context.Context, token, id, decision string) (string, error)
	ReviewWithdrawal(ctx context.Context, token, id, decision string) (string, error)
	UpdateUser(ctx context.Context, token, id string, in models.AdminUserUpdate) (string, error)
	DeleteUser(ctx context.Context, token, id string) (string, error)
}
