package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cashplayzz-web/apiclient"
	"cashplayzz-web/models"
)

// Ensure the real client and the mocks satisfy the interfaces.
var (
	_ UserAPI  = (*apiclient.Client)(nil)
	_ AdminAPI = (*apiclient.Client)(nil)
	_ UserAPI  = (*MockUserAPI)(nil)
	_ AdminAPI = (*MockAdminAPI)(nil)
)

// MockUserAPI is a testify mock of UserAPI.
type MockUserAPI struct {
	mock.Mock
}

func (m *MockUserAPI) Signup(ctx context.Context, req models.SignupRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockUserAPI) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.LoginResult), args.Error(1)
}

func (m *MockUserAPI) Profile(ctx context.Context, token string) (models.UserProfile, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(models.UserProfile), args.Error(1)
}

func (m *MockUserAPI) Tournaments(ctx context.Context, token string, mode models.Mode) ([]models.TournamentRecord, error) {
	args := m.Called(ctx, token, mode)
	recs, _ := args.Get(0).([]models.TournamentRecord)
	return recs, args.Error(1)
}

func (m *MockUserAPI) JoinMatch(ctx context.Context, token string, req models.JoinRequest) (models.JoinResult, error) {
	args := m.Called(ctx, token, req)
	return args.Get(0).(models.JoinResult), args.Error(1)
}

func (m *MockUserAPI) Deposit(ctx context.Context, token string, req models.DepositRequest, idempotencyKey string) (string, error) {
	args := m.Called(ctx, token, req, idempotencyKey)
	return args.String(0), args.Error(1)
}

func (m *MockUserAPI) Withdraw(ctx context.Context, token string, req models.WithdrawRequest) (string, error) {
	args := m.Called(ctx, token, req)
	return args.String(0), args.Error(1)
}

// MockAdminAPI is a testify mock of AdminAPI.
type MockAdminAPI struct {
	mock.Mock
}

func (m *MockAdminAPI) AdminLogin(ctx context.Context, req models.AdminLoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAdminAPI) AdminStats(ctx context.Context, token string) (models.AdminStats, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(models.AdminStats), args.Error(1)
}

func (m *MockAdminAPI) AdminTournaments(ctx context.Context, token string) ([]models.TournamentRecord, error) {
	args := m.Called(ctx, token)
	recs, _ := args.Get(0).([]models.TournamentRecord)
	return recs, args.Error(1)
}

func (m *MockAdminAPI) AdminDeposits(ctx context.Context, token string, status models.RequestStatus) ([]models.Deposit, error) {
	args := m.Called(ctx, token, status)
	deps, _ := args.Get(0).([]models.Deposit)
	return deps, args.Error(1)
}

func (m *MockAdminAPI) AdminWithdrawals(ctx context.Context, token string, status models.RequestStatus) ([]models.Withdrawal, error) {
	args := m.Called(ctx, token, status)
	wds, _ := args.Get(0).([]models.Withdrawal)
	return wds, args.Error(1)
}

func (m *MockAdminAPI) AdminUsers(ctx context.Context, token string) ([]models.AdminUser, error) {
	args := m.Called(ctx, token)
	users, _ := args.Get(0).([]models.AdminUser)
	return users, args.Error(1)
}

func (m *MockAdminAPI) CreateTournament(ctx context.Context, token string, in models.TournamentInput) (string, error) {
	args := m.Called(ctx, token, in)
	return args.String(0), args.Error(1)
}

func (m *MockAdminAPI) UpdateTournament(ctx context.Context, token, id string, in models.TournamentInput) (string, error) {
	args := m.Called(ctx, token, id, in)
	return args.String(0), args.Error(1)
}

func (m *MockAdminAPI) DeleteTournament(ctx context.Context, token, id string) (string, error) {
	args := m.Called(ctx, token, id)
	return args.String(0), args.Error(1)
}

func (m *MockAdminAPI) ReviewDeposit(ctx context.Context, token, id, decision string) (string, error) {
	args := m.Called(ctx, token, id, decision)
	return args.String(0), args.Error(1)
}

func (m *MockAdminAPI) ReviewWithdrawal(ctx context.Context, token, id, decision string) (string, error) {
	args := m.Called(ctx, token, id, decision)
	return args.String(0), args.Error(1)
}

func (m *MockAdminAPI) UpdateUser(ctx context.Context, token, id string, in models.AdminUserUpdate) (string, error) {
	args := m.Called(ctx, token, id, in)
	return args.String(0), args.Error(1)
}

func (m *MockAdminAPI) DeleteUser(ctx context.Context, token, id string) (string, error) {
	args := m.Called(ctx, token, id)
	return args.String(0), args.Error(1)
}
