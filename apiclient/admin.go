// File: apiclient/admin.go
package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"cashplayzz-web/models"
)

// AdminLogin exchanges admin credentials for an admin token.
func (c *Client) AdminLogin(ctx context.Context, req models.AdminLoginRequest) (string, error) {
	var out struct {
		envelope
		Token string `json:"token"`
	}
	err := c.doEnvelope(ctx, call{
		method: http.MethodPost,
		route:  "/api/admin/login",
		path:   "/api/admin/login",
		body:   req,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", &ServerError{Status: http.StatusOK, Message: "login reply carried no token"}
	}
	return out.Token, nil
}

// AdminStats fetches the aggregate dashboard numbers.
func (c *Client) AdminStats(ctx context.Context, token string) (models.AdminStats, error) {
	var out struct {
		envelope
		Stats models.AdminStats `json:"stats"`
	}
	err := c.doEnvelope(ctx, call{
		method: http.MethodGet,
		route:  "/api/admin/dashboard",
		path:   "/api/admin/dashboard",
		token:  token,
	}, &out)
	return out.Stats, err
}

// AdminTournaments lists every tournament.
func (c *Client) AdminTournaments(ctx context.Context, token string) ([]models.TournamentRecord, error) {
	var out struct {
		envelope
		Tournaments []models.TournamentRecord `json:"tournaments"`
	}
	err := c.doEnvelope(ctx, call{
		method: http.MethodGet,
		route:  "/api/admin/tournaments",
		path:   "/api/admin/tournaments",
		token:  token,
	}, &out)
	return out.Tournaments, err
}

// AdminDeposits lists deposits, optionally filtered by status.
func (c *Client) AdminDeposits(ctx context.Context, token string, status models.RequestStatus) ([]models.Deposit, error) {
	var out struct {
		envelope
		Deposits []models.Deposit `json:"deposits"`
	}
	err := c.doEnvelope(ctx, call{
		method: http.MethodGet,
		route:  "/api/admin/deposits",
		path:   "/api/admin/deposits",
		query:  statusQuery(status),
		token:  token,
	}, &out)
	return out.Deposits, err
}

// AdminWithdrawals lists withdrawals, optionally filtered by status.
func (c *Client) AdminWithdrawals(ctx context.Context, token string, status models.RequestStatus) ([]models.Withdrawal, error) {
	var out struct {
		envelope
		Withdrawals []models.Withdrawal `json:"withdrawals"`
	}
	err := c.doEnvelope(ctx, call{
		method: http.MethodGet,
		route:  "/api/admin/withdrawals",
		path:   "/api/admin/withdrawals",
		query:  statusQuery(status),
		token:  token,
	}, &out)
	return out.Withdrawals, err
}

// AdminUsers lists registered users.
func (c *Client) AdminUsers(ctx context.Context, token string) ([]models.AdminUser, error) {
	var out struct {
		envelope
		Users []models.AdminUser `json:"users"`
	}
	err := c.doEnvelope(ctx, call{
		method: http.MethodGet,
		route:  "/api/admin/users",
		path:   "/api/admin/users",
		token:  token,
	}, &out)
	return out.Users, err
}

// CreateTournament schedules a new tournament.
func (c *Client) CreateTournament(ctx context.Context, token string, in models.TournamentInput) (string, error) {
	return c.adminAction(ctx, call{
		method: http.MethodPost,
		route:  "/api/admin/tournaments",
		path:   "/api/admin/tournaments",
		token:  token,
		body:   in,
	})
}

// UpdateTournament edits an existing tournament.
func (c *Client) UpdateTournament(ctx context.Context, token, id string, in models.TournamentInput) (string, error) {
	return c.adminAction(ctx, call{
		method: http.MethodPut,
		route:  "/api/admin/tournaments/:id",
		path:   "/api/admin/tournaments/" + url.PathEscape(id),
		token:  token,
		body:   in,
	})
}

// DeleteTournament removes a tournament.
func (c *Client) DeleteTournament(ctx context.Context, token, id string) (string, error) {
	return c.adminAction(ctx, call{
		method: http.MethodDelete,
		route:  "/api/admin/tournaments/:id",
		path:   "/api/admin/tournaments/" + url.PathEscape(id),
		token:  token,
	})
}

// ReviewDeposit approves or rejects a deposit. decision is "approve" or
// "reject".
func (c *Client) ReviewDeposit(ctx context.Context, token, id, decision string) (string, error) {
	return c.adminAction(ctx, call{
		method: http.MethodPut,
		route:  "/api/admin/deposits/:id/" + decision,
		path:   "/api/admin/deposits/" + url.PathEscape(id) + "/" + decision,
		token:  token,
	})
}

// ReviewWithdrawal approves or rejects a withdrawal.
func (c *Client) ReviewWithdrawal(ctx context.Context, token, id, decision string) (string, error) {
	return c.adminAction(ctx, call{
		method: http.MethodPut,
		route:  "/api/admin/withdrawals/:id/" + decision,
		path:   "/api/admin/withdrawals/" + url.PathEscape(id) + "/" + decision,
		token:  token,
	})
}

// UpdateUser edits a user's balance.
func (c *Client) UpdateUser(ctx context.Context, token, id string, in models.AdminUserUpdate) (string, error) {
	return c.adminAction(ctx, call{
		method: http.MethodPut,
		route:  "/api/admin/users/:id",
		path:   "/api/admin/users/" + url.PathEscape(id),
		token:  token,
		body:   in,
	})
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, token, id string) (string, error) {
	return c.adminAction(ctx, call{
		method: http.MethodDelete,
		route:  "/api/admin/users/:id",
		path:   "/api/admin/users/" + url.PathEscape(id),
		token:  token,
	})
}

func (c *Client) adminAction(ctx context.Context, cl call) (string, error) {
	var out envelope
	if err := c.doEnvelope(ctx, cl, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func statusQuery(status models.RequestStatus) url.Values {
	if status == "" {
		return nil
	}
	return url.Values{"status": {string(status)}}
}
