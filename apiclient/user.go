// File: apiclient/user.go
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"cashplayzz-web/models"
)

type messageReply struct {
	Message string `json:"message"`
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (string, error) {
	var out messageReply
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/api/auth/signup",
		path:   "/api/auth/signup",
		body:   req,
	}, &out)
	return out.Message, err
}

// Login authenticates a user. The backend may hand the token back in the
// body or only as a "token" cookie; both are accepted.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	rep, err := c.send(ctx, call{
		method: http.MethodPost,
		route:  "/api/auth/login",
		path:   "/api/auth/login",
		body:   req,
	})
	if err != nil {
		return models.LoginResult{}, err
	}

	var out struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	if len(bytes.TrimSpace(rep.body)) > 0 {
		if err := json.Unmarshal(rep.body, &out); err != nil {
			return models.LoginResult{}, fmt.Errorf("decode login reply: %w", err)
		}
	}

	res := models.LoginResult{Message: out.Message, Token: out.Token}
	if res.Token == "" {
		for _, ck := range rep.cookies {
			if ck.Name == models.SessionKeyToken && ck.Value != "" {
				res.Token = ck.Value
				break
			}
		}
	}
	return res, nil
}

// Profile fetches the signed-in user's name and balance.
func (c *Client) Profile(ctx context.Context, token string) (models.UserProfile, error) {
	var out models.UserProfile
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/api/user/profile",
		path:   "/api/user/profile",
		token:  token,
	}, &out)
	return out, err
}

// Tournaments lists the matches of one mode. The backend answers with a
// bare array or with {tournaments: [...]}.
func (c *Client) Tournaments(ctx context.Context, token string, mode models.Mode) ([]models.TournamentRecord, error) {
	rep, err := c.send(ctx, call{
		method: http.MethodGet,
		route:  "/api/user/tournaments",
		path:   "/api/user/tournaments",
		query:  url.Values{"mode": {string(mode)}},
		token:  token,
	})
	if err != nil {
		return nil, err
	}

	body := bytes.TrimSpace(rep.body)
	if len(body) == 0 {
		return nil, nil
	}

	var records []models.TournamentRecord
	if body[0] == '[' {
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, fmt.Errorf("decode tournaments: %w", err)
		}
		return records, nil
	}

	var wrapped struct {
		Success     *bool                     `json:"success"`
		Message     string                    `json:"message"`
		Tournaments []models.TournamentRecord `json:"tournaments"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode tournaments: %w", err)
	}
	if wrapped.Success != nil && !*wrapped.Success {
		return nil, &ServerError{Status: rep.status, Message: wrapped.Message}
	}
	return wrapped.Tournaments, nil
}

// JoinMatch asks the backend to debit the entry fee and reserve a slot.
// A false success flag is reported as *ServerError carrying the message
// unmodified.
func (c *Client) JoinMatch(ctx context.Context, token string, req models.JoinRequest) (models.JoinResult, error) {
	var out models.JoinResult
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/api/user/join-match",
		path:   "/api/user/join-match",
		token:  token,
		body:   req,
	}, &out)
	if err != nil {
		return models.JoinResult{}, err
	}
	if !out.Success {
		return out, &ServerError{Status: http.StatusOK, Message: out.Message}
	}
	return out, nil
}

// Deposit files a deposit request. idempotencyKey, when set, is sent as
// the Idempotency-Key header.
func (c *Client) Deposit(ctx context.Context, token string, req models.DepositRequest, idempotencyKey string) (string, error) {
	cl := call{
		method: http.MethodPost,
		route:  "/api/deposit",
		path:   "/api/deposit",
		token:  token,
		body:   req,
	}
	if idempotencyKey != "" {
		cl.headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}
	var out messageReply
	err := c.do(ctx, cl, &out)
	return out.Message, err
}

// Withdraw files a withdrawal request.
func (c *Client) Withdraw(ctx context.Context, token string, req models.WithdrawRequest) (string, error) {
	var out messageReply
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/api/withdraw",
		path:   "/api/withdraw",
		token:  token,
		body:   req,
	}, &out)
	return out.Message, err
}
