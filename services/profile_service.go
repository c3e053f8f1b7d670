// File: services/profile_service.go
package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"cashplayzz-web/models"
)

// ProfileService loads the signed-in user's profile and keeps the balance
// book in step with it.
type ProfileService struct {
	api      UserAPI
	balances *BalanceBook
}

// NewProfileService creates a ProfileService.
func NewProfileService(api UserAPI, balances *BalanceBook) *ProfileService {
	return &ProfileService{api: api, balances: balances}
}

// Load fetches the profile. The returned Balance is the book's value after
// the fetch, which may differ from the server reply when a newer write
// landed first.
func (p *ProfileService) Load(ctx context.Context, sess models.Session) (models.UserProfile, error) {
	seq := p.balances.Begin(sess.ID)
	profile, err := p.api.Profile(ctx, sess.Token)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("load profile: %w", err)
	}
	p.balances.Commit(sess.ID, seq, profile.Balance)
	if bal, ok := p.balances.Get(sess.ID); ok {
		profile.Balance = bal
	}
	return profile, nil
}

// Balance returns the book value for the session.
func (p *ProfileService) Balance(sess models.Session) (decimal.Decimal, bool) {
	return p.balances.Get(sess.ID)
}

// Forget drops the session's balance.
func (p *ProfileService) Forget(sess models.Session) {
	p.balances.Forget(sess.ID)
}
