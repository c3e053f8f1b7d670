// File: services/tournament_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cashplayzz-web/apiclient"
	"cashplayzz-web/config"
	"cashplayzz-web/logger"
	"cashplayzz-web/models"
)

// JoinNoticeTTL is how long a join confirmation stays visible.
const JoinNoticeTTL = 4000 * time.Millisecond

// Join guard failures. They are checked locally and never reach the
// backend.
var (
	ErrAlreadyJoined       = &apiclient.ValidationError{Field: "match", Message: "You have already joined this match."}
	ErrInsufficientBalance = &apiclient.ValidationError{Field: "balance", Message: "Insufficient balance to join this match."}
	ErrMatchStarted        = &apiclient.ValidationError{Field: "match", Message: "This match has already started."}
	ErrMatchFull           = &apiclient.ValidationError{Field: "match", Message: "This match is full."}
	ErrTournamentNotFound  = &apiclient.ValidationError{Field: "match", Message: "Match not found."}
	ErrUnknownMode         = &apiclient.ValidationError{Field: "mode", Message: "Unknown tournament mode."}
	ErrBalanceUnknown      = &apiclient.ValidationError{Field: "balance", Message: "Your balance could not be loaded, please try again."}
)

// TournamentView is a record plus everything the listing needs to render it.
type TournamentView struct {
	models.TournamentRecord
	Countdown string
	Started   bool
	CanJoin   bool
	Expanded  bool
	ShowRoom  bool
	SpotsLeft int
}

// Listing is one rendered tournament page.
type Listing struct {
	Mode         models.Mode
	Source       string
	Views        []TournamentView
	Balance      decimal.Decimal
	BalanceKnown bool
}

// JoinOutcome is what a successful join produced.
type JoinOutcome struct {
	Notice  models.Notice
	Balance decimal.Decimal
}

// TournamentService lists matches and runs the join flow for both the
// demo (mock) and backend (live) sources.
type TournamentService struct {
	api          UserAPI
	profiles     *ProfileService
	balances     *BalanceBook
	mock         *TournamentBook
	cache        *TournamentBook
	sources      map[models.Mode]string
	revealWindow time.Duration
	now          func() time.Time
}

// NewTournamentService creates a TournamentService. Modes missing from
// sources use the mock listing.
func NewTournamentService(api UserAPI, balances *BalanceBook, sources map[models.Mode]string, revealWindow time.Duration) *TournamentService {
	return &TournamentService{
		api:          api,
		profiles:     NewProfileService(api, balances),
		balances:     balances,
		mock:         NewTournamentBook(DemoTournaments),
		cache:        NewTournamentBook(nil),
		sources:      sources,
		revealWindow: revealWindow,
		now:          time.Now,
	}
}

// SetClock replaces the time source.
func (s *TournamentService) SetClock(now func() time.Time) {
	s.now = now
}

// Source returns the configured source of mode.
func (s *TournamentService) Source(mode models.Mode) string {
	if src, ok := s.sources[mode]; ok && src == config.SourceLive {
		return config.SourceLive
	}
	return config.SourceMock
}

// CanJoin is the advisory join guard. The backend has the final word.
func CanJoin(rec models.TournamentRecord, balance decimal.Decimal, now time.Time) error {
	switch {
	case rec.Joined:
		return ErrAlreadyJoined
	case !now.Before(rec.StartTime):
		return ErrMatchStarted
	case rec.Full():
		return ErrMatchFull
	case balance.LessThan(rec.EntryFee):
		return ErrInsufficientBalance
	}
	return nil
}

// List returns the listing for mode. openID marks the expanded record.
// When a live fetch fails the last cached listing is returned together
// with the error.
func (s *TournamentService) List(ctx context.Context, sess models.Session, mode models.Mode, openID string) (Listing, error) {
	if !mode.Valid() {
		return Listing{}, ErrUnknownMode
	}
	now := s.now()
	listing := Listing{Mode: mode, Source: s.Source(mode)}

	var (
		recs     []models.TournamentRecord
		fetchErr error
	)
	if listing.Source == config.SourceLive {
		recs, fetchErr = s.api.Tournaments(ctx, sess.Token, mode)
		if fetchErr == nil {
			s.cache.Put(sess.ID, mode, now, recs)
		} else {
			recs, _ = s.cache.Get(sess.ID, mode, now)
			fetchErr = fmt.Errorf("list %s tournaments: %w", mode, fetchErr)
		}
	} else {
		recs, _ = s.mock.Load(sess.ID, mode, now)
	}

	bal, known := s.balances.Get(sess.ID)
	if !known && fetchErr == nil {
		if profile, err := s.profiles.Load(ctx, sess); err != nil {
			logger.Warn.Printf("TournamentService: balance unavailable for listing: %v", err)
		} else {
			bal, known = profile.Balance, true
		}
	}
	listing.Balance, listing.BalanceKnown = bal, known
	listing.Views = s.views(recs, bal, known, openID, now)
	return listing, fetchErr
}

func (s *TournamentService) views(recs []models.TournamentRecord, bal decimal.Decimal, known bool, openID string, now time.Time) []TournamentView {
	out := make([]TournamentView, 0, len(recs))
	for _, r := range recs {
		v := TournamentView{
			TournamentRecord: r,
			Countdown:        FormatRemaining(TimeUntil(r.StartTime, now)),
			Started:          !now.Before(r.StartTime),
			CanJoin:          known && CanJoin(r, bal, now) == nil,
			Expanded:         r.ID == openID,
			ShowRoom:         s.RevealRoom(r, now),
		}
		if r.MaxPlayers > 0 {
			v.SpotsLeft = max(r.MaxPlayers-r.CurrentPlayers, 0)
		}
		out = append(out, v)
	}
	return out
}

// RevealRoom reports whether room credentials may be shown: only to joined
// players, and only inside the reveal window or after the start.
func (s *TournamentService) RevealRoom(rec models.TournamentRecord, now time.Time) bool {
	if !rec.Joined || (rec.RoomID == "" && rec.RoomPassword == "") {
		return false
	}
	return !now.Before(rec.StartTime.Add(-s.revealWindow))
}

// Join enters the session's user into match id of mode.
func (s *TournamentService) Join(ctx context.Context, sess models.Session, mode models.Mode, id string) (JoinOutcome, error) {
	if !mode.Valid() {
		return JoinOutcome{}, ErrUnknownMode
	}
	if _, known := s.balances.Get(sess.ID); !known {
		if _, err := s.profiles.Load(ctx, sess); err != nil {
			return JoinOutcome{}, err
		}
	}
	if s.Source(mode) == config.SourceLive {
		return s.joinLive(ctx, sess, mode, id)
	}
	return s.joinMock(sess, mode, id)
}

func (s *TournamentService) joinMock(sess models.Session, mode models.Mode, id string) (JoinOutcome, error) {
	now := s.now()
	var balance decimal.Decimal
	err := s.mock.Update(sess.ID, mode, id, now, func(rec *models.TournamentRecord) error {
		bal, ok := s.balances.Get(sess.ID)
		if !ok {
			return ErrBalanceUnknown
		}
		if err := CanJoin(*rec, bal, now); err != nil {
			return err
		}
		if !s.balances.Adjust(sess.ID, s.balances.Begin(sess.ID), rec.EntryFee.Neg()) {
			return ErrBalanceUnknown
		}
		rec.Joined = true
		rec.CurrentPlayers++
		balance = bal.Sub(rec.EntryFee)
		return nil
	})
	if err != nil {
		return JoinOutcome{}, err
	}
	logger.Info.Printf("TournamentService: session %s joined demo match %s", sess.ID, id)
	return JoinOutcome{
		Notice:  joinNotice("Successfully joined the match!", now),
		Balance: balance,
	}, nil
}

func (s *TournamentService) joinLive(ctx context.Context, sess models.Session, mode models.Mode, id string) (JoinOutcome, error) {
	now := s.now()
	rec, ok := s.cache.Find(sess.ID, mode, id, now)
	if !ok {
		recs, err := s.api.Tournaments(ctx, sess.Token, mode)
		if err != nil {
			return JoinOutcome{}, fmt.Errorf("list %s tournaments: %w", mode, err)
		}
		s.cache.Put(sess.ID, mode, now, recs)
		if rec, ok = s.cache.Find(sess.ID, mode, id, now); !ok {
			return JoinOutcome{}, ErrTournamentNotFound
		}
	}

	bal, _ := s.balances.Get(sess.ID)
	if err := CanJoin(rec, bal, now); err != nil {
		return JoinOutcome{}, err
	}

	res, err := s.api.JoinMatch(ctx, sess.Token, models.JoinRequest{EntryFee: rec.EntryFee, MatchID: id})
	if err != nil {
		return JoinOutcome{}, fmt.Errorf("join match %s: %w", id, err)
	}

	if res.Balance.Valid {
		s.balances.Commit(sess.ID, s.balances.Begin(sess.ID), res.Balance.Decimal)
	} else if _, err := s.profiles.Load(ctx, sess); err != nil {
		logger.Warn.Printf("TournamentService: join reply for %s had no balance and the profile reload failed: %v", id, err)
	}
	if err := s.cache.Update(sess.ID, mode, id, now, func(r *models.TournamentRecord) error {
		r.Joined = true
		return nil
	}); err != nil {
		logger.Debug.Printf("TournamentService: joined match %s not in cached listing: %v", id, err)
	}
	if recs, err := s.api.Tournaments(ctx, sess.Token, mode); err != nil {
		logger.Warn.Printf("TournamentService: refetch after join failed: %v", err)
	} else {
		s.cache.Put(sess.ID, mode, now, recs)
	}

	msg := res.Message
	if msg == "" {
		msg = "Successfully joined the match!"
	}
	logger.Info.Printf("TournamentService: session %s joined match %s", sess.ID, id)
	balance, _ := s.balances.Get(sess.ID)
	return JoinOutcome{Notice: joinNotice(msg, now), Balance: balance}, nil
}

func joinNotice(text string, now time.Time) models.Notice {
	return models.Notice{Kind: models.NoticeSuccess, Text: text, ExpiresAt: now.Add(JoinNoticeTTL)}
}

// Forget drops every listing held for the session.
func (s *TournamentService) Forget(sess models.Session) {
	s.mock.Forget(sess.ID)
	s.cache.Forget(sess.ID)
}

// Sweep drops the listings of sessions idle since cutoff.
func (s *TournamentService) Sweep(cutoff time.Time) int {
	return s.mock.Sweep(cutoff) + s.cache.Sweep(cutoff)
}
