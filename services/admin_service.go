// File: services/admin_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"cashplayzz-web/apiclient"
	"cashplayzz-web/logger"
	"cashplayzz-web/models"
)

// Board sections, also used as RefreshFailure names.
const (
	SectionStats       = "stats"
	SectionTournaments = "tournaments"
	SectionDeposits    = "deposits"
	SectionWithdrawals = "withdrawals"
	SectionUsers       = "users"
)

var boardSections = []string{SectionStats, SectionTournaments, SectionDeposits, SectionWithdrawals, SectionUsers}

// Review decisions accepted by the backend.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// AdminFilters are the status filters of the request lists.
type AdminFilters struct {
	DepositStatus    models.RequestStatus
	WithdrawalStatus models.RequestStatus
}

// AdminBoard is the last successfully fetched value of every section.
type AdminBoard struct {
	Stats       models.AdminStats
	Tournaments []models.TournamentRecord
	Deposits    []models.Deposit
	Withdrawals []models.Withdrawal
	Users       []models.AdminUser
	Filters     AdminFilters
	UpdatedAt   time.Time
}

// RefreshFailure is one section that could not be fetched.
type RefreshFailure struct {
	Section string
	Err     error
}

// RefreshReport lists the sections a refresh could not update.
type RefreshReport struct {
	Failures []RefreshFailure
}

// OK reports whether every section was updated.
func (r RefreshReport) OK() bool { return len(r.Failures) == 0 }

// Unauthorized reports whether any section failed with a 401.
func (r RefreshReport) Unauthorized() bool {
	for _, f := range r.Failures {
		if apiclient.IsUnauthorized(f.Err) {
			return true
		}
	}
	return false
}

// Err folds the failures into one error, or nil.
func (r RefreshReport) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, fmt.Errorf("%s: %w", f.Section, f.Err))
	}
	return errors.Join(errs...)
}

type adminState struct {
	board   AdminBoard
	next    uint64
	applied map[string]uint64
	touched time.Time
}

// AdminService owns the per-session admin boards. A section's result is
// stored only if no later-begun refresh has stored that section already.
type AdminService struct {
	api AdminAPI
	now func() time.Time

	mu     sync.Mutex
	states map[string]*adminState
}

// NewAdminService creates an AdminService.
func NewAdminService(api AdminAPI) *AdminService {
	return &AdminService{
		api:    api,
		now:    time.Now,
		states: make(map[string]*adminState),
	}
}

func (s *AdminService) state(key string) *adminState {
	st, ok := s.states[key]
	if !ok {
		st = &adminState{applied: make(map[string]uint64)}
		s.states[key] = st
	}
	st.touched = s.now()
	return st
}

// Board returns a copy of the session's board. A session without one gets
// the empty board.
func (s *AdminService) Board(key string) AdminBoard {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[key]
	if !ok {
		return AdminBoard{}
	}
	st.touched = s.now()
	b := st.board
	b.Tournaments = append([]models.TournamentRecord(nil), b.Tournaments...)
	b.Deposits = append([]models.Deposit(nil), b.Deposits...)
	b.Withdrawals = append([]models.Withdrawal(nil), b.Withdrawals...)
	b.Users = append([]models.AdminUser(nil), b.Users...)
	return b
}

// SetFilters changes the status filters used by the next refresh.
func (s *AdminService) SetFilters(key string, f AdminFilters) error {
	if !f.DepositStatus.Valid() || !f.WithdrawalStatus.Valid() {
		return &apiclient.ValidationError{Field: "status", Message: "Unknown status filter."}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(key).board.Filters = f
	return nil
}

// commit stores one section result under the generation guard.
func (s *AdminService) commit(key string, gen uint64, section string, apply func(*AdminBoard)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(key)
	if gen <= st.applied[section] {
		return false
	}
	apply(&st.board)
	st.applied[section] = gen
	st.board.UpdatedAt = s.now()
	return true
}

// Refresh fetches every section concurrently. Each section is stored on
// its own success; a failed section keeps its previous value.
func (s *AdminService) Refresh(ctx context.Context, sess models.Session) RefreshReport {
	s.mu.Lock()
	st := s.state(sess.ID)
	st.next++
	gen := st.next
	filters := st.board.Filters
	s.mu.Unlock()

	token := sess.AdminToken
	failures := make([]error, len(boardSections))

	// every goroutine returns nil so one failure does not cancel the rest
	g, gctx := errgroup.WithContext(ctx)
	run := func(i int, fetch func(context.Context) (func(*AdminBoard), error)) {
		g.Go(func() error {
			apply, err := fetch(gctx)
			if err != nil {
				failures[i] = err
				return nil
			}
			s.commit(sess.ID, gen, boardSections[i], apply)
			return nil
		})
	}

	run(0, func(ctx context.Context) (func(*AdminBoard), error) {
		stats, err := s.api.AdminStats(ctx, token)
		return func(b *AdminBoard) { b.Stats = stats }, err
	})
	run(1, func(ctx context.Context) (func(*AdminBoard), error) {
		recs, err := s.api.AdminTournaments(ctx, token)
		return func(b *AdminBoard) { b.Tournaments = recs }, err
	})
	run(2, func(ctx context.Context) (func(*AdminBoard), error) {
		deps, err := s.api.AdminDeposits(ctx, token, filters.DepositStatus)
		return func(b *AdminBoard) { b.Deposits = deps }, err
	})
	run(3, func(ctx context.Context) (func(*AdminBoard), error) {
		wds, err := s.api.AdminWithdrawals(ctx, token, filters.WithdrawalStatus)
		return func(b *AdminBoard) { b.Withdrawals = wds }, err
	})
	run(4, func(ctx context.Context) (func(*AdminBoard), error) {
		users, err := s.api.AdminUsers(ctx, token)
		return func(b *AdminBoard) { b.Users = users }, err
	})
	_ = g.Wait()

	var report RefreshReport
	for i, err := range failures {
		if err == nil {
			continue
		}
		if apiclient.IsCancelled(err) {
			logger.Debug.Printf("AdminService: %s fetch cancelled", boardSections[i])
			continue
		}
		logger.Warn.Printf("AdminService: %s fetch failed: %v", boardSections[i], err)
		report.Failures = append(report.Failures, RefreshFailure{Section: boardSections[i], Err: err})
	}
	return report
}

// Login validates the credentials and signs the admin in.
func (s *AdminService) Login(ctx context.Context, username, password string) (string, error) {
	if err := required("username", username, "username"); err != nil {
		return "", err
	}
	if err := required("password", password, "password"); err != nil {
		return "", err
	}
	token, err := s.api.AdminLogin(ctx, models.AdminLoginRequest{Username: strings.TrimSpace(username), Password: password})
	if err != nil {
		return "", fmt.Errorf("admin login: %w", err)
	}
	return token, nil
}

// ActionResult is the outcome of an admin action and the refresh that
// always follows it.
type ActionResult struct {
	Message string
	Report  RefreshReport
}

// act runs one REST call and then refreshes the whole board, whether or
// not the call succeeded.
func (s *AdminService) act(ctx context.Context, sess models.Session, name string, call func(ctx context.Context, token string) (string, error)) (ActionResult, error) {
	msg, err := call(ctx, sess.AdminToken)
	if err != nil {
		err = fmt.Errorf("%s: %w", name, err)
		logger.Warn.Printf("AdminService: %v", err)
	} else {
		logger.Info.Printf("AdminService: %s done for session %s", name, sess.ID)
	}
	return ActionResult{Message: msg, Report: s.Refresh(ctx, sess)}, err
}

// CreateTournament adds a match.
func (s *AdminService) CreateTournament(ctx context.Context, sess models.Session, form TournamentForm) (ActionResult, error) {
	in, err := form.Input()
	if err != nil {
		return ActionResult{}, err
	}
	return s.act(ctx, sess, "create tournament", func(ctx context.Context, token string) (string, error) {
		return s.api.CreateTournament(ctx, token, in)
	})
}

// UpdateTournament edits match id.
func (s *AdminService) UpdateTournament(ctx context.Context, sess models.Session, id string, form TournamentForm) (ActionResult, error) {
	if err := required("id", id, "match ID"); err != nil {
		return ActionResult{}, err
	}
	in, err := form.Input()
	if err != nil {
		return ActionResult{}, err
	}
	return s.act(ctx, sess, "update tournament", func(ctx context.Context, token string) (string, error) {
		return s.api.UpdateTournament(ctx, token, id, in)
	})
}

// DeleteTournament removes match id.
func (s *AdminService) DeleteTournament(ctx context.Context, sess models.Session, id string) (ActionResult, error) {
	return s.act(ctx, sess, "delete tournament", func(ctx context.Context, token string) (string, error) {
		return s.api.DeleteTournament(ctx, token, id)
	})
}

func checkDecision(decision string) error {
	if decision != DecisionApprove && decision != DecisionReject {
		return &apiclient.ValidationError{Field: "decision", Message: "Unknown decision."}
	}
	return nil
}

// ReviewDeposit approves or rejects deposit id.
func (s *AdminService) ReviewDeposit(ctx context.Context, sess models.Session, id, decision string) (ActionResult, error) {
	if err := checkDecision(decision); err != nil {
		return ActionResult{}, err
	}
	return s.act(ctx, sess, decision+" deposit", func(ctx context.Context, token string) (string, error) {
		return s.api.ReviewDeposit(ctx, token, id, decision)
	})
}

// ReviewWithdrawal approves or rejects withdrawal id.
func (s *AdminService) ReviewWithdrawal(ctx context.Context, sess models.Session, id, decision string) (ActionResult, error) {
	if err := checkDecision(decision); err != nil {
		return ActionResult{}, err
	}
	return s.act(ctx, sess, decision+" withdrawal", func(ctx context.Context, token string) (string, error) {
		return s.api.ReviewWithdrawal(ctx, token, id, decision)
	})
}

// UpdateUserBalance sets the balance of user id.
func (s *AdminService) UpdateUserBalance(ctx context.Context, sess models.Session, id, rawBalance string) (ActionResult, error) {
	balance, err := decimal.NewFromString(strings.TrimSpace(rawBalance))
	if err != nil || balance.IsNegative() {
		return ActionResult{}, &apiclient.ValidationError{Field: "balance", Message: "Please enter a valid balance."}
	}
	return s.act(ctx, sess, "update user", func(ctx context.Context, token string) (string, error) {
		return s.api.UpdateUser(ctx, token, id, models.AdminUserUpdate{Balance: balance})
	})
}

// DeleteUser removes user id.
func (s *AdminService) DeleteUser(ctx context.Context, sess models.Session, id string) (ActionResult, error) {
	return s.act(ctx, sess, "delete user", func(ctx context.Context, token string) (string, error) {
		return s.api.DeleteUser(ctx, token, id)
	})
}

// Forget drops the session's board.
func (s *AdminService) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, key)
}

// Sweep drops the boards of sessions idle since cutoff.
func (s *AdminService) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key, st := range s.states {
		if st.touched.Before(cutoff) {
			delete(s.states, key)
			n++
		}
	}
	return n
}

// TournamentForm is the raw admin tournament form.
type TournamentForm struct {
	Title        string
	Mode         string
	Map          string
	SquadType    string
	EntryFee     string
	PrizePool    string
	StartTime    string // datetime-local, e.g. 2026-10-15T18:30
	MaxPlayers   string
	RoomID       string
	RoomPassword string
	Rules        string // one rule per line
	Location     *time.Location
}

// StartTimeLayout is the layout of an HTML datetime-local input.
const StartTimeLayout = "2006-01-02T15:04"

// Input validates the form.
func (f TournamentForm) Input() (models.TournamentInput, error) {
	mode := models.Mode(strings.TrimSpace(f.Mode))
	if !mode.Valid() {
		return models.TournamentInput{}, ErrUnknownMode
	}
	if err := required("title", f.Title, "title"); err != nil {
		return models.TournamentInput{}, err
	}
	if err := required("squadType", f.SquadType, "squad type"); err != nil {
		return models.TournamentInput{}, err
	}
	fee, err := decimal.NewFromString(strings.TrimSpace(f.EntryFee))
	if err != nil || fee.IsNegative() {
		return models.TournamentInput{}, &apiclient.ValidationError{Field: "entryFee", Message: "Please enter a valid entry fee."}
	}
	prize, err := decimal.NewFromString(strings.TrimSpace(f.PrizePool))
	if err != nil || prize.IsNegative() {
		return models.TournamentInput{}, &apiclient.ValidationError{Field: "prizePool", Message: "Please enter a valid prize pool."}
	}
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	start, err := time.ParseInLocation(StartTimeLayout, strings.TrimSpace(f.StartTime), loc)
	if err != nil {
		return models.TournamentInput{}, &apiclient.ValidationError{Field: "startTime", Message: "Please enter a valid start time."}
	}
	maxPlayers, err := strconv.Atoi(strings.TrimSpace(f.MaxPlayers))
	if err != nil || maxPlayers <= 0 {
		return models.TournamentInput{}, &apiclient.ValidationError{Field: "maxPlayers", Message: "Please enter a valid player limit."}
	}

	var rules []string
	for _, line := range strings.Split(f.Rules, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rules = append(rules, line)
		}
	}
	return models.TournamentInput{
		Title:        strings.TrimSpace(f.Title),
		Mode:         mode,
		Map:          strings.TrimSpace(f.Map),
		SquadType:    strings.TrimSpace(f.SquadType),
		EntryFee:     fee,
		PrizePool:    prize,
		StartTime:    start,
		MaxPlayers:   maxPlayers,
		RoomID:       strings.TrimSpace(f.RoomID),
		RoomPassword: strings.TrimSpace(f.RoomPassword),
		Rules:        rules,
	}, nil
}
