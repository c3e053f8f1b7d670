// File: websocket/live_view.go
package websocket

import (
	"context"
	"sync"
	"time"

	"cashplayzz-web/apiclient"
	"cashplayzz-web/logger"
	"cashplayzz-web/models"
	"cashplayzz-web/services"
)

// ProfileLoader loads the signed-in user's profile.
type ProfileLoader interface {
	Load(ctx context.Context, sess models.Session) (models.UserProfile, error)
}

// LeaderboardSource produces the mock leaderboard for an hour.
type LeaderboardSource interface {
	Generate(hour int) []models.LeaderboardEntry
}

// BoardRefresher refreshes and reads the admin board.
type BoardRefresher interface {
	Refresh(ctx context.Context, sess models.Session) services.RefreshReport
	Board(key string) services.AdminBoard
}

// generation hands out fetch numbers; only the newest fetch may publish.
type generation struct {
	mu   sync.Mutex
	last uint64
}

func (g *generation) begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last++
	return g.last
}

func (g *generation) latest(n uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return n == g.last
}

// every runs fn on each tick until ctx ends.
func every(ctx context.Context, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

// -------------------- dashboard view --------------------

// CountdownPayload is the countdown push.
type CountdownPayload struct {
	Remaining string `json:"remaining"`
	Target    string `json:"target"`
}

// BalancePayload is the balance push.
type BalancePayload struct {
	Username string `json:"username"`
	Balance  string `json:"balance"`
}

// NoticePayload carries a user-facing message.
type NoticePayload struct {
	Message string `json:"message"`
}

// DashboardView drives the dashboard timers of one connection: the
// countdown to the next hour, the profile poll and the leaderboard
// re-roll.
type DashboardView struct {
	Messenger    Messenger
	Session      models.Session
	Profiles     ProfileLoader
	Leaderboard  LeaderboardSource
	TickInterval time.Duration
	PollInterval time.Duration
	RollInterval time.Duration
	Now          func() time.Time

	polls generation
}

// Run pushes the initial state and then serves the timers until ctx ends.
func (v *DashboardView) Run(ctx context.Context) {
	if v.Now == nil {
		v.Now = time.Now
	}
	v.tick()
	v.roll()
	v.poll(ctx)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); every(ctx, v.TickInterval, v.tick) }()
	go func() { defer wg.Done(); every(ctx, v.PollInterval, func() { go v.poll(ctx) }) }()
	go func() { defer wg.Done(); every(ctx, v.RollInterval, v.roll) }()
	wg.Wait()
	logger.Debug.Printf("[DashboardView] timers stopped for session %s", v.Session.ID)
}

func (v *DashboardView) tick() {
	now := v.Now()
	target := services.NextHour(now)
	v.Messenger.Push(Message{Type: TypeCountdown, Data: CountdownPayload{
		Remaining: services.FormatRemaining(services.TimeUntil(target, now)),
		Target:    target.Format(time.RFC3339),
	}})
}

func (v *DashboardView) roll() {
	v.Messenger.Push(Message{Type: TypeLeaderboard, Data: v.Leaderboard.Generate(v.Now().Hour())})
}

func (v *DashboardView) poll(ctx context.Context) {
	n := v.polls.begin()
	profile, err := v.Profiles.Load(ctx, v.Session)
	if ctx.Err() != nil || !v.polls.latest(n) {
		return
	}
	if err != nil {
		if apiclient.IsCancelled(err) {
			return
		}
		if apiclient.IsUnauthorized(err) {
			v.Messenger.Push(Message{Type: TypeSessionExpired, Data: NoticePayload{Message: apiclient.UserMessage(err)}})
			return
		}
		logger.Warn.Printf("[DashboardView] profile poll failed for session %s: %v", v.Session.ID, err)
		return
	}
	v.Messenger.Push(Message{Type: TypeBalance, Data: BalancePayload{
		Username: profile.Username,
		Balance:  profile.Balance.StringFixed(2),
	}})
}

// -------------------- admin view --------------------

// AdminBoardPayload is the admin board after a refresh. Money is
// preformatted so the page can drop the rows straight into its tables.
type AdminBoardPayload struct {
	Stats       models.AdminStats `json:"stats"`
	Tournaments []TournamentRow   `json:"tournaments"`
	Deposits    []DepositRow      `json:"deposits"`
	Withdrawals []WithdrawalRow   `json:"withdrawals"`
	Users       []UserRow         `json:"users"`
	Failed      []string          `json:"failed,omitempty"`
	UpdatedAt   string            `json:"updatedAt"`
}

type TournamentRow struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Mode           string `json:"mode"`
	CurrentPlayers int    `json:"currentPlayers"`
	MaxPlayers     int    `json:"maxPlayers"`
}

type DepositRow struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Amount        string `json:"amount"`
	TransactionID string `json:"transactionId"`
	SenderName    string `json:"senderName"`
	Status        string `json:"status"`
}

type WithdrawalRow struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Amount   string `json:"amount"`
	UpiID    string `json:"upiId"`
	Status   string `json:"status"`
}

type UserRow struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Balance  string `json:"balance"`
}

func boardPayload(board services.AdminBoard) AdminBoardPayload {
	p := AdminBoardPayload{
		Stats:       board.Stats,
		Tournaments: make([]TournamentRow, 0, len(board.Tournaments)),
		Deposits:    make([]DepositRow, 0, len(board.Deposits)),
		Withdrawals: make([]WithdrawalRow, 0, len(board.Withdrawals)),
		Users:       make([]UserRow, 0, len(board.Users)),
		UpdatedAt:   board.UpdatedAt.Format(time.RFC3339),
	}
	for _, t := range board.Tournaments {
		p.Tournaments = append(p.Tournaments, TournamentRow{
			ID: t.ID, Title: t.Title, Mode: string(t.Mode),
			CurrentPlayers: t.CurrentPlayers, MaxPlayers: t.MaxPlayers,
		})
	}
	for _, d := range board.Deposits {
		p.Deposits = append(p.Deposits, DepositRow{
			ID: d.ID, Username: d.Username, Amount: d.Amount.StringFixed(2),
			TransactionID: d.TransactionID, SenderName: d.SenderName, Status: string(d.Status),
		})
	}
	for _, w := range board.Withdrawals {
		p.Withdrawals = append(p.Withdrawals, WithdrawalRow{
			ID: w.ID, Username: w.Username, Amount: w.Amount.StringFixed(2),
			UpiID: w.UpiID, Status: string(w.Status),
		})
	}
	for _, u := range board.Users {
		p.Users = append(p.Users, UserRow{ID: u.ID, Username: u.Username, Email: u.Email, Balance: u.Balance.StringFixed(2)})
	}
	return p
}

// AdminView refreshes the admin board on a fixed period.
type AdminView struct {
	Messenger Messenger
	Session   models.Session
	Board     BoardRefresher
	Interval  time.Duration

	refreshes generation
}

// Run serves the refresh timer until ctx ends.
func (v *AdminView) Run(ctx context.Context) {
	every(ctx, v.Interval, func() { go v.refresh(ctx) })
	logger.Debug.Printf("[AdminView] timer stopped for session %s", v.Session.ID)
}

func (v *AdminView) refresh(ctx context.Context) {
	n := v.refreshes.begin()
	report := v.Board.Refresh(ctx, v.Session)
	if ctx.Err() != nil || !v.refreshes.latest(n) {
		return
	}
	if report.Unauthorized() {
		v.Messenger.Push(Message{Type: TypeSessionExpired, Data: NoticePayload{Message: apiclient.MsgSessionExpired}})
		return
	}

	payload := boardPayload(v.Board.Board(v.Session.ID))
	for _, f := range report.Failures {
		payload.Failed = append(payload.Failed, f.Section)
	}
	v.Messenger.Push(Message{Type: TypeAdminBoard, Data: payload})
}
