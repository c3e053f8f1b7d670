// Package config loads runtime settings from the environment.
// File: config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Tournament listing sources.
const (
	SourceMock = "mock"
	SourceLive = "live"
)

// Config holds all application configuration.
type Config struct {
	ApplicationURL string
	WebsocketURL   string
	Port           string
	Environment    string
	TemplatesDir   string
	LogDir         string

	// Backend API
	APIBaseURL string
	APITimeout time.Duration

	// Sessions
	SessionSecret string
	SecureCookies bool

	// Deposit collection account shown on the dashboard
	UPIID        string
	UPIPayeeName string

	// Tournament listings
	BattleRoyaleSource string
	ClashSquadSource   string
	RoomRevealWindow   time.Duration

	// Live view timers
	ProfilePollInterval  time.Duration
	AdminRefreshInterval time.Duration
	LeaderboardInterval  time.Duration

	// Idle per-session state is swept on this period
	SessionSweepInterval time.Duration

	// Metrics
	MetricsNamespace  string
	CloudWatchEnabled bool
	CloudWatchPeriod  time.Duration
}

const devSessionSecret = "cashplayzz-dev-secret"

func setDefaults(v *viper.Viper) {
	v.SetDefault("APPLICATION_URL", "http://localhost:8080")
	v.SetDefault("WEBSOCKET_URL", "ws://localhost:8080")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("TEMPLATES_DIR", "./templates")
	v.SetDefault("LOG_DIR", "./logs")
	v.SetDefault("API_BASE_URL", "http://localhost:5000")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("SESSION_SECRET", devSessionSecret)
	v.SetDefault("SECURE_COOKIES", false)
	v.SetDefault("UPI_ID", "cashplayzz@upi")
	v.SetDefault("UPI_PAYEE_NAME", "CashPlayzz")
	v.SetDefault("BATTLE_ROYALE_SOURCE", SourceMock)
	v.SetDefault("CLASH_SQUAD_SOURCE", SourceLive)
	v.SetDefault("ROOM_REVEAL_WINDOW", "15m")
	v.SetDefault("PROFILE_POLL_INTERVAL", "30s")
	v.SetDefault("ADMIN_REFRESH_INTERVAL", "30s")
	v.SetDefault("LEADERBOARD_INTERVAL", "1h")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "10m")
	v.SetDefault("METRICS_NAMESPACE", "cashplayzz")
	v.SetDefault("CLOUDWATCH_ENABLED", false)
	v.SetDefault("CLOUDWATCH_PERIOD", "1m")
}

// Load reads an optional .env file and then the process environment.
// Environment variables win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, fmt.Errorf("load env files: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		ApplicationURL:       v.GetString("APPLICATION_URL"),
		WebsocketURL:         v.GetString("WEBSOCKET_URL"),
		Port:                 v.GetString("PORT"),
		Environment:          v.GetString("ENVIRONMENT"),
		TemplatesDir:         v.GetString("TEMPLATES_DIR"),
		LogDir:               v.GetString("LOG_DIR"),
		APIBaseURL:           strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		APITimeout:           v.GetDuration("API_TIMEOUT"),
		SessionSecret:        v.GetString("SESSION_SECRET"),
		SecureCookies:        v.GetBool("SECURE_COOKIES"),
		UPIID:                v.GetString("UPI_ID"),
		UPIPayeeName:         v.GetString("UPI_PAYEE_NAME"),
		BattleRoyaleSource:   strings.ToLower(v.GetString("BATTLE_ROYALE_SOURCE")),
		ClashSquadSource:     strings.ToLower(v.GetString("CLASH_SQUAD_SOURCE")),
		RoomRevealWindow:     v.GetDuration("ROOM_REVEAL_WINDOW"),
		ProfilePollInterval:  v.GetDuration("PROFILE_POLL_INTERVAL"),
		AdminRefreshInterval: v.GetDuration("ADMIN_REFRESH_INTERVAL"),
		LeaderboardInterval:  v.GetDuration("LEADERBOARD_INTERVAL"),
		SessionSweepInterval: v.GetDuration("SESSION_SWEEP_INTERVAL"),
		MetricsNamespace:     v.GetString("METRICS_NAMESPACE"),
		CloudWatchEnabled:    v.GetBool("CLOUDWATCH_ENABLED"),
		CloudWatchPeriod:     v.GetDuration("CLOUDWATCH_PERIOD"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return errors.New("API_BASE_URL must be set")
	}
	if c.IsProduction() && c.SessionSecret == devSessionSecret {
		return errors.New("SESSION_SECRET must be set in production")
	}
	for name, src := range map[string]string{
		"BATTLE_ROYALE_SOURCE": c.BattleRoyaleSource,
		"CLASH_SQUAD_SOURCE":   c.ClashSquadSource,
	} {
		if src != SourceMock && src != SourceLive {
			return fmt.Errorf("%s must be %q or %q, got %q", name, SourceMock, SourceLive, src)
		}
	}
	durations := map[string]time.Duration{
		"API_TIMEOUT":            c.APITimeout,
		"PROFILE_POLL_INTERVAL":  c.ProfilePollInterval,
		"ADMIN_REFRESH_INTERVAL": c.AdminRefreshInterval,
		"LEADERBOARD_INTERVAL":   c.LeaderboardInterval,
		"SESSION_SWEEP_INTERVAL": c.SessionSweepInterval,
	}
	if c.CloudWatchEnabled {
		durations["CLOUDWATCH_PERIOD"] = c.CloudWatchPeriod
	}
	for name, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%s must be a positive duration", name)
		}
	}
	return nil
}
