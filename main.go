// main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"cashplayzz-web/apiclient"
	"cashplayzz-web/config"
	"cashplayzz-web/logger"
	"cashplayzz-web/metrics"
	"cashplayzz-web/middleware"
	"cashplayzz-web/services"
	"cashplayzz-web/websocket"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logger.Error.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.InitLogger(cfg.LogDir); err != nil {
		logger.Warn.Printf("Log file unavailable, logging to stdout only: %v", err)
	}
	logger.SetLogLevel(cfg.Environment)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := middleware.NewSessionStore(cfg.SessionSecret, cfg.SecureCookies)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder(cfg.MetricsNamespace)
	hub := websocket.NewHub(recorder)
	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, apiclient.WithObserver(recorder))

	janitor := services.NewJanitor(middleware.SessionLifetime)
	router := setupRouter(deps{cfg: cfg, api: api, recorder: recorder, hub: hub, store: store, janitor: janitor})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go janitor.Run(ctx, cfg.SessionSweepInterval)

	if cfg.CloudWatchEnabled {
		client, err := metrics.NewCloudWatchClient()
		if err != nil {
			logger.Error.Printf("CloudWatch disabled: %v", err)
		} else {
			go metrics.NewPublisher(client, cfg.MetricsNamespace, recorder.LiveViews).Run(ctx, cfg.CloudWatchPeriod)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info.Printf("Server listening on :%s (backend %s)", cfg.Port, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info.Println("Shutting down")
	hub.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
