package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alexeusss/T-Invest-Tracker/internal/clients/tinkoff"
	"github.com/Alexeusss/T-Invest-Tracker/internal/config"
	"github.com/Alexeusss/T-Invest-Tracker/internal/database"
	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/dashboard"
	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/forecast"
	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/instruments"
	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/payments"
	"github.com/Alexeusss/T-Invest-Tracker/internal/modules/settings"
	"github.com/Alexeusss/T-Invest-Tracker/internal/scheduler"
	"github.com/Alexeusss/T-Invest-Tracker/internal/server"
	"github.com/Alexeusss/T-Invest-Tracker/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting T-Invest Tracker")

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := instruments.InitSchema(db.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize instruments schema")
	}
	if err := settings.InitSchema(db.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize settings schema")
	}

	settingsRepo := settings.NewRepository(db.Conn(), log)
	defaults := settings.Settings{APIToken: cfg.InvestToken, Language: settings.LanguageRussian}
	stored, err := settingsRepo.Get(defaults)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load settings")
	}

	source := tinkoff.NewSource(tinkoff.NewClient(cfg.InvestAPIURL, stored.APIToken, log))
	log.Info().Bool("demo", source.Client().IsDemo()).Msg("Broker API client ready")

	instrumentsRepo := instruments.NewRepository(db.Conn(), log)
	instrumentsSvc := instruments.NewService(instrumentsRepo, source, log)
	paymentsSvc := payments.NewService(source, log)

	lookahead := time.Duration(cfg.PaymentLookaheadDays) * 24 * time.Hour
	dashboardSvc := dashboard.NewService(source, instrumentsSvc, paymentsSvc, lookahead, cfg.InvestAPIURL, log)

	sched := scheduler.New(log)
	refreshJob := scheduler.NewRefreshJob(dashboardSvc, log)
	if err := sched.AddJob(cfg.RefreshSchedule, refreshJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register refresh job")
	}
	sched.Start()
	defer sched.Stop()

	// First snapshot in the background so startup is not blocked by the API.
	go func() {
		if err := sched.RunNow(refreshJob); err != nil {
			log.Error().Err(err).Msg("Initial refresh failed")
		}
	}()

	srv := server.New(server.Config{
		Port:    cfg.Port,
		Log:     log,
		DevMode: cfg.DevMode,
		Modules: []server.RouteRegistrar{
			dashboard.NewHandler(dashboardSvc, log),
			forecast.NewHandler(log),
			instruments.NewHandler(instrumentsSvc, log),
			settings.NewHandler(settingsRepo, defaults, dashboardSvc.SetToken, log),
		},
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
