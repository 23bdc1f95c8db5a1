package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Danthemainman1/debate-scheduler/config"
	"github.com/Danthemainman1/debate-scheduler/db"
	"github.com/Danthemainman1/debate-scheduler/handlers"
	"github.com/Danthemainman1/debate-scheduler/repositories"
	api "github.com/Danthemainman1/debate-scheduler/routes"
	"github.com/Danthemainman1/debate-scheduler/scheduling"
	"github.com/Danthemainman1/debate-scheduler/services"
	"github.com/Danthemainman1/debate-scheduler/storage"
	"github.com/go-chi/chi/v5"
	"github.com/robfig/cron/v3"
)

// defaultConflictSweep re-checks every tournament's conflicts each minute so
// dashboards pick up venue changes made outside the schedule endpoints.
const defaultConflictSweep = "@every 1m"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.R2 != nil {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 not configured, schedule publishing disabled")
	}

	wsHub := scheduling.NewHub(logger)
	go wsHub.Run()
	logger.Info("websocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	venueRepo := repositories.NewPostgresVenueRepository(dbConn)
	scheduleRepo := repositories.NewPostgresScheduleRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	tournamentService := services.NewTournamentService(tournamentRepo)
	teamService := services.NewTeamService(teamRepo, tournamentService)
	venueService := services.NewVenueService(venueRepo, tournamentService)
	scheduleService := services.NewScheduleService(
		tournamentService,
		teamRepo,
		venueRepo,
		scheduleRepo,
		wsHub,
		logger,
		services.ScheduleServiceConfig{
			RequireCompletedForWinner: cfg.RequireCompletedForWinner,
		},
	)
	exportService := services.NewExportService(
		scheduleService,
		tournamentService,
		teamRepo,
		venueRepo,
		scheduleRepo,
		repositories.NewTxManager(dbConn),
		uploader,
	)
	logger.Info("services initialized")

	sweeper := cron.New()
	sweepSchedule := cfg.ConflictSweepSchedule
	if sweepSchedule == "" {
		sweepSchedule = defaultConflictSweep
	}
	_, err = sweeper.AddFunc(sweepSchedule, func() {
		sweepConflicts(context.Background(), logger, tournamentRepo, scheduleService, wsHub)
	})
	if err != nil {
		logger.Error("invalid conflict sweep schedule",
			slog.String("schedule", sweepSchedule), slog.Any("error", err))
		os.Exit(1)
	}
	sweeper.Start()
	defer sweeper.Stop()
	logger.Info("conflict sweep scheduled", slog.String("schedule", sweepSchedule))

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	teamHandler := handlers.NewTeamHandler(teamService)
	venueHandler := handlers.NewVenueHandler(venueService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, exportService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, tournamentService, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		tournamentHandler,
		teamHandler,
		venueHandler,
		scheduleHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

// sweepConflicts re-runs conflict detection for every tournament that has
// live websocket watchers and broadcasts the result.
func sweepConflicts(
	ctx context.Context,
	logger *slog.Logger,
	tournamentRepo repositories.TournamentRepository,
	scheduleService services.ScheduleService,
	hub *scheduling.Hub,
) {
	ids, err := tournamentRepo.ListIDs(ctx)
	if err != nil {
		logger.Error("conflict sweep: failed to list tournaments", slog.Any("error", err))
		return
	}

	for _, id := range ids {
		room := scheduling.RoomID(id)
		if !hub.RoomActive(room) {
			continue
		}
		conflicts, err := scheduleService.Conflicts(ctx, id)
		if err != nil {
			logger.Error("conflict sweep: detection failed",
				slog.Int("tournament_id", id), slog.Any("error", err))
			continue
		}
		hub.BroadcastToRoom(room, scheduling.Event{
			Type:    scheduling.EventConflictsUpdated,
			Payload: conflicts,
		})
	}
}
