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

	"github.com/Dosada05/matchday-system/config"
	"github.com/Dosada05/matchday-system/db"
	"github.com/Dosada05/matchday-system/dispatch"
	"github.com/Dosada05/matchday-system/handlers"
	"github.com/Dosada05/matchday-system/live"
	"github.com/Dosada05/matchday-system/middleware"
	"github.com/Dosada05/matchday-system/repositories"
	api "github.com/Dosada05/matchday-system/routes"
	"github.com/Dosada05/matchday-system/services"
	"github.com/Dosada05/matchday-system/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
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

	if err := db.EnsureSchema(context.Background(), dbConn); err != nil {
		logger.Error("failed to ensure database schema", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database schema ensured")

	// Инициализация загрузчика файлов (Cloudflare R2)
	cloudflareUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	// Инициализация WebSocket Hub
	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Диспетчер уведомлений (опционально)
	var dispatcher services.DispatchPublisher
	if cfg.AMQPURL != "" {
		amqpPublisher, err := dispatch.NewAMQPPublisher(cfg.AMQPURL, logger)
		if err != nil {
			logger.Error("failed to initialize AMQP publisher", slog.Any("error", err))
			os.Exit(1)
		}
		defer amqpPublisher.Close()
		dispatcher = amqpPublisher
		logger.Info("AMQP notification dispatcher initialized")
	} else {
		logger.Info("AMQP_URL not set, notification dispatcher disabled")
	}

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	pitchRepo := repositories.NewPostgresPitchRepository(dbConn)
	reservationRepo := repositories.NewPostgresReservationRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	invitationRepo := repositories.NewPostgresInvitationRepository(dbConn)
	challengeRepo := repositories.NewPostgresChallengeRepository(dbConn)
	paymentRepo := repositories.NewPostgresPaymentRepository(dbConn)
	notificationRepo := repositories.NewPostgresNotificationRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	notificationService := services.NewNotificationService(notificationRepo, wsHub, dispatcher, logger)
	authService := services.NewAuthService(userRepo, playerRepo)
	availabilityService := services.NewAvailabilityService(pitchRepo, matchRepo, reservationRepo)
	teamService := services.NewTeamService(teamRepo, userRepo, pitchRepo, cloudflareUploader, logger)

	matchService := services.NewMatchService(
		dbConn,
		matchRepo,
		teamRepo,
		playerRepo,
		eventRepo,
		reservationRepo,
		paymentRepo,
		pitchRepo,
		notificationService,
		wsHub,
		logger,
	)

	rosterService := services.NewRosterService(
		dbConn,
		matchRepo,
		teamRepo,
		playerRepo,
		invitationRepo,
		challengeRepo,
		paymentRepo,
		pitchRepo,
		notificationService,
		wsHub,
		logger,
	)

	eventService := services.NewEventService(matchRepo, eventRepo, playerRepo, wsHub)

	paymentService := services.NewPaymentService(
		dbConn,
		matchRepo,
		reservationRepo,
		paymentRepo,
		playerRepo,
		notificationService,
		logger,
	)
	logger.Info("Services initialized")

	// Инициализация обработчиков HTTP
	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey, userRepo)
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	matchHandler := handlers.NewMatchHandler(matchService)
	rosterHandler := handlers.NewRosterHandler(rosterService)
	eventHandler := handlers.NewEventHandler(eventService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	teamHandler := handlers.NewTeamHandler(teamService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authenticator,
		authHandler,
		availabilityHandler,
		matchHandler,
		rosterHandler,
		eventHandler,
		paymentHandler,
		teamHandler,
		notificationHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
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

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
