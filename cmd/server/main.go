package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"officespace/internal/api"
	"officespace/internal/catalog"
	"officespace/internal/clock"
	"officespace/internal/config"
	"officespace/internal/database"
	"officespace/internal/domain"
	"officespace/internal/events"
	"officespace/internal/gateway"
	"officespace/internal/google"
	"officespace/internal/logging"
	"officespace/internal/metrics"
	"officespace/internal/models"
	"officespace/internal/notify"
	"officespace/internal/policy"
	"officespace/internal/repository"
	"officespace/internal/session"
	"officespace/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	yamlv2 "gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	workspaces, err := loadWorkspaces(cfg, &logger)
	if err != nil {
		return err
	}
	cat := catalog.New(workspaces)

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	sessionRepo := buildSessionRepo(cfg, redisClient, &logger)
	eventBus := events.NewEventBus()

	bookingPolicy := policy.Policy{
		EndOfDayHour:   cfg.Booking.EndOfDayHour,
		EndOfDayMinute: cfg.Booking.EndOfDayMinute,
	}
	storeGateway := gateway.NewStoreGateway(db, cat, time.Duration(cfg.Booking.GatewayTimeout)*time.Second, &logger)
	sink := buildNotificationSink(cfg, &logger)

	manager := session.NewManager(cat, clock.System{}, bookingPolicy, storeGateway, sink, eventBus, sessionRepo, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startSyncWorker(ctx, cfg, eventBus, redisClient, &logger)
	startMetrics(ctx, cfg, &logger)

	httpServer := api.NewHTTPServer(cfg.API, cat, manager, db, cfg.Exports.Path, &logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "main").Logger()

	return cfg, logger, closer, nil
}

// loadWorkspaces prefers a standalone workspaces file when WORKSPACES_PATH is
// set, falling back to the workspaces section of the main config.
func loadWorkspaces(cfg *config.Config, logger *zerolog.Logger) ([]models.Workspace, error) {
	workspacesPath := os.Getenv("WORKSPACES_PATH")
	if workspacesPath == "" {
		return cfg.Workspaces, nil
	}

	data, err := os.ReadFile(workspacesPath)
	if err != nil {
		logger.Error().Err(err).Str("workspaces_path", workspacesPath).Msg("read workspaces")
		return nil, err
	}

	var workspacesConfig struct {
		Workspaces []models.Workspace `yaml:"workspaces"`
	}
	if err := yamlv2.Unmarshal(data, &workspacesConfig); err != nil {
		logger.Error().Err(err).Str("workspaces_path", workspacesPath).Msg("parse workspaces")
		return nil, err
	}

	if err := config.ValidateWorkspaces(workspacesConfig.Workspaces); err != nil {
		return nil, err
	}
	return workspacesConfig.Workspaces, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(context.Background(), redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

func buildSessionRepo(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) domain.SessionRepository {
	ttl := time.Duration(cfg.Booking.SessionTTL) * time.Second
	memory := repository.NewMemorySessionRepository(ttl)
	if redisClient == nil {
		return memory
	}

	primary := repository.NewRedisSessionRepository(redisClient, ttl)
	return repository.NewFailoverSessionRepository(primary, memory, logger)
}

func buildNotificationSink(cfg *config.Config, logger *zerolog.Logger) domain.NotificationSink {
	if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == 0 {
		return notify.NewLogSink(logger)
	}

	sink, err := notify.NewTelegramSink(cfg.Telegram, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram init failed, falling back to log sink")
		return notify.NewLogSink(logger)
	}

	logger.Info().Int64("chat_id", cfg.Telegram.ChatID).Msg("telegram notifications enabled")
	return sink
}

// startSyncWorker mirrors confirmed reservations into Google Sheets when
// credentials are configured.
func startSyncWorker(ctx context.Context, cfg *config.Config, eventBus *events.EventBus, redisClient *redis.Client, logger *zerolog.Logger) {
	if cfg.Google.CredentialsFile == "" || cfg.Google.ReservationSpreadSheetID == "" {
		return
	}

	sheetsService, err := google.NewSheetsService(
		cfg.Google.CredentialsFile,
		cfg.Google.ReservationSpreadSheetID,
		cfg.Google.ReservationSheetRange,
	)
	if err != nil {
		logger.Warn().Err(err).Msg("google sheets init failed, continuing without sheets")
		return
	}
	logger.Info().Msg("google sheets connected")

	syncWorker := worker.NewSyncWorker(sheetsService, redisClient, worker.RetryPolicy{}, logger)
	go syncWorker.Start(ctx)

	eventBus.Subscribe(events.EventReservationConfirmed, func(event *events.Event) error {
		var payload events.ReservationEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}

		res := &models.Reservation{
			ID:            payload.ReservationID,
			WorkspaceID:   payload.WorkspaceID,
			WorkspaceName: payload.WorkspaceName,
			Start:         payload.Start,
			End:           payload.End,
			Duration:      models.Duration(payload.Duration),
			Notes:         payload.Notes,
			Status:        models.StatusConfirmed,
		}
		return syncWorker.EnqueueReservation(ctx, res)
	})
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Int("port", port).Msg("metrics server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}
