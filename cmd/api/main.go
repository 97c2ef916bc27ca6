package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"siso/internal/adapter/api"
	"siso/internal/adapter/api/handler"
	apimiddleware "siso/internal/adapter/api/middleware"
	"siso/internal/adapter/api/router"
	"siso/internal/adapter/repository"
	"siso/internal/domain/service"
	"siso/internal/infrastructure/ai"
	"siso/internal/infrastructure/dedupe"
	"siso/internal/infrastructure/firebase"
	"siso/internal/infrastructure/metrics"
	"siso/internal/infrastructure/ratelimit"
	"siso/internal/infrastructure/storage"
	ws "siso/internal/infrastructure/websocket"
	"siso/internal/usecase"
	"siso/pkg/config"
	"siso/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Configure(cfg.LogLevel, cfg.Environment, os.Stdout)

	if err := cfg.ValidateStorage(); err != nil {
		logger.L().Fatal().Err(err).Msg("Invalid storage configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, err := credentialsOptions(cfg)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("Failed to resolve Firebase credentials")
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("Failed to initialize Firebase")
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("Failed to initialize Firebase Auth")
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("Failed to create Firestore client")
	}
	defer firestoreClient.Close()

	store, err := storage.New(ctx, cfg, opts...)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("Failed to initialize object storage")
	}
	defer store.Close()

	checks := []handler.DependencyCheck{{
		Name: "firestore",
		Check: func(ctx context.Context) error {
			_, err := firestoreClient.Collections(ctx).Next()
			if err != nil && !errors.Is(err, iterator.Done) {
				return err
			}
			return nil
		},
	}}

	var deduper service.Deduper
	switch cfg.DedupeBackend {
	case "redis":
		redisDeduper, err := dedupe.NewRedisDeduper(ctx, cfg.RedisURL, cfg.DedupeWindow)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisDeduper.Close()
		deduper = redisDeduper
		checks = append(checks, handler.DependencyCheck{Name: "redis", Check: redisDeduper.Ping})
	default:
		deduper = dedupe.NewMemoryDeduper(cfg.DedupeSize, cfg.DedupeWindow)
	}

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine(ctx.Done())

	m := metrics.New()

	wsManager := ws.NewManager()
	wsManager.Start(ctx)

	uploadRepo := repository.NewFirestoreUploadRepository(firestoreClient)
	issuanceRepo := repository.NewFirestoreIssuanceRepository(firestoreClient)
	musicianRepo := repository.NewFirestoreMusicianRepository(firestoreClient)

	identity := firebase.NewFirebaseAuthClient(authClient)

	var matcher service.Matcher
	if cfg.OpenAIAPIKey != "" {
		matcher = ai.NewOpenAIMatcher(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	} else {
		logger.Warn("OPENAI_API_KEY is not set, matchmaking is disabled")
	}

	uploadUseCase := usecase.NewUploadUseCase(store, uploadRepo, issuanceRepo, deduper, limiter, wsManager, m, usecase.UploadConfig{
		Bucket:        cfg.StorageBucket,
		PublicURLBase: cfg.StoragePublicURLBase,
		URLTTL:        cfg.UploadURLTTL,
		MaxBytes:      cfg.UploadMaxBytes,
	})
	reconcileUseCase := usecase.NewReconcileUseCase(store, uploadRepo, issuanceRepo, m, usecase.ReconcileConfig{
		Grace:    cfg.ReconcileGrace,
		Lookback: cfg.ReconcileLookback,
		Mode:     cfg.ReconcileMode,
	})
	profileUseCase := usecase.NewProfileUseCase(musicianRepo, uploadRepo, identity)
	matchUseCase := usecase.NewMatchUseCase(matcher, limiter, m)

	reconcileUseCase.Start(ctx, cfg.ReconcileInterval)

	authMiddleware := apimiddleware.NewAuthMiddleware(identity)
	adminMiddleware := apimiddleware.NewAdminMiddleware(musicianRepo)

	handler.Setup(uploadUseCase, profileUseCase, matchUseCase, reconcileUseCase)
	handler.SetupHealthHandler(checks...)
	handler.SetupWebSocketHandler(wsManager, authMiddleware, cfg.WSAllowedOrigins)

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.IsDevelopment()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	router.Setup(e, authMiddleware, adminMiddleware, limiter, m.Registry)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal().Err(err).Msg("Server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

// credentialsOptions prefers inline service-account JSON and falls back to a
// file path. With neither set, application default credentials are used.
func credentialsOptions(cfg *config.Config) ([]option.ClientOption, error) {
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))}, nil
	}

	if cfg.FirebaseServiceAccountPath != "" {
		if _, err := os.Stat(cfg.FirebaseServiceAccountPath); err != nil {
			return nil, err
		}
		logger.Info("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
		return []option.ClientOption{option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)}, nil
	}

	logger.Info("Using application default credentials")
	return nil, nil
}
