package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"campusbuddy/infrastructure/cache"
	"campusbuddy/infrastructure/db"
	"campusbuddy/infrastructure/presence"
	"campusbuddy/infrastructure/ws"
	httpHandler "campusbuddy/internal/delivery/http"
	"campusbuddy/internal/delivery/websocket"
	"campusbuddy/internal/repository"
	"campusbuddy/internal/usecase"
	"campusbuddy/pkg/anonymize"
	"campusbuddy/pkg/config"
	"campusbuddy/pkg/jwt"
	"campusbuddy/pkg/logger"
	"campusbuddy/pkg/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "campusbuddy: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoDb, err := db.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Timeout)
	if err != nil {
		return err
	}
	defer func() { _ = mongoDb.Close(context.Background()) }()
	if err := mongoDb.EnsureIndexes(ctx); err != nil {
		return err
	}
	log.Info("connected to mongodb", zap.String("database", cfg.Mongo.Database))

	collectors := metrics.New()

	checks := map[string]httpHandler.HealthCheck{"mongo": mongoDb.Ping}

	var (
		hub           ws.IHub
		presenceStore presence.Store
	)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()

		serverID := uuid.New().String()
		redisHub, err := ws.NewRedisHub(ctx, rdb, serverID, log)
		if err != nil {
			return err
		}
		redisHub.OnConnectionChange(collectors.ConnectionOpened, collectors.ConnectionClosed)
		hub = redisHub
		presenceStore = presence.NewRedisStore(rdb)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info("using redis hub", zap.String("addr", cfg.Redis.Addr), zap.String("server_id", serverID))
	} else {
		memCache := cache.NewMemCache()
		memHub := ws.NewHub(log)
		memHub.OnConnectionChange(collectors.ConnectionOpened, collectors.ConnectionClosed)
		hub = memHub
		presenceStore = presence.NewMemoryStore(memCache)
		log.Info("using in-memory hub (single server)")
	}
	go hub.Run(ctx)

	verifier, err := jwt.NewVerifier(cfg.Auth)
	if err != nil {
		return err
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(mongoDb.DB)
	activityRepo := repository.NewActivityRepository(mongoDb.DB)
	messageRepo := repository.NewMessageRepository(mongoDb.DB)
	announcementRepo := repository.NewAnnouncementRepository(mongoDb.DB)
	lostFoundRepo := repository.NewLostFoundRepository(mongoDb.DB)
	feedbackRepo := repository.NewFeedbackRepository(mongoDb.DB)
	moodRepo := repository.NewMoodRepository(mongoDb.DB)
	statusRepo := repository.NewCampusStatusRepository(mongoDb.DB)
	badgeRepo := repository.NewBadgeRepository(mongoDb.DB)

	// Initialize use cases
	validate := usecase.NewValidator()
	publisher := websocket.NewPublisher(hub, presenceStore, log)
	effects := usecase.NewEffects(userRepo, activityRepo, log, collectors)

	authUc := usecase.NewAuthUsecase(verifier, userRepo, log)
	userUc := usecase.NewUserUseCase(userRepo, activityRepo, presenceStore, validate, log)
	messageUc := usecase.NewMessageUseCase(messageRepo, effects, publisher, validate, log, cfg.Chat.SummaryWindow)
	announcementUc := usecase.NewAnnouncementUsecase(announcementRepo, effects, publisher, validate, log)
	lostFoundUc := usecase.NewLostFoundUsecase(lostFoundRepo, effects, publisher, validate, log)
	feedbackUc := usecase.NewFeedbackUsecase(feedbackRepo, anonymize.New(cfg.Feedback.HashSecret), validate, log)
	moodUc := usecase.NewMoodUsecase(moodRepo, effects, validate, log)
	statusUc := usecase.NewCampusStatusUsecase(statusRepo, effects, publisher, validate, log)
	badgeUc := usecase.NewBadgeUsecase(badgeRepo, userRepo, activityRepo, effects, publisher, validate, log)

	// Initialize handlers
	responder := httpHandler.NewResponder(log, cfg.IsProduction())
	gateway := websocket.NewGateway(websocket.GatewayConfig{
		Hub:            hub,
		Presence:       presenceStore,
		AuthUc:         authUc,
		MessageUc:      messageUc,
		Effects:        effects,
		Metrics:        collectors,
		Logger:         log,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(logger.Middleware(log))
	router.Use(collectors.Middleware)
	router.Use(httpHandler.CORS(cfg.CORS.AllowedOrigins))

	httpHandler.MapHttpRoutes(router, httpHandler.Handlers{
		Auth:          httpHandler.NewAuthMiddleware(authUc, responder),
		Health:        httpHandler.NewHealthHandler(checks),
		Users:         httpHandler.NewUserHandler(userUc, responder),
		Chat:          httpHandler.NewChatHandler(messageUc, responder),
		Announcements: httpHandler.NewAnnouncementHandler(announcementUc, responder),
		LostFound:     httpHandler.NewLostFoundHandler(lostFoundUc, responder),
		Feedback:      httpHandler.NewFeedbackHandler(feedbackUc, responder),
		Mood:          httpHandler.NewMoodHandler(moodUc, responder),
		Status:        httpHandler.NewStatusHandler(statusUc, responder),
		Badges:        httpHandler.NewBadgeHandler(badgeUc, responder),
		WebSocket:     gateway,
		Metrics:       collectors.Handler(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server is running", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
