package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/gamestore-zarzis/backend/internal/api/http"
	"github.com/gamestore-zarzis/backend/internal/cache"
	"github.com/gamestore-zarzis/backend/internal/config"
	"github.com/gamestore-zarzis/backend/internal/db"
	"github.com/gamestore-zarzis/backend/internal/queue/asynqserver"
	"github.com/gamestore-zarzis/backend/internal/repository"
	"github.com/gamestore-zarzis/backend/internal/server"
	"github.com/gamestore-zarzis/backend/internal/service"
	"github.com/gamestore-zarzis/backend/internal/worker"
	"github.com/gamestore-zarzis/backend/pkg/auth"
	"github.com/gamestore-zarzis/backend/pkg/logger"
	"github.com/gamestore-zarzis/backend/pkg/otp"
	"github.com/gamestore-zarzis/backend/pkg/sms"
	"github.com/gamestore-zarzis/backend/templates"

	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	appLogger := logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	appLogger.Info("starting backend api", zap.String("env", cfg.Env))
	appLogger.Debug("debug messages are enabled")

	// Init database
	dbConn, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Error("db connect problem", zap.String("driver", cfg.Database.Driver), zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			appLogger.Error("error when closing db", zap.Error(err))
		}
	}()
	appLogger.Info("db connection done", zap.String("driver", cfg.Database.Driver))

	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		appLogger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("error when closing redis", zap.Error(err))
		}
	}()

	emailSender := newEmailSender(cfg)
	appLogger.Info("email providers", zap.Strings("chain", emailSender.Providers()))

	smsSender := sms.NewHTTPSender(cfg.SMS.ProviderURL, cfg.SMS.APIKey, cfg.SMS.Enabled, cfg.Delivery.Timeout)

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		appLogger.Error("auth manager creation err", zap.Error(err))
		return
	}

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbConn)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Repos:        repos,
		OtpGenerator: otp.NewDigitGenerator(),
		EmailSender:  emailSender,
		SMSSender:    smsSender,
		Redis:        redisClient,
		Templates:    templates.FS,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg)

	// HTTP Server
	srv := server.NewServer(cfg.HttpServer, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Queue
	stopQueue := func() {}
	if cfg.Queue.Enabled {
		stopQueue, err = startQueue(cfg, services)
		if err != nil {
			appLogger.Error("queue start failed", zap.Error(err))
			os.Exit(1)
		}
		appLogger.Info("queue started", zap.String("cleanup_schedule", cfg.Cleanup.Schedule))
	}

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}
	stopQueue()

	appLogger.Info("app stopped")
}

func startQueue(cfg *config.Config, services *service.Services) (func(), error) {
	workers := worker.NewWorkers(worker.Deps{Services: services})

	asynqServer, mux := asynqserver.New(cfg.Cache, cfg.Queue, workers)
	if err := asynqServer.Start(mux); err != nil {
		return nil, err
	}

	scheduler, err := asynqserver.NewScheduler(cfg.Cache, cfg.Cleanup)
	if err != nil {
		asynqServer.Shutdown()
		return nil, err
	}
	if err := scheduler.Start(); err != nil {
		asynqServer.Shutdown()
		return nil, err
	}

	return func() {
		scheduler.Shutdown()
		asynqServer.Shutdown()
	}, nil
}
