// Package main is the entry point of the notedeck service.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notedeck/internal/adapters/cache"
	adapterhttp "notedeck/internal/adapters/http"
	adapterpg "notedeck/internal/adapters/postgres"
	"notedeck/internal/adapters/services"
	"notedeck/internal/app"
	"notedeck/internal/config"
	"notedeck/pkg/db/postgres"
	"notedeck/pkg/logger"
	"notedeck/pkg/shutdown"
)

const (
	envLoggerMode  = "NOTEDECK_LOGGER_MODE"
	envLoggerLevel = "NOTEDECK_LOGGER_LEVEL"

	migrationsDir = "migrations"
)

const (
	errInitLogger           = "failed to initialize logger"
	errSyncLogger           = "failed to sync logger"
	errLoadConfig           = "failed to load configuration"
	errInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	errInitDB               = "failed to initialize database"
	errInitCache            = "failed to connect to cache"
	errStartHTTP            = "http server stopped with error"
	errResolveMigrations    = "failed to resolve migrations path"
)

const (
	errSyncStderr = "sync /dev/stderr: invalid argument"
	errSyncStdout = "sync /dev/stdout: invalid argument"
)

const (
	logServiceStarted      = "notedeck service started"
	logServiceShutdownDone = "notedeck service shutdown complete"
	logClosingDB           = "closing database connections"
	logClosingCache        = "closing cache connection"
	logStoppingHTTP        = "stopping http server"
	logInitRepo            = "initializing repositories"
	logInitServices        = "initializing services"
	logInitUseCases        = "initializing use cases"
	logStartingHTTP        = "starting http server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(envLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(envLoggerLevel))
	if err != nil {
		panic(errInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, errSyncStderr) || strings.Contains(errMsg, errSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", errSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, errLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, errInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		migrationsPath, err := filepath.Abs(migrationsDir)
		if err != nil {
			log.Error(ctx, errResolveMigrations, zap.Error(err))
			exitCode = 1
			return
		}

		connector := postgres.NewLazy(
			cfg.Postgres.GetConnectionURL(),
			cfg.Postgres.MinConn,
			cfg.Postgres.MaxConn,
			"file://"+migrationsPath,
		)
		database, err := connector.Acquire(ctx)
		if err != nil {
			log.Error(ctx, errInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		redisCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, errInitCache, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, logServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, logInitRepo)
		repoFactory := adapterpg.NewRepositoryFactory(database.Pool())

		log.Info(ctx, logInitServices)
		svcFactory := services.NewServiceFactory(&cfg.JWT)
		tokenService := svcFactory.NewTokenService()
		passwordService := svcFactory.NewPasswordService()

		log.Info(ctx, logInitUseCases)
		useCases := adapterhttp.UseCases{
			Auth: app.NewAuthUseCase(
				repoFactory.UserRepository(),
				repoFactory.TokenRepository(),
				passwordService,
				tokenService,
				cfg.JWT.GetAccessTokenTTL(),
				cfg.JWT.GetRefreshTokenTTL(),
			),
			User: app.NewUserUseCase(repoFactory.UserRepository()),
			Note: app.NewNoteUseCase(
				repoFactory.NoteRepository(),
				repoFactory.TagRepository(),
				repoFactory.CategoryRepository(),
				redisCache,
				cfg.Redis.GetDefaultTTL(),
			),
			Tag:      app.NewTagUseCase(repoFactory.TagRepository()),
			Category: app.NewCategoryUseCase(repoFactory.CategoryRepository()),
		}

		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.GetReadTimeout(),
			WriteTimeout: cfg.HTTP.GetWriteTimeout(),
		})
		adapterhttp.SetupRouter(fiberApp, useCases, tokenService)

		log.Info(ctx, logStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, errStartHTTP, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			func(shutdownCtx context.Context) error {
				log.Info(shutdownCtx, logStoppingHTTP)
				return fiberApp.ShutdownWithContext(shutdownCtx)
			},
			func(shutdownCtx context.Context) error {
				log.Info(shutdownCtx, logClosingDB)
				connector.Close(shutdownCtx)
				return nil
			},
			func(shutdownCtx context.Context) error {
				log.Info(shutdownCtx, logClosingCache)
				return redisCache.Close()
			},
		)

		log.Info(ctx, logServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
