// Package main реализует точку входа сервиса Filmorate.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/adapters/cache"
	httpServer "filmorate/internal/filmorate/adapters/http"
	"filmorate/internal/filmorate/adapters/memory"
	"filmorate/internal/filmorate/adapters/postgres"
	"filmorate/internal/filmorate/app"
	"filmorate/internal/filmorate/config"
	cachePorts "filmorate/internal/filmorate/ports/cache"
	"filmorate/internal/filmorate/ports/repositories"
	pgdb "filmorate/pkg/db/postgres"
	"filmorate/pkg/logger"
	"filmorate/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "FILMORATE_LOGGER_MODE"
	EnvLoggerLevel = "FILMORATE_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrRunMigrations        = "failed to run database migrations"
	ErrInitCache            = "failed to initialize cache"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "filmorate service started"
	LogServiceShutdownDone = "filmorate service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingCache        = "closing cache connection"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitStorage         = "initializing storage"
	LogInitUseCases        = "initializing use cases"
	LogStartingHTTP        = "starting HTTP server"
	LogMemoryStorage       = "using in-memory storage"
	LogCacheDisabled       = "popular films cache disabled"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogInitStorage, zap.String("mode", cfg.Storage.Mode))

		var (
			userRepo  repositories.UserRepository
			filmRepo  repositories.FilmRepository
			genreRepo repositories.GenreRepository
			mpaRepo   repositories.MpaRepository
			database  *pgdb.Database
		)

		if cfg.Storage.IsMemory() {
			log.Info(ctx, LogMemoryStorage)
			userRepo = memory.NewUserStorage()
			filmRepo = memory.NewFilmStorage()
			genreRepo = memory.NewGenreStorage()
			mpaRepo = memory.NewMpaStorage()
		} else {
			database, err = pgdb.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
			if err != nil {
				log.Error(ctx, ErrInitDB, zap.Error(err))
				exitCode = 1
				return
			}

			if err := pgdb.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), cfg.Postgres.MigrationsPath); err != nil {
				log.Error(ctx, ErrRunMigrations, zap.Error(err))
				exitCode = 1
				return
			}

			repoFactory := postgres.NewRepositoryFactory(database.Pool())
			userRepo = repoFactory.UserRepository()
			filmRepo = repoFactory.FilmRepository()
			genreRepo = repoFactory.GenreRepository()
			mpaRepo = repoFactory.MpaRepository()
		}

		var popularCache cachePorts.Cache
		if cfg.Redis.Enabled {
			popularCache, err = cache.NewRedisCache(ctx, &cfg.Redis)
			if err != nil {
				log.Error(ctx, ErrInitCache, zap.Error(err))
				exitCode = 1
				return
			}
		} else {
			log.Info(ctx, LogCacheDisabled)
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitUseCases)
		userUseCase := app.NewUserUseCase(userRepo, cfg.Service.EnforceUserUniqueness)
		filmUseCase := app.NewFilmUseCase(filmRepo, userRepo, genreRepo, mpaRepo,
			popularCache, cfg.Service.PopularDefaultCount)
		genreUseCase := app.NewGenreUseCase(genreRepo)
		mpaUseCase := app.NewMpaUseCase(mpaRepo)

		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		var storagePing func(ctx context.Context) error
		if database != nil {
			storagePing = database.Ping
		}
		httpServer.SetupRouter(fiberApp, userUseCase, filmUseCase, genreUseCase, mpaUseCase, storagePing)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.ShutdownWithContext(ctx)
			},
			func(ctx context.Context) error {
				if popularCache != nil {
					log.Info(ctx, LogClosingCache)
					return popularCache.Close()
				}
				return nil
			},
			func(ctx context.Context) error {
				if database != nil {
					log.Info(ctx, LogClosingDB)
					database.Close(ctx)
				}
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
