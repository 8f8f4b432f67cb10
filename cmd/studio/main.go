// @title                      Studio Schedule API
// @version                    1.0
// @description                Staff accounts, daily shooting schedules and the admin roster for a photography studio.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	_ "github.com/studiodesk/schedule-system/docs"
	"github.com/studiodesk/schedule-system/internal/api"
	"github.com/studiodesk/schedule-system/internal/core/ports"
	"github.com/studiodesk/schedule-system/internal/core/service"
	"github.com/studiodesk/schedule-system/internal/infrastructure/db/mongo"
	"github.com/studiodesk/schedule-system/internal/infrastructure/db/redis"
	"github.com/studiodesk/schedule-system/internal/infrastructure/db/sqlite"
	"github.com/studiodesk/schedule-system/internal/infrastructure/http/handlers"
	"github.com/studiodesk/schedule-system/internal/infrastructure/queue"
	"github.com/studiodesk/schedule-system/internal/infrastructure/worksheet"
	"github.com/studiodesk/schedule-system/internal/pkg/config"
	"github.com/studiodesk/schedule-system/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty || !cfg.IsProduction(),
		Service: "studio",
	})

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	opener, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := opener.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("store close")
		}
	}()

	writes := newWriteSerializer(ctx, cfg, rdb, log)

	users := worksheet.NewUserRepository(opener, cfg.Store.Name, writes, logger.Component("users"))
	schedules := worksheet.NewScheduleRepository(opener, cfg.Store.Name, writes, logger.Component("schedules"))
	revoker := redis.NewTokenRevoker(rdb)

	authSvc := service.NewAuthService(users, revoker, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth"))
	if cfg.Bootstrap.MasterID != "" {
		if err := authSvc.EnsureMaster(ctx, cfg.Bootstrap.MasterID, cfg.Bootstrap.MasterPassword, cfg.Bootstrap.MasterName); err != nil {
			log.Fatal().Err(err).Msg("failed to bootstrap master account")
		}
	}

	router := api.NewRouter(api.Dependencies{
		Auth:      authSvc,
		Schedules: service.NewScheduleService(schedules, logger.Component("schedules")),
		Admin:     service.NewAdminService(users, logger.Component("admin")),
		Users:     users,
		Revoker:   revoker,
		Readiness: map[string]handlers.Check{
			"store": opener.Ping,
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		JWTSecret: cfg.JWTSecret,
		Log:       logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.Store.Driver).Str("write_lock", cfg.Writes.Lock).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	cancel()
}

func openStore(ctx context.Context, cfg *config.Config) (ports.TableOpener, error) {
	if cfg.Store.Driver == config.DriverMongo {
		client, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, AppName: "studio"})
		if err != nil {
			return nil, err
		}
		return mongo.NewOpener(client, cfg.Store.AutoCreate), nil
	}
	return sqlite.NewOpener(cfg.SQLite.Dir, cfg.Store.AutoCreate), nil
}

// newWriteSerializer picks the in-process dispatcher for a single instance or
// the Redis lock when several instances share one store.
func newWriteSerializer(ctx context.Context, cfg *config.Config, rdb *goredis.Client, log zerolog.Logger) ports.WriteSerializer {
	if cfg.Writes.Lock == config.WriteLockRedis {
		return redis.NewWriteLock(rdb, cfg.Writes.LockTTL, cfg.Writes.LockWait, log.With().Str("component", "write_lock").Logger())
	}
	d := queue.NewDispatcher(cfg.Writes.Workers, log.With().Str("component", "writes").Logger())
	d.Start(ctx)
	return d
}
