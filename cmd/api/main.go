// Command api serves the booking REST API.
//
// @title                       Booking API
// @version                     1.0
// @description                 Property listings, bookings and reviews with JWT sessions and role-based access.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/staylink/booking-api/internal/api"
	"github.com/staylink/booking-api/internal/api/handler"
	"github.com/staylink/booking-api/internal/core/service"
	"github.com/staylink/booking-api/internal/infrastructure/db/mongo"
	"github.com/staylink/booking-api/internal/infrastructure/db/redis"
	"github.com/staylink/booking-api/internal/infrastructure/queue"
	"github.com/staylink/booking-api/internal/pkg/config"
	"github.com/staylink/booking-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "booking-api",
	})
	log.Info().Str("env", cfg.Env).Msg("starting booking api")

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer dcancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	users := mongo.NewUserRepository(db)
	properties := mongo.NewPropertyRepository(db)
	bookings := mongo.NewBookingRepository(db)
	reviews := mongo.NewReviewRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, properties, bookings, reviews); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	readiness := []handler.DependencyCheck{handler.MongoCheck(db)}
	var tokenOpts []service.TokenOption
	if cfg.Redis.Enabled {
		denylist, rdb, err := redis.OpenDenylist(ctx, redis.Config{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			PoolSize:    cfg.Redis.PoolSize,
			TLS:         cfg.Redis.TLS,
			DialTimeout: cfg.Redis.DialTimeout,
			OpTimeout:   cfg.Redis.OpTimeout,
		})
		if err != nil {
			return err
		}
		defer closeRedis(rdb, log)
		tokenOpts = append(tokenOpts, service.WithDenylist(denylist))
		readiness = append(readiness, handler.RedisCheck(rdb))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected, token revocation enabled")
	} else {
		log.Warn().Msg("redis disabled, logout will not revoke tokens")
	}

	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL, tokenOpts...)

	ratings := service.NewRatingService(reviews, properties, logger.Component("ratings"))
	dispatcher := queue.NewDispatcher(cfg.RatingWorkers, ratings, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	svcLog := logger.Component("service")
	router := api.NewRouter(api.Dependencies{
		Auth:       service.NewAuthService(users, tokens, svcLog),
		Tokens:     tokens,
		Users:      users,
		UserAdmin:  service.NewUserService(users, svcLog),
		Properties: service.NewPropertyService(properties, bookings, reviews, svcLog),
		Bookings:   service.NewBookingService(bookings, properties, svcLog),
		Reviews:    service.NewReviewService(reviews, properties, dispatcher, svcLog),
		Cookie: handler.CookieConfig{
			Name:   cfg.JWT.CookieName,
			Secure: cfg.IsProduction(),
		},
		RequestTimeout: cfg.RequestTimeout,
		Readiness:      readiness,
		Log:            logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer scancel()
	if err := router.Shutdown(sctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
}
