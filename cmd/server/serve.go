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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/iliyamo/vidly-api/internal/config"
	"github.com/iliyamo/vidly-api/internal/database"
	"github.com/iliyamo/vidly-api/internal/handler"
	"github.com/iliyamo/vidly-api/internal/logging"
	"github.com/iliyamo/vidly-api/internal/middleware"
	"github.com/iliyamo/vidly-api/internal/queue"
	"github.com/iliyamo/vidly-api/internal/repository"
	"github.com/iliyamo/vidly-api/internal/router"
	"github.com/iliyamo/vidly-api/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	cfg := config.Load() // Load environment config

	log, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := database.Open(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(client); err != nil {
			log.WithError(err).Warn("mongo disconnect")
		}
	}()
	if err := database.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	if cfg.LogToMongo {
		log.AddHook(logging.NewMongoHook(db.Collection(database.Logs)))
	}

	// Redis is optional: without it there is no rate limiting and no cache.
	rdb, err := config.NewRedisClient(ctx)
	if err != nil {
		log.WithError(err).Warn("redis unavailable; rate limiting and response cache disabled")
	} else {
		defer rdb.Close()
	}

	customers := repository.NewCustomerRepo(db)
	genres := repository.NewGenreRepo(db)
	movies := repository.NewMovieRepo(db)
	rentals := repository.NewRentalRepo(db)
	users := repository.NewUserRepo(db)

	workflow := &service.RentalService{
		Customers: customers,
		Movies:    movies,
		Rentals:   rentals,
		Log:       log.WithField("component", "rentals"),
	}
	if cfg.MongoTransactions {
		workflow.Tx = database.NewTransactor(client)
	}
	if cfg.EventsEnabled {
		workflow.Events = service.NewAMQPPublisher(cfg.AMQPURL, log)
		startConsumer(ctx, cfg, log)
	}

	e := router.New(router.Deps{
		JWTSecret: cfg.JWTSecret,
		Log:       log,
		Debug:     !cfg.IsProd(),
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log),
		Cache:     middleware.NewResponseCache(config.LoadCacheConfig(), rdb, log),
		HealthCheck: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
	}, router.Handlers{
		Users:     handler.NewUserHandler(cfg, users, log),
		Customers: handler.NewCustomerHandler(customers, log),
		Genres:    handler.NewGenreHandler(genres, log),
		Movies:    handler.NewMovieHandler(movies, genres, log),
		Rentals:   handler.NewRentalHandler(rentals, workflow, log),
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()
	log.WithFields(logrus.Fields{
		"addr":         addr,
		"env":          cfg.Env,
		"transactions": cfg.MongoTransactions,
		"redis":        rdb != nil,
		"events":       cfg.EventsEnabled,
	}).Info("listening")

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// startConsumer runs the rental event consumer until ctx is cancelled.
func startConsumer(ctx context.Context, cfg config.Config, log *logrus.Logger) {
	c := &queue.Consumer{
		URL:     cfg.AMQPURL,
		LogPath: cfg.EventsLogFile,
		Log:     log.WithField("component", "rental-consumer"),
	}
	go func() {
		if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("rental consumer stopped")
		}
	}()
}
