// Command dashboard serves the emergency response dashboard API and its live panel stream.
//
// @title                       Emergency Response Dashboard API
// @version                     1.0
// @description                 Live ambulance dispatch dashboard, emergency requests, community board and hospital directory.
// @BasePath                    /
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

	"github.com/nats-io/nats.go"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lifeline/response-dashboard/internal/api"
	"github.com/lifeline/response-dashboard/internal/api/handler"
	"github.com/lifeline/response-dashboard/internal/core/dashboard"
	"github.com/lifeline/response-dashboard/internal/core/ports"
	"github.com/lifeline/response-dashboard/internal/core/service"
	"github.com/lifeline/response-dashboard/internal/infrastructure/changefeed"
	mongodb "github.com/lifeline/response-dashboard/internal/infrastructure/db/mongo"
	redisdb "github.com/lifeline/response-dashboard/internal/infrastructure/db/redis"
	"github.com/lifeline/response-dashboard/internal/infrastructure/queue"
	"github.com/lifeline/response-dashboard/internal/pkg/config"
	"github.com/lifeline/response-dashboard/pkg/logger"
)

const (
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "response-dashboard",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("dashboard stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	checks := map[string]handler.Check{
		"mongodb": mongoCheck(db),
		"redis":   redisCheck(rdb),
	}

	feed, backend, closeFeed, err := openFeed(cfg, db, rdb, checks, logger.Component("changefeed"))
	if err != nil {
		return err
	}
	defer closeFeed()

	dispatcher := queue.NewDispatcher(cfg.DispatchWorkers, backend, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	svcLog := logger.Component("service")
	authService := service.NewAuthService(mongodb.NewAuthRepository(db), cfg.JWTSecret, tokenTTL)
	requestService := service.NewEmergencyRequestService(
		mongodb.NewEmergencyRequestRepository(db),
		redisdb.NewSubmissionGuard(rdb),
		dispatcher,
		svcLog,
	)
	communityService := service.NewCommunityService(mongodb.NewCommunityPostRepository(db), dispatcher, svcLog)
	directoryService := service.NewDirectoryService(
		mongodb.NewHospitalRepository(db),
		mongodb.NewArticleRepository(db),
		mongodb.NewAmbulanceRepository(db),
	)

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Requests:  requestService,
		Community: communityService,
		Directory: directoryService,
		Feed:      feed,
		Checks:    checks,
		JWTSecret: cfg.JWTSecret,
		Stream: handler.StreamOptions{
			Periods: dashboard.Periods{
				GPS:           cfg.Ticks.GPS,
				AmbulanceETA:  cfg.Ticks.AmbulanceETA,
				PatientETA:    cfg.Ticks.PatientETA,
				Notifications: cfg.Ticks.Notifications,
			},
			AllowedOrigins: cfg.Stream.AllowedOrigins,
		},
		Logger: logger.Component("http"),
	})

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("change_feed", cfg.ChangeFeed).Msg("dashboard listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openFeed selects the change feed and the publisher the dispatcher hands events to.
func openFeed(
	cfg *config.Config,
	db *mongo.Database,
	rdb *goredis.Client,
	checks map[string]handler.Check,
	log zerolog.Logger,
) (ports.ChangeFeed, ports.ChangePublisher, func(), error) {
	noop := func() {}
	switch cfg.ChangeFeed {
	case config.FeedMongo:
		f := changefeed.NewMongoFeed(db, log)
		return f, f, noop, nil
	case config.FeedRedis:
		f := changefeed.NewRedisFeed(rdb, log)
		return f, f, noop, nil
	case config.FeedNATS:
		nc, err := changefeed.ConnectNATS(cfg.NATS.URL, log)
		if err != nil {
			return nil, nil, nil, err
		}
		checks["nats"] = natsCheck(nc)
		f := changefeed.NewNATSFeed(nc, log)
		return f, f, nc.Close, nil
	case config.FeedMemory:
		h := changefeed.NewHub()
		return h, h, noop, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown change feed %q", cfg.ChangeFeed)
}

func mongoCheck(db *mongo.Database) handler.Check {
	return func(ctx context.Context) error {
		return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	}
}

func redisCheck(rdb *goredis.Client) handler.Check {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}

func natsCheck(nc *nats.Conn) handler.Check {
	return func(context.Context) error {
		if !nc.IsConnected() {
			return fmt.Errorf("nats status %s", nc.Status())
		}
		return nil
	}
}
