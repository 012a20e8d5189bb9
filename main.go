package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"eventmanager/config"
	"eventmanager/db"
	"eventmanager/logging"
	"eventmanager/middlewares"
	"eventmanager/models"
	"eventmanager/routes"
)

const defaultMongoDatabase = "event-manager"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	root, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	logger := root.WithField("env", cfg.Env)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore := openStore(ctx, cfg, logger.WithField(logging.FldStore, cfg.StoreDriver))
	defer closeStore()

	// Redis is optional: it backs the read cache and the write quota
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Error("Redis ping failed")
		} else {
			logger.Info("Redis connected")
		}
		repo = models.NewCachedEventRepository(repo, rdb, cfg.CacheTTL, logger.WithField(logging.FldStore, "redis"))
	}

	svc := models.NewEventService(repo, logger)

	httpLogger := logger.WithField(logging.FldTransport, "HTTP")
	server, err := routes.NewServer(httpLogger, middlewares.SessionConfig{
		Name:   cfg.SessionName,
		Secret: cfg.SessionSecret,
		Secure: cfg.IsProduction(),
	})
	if err != nil {
		logger.WithError(err).Fatal("Could not build HTTP server")
	}

	limiter := middlewares.NewRateLimiter(ctx, middlewares.LimiterConfig{
		RPS:     cfg.RateLimitRPS,
		Burst:   cfg.RateLimitBurst,
		IdleTTL: 10 * time.Minute,
	})
	guards := []gin.HandlerFunc{limiter.Middleware(middlewares.ByClientIP("writes:"))}
	if rdb != nil && cfg.WriteQuota > 0 {
		guards = append(guards, middlewares.Quota(rdb, middlewares.QuotaRule{
			Limit:  cfg.WriteQuota,
			Window: 24 * time.Hour,
			KeyFn:  middlewares.WriteQuotaKey,
		}, logger))
	}
	routes.RegisterRoutes(server, svc, httpLogger, guards...)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           middlewares.MethodOverride(server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	httpLogger.WithField("addr", srv.Addr).Info("Server started")
	if err := serve(ctx, srv, logger); err != nil {
		logger.WithError(err).Fatal("HTTP server failed")
	}
	logger.Info("Shutdown complete")
}

// serve runs srv until it fails or ctx is done, then shuts it down within
// ten seconds.
func serve(ctx context.Context, srv *http.Server, logger *logrus.Entry) error {
	errs := make(chan error, 1)
	go func() { errs <- srv.ListenAndServe() }()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Caught signal to stop. Shutting down.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Graceful shutdown failed")
		}
		return nil
	}
}

// openStore builds the configured repository. Connection problems are only
// logged so the server still comes up; the store reports errors per request
// until the database is reachable.
func openStore(ctx context.Context, cfg config.Config, logger *logrus.Entry) (models.EventRepository, func()) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return openMongo(ctx, cfg, logger)
	default:
		return openSQL(ctx, cfg, logger)
	}
}

func openMongo(ctx context.Context, cfg config.Config, logger *logrus.Entry) (models.EventRepository, func()) {
	uri := cfg.MongoURI()
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.WithError(err).Fatal("Invalid MongoDB configuration")
	}
	closeFn := func() { _ = cli.Disconnect(context.Background()) }

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := cli.Ping(pingCtx, nil); err != nil {
		logger.WithError(err).Error("MongoDB connection failed")
	} else {
		logger.Info("MongoDB connected")
	}

	repo := models.NewMongoEventRepository(
		cli.Database(mongoDatabase(cfg, uri)).Collection("events"), cfg.StoreTimeout, logger)
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.WithError(err).Error("Could not create MongoDB indexes")
	}
	return repo, closeFn
}

func mongoDatabase(cfg config.Config, uri string) string {
	if cfg.MongoDatabase != "" {
		return cfg.MongoDatabase
	}
	if cs, err := connstring.ParseAndValidate(uri); err == nil && cs.Database != "" {
		return cs.Database
	}
	return defaultMongoDatabase
}

func openSQL(ctx context.Context, cfg config.Config, logger *logrus.Entry) (models.EventRepository, func()) {
	conn, err := db.Open(cfg.StoreDriver, cfg.SQLDSN())
	if err != nil {
		logger.WithError(err).Fatal("Invalid SQL configuration")
	}
	closeFn := func() { _ = conn.Close() }

	if err := conn.PingContext(ctx); err != nil {
		logger.WithError(err).Error("Database connection failed")
	} else {
		logger.Info("Database connected")
	}
	if err := db.CreateTables(ctx, conn); err != nil {
		logger.WithError(err).Error("Could not create tables")
	}
	return models.NewSQLEventRepository(conn, cfg.StoreTimeout, logger), closeFn
}
