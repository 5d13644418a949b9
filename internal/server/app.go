// Package server initializes and runs the authkeeper adapter server.
// It builds the logger, opens PostgreSQL and applies migrations, attaches
// the optional Redis and S3 backends, and serves the adapter over gRPC
// until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/avatars"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/authkeeper/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	redis   redis.UniversalClient
	adapter services.Adapter
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

// newS3Client is a seam for tests.
var newS3Client = func(ctx context.Context, s avatars.S3Settings) (avatars.ObjectPutter, error) {
	return avatars.NewS3Client(ctx, s)
}

// NewApp wires every dependency described by c. The database is pinged and
// migrated before NewApp returns.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	app := &App{config: c, logger: logger}

	if err := app.initStorage(ctx); err != nil {
		app.close(ctx)
		return nil, err
	}

	return app, nil
}

func (app *App) initStorage(ctx context.Context) error {
	c := app.config

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	app.db = db

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}

	var opts []repomanager.Option
	if c.RedisURL != "" {
		ro, err := redis.ParseURL(c.RedisURL)
		if err != nil {
			return fmt.Errorf("redis url error: %w", err)
		}
		app.redis = redis.NewClient(ro)
		opts = append(opts, repomanager.WithRedis(app.redis))
		app.logger.Info(ctx, "sessions and verification tokens stored in redis", "addr", ro.Addr)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(opts...)
	if err != nil {
		return fmt.Errorf("repository manager init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	var store avatars.Store
	if c.StoreImage {
		client, err := newS3Client(ctx, avatars.S3Settings{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return fmt.Errorf("s3 client init error: %w", err)
		}
		store = avatars.NewS3Store(client, c.S3Bucket, &http.Client{Timeout: c.AvatarFetchTimeout})
	}

	app.adapter = services.NewAdapterService(db, rm, store, services.Options{
		StoreImage: c.StoreImage,
		RoleBased:  c.RoleBased,
	}, app.logger)

	return nil
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(ctx, "redis close error", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

// Run serves the adapter until ctx is cancelled or the process receives
// SIGINT, SIGTERM or SIGQUIT, then releases the storage connections.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	defer app.close(context.WithoutCancel(ctx))

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddrGRPC)

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.adapter, app.config.SecretKey)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	app.logger.Info(ctx, "app stopped")
	return nil
}
