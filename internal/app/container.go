package app

import (
	"context"
	"log"
	"time"

	"jobport/internal/config"
	"jobport/internal/database"
	"jobport/internal/database/migration"
	dbpostgres "jobport/internal/database/postgres"
	"jobport/internal/infrastructure/cache"
	"jobport/internal/infrastructure/storage"
	"jobport/internal/ws"
)

const migrationsDir = "migrations"

// Container holds the process-wide infrastructure: the connection pool,
// the cache, the document store and the websocket hub.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Store  storage.DocumentStore
	Hub    *ws.Hub
	Logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: migrationsDir}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	var store storage.DocumentStore
	if s3Store, err := storage.NewS3Store(ctx, cfg.Storage); err != nil {
		if logger != nil {
			logger.Printf("document storage unavailable: %v", err)
		}
		store = (*storage.S3Store)(nil)
	} else {
		store = s3Store
	}

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  redisCache,
		Store:  store,
		Hub:    ws.NewHub(logger),
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
