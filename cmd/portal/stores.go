package main

import (
	"context"
	"fmt"
	"time"

	"github.com/duckcorp/portal/internal/core/ports"
	"github.com/duckcorp/portal/internal/infrastructure/db/file"
	"github.com/duckcorp/portal/internal/infrastructure/db/memory"
	mongostore "github.com/duckcorp/portal/internal/infrastructure/db/mongo"
	redisstore "github.com/duckcorp/portal/internal/infrastructure/db/redis"
	sqlstore "github.com/duckcorp/portal/internal/infrastructure/db/sql"
	"github.com/duckcorp/portal/internal/pkg/config"
)

// closer releases a backend connection on shutdown.
type closer func(ctx context.Context) error

func openCollectionStore(ctx context.Context, cfg *config.Config) (ports.CollectionStore, closer, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.Store.Driver {
	case "memory":
		return memory.NewCollectionStore(), noop, nil
	case "file":
		store, err := file.NewCollectionStore(cfg.Store.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	case sqlstore.DriverSQLite, sqlstore.DriverPostgres:
		db, err := sqlstore.Open(cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return sqlstore.NewCollectionStore(db), func(context.Context) error { return sqlDB.Close() }, nil
	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		return mongostore.NewCollectionStore(db), client.Disconnect, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}

func openSessionStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, closer, error) {
	switch cfg.Sessions.Driver {
	case "memory":
		store := memory.NewSessionStore()
		return store, func(context.Context) error { return nil }, nil
	case "redis":
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Timeout:  5 * time.Second,
		})
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewSessionStore(client), func(context.Context) error { return client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown SESSION_DRIVER %q", cfg.Sessions.Driver)
	}
}
