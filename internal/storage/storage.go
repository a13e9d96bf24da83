// Package storage holds the single-key blob stores behind the scenario list.
package storage

import (
	"context"
	"errors"
	"fmt"

	"franchise-estimator/internal/common/config"
	"franchise-estimator/internal/common/database"
	"franchise-estimator/internal/common/logger"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a string-keyed blob store. Values are opaque to the backend.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Backend is a Storage that owns a connection.
type Backend interface {
	Storage
	Ping(ctx context.Context) error
	Close() error
}

// New builds the backend selected by cfg.Storage.Backend and verifies it is
// reachable.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (Backend, error) {
	var (
		b   Backend
		err error
	)

	switch cfg.Storage.Backend {
	case config.BackendMemory, "":
		b = NewMemory()
	case config.BackendRedis:
		var rc *database.RedisClient
		rc, err = database.NewRedis(cfg.Database.Redis)
		if err == nil {
			b = NewRedis(rc.Client)
		}
	case config.BackendPostgres:
		var pc *database.PostgresClient
		pc, err = database.NewPostgres(cfg.Database.Postgres)
		if err == nil {
			pg := NewPostgres(pc.DB, cfg.Storage.Table)
			if err = pg.EnsureSchema(ctx); err != nil {
				_ = pg.Close()
			}
			b = pg
		}
	case config.BackendElasticsearch:
		var ec *database.ElasticsearchClient
		ec, err = database.NewElasticsearch(cfg.Database.Elasticsearch, nil)
		if err == nil {
			b = NewElasticsearch(ec.Client, cfg.Storage.Index)
		}
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialise %s storage: %w", cfg.Storage.Backend, err)
	}

	if err := b.Ping(ctx); err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("%s storage is unreachable: %w", cfg.Storage.Backend, err)
	}

	log.Info("Storage backend ready", map[string]interface{}{
		"backend": cfg.Storage.Backend,
		"key":     cfg.Storage.Key,
	})
	return b, nil
}
