package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/knowyourrights/cards/server/internal/config"
	storepkg "github.com/knowyourrights/cards/server/internal/store"
	"github.com/knowyourrights/cards/server/internal/store/kv"
	"github.com/knowyourrights/cards/server/internal/store/kv/memory"
	kvpg "github.com/knowyourrights/cards/server/internal/store/kv/postgres"
	kvredis "github.com/knowyourrights/cards/server/internal/store/kv/redis"
	kvsqlite "github.com/knowyourrights/cards/server/internal/store/kv/sqlite"
	"github.com/knowyourrights/cards/server/internal/store/kvstore"
)

const defaultBootstrapTimeout = 10 * time.Second

// NewBackend opens the key/value backend selected by cfg.StoreDriver.
// cfg must have been through ResolveDefaults.
func NewBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (kv.Backend, error) {
	bootCtx, cancel := context.WithTimeout(ctx, defaultBootstrapTimeout)
	defer cancel()

	var (
		b   kv.Backend
		err error
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		b = memory.New()
	case config.DriverSQLite:
		b, err = kvsqlite.New(bootCtx, cfg.SQLitePath)
	case config.DriverPostgres:
		b, err = kvpg.New(bootCtx, cfg.PostgresDSN)
	case config.DriverRedis:
		b, err = kvredis.New(bootCtx, kvredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER: %s", cfg.StoreDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.StoreDriver, err)
	}
	log.Debug().Str("driver", cfg.StoreDriver).Msg("store backend ready")
	return b, nil
}

// NewStore returns a store.Store over the configured backend. Close the
// returned backend on shutdown.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, kv.Backend, error) {
	b, err := NewBackend(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return kvstore.New(b), b, nil
}
