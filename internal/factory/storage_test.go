package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowyourrights/cards/server/internal/config"
	"github.com/knowyourrights/cards/server/internal/model"
)

func TestNewStore_Memory(t *testing.T) {
	cfg := config.NewForTesting()
	st, b, err := NewStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer b.Close()

	_, err = st.Users().Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestNewStore_SQLite(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.StoreDriver = config.DriverSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "rights.db")

	st, b, err := NewStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer b.Close()

	_, created, err := st.Users().CreateIfAbsent(context.Background(), &model.User{UserID: "u1"})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestNewStore_Errors(t *testing.T) {
	cases := map[string]func(*config.Config){
		"unknown driver": func(c *config.Config) { c.StoreDriver = "cassandra" },
		"postgres no dsn": func(c *config.Config) {
			c.StoreDriver = config.DriverPostgres
			c.PostgresDSN = ""
		},
		"redis no addr": func(c *config.Config) {
			c.StoreDriver = config.DriverRedis
			c.RedisAddr = ""
		},
		"sqlite no path": func(c *config.Config) {
			c.StoreDriver = config.DriverSQLite
			c.SQLitePath = ""
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.NewForTesting()
			mutate(cfg)
			_, _, err := NewStore(context.Background(), cfg, zerolog.Nop())
			assert.Error(t, err)
		})
	}
}
