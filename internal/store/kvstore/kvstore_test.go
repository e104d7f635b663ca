package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowyourrights/cards/server/internal/health"
	"github.com/knowyourrights/cards/server/internal/store"
	"github.com/knowyourrights/cards/server/internal/store/kv/memory"
	"github.com/knowyourrights/cards/server/internal/store/kv/sqlite"
	"github.com/knowyourrights/cards/server/internal/store/storetest"
)

func TestMemoryStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New(memory.New()) })
}

func TestSQLiteStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		b, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "rights.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = b.Close() })
		return New(b)
	})
}

func TestStore_HealthPing(t *testing.T) {
	s := New(memory.New())
	p, ok := s.(health.HealthPinger)
	require.True(t, ok, "kv store should expose HealthPing")
	assert.NoError(t, p.HealthPing(context.Background()))
}
