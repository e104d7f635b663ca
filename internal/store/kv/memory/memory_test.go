package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowyourrights/cards/server/internal/store/kv"
	"github.com/knowyourrights/cards/server/internal/store/kv/kvtest"
)

func TestBackendCompliance(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) kv.Backend { return New() })
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	b := New()
	require.NoError(t, b.Set(ctx, "ns", "k", []byte("abc")))

	v, err := b.Get(ctx, "ns", "k")
	require.NoError(t, err)
	v[0] = 'z'

	again, err := b.Get(ctx, "ns", "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestScanAllowsReentrantWrites(t *testing.T) {
	ctx := context.Background()
	b := New()
	require.NoError(t, b.Set(ctx, "ns", "a", []byte("1")))

	err := b.Scan(ctx, "ns", func(key string, _ []byte) bool {
		assert.NoError(t, b.Set(ctx, "ns", key+"-copy", []byte("2")))
		return true
	})
	require.NoError(t, err)
	_, err = b.Get(ctx, "ns", "a-copy")
	assert.NoError(t, err)
}
