// Package kvtest holds a compliance suite every kv.Backend must pass.
package kvtest

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowyourrights/cards/server/internal/store/kv"
)

// Run exercises the backend returned by makeBackend. Each call must return an
// isolated backend or one where random namespaces do not collide.
func Run(t *testing.T, makeBackend func(t *testing.T) kv.Backend) {
	t.Helper()

	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		b := makeBackend(t)
		_, err := b.Get(ctx, namespace(), "absent")
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("SetGetOverwrite", func(t *testing.T) {
		b := makeBackend(t)
		ns := namespace()
		require.NoError(t, b.Set(ctx, ns, "k", []byte(`{"v":1}`)))
		got, err := b.Get(ctx, ns, "k")
		require.NoError(t, err)
		assert.Equal(t, `{"v":1}`, string(got))

		require.NoError(t, b.Set(ctx, ns, "k", []byte(`{"v":2}`)))
		got, err = b.Get(ctx, ns, "k")
		require.NoError(t, err)
		assert.Equal(t, `{"v":2}`, string(got))
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		b := makeBackend(t)
		ns := namespace()
		require.NoError(t, b.Set(ctx, ns, "k", []byte("x")))
		require.NoError(t, b.Delete(ctx, ns, "k"))
		require.NoError(t, b.Delete(ctx, ns, "k"))
		_, err := b.Get(ctx, ns, "k")
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("ScanIsolatesNamespaces", func(t *testing.T) {
		b := makeBackend(t)
		ns, other := namespace(), namespace()
		for _, k := range []string{"a", "b", "c"} {
			require.NoError(t, b.Set(ctx, ns, k, []byte(k)))
		}
		require.NoError(t, b.Set(ctx, other, "z", []byte("z")))

		var keys []string
		require.NoError(t, b.Scan(ctx, ns, func(key string, value []byte) bool {
			assert.Equal(t, key, string(value))
			keys = append(keys, key)
			return true
		}))
		sort.Strings(keys)
		assert.Equal(t, []string{"a", "b", "c"}, keys)
	})

	t.Run("ScanStopsEarly", func(t *testing.T) {
		b := makeBackend(t)
		ns := namespace()
		for _, k := range []string{"a", "b", "c"} {
			require.NoError(t, b.Set(ctx, ns, k, []byte(k)))
		}
		calls := 0
		require.NoError(t, b.Scan(ctx, ns, func(string, []byte) bool {
			calls++
			return false
		}))
		assert.Equal(t, 1, calls)
	})

	t.Run("ScanEmptyNamespace", func(t *testing.T) {
		b := makeBackend(t)
		calls := 0
		require.NoError(t, b.Scan(ctx, namespace(), func(string, []byte) bool {
			calls++
			return true
		}))
		assert.Zero(t, calls)
	})
}

func namespace() string { return "ns-" + uuid.NewString() }
