// Package memory is the process-local kv backend. Data lives for the
// lifetime of the process and is lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/knowyourrights/cards/server/internal/store/kv"
)

type Backend struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// New returns an empty in-memory backend.
func New() *Backend {
	return &Backend{data: make(map[string]map[string][]byte)}
}

func (b *Backend) Get(_ context.Context, namespace, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data[namespace][key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return clone(v), nil
}

func (b *Backend) Set(_ context.Context, namespace, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	ns, ok := b.data[namespace]
	if !ok {
		ns = make(map[string][]byte)
		b.data[namespace] = ns
	}
	ns[key] = clone(value)
	return nil
}

func (b *Backend) Delete(_ context.Context, namespace, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data[namespace], key)
	return nil
}

// Scan iterates over a snapshot so fn may call back into the backend.
func (b *Backend) Scan(ctx context.Context, namespace string, fn func(key string, value []byte) bool) error {
	b.mu.RLock()
	keys := make([]string, 0, len(b.data[namespace]))
	vals := make([][]byte, 0, len(b.data[namespace]))
	for k, v := range b.data[namespace] {
		keys = append(keys, k)
		vals = append(vals, clone(v))
	}
	b.mu.RUnlock()

	for i := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !fn(keys[i], vals[i]) {
			return nil
		}
	}
	return nil
}

// Ping always succeeds.
func (b *Backend) Ping(context.Context) error { return nil }

func (b *Backend) Close() error { return nil }

func clone(v []byte) []byte {
	out := make([]byte, len(v))
	copy(out, v)
	return out
}
