// Package redis is a kv backend storing each namespace as one Redis hash.
package redis

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"

	"github.com/knowyourrights/cards/server/internal/store/kv"
)

const scanBatch = 200

// Options selects the Redis server and the key prefix used for namespaces.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type Backend struct {
	c      *redis.Client
	prefix string
}

// New connects to Redis and verifies connectivity.
func New(ctx context.Context, opts Options) (*Backend, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis addr is empty")
	}
	c := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return NewWithClient(c, opts.Prefix), nil
}

// NewWithClient wires an existing client.
func NewWithClient(c *redis.Client, prefix string) *Backend {
	if prefix == "" {
		prefix = "rights"
	}
	return &Backend{c: c, prefix: prefix}
}

func (b *Backend) hashKey(namespace string) string { return b.prefix + ":" + namespace }

func (b *Backend) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	v, err := b.c.HGet(ctx, b.hashKey(namespace), key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (b *Backend) Set(ctx context.Context, namespace, key string, value []byte) error {
	return b.c.HSet(ctx, b.hashKey(namespace), key, value).Err()
}

func (b *Backend) Delete(ctx context.Context, namespace, key string) error {
	return b.c.HDel(ctx, b.hashKey(namespace), key).Err()
}

// Scan walks the hash with HSCAN; fields may be visited more than once if the
// hash is rehashed mid-scan, so duplicates are filtered.
func (b *Backend) Scan(ctx context.Context, namespace string, fn func(key string, value []byte) bool) error {
	seen := make(map[string]struct{})
	var cursor uint64
	for {
		kvs, next, err := b.c.HScan(ctx, b.hashKey(namespace), cursor, "", scanBatch).Result()
		if err != nil {
			return err
		}
		// HSCAN replies with a flat field, value, field, value... list.
		for i := 0; i+1 < len(kvs); i += 2 {
			if _, dup := seen[kvs[i]]; dup {
				continue
			}
			seen[kvs[i]] = struct{}{}
			if !fn(kvs[i], []byte(kvs[i+1])) {
				return nil
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (b *Backend) Ping(ctx context.Context) error { return b.c.Ping(ctx).Err() }

func (b *Backend) Close() error { return b.c.Close() }
