// Package kv defines the storage capability the entity store is built on:
// namespaced get, set, delete and scan over opaque values. Backends live
// under internal/store/kv/<driver>/.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kv: key not found")

// Backend is implemented by every storage driver.
type Backend interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, namespace, key string) error
	// Scan calls fn for every key in namespace until fn returns false.
	// Iteration order is unspecified.
	Scan(ctx context.Context, namespace string, fn func(key string, value []byte) bool) error
	Close() error
}

// Pinger is implemented by backends that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Collection stores JSON-encoded values of type T in one namespace.
// Mutate serialises read-modify-write cycles within the process.
type Collection[T any] struct {
	backend   Backend
	namespace string
	mu        sync.Mutex
}

// NewCollection binds a namespace of b to the value type T.
func NewCollection[T any](b Backend, namespace string) *Collection[T] {
	return &Collection[T]{backend: b, namespace: namespace}
}

// Get returns the value stored under key or ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, key string) (*T, error) {
	raw, err := c.backend.Get(ctx, c.namespace, key)
	if err != nil {
		return nil, err
	}
	return c.decode(key, raw)
}

// Put stores v under key, replacing any previous value.
func (c *Collection[T]) Put(ctx context.Context, key string, v *T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv: encode %s/%s: %w", c.namespace, key, err)
	}
	return c.backend.Set(ctx, c.namespace, key, raw)
}

// Delete removes key.
func (c *Collection[T]) Delete(ctx context.Context, key string) error {
	return c.backend.Delete(ctx, c.namespace, key)
}

// Filter returns every value for which match returns true. A nil match selects all.
func (c *Collection[T]) Filter(ctx context.Context, match func(*T) bool) ([]*T, error) {
	var (
		out    []*T
		decErr error
	)
	err := c.backend.Scan(ctx, c.namespace, func(key string, raw []byte) bool {
		v, err := c.decode(key, raw)
		if err != nil {
			decErr = err
			return false
		}
		if match == nil || match(v) {
			out = append(out, v)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if decErr != nil {
		return nil, decErr
	}
	return out, nil
}

// Min returns the matching value that sorts first under less, or ErrNotFound.
// Backends scan in no fixed order; the result of Min does not depend on it.
func (c *Collection[T]) Min(ctx context.Context, match func(*T) bool, less func(a, b *T) bool) (*T, error) {
	var (
		found  *T
		decErr error
	)
	err := c.backend.Scan(ctx, c.namespace, func(key string, raw []byte) bool {
		v, err := c.decode(key, raw)
		if err != nil {
			decErr = err
			return false
		}
		if match(v) && (found == nil || less(v, found)) {
			found = v
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if decErr != nil {
		return nil, decErr
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Mutate loads key (nil when absent), passes it to fn and stores the value fn
// returns. When fn returns an error nothing is written.
func (c *Collection[T]) Mutate(ctx context.Context, key string, fn func(cur *T) (*T, error)) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, err := c.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	next, err := fn(cur)
	if err != nil {
		return nil, err
	}
	if err := c.Put(ctx, key, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (c *Collection[T]) decode(key string, raw []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("kv: decode %s/%s: %w", c.namespace, key, err)
	}
	return &v, nil
}
