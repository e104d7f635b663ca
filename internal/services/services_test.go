package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/knowyourrights/cards/server/internal/store"
	"github.com/knowyourrights/cards/server/internal/store/kv/memory"
	"github.com/knowyourrights/cards/server/internal/store/kvstore"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	return kvstore.New(memory.New())
}

// fixedClock returns a clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Second)
	}
}

// seqIDs returns deterministic identifiers: <prefix>-1, <prefix>-2, ...
func seqIDs() func(string) string {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

var ctx = context.Background()

func TestNewID_Prefixed(t *testing.T) {
	a, b := newID(prefixAlert), newID(prefixAlert)
	assert.Regexp(t, `^alert-[0-9a-f-]{36}$`, a)
	assert.NotEqual(t, a, b)
}
