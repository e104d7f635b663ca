//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/knowyourrights/cards/server/internal/client"
)

// env returns the value of key or the provided fallback when the env var is unset.
func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ping checks that a GET request to the given URL returns HTTP 200.
// It is used to quickly skip tests when the dev stack is not running.
func ping(url string) error {
	r, err := http.Get(url)
	if err != nil {
		return err
	}
	r.Body.Close()
	if r.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", r.StatusCode)
	}
	return nil
}

// devClient returns a client for the running stack, skipping the test when it is down.
func devClient(t *testing.T) *client.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	base := env("RIGHTS_API", "http://localhost:8080")
	if err := ping(base + "/api/health"); err != nil {
		t.Skipf("service %s unreachable: %v", base, err)
	}
	c := client.New(base)
	waitForHealthy(t, c, 30*time.Second)
	return c
}

// waitForHealthy polls /api/health until the rights-service reports healthy
// or the timeout elapses.
func waitForHealthy(t *testing.T, c *client.Client, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if status, err := c.Health(context.Background()); err == nil && status == "healthy" {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("rights-service not healthy within %s", timeout)
}

// uniq returns a per-run identifier so repeated runs against one stack do not collide.
func uniq(prefix string) string {
	return fmt.Sprintf("%s-e2e-%d", prefix, time.Now().UnixNano())
}
