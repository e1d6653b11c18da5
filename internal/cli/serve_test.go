package cli

import (
	"context"
	"io"
	"testing"

	"github.com/specview/specview/pkg/cache"
	"github.com/specview/specview/pkg/errors"
)

func TestServeCommandFlags(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cmd := c.serveCommand()

	for _, name := range []string{"addr", "no-cache", "redis-addr", "redis-password", "redis-db"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("serve command is missing flag %q", name)
		}
	}
	if got := cmd.Flags().Lookup("addr").DefValue; got != ":8080" {
		t.Errorf("default addr = %q, want %q", got, ":8080")
	}
}

func TestNewServeRunnerWithoutRedis(t *testing.T) {
	c := New(io.Discard, LogInfo)

	runner, err := c.newServeRunner(context.Background(), true, cache.RedisConfig{})
	if err != nil {
		t.Fatalf("newServeRunner: %v", err)
	}
	if runner == nil {
		t.Fatal("expected a runner")
	}
	defer runner.Close()
}

func TestNewServeRunnerRedisExcludesNoCache(t *testing.T) {
	c := New(io.Discard, LogInfo)

	_, err := c.newServeRunner(context.Background(), true, cache.RedisConfig{Addr: "localhost:6379"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}
