package fleet

import (
	"context"
	"testing"
	"time"

	"go.uber.org/fx/fxtest"

	"github.com/cripslk/dispatch/internal/config"
)

func TestNewClientWithoutCache(t *testing.T) {
	client, cache, err := newClient(clientParams{
		Config: &config.Config{FleetAddress: "http://fleet.local"},
		Logger: discardLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected client instance")
	}
	if cache != nil {
		t.Fatal("did not expect cache without redis address")
	}
}

func TestNewClientWithCache(t *testing.T) {
	client, cache, err := newClient(clientParams{
		Config: &config.Config{
			FleetAddress:   "http://fleet.local",
			RedisAddress:   "localhost:6379",
			DriverCacheTTL: time.Minute,
		},
		Logger: discardLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache == nil {
		t.Fatal("expected cache client")
	}
	httpClient, ok := client.(*HTTPClient)
	if !ok {
		t.Fatalf("expected *HTTPClient, got %T", client)
	}
	if httpClient.cache != cache {
		t.Fatal("expected cache to be attached to client")
	}
	if httpClient.cacheTTL != time.Minute {
		t.Fatalf("unexpected cache ttl: %s", httpClient.cacheTTL)
	}
}

func TestNewClientRejectsBadAddress(t *testing.T) {
	if _, _, err := newClient(clientParams{
		Config: &config.Config{FleetAddress: "fleet.local"},
		Logger: discardLogger(),
	}); err == nil {
		t.Fatal("expected error for non-absolute fleet address")
	}
}

func TestRegisterLifecycleWithoutCache(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	registerLifecycle(lc, nil)

	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}
