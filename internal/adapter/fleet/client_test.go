package fleet

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	domainErrors "github.com/cripslk/dispatch/internal/domain/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(server.URL, discardLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewHTTPClientRejectsRelativeURL(t *testing.T) {
	if _, err := NewHTTPClient("/fleet", discardLogger()); err == nil {
		t.Fatal("expected error for relative URL")
	}
}

func TestNewHTTPClientRejectsMalformedURL(t *testing.T) {
	if _, err := NewHTTPClient("://fleet", discardLogger()); err == nil {
		t.Fatal("expected error for malformed URL")
	}
}

func TestDriverReturnsDecodedDriver(t *testing.T) {
	var requestedPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"driver_id":"DRV-7","name":"Kamal","available":true}`))
	})

	driver, err := client.Driver(context.Background(), "DRV-7")
	if err != nil {
		t.Fatalf("driver: %v", err)
	}
	if requestedPath != "/api/drivers/DRV-7" {
		t.Fatalf("unexpected path: %s", requestedPath)
	}
	if driver.ID != "DRV-7" || driver.Name != "Kamal" || !driver.Available {
		t.Fatalf("unexpected driver: %+v", driver)
	}
}

func TestDriverFillsMissingIDFromRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Kamal","available":false}`))
	})

	driver, err := client.Driver(context.Background(), "DRV-9")
	if err != nil {
		t.Fatalf("driver: %v", err)
	}
	if driver.ID != "DRV-9" {
		t.Fatalf("unexpected driver id: %s", driver.ID)
	}
	if driver.Available {
		t.Fatal("expected unavailable driver")
	}
}

func TestDriverNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	if _, err := client.Driver(context.Background(), "DRV-404"); !errors.Is(err, domainErrors.ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestDriverNoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if _, err := client.Driver(context.Background(), "DRV-204"); !errors.Is(err, domainErrors.ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestDriverSurvivesUnreachableCache(t *testing.T) {
	hits := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{"driver_id":"DRV-7","name":"Kamal","available":true}`))
	})
	client.SetCache(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), time.Minute)

	for i := 0; i < 2; i++ {
		driver, err := client.Driver(context.Background(), "DRV-7")
		if err != nil {
			t.Fatalf("driver: %v", err)
		}
		if driver.ID != "DRV-7" {
			t.Fatalf("unexpected driver id: %s", driver.ID)
		}
	}
	if hits != 2 {
		t.Fatalf("expected every lookup to reach the fleet service, got %d", hits)
	}
}

func TestDriverServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := client.Driver(context.Background(), "DRV-1"); err == nil {
		t.Fatal("expected error for server failure")
	}
}

func TestDriverDecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	if _, err := client.Driver(context.Background(), "DRV-1"); err == nil {
		t.Fatal("expected decode error")
	}
}
