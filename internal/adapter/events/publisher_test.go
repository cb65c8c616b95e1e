package events

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"go.uber.org/fx/fxtest"

	"github.com/cripslk/dispatch/internal/config"
)

func TestNoopPublisherDropsEvents(t *testing.T) {
	var publisher Publisher = NoopPublisher{}
	if err := publisher.Publish(context.Background(), "schedule.created", map[string]string{"code": "SHP001"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewPublisherWithoutBrokerIsNoop(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	publisher, err := newPublisher(publisherParams{
		Lifecycle: lc,
		Config:    &config.Config{},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := publisher.(NoopPublisher); !ok {
		t.Fatalf("expected NoopPublisher, got %T", publisher)
	}
}
