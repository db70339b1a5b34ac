package ws

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestPublishNeverBlocks(t *testing.T) {
	h := NewHub(zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer*2; i++ {
			h.Publish(Event{Type: "sale", Action: "sale_recorded"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked with no running hub")
	}
	if got := len(h.broadcast); got != broadcastBuffer {
		t.Fatalf("expected %d queued events, got %d", broadcastBuffer, got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	h.Publish(Event{Type: "data", Action: "data_cleared"})
	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if h.Clients() != 0 {
		t.Fatalf("expected no clients")
	}
}
