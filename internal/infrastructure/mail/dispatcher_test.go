package mail

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []ports.OrderEmail
	done chan struct{}
}

func (s *recordingSender) SendOrderConfirmation(_ context.Context, email ports.OrderEmail) error {
	s.mu.Lock()
	s.sent = append(s.sent, email)
	s.mu.Unlock()
	select {
	case s.done <- struct{}{}:
	default:
	}
	return nil
}

func TestDispatcher_DeliversAsync(t *testing.T) {
	sender := &recordingSender{done: make(chan struct{}, 1)}
	d := NewDispatcher(2, sender, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	if err := d.SendOrderConfirmation(context.Background(), ports.OrderEmail{Email: "noa@example.com", Total: 15}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case <-sender.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("email was not delivered")
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.sent) != 1 || sender.sent[0].Email != "noa@example.com" {
		t.Fatalf("unexpected deliveries: %+v", sender.sent)
	}
}

func TestDispatcher_ShardIsStablePerRecipient(t *testing.T) {
	d := NewDispatcher(4, &recordingSender{done: make(chan struct{}, 1)}, zerolog.Nop())
	first := d.shardIndex("noa@example.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("noa@example.com") != first {
			t.Fatalf("shard index must be deterministic")
		}
	}
}
