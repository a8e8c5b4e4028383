package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/poyobook/poyobook/internal/core/ports"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
	done chan struct{}
}

func (m *recordingMailer) SendRecovery(_ context.Context, email, _ string) error {
	m.mu.Lock()
	m.sent = append(m.sent, email)
	m.mu.Unlock()
	if m.done != nil {
		m.done <- struct{}{}
	}
	return nil
}

func TestDispatcher_DeliversQueuedJobs(t *testing.T) {
	mailer := &recordingMailer{done: make(chan struct{}, 4)}
	d := NewDispatcher(2, mailer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.RecoveryMailJob{Email: "a@example.com", Token: "t1"})
	d.Enqueue(ports.RecoveryMailJob{Email: "b@example.com", Token: "t2"})

	for i := 0; i < 2; i++ {
		select {
		case <-mailer.done:
		case <-time.After(2 * time.Second):
			t.Fatal("queued mail never delivered")
		}
	}

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.sent) != 2 {
		t.Fatalf("expected 2 deliveries, got %v", mailer.sent)
	}
}

func TestDispatcher_ShardsByRecipient(t *testing.T) {
	d := NewDispatcher(4, &recordingMailer{}, zerolog.Nop())

	// The same address always lands on the same worker.
	first := d.shardIndex("dino@example.com")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("dino@example.com"); got != first {
			t.Fatalf("shard moved: %d then %d", first, got)
		}
	}
}

func TestDispatcher_EnqueueNeverBlocksWhenFull(t *testing.T) {
	// Workers are never started, so every shard buffer fills up and stays
	// full. Enqueue must still return.
	d := NewDispatcher(1, &recordingMailer{}, zerolog.Nop())

	finished := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(ports.RecoveryMailJob{Email: "dino@example.com", Token: "t"})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue blocked on a full shard")
	}

	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected %d buffered jobs, got %d", channelBuffer, got)
	}
}
