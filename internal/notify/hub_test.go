package notify_test

import (
	"testing"

	"github.com/Kennyy02/totomotorworx-shop/internal/notify"
)

func TestHub_FanOut(t *testing.T) {
	hub := notify.NewHub()
	a, cancelA := hub.Subscribe()
	b, cancelB := hub.Subscribe()
	defer cancelA()
	defer cancelB()

	hub.Publish()

	for _, ch := range []<-chan struct{}{a, b} {
		select {
		case <-ch:
		default:
			t.Fatal("every subscriber gets the signal")
		}
	}
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := notify.NewHub()
	slow, cancel := hub.Subscribe()
	defer cancel()

	// Push far past the buffer; Publish must never block or fail.
	for i := 0; i < 100; i++ {
		hub.Publish()
	}

	// The slow observer only sees the buffered subset.
	n := 0
	for {
		select {
		case <-slow:
			n++
			continue
		default:
		}
		break
	}
	if n == 0 || n >= 100 {
		t.Fatalf("want partial delivery to a slow subscriber, got %d", n)
	}
}

func TestHub_CancelStopsDelivery(t *testing.T) {
	hub := notify.NewHub()
	ch, cancel := hub.Subscribe()

	cancel()
	cancel() // second cancel is a no-op

	if hub.Subscribers() != 0 {
		t.Fatal("cancel must remove the subscription")
	}
	hub.Publish()

	if _, ok := <-ch; ok {
		t.Fatal("channel must be closed after cancel")
	}
}

func TestHub_NoReplayForLateSubscribers(t *testing.T) {
	hub := notify.NewHub()
	hub.Publish()

	late, cancel := hub.Subscribe()
	defer cancel()

	select {
	case <-late:
		t.Fatal("late subscriber must not see earlier publishes")
	default:
	}
}
