package notifications

import (
	"testing"
	"time"
)

// TestHubPublishSubscribe проверяет доставку событий подписчику.
func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	hub.Publish(Event{Type: EventExpenseCreated})

	select {
	case event := <-ch:
		if event.Type != EventExpenseCreated {
			t.Fatalf("expected event type %s, got %s", EventExpenseCreated, event.Type)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be set")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected event to be delivered")
	}
}

// TestHubBroadcast проверяет доставку события всем подписчикам.
func TestHubBroadcast(t *testing.T) {
	hub := NewHub()

	ch1, unsub1 := hub.Subscribe()
	defer unsub1()
	ch2, unsub2 := hub.Subscribe()
	defer unsub2()

	hub.Publish(Event{Type: EventBudgetUpdated})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			if event.Type != EventBudgetUpdated {
				t.Fatalf("expected event type %s, got %s", EventBudgetUpdated, event.Type)
			}
		case <-time.After(500 * time.Millisecond):
			t.Fatal("expected event to be delivered to every subscriber")
		}
	}
}

// TestHubUnsubscribe проверяет закрытие канала после отписки.
func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe()
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
}

// TestHubUnsubscribeIdempotent проверяет безопасность повторной отписки.
func TestHubUnsubscribeIdempotent(t *testing.T) {
	hub := NewHub()

	_, unsubscribe := hub.Subscribe()
	unsubscribe()
	unsubscribe()
}
