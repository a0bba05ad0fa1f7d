package notifications

import (
	"sync"
	"time"
)

const (
	EventExpenseCreated   = "expense_created"
	EventBudgetUpdated    = "budget_updated"
	EventQuickExpenseUsed = "quick_expense_used"
)

type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

// NewHub создает хаб для SSE-подписок.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe подписывает клиента на события и возвращает канал и функцию отписки.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 10)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
	}
}

// Publish отправляет событие всем подписчикам. Медленные подписчики пропускаются.
func (h *Hub) Publish(event Event) {
	event.Timestamp = time.Now().UTC()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
