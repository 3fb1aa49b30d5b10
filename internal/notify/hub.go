// Package notify fans a payload-less "cart changed" signal out to connected
// observers. Delivery is best-effort: no replay for late subscribers, no
// ordering guarantee across publishes, and a slow observer is skipped rather
// than blocking the mutation that published.
package notify

import "sync"

// Hub is an explicit pub/sub instance handed to request handlers, so tests
// can inject their own.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan struct{}
}

func NewHub() *Hub {
	return &Hub{subs: map[int]chan struct{}{}}
}

// Subscribe registers an observer. The returned channel receives one value
// per delivered publish; cancel removes the subscription and closes the
// channel. Safe to call cancel more than once.
func (h *Hub) Subscribe() (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan struct{}, 8)
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// Publish signals every current subscriber. Subscribers whose buffer is full
// miss this signal; their next re-pull catches them up.
func (h *Hub) Publish() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
