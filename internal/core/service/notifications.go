package service

import (
	"sync"

	"github.com/taskdesk/taskdesk/internal/core/ports"
)

const defaultFlashCapacity = 16

// FlashQueue buffers notifications until the next page render drains them.
// When full, the oldest notification is dropped.
type FlashQueue struct {
	mu       sync.Mutex
	pending  []ports.Notification
	capacity int
}

func NewFlashQueue(capacity int) *FlashQueue {
	if capacity <= 0 {
		capacity = defaultFlashCapacity
	}
	return &FlashQueue{capacity: capacity}
}

func (q *FlashQueue) Notify(n ports.Notification) {
	if n.Message == "" {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == q.capacity {
		q.pending = q.pending[1:]
	}
	q.pending = append(q.pending, n)
}

// Drain returns and removes every pending notification, oldest first.
func (q *FlashQueue) Drain() []ports.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}
