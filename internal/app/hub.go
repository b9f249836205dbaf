package app

import (
	"sync"

	"qr-quiz-service/internal/domain"
)

// Hub fans leaderboard snapshots out to live subscribers, keyed by filter.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan domain.Leaderboard]string
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[chan domain.Leaderboard]string)}
}

// Subscribe registers interest in one filter ("" for all quizzes).
// The caller must invoke the returned cancel function to avoid leaks.
func (h *Hub) Subscribe(quizID string) (<-chan domain.Leaderboard, func()) {
	ch := make(chan domain.Leaderboard, 8)

	h.mu.Lock()
	h.subscribers[ch] = quizID
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Affected lists the subscribed filters whose leaderboard changes when a result for quizID lands.
func (h *Hub) Affected(quizID string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	seen := make(map[string]struct{}, 2)
	filters := make([]string, 0, 2)
	for _, filter := range h.subscribers {
		if filter != "" && filter != quizID {
			continue
		}
		if _, ok := seen[filter]; ok {
			continue
		}
		seen[filter] = struct{}{}
		filters = append(filters, filter)
	}
	return filters
}

// Publish delivers a snapshot to every subscriber of its filter.
func (h *Hub) Publish(lb domain.Leaderboard) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch, filter := range h.subscribers {
		if filter != lb.QuizID {
			continue
		}
		select {
		case ch <- lb:
		default:
			// Slow subscriber: replace its oldest pending snapshot with the newest one.
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
}
