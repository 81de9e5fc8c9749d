// Package events pushes grouped application lists to stream subscribers
// whenever the aggregated view of the cluster changes.
package events

import (
	"sync"

	"go.uber.org/zap"

	"github.com/potooio/signpost/internal/metrics"
	"github.com/potooio/signpost/internal/types"
)

// subscriberBuffer is how many undelivered snapshots a slow subscriber may
// hold before further broadcasts skip it.
const subscriberBuffer = 10

// Hub fans snapshots out to subscribers. Broadcast never blocks: a
// subscriber whose buffer is full misses that snapshot.
type Hub struct {
	logger *zap.Logger

	mu          sync.RWMutex
	subscribers map[chan []types.Group]struct{}
}

// NewHub creates an empty Hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:      logger.Named("events"),
		subscribers: make(map[chan []types.Group]struct{}),
	}
}

// Subscribe registers a new subscriber channel.
func (h *Hub) Subscribe() chan []types.Group {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan []types.Group, subscriberBuffer)
	h.subscribers[ch] = struct{}{}
	metrics.SetStreamSubscribers(len(h.subscribers))
	return ch
}

// Unsubscribe removes and closes a subscriber channel. Unknown channels are
// ignored.
func (h *Hub) Unsubscribe(ch chan []types.Group) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[ch]; !ok {
		return
	}
	delete(h.subscribers, ch)
	close(ch)
	metrics.SetStreamSubscribers(len(h.subscribers))
}

// Broadcast sends groups to every subscriber.
func (h *Hub) Broadcast(groups []types.Group) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	metrics.RecordBroadcast()
	for ch := range h.subscribers {
		select {
		case ch <- groups:
		default:
			h.logger.Warn("Subscriber buffer full, dropping snapshot")
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close unsubscribes everyone. Stream handlers see their channel close and
// return.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
	metrics.SetStreamSubscribers(0)
}
