package events

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/potooio/signpost/internal/types"
)

// SourceFunc produces the current grouped view.
type SourceFunc func(ctx context.Context) []types.Group

// Watcher polls a SourceFunc and broadcasts on the Hub when the result
// differs from the last one it saw.
type Watcher struct {
	logger   *zap.Logger
	source   SourceFunc
	hub      *Hub
	interval time.Duration

	mu          sync.RWMutex
	current     []types.Group
	fingerprint [sha256.Size]byte
	seen        bool
}

// NewWatcher creates a Watcher that polls every interval.
func NewWatcher(logger *zap.Logger, source SourceFunc, hub *Hub, interval time.Duration) *Watcher {
	return &Watcher{
		logger:   logger.Named("watcher"),
		source:   source,
		hub:      hub,
		interval: interval,
	}
}

// Start polls immediately and then every interval. Blocks until ctx is
// cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("Starting change watcher", zap.Duration("interval", w.interval))

	w.Poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Change watcher stopped")
			return nil
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}

// Poll reads the source once and broadcasts if the result changed. It
// reports whether a broadcast happened.
func (w *Watcher) Poll(ctx context.Context) bool {
	return w.update(w.source(ctx), false)
}

// Refresh reads the source once and broadcasts unconditionally. It returns
// the fresh groups.
func (w *Watcher) Refresh(ctx context.Context) []types.Group {
	groups := w.source(ctx)
	w.update(groups, true)
	return groups
}

// Current returns the last snapshot, or nil before the first poll.
func (w *Watcher) Current() []types.Group {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *Watcher) update(groups []types.Group, force bool) bool {
	sum, err := Fingerprint(groups)
	if err != nil {
		w.logger.Error("Failed to fingerprint snapshot", zap.Error(err))
		return false
	}

	w.mu.Lock()
	changed := !w.seen || sum != w.fingerprint
	w.current = groups
	w.fingerprint = sum
	w.seen = true
	w.mu.Unlock()

	if !changed && !force {
		return false
	}
	w.logger.Debug("Broadcasting snapshot", zap.Int("groups", len(groups)), zap.Bool("changed", changed))
	w.hub.Broadcast(groups)
	return true
}

// Fingerprint hashes the JSON encoding of groups. Equal views hash equally
// because grouping output is deterministic.
func Fingerprint(groups []types.Group) ([sha256.Size]byte, error) {
	data, err := json.Marshal(groups)
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	return sha256.Sum256(data), nil
}
