package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/potooio/signpost/internal/types"
)

// handleStream serves GET /api/v1/stream as server-sent events. The current
// grouped view is sent on connect, then again every time it changes.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)
	s.logger.Debug("Stream client connected", zap.Int("subscribers", s.hub.SubscriberCount()))

	initial := s.watcher.Current()
	if initial == nil {
		initial = s.snapshot(r.Context())
	}
	if err := writeEvent(w, initial); err != nil {
		s.logger.Error("Failed to write stream event", zap.Error(err))
		return
	}
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Stream client disconnected")
			return
		case groups, ok := <-ch:
			if !ok {
				return
			}
			if err := writeEvent(w, groups); err != nil {
				s.logger.Error("Failed to write stream event", zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

// writeEvent writes one "applications" event.
func writeEvent(w http.ResponseWriter, groups []types.Group) error {
	data, err := json.Marshal(groups)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: applications\ndata: %s\n\n", data)
	return err
}
