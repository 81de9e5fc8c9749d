package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/potooio/signpost/internal/adapters"
	"github.com/potooio/signpost/internal/discovery"
	"github.com/potooio/signpost/internal/grouping"
	"github.com/potooio/signpost/internal/types"
	"github.com/potooio/signpost/internal/util"
)

// handleApplications serves GET /api/v1/applications.
//
// Query parameters:
//   - tags: comma-separated tag filter; may repeat
//   - instance: overrides the configured instance filter
func (s *Server) handleApplications(w http.ResponseWriter, r *http.Request) {
	ds := s.applications(r.Context(), s.instance(r))
	s.respondJSON(w, http.StatusOK, grouping.Build(ds, tagsParam(r)))
}

// handleApplication serves GET /api/v1/applications/{group}/{name}.
func (s *Server) handleApplication(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")
	name := chi.URLParam(r, "name")

	d, found := discovery.Find(s.applications(r.Context(), s.instance(r)), group, name)
	if !found {
		s.respondError(w, http.StatusNotFound, "application "+group+"/"+name+" not found")
		return
	}
	s.respondJSON(w, http.StatusOK, d)
}

// handleBookmarks serves GET /api/v1/bookmarks.
func (s *Server) handleBookmarks(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, grouping.Group(s.bookmarks(r.Context())))
}

// handleRefresh serves POST /api/v1/refresh. It drops cached results, polls
// the cluster and pushes the fresh view to every stream subscriber.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		w.Header().Set("Retry-After", retryAfter(s.opts.RefreshEvery))
		s.respondError(w, http.StatusTooManyRequests, "refresh rate limit exceeded")
		return
	}
	s.cache.Invalidate()
	s.logger.Info("Cache invalidated by refresh request")
	s.respondJSON(w, http.StatusOK, s.watcher.Refresh(r.Context()))
}

// applications aggregates every non-bookmark adapter, through the cache.
func (s *Server) applications(ctx context.Context, instance string) []types.Descriptor {
	sources := s.engine.Registry().ApplicationSources()
	if len(sources) == 0 {
		return []types.Descriptor{}
	}
	return s.cache.Get(ctx, "applications|"+instance, func(ctx context.Context) []types.Descriptor {
		return s.engine.Aggregate(ctx, discovery.Query{
			Adapters: sources,
			Scope:    discovery.Scope{Namespaces: s.opts.Namespaces},
			Instance: instance,
		})
	})
}

// bookmarks aggregates the bookmark adapter, through the cache.
func (s *Server) bookmarks(ctx context.Context) []types.Descriptor {
	if s.engine.Registry().ForName(adapters.BookmarkAdapter) == nil {
		return []types.Descriptor{}
	}
	return s.cache.Get(ctx, "bookmarks", func(ctx context.Context) []types.Descriptor {
		return s.engine.Aggregate(ctx, discovery.Query{
			Adapters: []string{adapters.BookmarkAdapter},
			Scope:    discovery.Scope{Namespaces: s.opts.Namespaces},
		})
	})
}

// snapshot is the view pushed to stream subscribers: the configured instance
// with no tag filter.
func (s *Server) snapshot(ctx context.Context) []types.Group {
	return grouping.Build(s.applications(ctx, s.opts.Instance), nil)
}

func (s *Server) instance(r *http.Request) string {
	if v := strings.TrimSpace(r.URL.Query().Get("instance")); v != "" {
		return v
	}
	return s.opts.Instance
}

func tagsParam(r *http.Request) []string {
	var tags []string
	for _, v := range r.URL.Query()["tags"] {
		tags = append(tags, util.SplitCSV(v)...)
	}
	return tags
}

// retryAfter renders d as whole seconds, at least one.
func retryAfter(d time.Duration) string {
	return strconv.Itoa(max(1, int(d.Seconds())))
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(s.logger, w, status, data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}
