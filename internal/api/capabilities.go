// Package api serves Signpost's aggregated view over HTTP.
package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/potooio/signpost/internal/adapters"
)

// CapabilitiesResponse is the response for GET /api/v1/capabilities.
type CapabilitiesResponse struct {
	// Version is the API schema version. Currently "1".
	Version string `json:"version"`

	// Adapters lists the active adapters in merge order.
	Adapters []AdapterInfo `json:"adapters"`

	// Instance is the default instance filter applied when a request does
	// not name one.
	Instance string `json:"instance,omitempty"`

	// Namespaces is the namespace allow-list. Empty means all namespaces.
	Namespaces []string `json:"namespaces,omitempty"`

	// UpSince is when the server started.
	UpSince string `json:"upSince"`
}

// AdapterInfo describes an active adapter.
type AdapterInfo struct {
	Name     string `json:"name"`
	Resource string `json:"resource"`
	Kind     string `json:"kind"`
	Bookmark bool   `json:"bookmark,omitempty"`
}

// CapabilitiesHandler handles GET /api/v1/capabilities.
type CapabilitiesHandler struct {
	logger     *zap.Logger
	registry   *adapters.Registry
	instance   string
	namespaces []string
	startTime  time.Time
}

// NewCapabilitiesHandler creates a new CapabilitiesHandler.
func NewCapabilitiesHandler(logger *zap.Logger, registry *adapters.Registry, instance string, namespaces []string) *CapabilitiesHandler {
	return &CapabilitiesHandler{
		logger:     logger,
		registry:   registry,
		instance:   instance,
		namespaces: namespaces,
		startTime:  time.Now(),
	}
}

// ServeHTTP implements http.Handler.
func (h *CapabilitiesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, http.StatusOK, h.buildResponse())
}

func (h *CapabilitiesHandler) buildResponse() CapabilitiesResponse {
	all := h.registry.All()
	infos := make([]AdapterInfo, 0, len(all))
	for _, a := range all {
		sel := a.Selector()
		infos = append(infos, AdapterInfo{
			Name:     a.Name(),
			Resource: sel.GVR.GroupResource().String(),
			Kind:     sel.Kind,
			Bookmark: a.Name() == adapters.BookmarkAdapter,
		})
	}
	return CapabilitiesResponse{
		Version:    "1",
		Adapters:   infos,
		Instance:   h.instance,
		Namespaces: h.namespaces,
		UpSince:    h.startTime.UTC().Format(time.RFC3339),
	}
}
