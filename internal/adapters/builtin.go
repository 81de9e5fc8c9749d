package adapters

import (
	"github.com/potooio/signpost/internal/adapters/application"
	"github.com/potooio/signpost/internal/adapters/bookmark"
	"github.com/potooio/signpost/internal/adapters/gatewayapi"
	"github.com/potooio/signpost/internal/adapters/hajimari"
	"github.com/potooio/signpost/internal/adapters/ingress"
	"github.com/potooio/signpost/internal/adapters/istio"
	"github.com/potooio/signpost/internal/adapters/route"
	"github.com/potooio/signpost/internal/config"
	"github.com/potooio/signpost/internal/types"
)

// BookmarkAdapter is the name of the adapter whose Descriptors are served as
// bookmarks rather than applications.
const BookmarkAdapter = "bookmark"

// Builtin returns every built-in adapter enabled in cfg, in a fixed order:
// native kinds first, then the legacy CRD, then routing kinds.
func Builtin(cfg config.Adapters) []types.Adapter {
	var out []types.Adapter
	if cfg.Application.Enabled {
		out = append(out, application.New())
	}
	if cfg.Bookmark.Enabled {
		out = append(out, bookmark.New())
	}
	if cfg.Hajimari.Enabled {
		out = append(out, hajimari.New())
	}
	if cfg.Ingress.Enabled {
		out = append(out, ingress.New(ingress.Options{OnlyAnnotated: cfg.Ingress.OnlyAnnotated}))
	}
	if cfg.Route.Enabled {
		out = append(out, route.New(route.Options{OnlyAnnotated: cfg.Route.OnlyAnnotated}))
	}
	if cfg.Istio.Enabled {
		out = append(out, istio.New(istio.Options{
			OnlyAnnotated:   cfg.Istio.OnlyAnnotated,
			DefaultProtocol: cfg.Istio.DefaultProtocol,
		}))
	}
	if cfg.GatewayAPI.Enabled {
		out = append(out, gatewayapi.New(gatewayapi.Options{
			OnlyAnnotated:   cfg.GatewayAPI.OnlyAnnotated,
			DefaultProtocol: cfg.GatewayAPI.DefaultProtocol,
		}))
	}
	return out
}

// NewBuiltinRegistry returns a Registry holding the adapters Builtin enables.
func NewBuiltinRegistry(cfg config.Adapters) (*Registry, error) {
	r := NewRegistry()
	for _, a := range Builtin(cfg) {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ApplicationSources returns the names of every registered adapter except
// the bookmark adapter.
func (r *Registry) ApplicationSources() []string {
	var out []string
	for _, name := range r.Names() {
		if name != BookmarkAdapter {
			out = append(out, name)
		}
	}
	return out
}
