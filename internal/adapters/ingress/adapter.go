package ingress

import (
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/potooio/signpost/internal/resolve"
	"github.com/potooio/signpost/internal/types"
)

var gvr = schema.GroupVersionResource{
	Group:    "networking.k8s.io",
	Version:  "v1",
	Resource: "ingresses",
}

// Options configures the ingress adapter.
type Options struct {
	// OnlyAnnotated lists only Ingresses with a true enable flag.
	OnlyAnnotated bool
}

// Adapter reads networking.k8s.io/v1 Ingress resources.
type Adapter struct {
	opts    Options
	builder resolve.Builder
	gate    resolve.Gate
}

func New(opts Options) *Adapter {
	table := resolve.MetadataTable()
	return &Adapter{
		opts:    opts,
		builder: resolve.Builder{Source: "ingress", Table: table},
		gate:    resolve.Gate{OnlyAnnotated: opts.OnlyAnnotated, Instance: table[resolve.FieldInstance]},
	}
}

func (a *Adapter) Name() string {
	return "ingress"
}

func (a *Adapter) Selector() types.Selector {
	return types.Selector{GVR: gvr, Kind: "Ingress"}
}

// Extract fails only for Ingresses that would be listed but have no URL.
// Ingresses that are not opted in are left for Include to drop.
func (a *Adapter) Extract(obj *unstructured.Unstructured) (types.Descriptor, error) {
	d, err := a.builder.Build(obj)
	if err != nil {
		return types.Descriptor{}, fmt.Errorf("ingress: %w", err)
	}
	if d.URL == "" && (!a.opts.OnlyAnnotated || resolve.OptedIn(d)) {
		return types.Descriptor{}, fmt.Errorf("ingress: %w", &resolve.MissingFieldError{
			Field:     resolve.FieldURL,
			Namespace: obj.GetNamespace(),
			Name:      obj.GetName(),
		})
	}
	return d, nil
}

func (a *Adapter) Include(obj *unstructured.Unstructured, d types.Descriptor, opts types.IncludeOptions) bool {
	return a.gate.Include(obj, d, opts)
}
