package gatewayapi

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/potooio/signpost/internal/annotations"
	"github.com/potooio/signpost/internal/resolve"
	"github.com/potooio/signpost/internal/types"
)

var gvr = schema.GroupVersionResource{
	Group:    "gateway.networking.k8s.io",
	Version:  "v1",
	Resource: "httproutes",
}

// Options configures the gatewayapi adapter.
type Options struct {
	// OnlyAnnotated lists only HTTPRoutes with a true enable flag.
	OnlyAnnotated bool

	// DefaultProtocol is the URL scheme used when no protocol key is set.
	DefaultProtocol string
}

// Adapter reads gateway.networking.k8s.io/v1 HTTPRoute resources.
type Adapter struct {
	builder resolve.Builder
	gate    resolve.Gate
}

func New(opts Options) *Adapter {
	protocol := resolve.Chain{
		resolve.Metadata(annotations.ProtocolKeys...),
		resolve.Const(opts.DefaultProtocol),
	}
	table := resolve.MetadataTable().With(resolve.Table{
		resolve.FieldURL: {
			resolve.MetadataURL(),
			resolve.HostListURL(protocol, "spec", "hostnames"),
		},
	})
	return &Adapter{
		builder: resolve.Builder{Source: "gatewayapi", Table: table},
		gate:    resolve.Gate{OnlyAnnotated: opts.OnlyAnnotated, Instance: table[resolve.FieldInstance]},
	}
}

func (a *Adapter) Name() string {
	return "gatewayapi"
}

func (a *Adapter) Selector() types.Selector {
	return types.Selector{GVR: gvr, Kind: "HTTPRoute"}
}

func (a *Adapter) Extract(obj *unstructured.Unstructured) (types.Descriptor, error) {
	return a.builder.Build(obj)
}

func (a *Adapter) Include(obj *unstructured.Unstructured, d types.Descriptor, opts types.IncludeOptions) bool {
	return a.gate.Include(obj, d, opts)
}
