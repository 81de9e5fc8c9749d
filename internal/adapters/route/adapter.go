package route

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/potooio/signpost/internal/resolve"
	"github.com/potooio/signpost/internal/types"
	"github.com/potooio/signpost/internal/util"
)

var gvr = schema.GroupVersionResource{
	Group:    "route.openshift.io",
	Version:  "v1",
	Resource: "routes",
}

// Options configures the route adapter.
type Options struct {
	// OnlyAnnotated lists only Routes with a true enable flag.
	OnlyAnnotated bool
}

// Adapter reads route.openshift.io/v1 Route resources.
type Adapter struct {
	builder resolve.Builder
	gate    resolve.Gate
}

func New(opts Options) *Adapter {
	table := resolve.MetadataTable().With(resolve.Table{
		resolve.FieldURL: {
			resolve.MetadataURL(),
			resolve.Derived(deriveURL),
		},
	})
	return &Adapter{
		builder: resolve.Builder{Source: "route", Table: table},
		gate:    resolve.Gate{OnlyAnnotated: opts.OnlyAnnotated, Instance: table[resolve.FieldInstance]},
	}
}

func (a *Adapter) Name() string {
	return "route"
}

func (a *Adapter) Selector() types.Selector {
	return types.Selector{GVR: gvr, Kind: "Route"}
}

func (a *Adapter) Extract(obj *unstructured.Unstructured) (types.Descriptor, error) {
	return a.builder.Build(obj)
}

func (a *Adapter) Include(obj *unstructured.Unstructured, d types.Descriptor, opts types.IncludeOptions) bool {
	return a.gate.Include(obj, d, opts)
}

func deriveURL(obj *unstructured.Unstructured) (string, bool) {
	protocol := "http"
	if util.HasNestedField(obj.Object, "spec", "tls") {
		protocol = "https"
	}
	host := util.SafeNestedString(obj.Object, "spec", "host")
	path := util.SafeNestedString(obj.Object, "spec", "path")
	return resolve.URL(protocol, host, path), true
}
