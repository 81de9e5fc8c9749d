package hajimari

import (
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/potooio/signpost/internal/annotations"
	"github.com/potooio/signpost/internal/resolve"
	"github.com/potooio/signpost/internal/types"
)

var gvr = schema.GroupVersionResource{
	Group:    "hajimari.io",
	Version:  "v1alpha1",
	Resource: "applications",
}

// Adapter reads hajimari.io Application resources.
type Adapter struct {
	builder resolve.Builder
	gate    resolve.Gate
}

func New() *Adapter {
	instance := resolve.Chain{
		resolve.Metadata(annotations.InstanceKeys...),
		resolve.Spec("spec", "instance"),
	}
	return &Adapter{
		builder: resolve.Builder{
			Source: "hajimari",
			Table: resolve.Table{
				resolve.FieldName:        {resolve.Spec("spec", "name")},
				resolve.FieldGroup:       {resolve.Spec("spec", "group")},
				resolve.FieldIcon:        {resolve.Spec("spec", "icon")},
				resolve.FieldInfo:        {resolve.Spec("spec", "info")},
				resolve.FieldURL:         {resolve.Spec("spec", "url")},
				resolve.FieldTargetBlank: {resolve.Spec("spec", "targetBlank")},
				resolve.FieldLocation:    {resolve.Spec("spec", "location")},
				resolve.FieldInstance:    instance,
			},
			Required: []resolve.Field{resolve.FieldName, resolve.FieldGroup, resolve.FieldURL},
		},
		gate: resolve.Gate{Instance: instance},
	}
}

func (a *Adapter) Name() string {
	return "hajimari"
}

func (a *Adapter) Selector() types.Selector {
	return types.Selector{GVR: gvr, Kind: "Application"}
}

func (a *Adapter) Extract(obj *unstructured.Unstructured) (types.Descriptor, error) {
	d, err := a.builder.Build(obj)
	if err != nil {
		return types.Descriptor{}, fmt.Errorf("hajimari: %w", err)
	}
	return d, nil
}

// Include applies the instance filter only; Hajimari Applications need no
// opt-in.
func (a *Adapter) Include(obj *unstructured.Unstructured, d types.Descriptor, opts types.IncludeOptions) bool {
	return a.gate.Include(obj, d, opts)
}
