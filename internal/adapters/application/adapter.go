package application

import (
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/potooio/signpost/api/v1alpha1"
	"github.com/potooio/signpost/internal/resolve"
	"github.com/potooio/signpost/internal/types"
)

// Adapter reads signpost.potoo.io Application resources.
type Adapter struct {
	builder resolve.Builder
}

func New() *Adapter {
	return &Adapter{
		builder: resolve.Builder{
			Source: "application",
			Table: resolve.Table{
				resolve.FieldName:        {resolve.Spec("spec", "name")},
				resolve.FieldGroup:       {resolve.Spec("spec", "group")},
				resolve.FieldIcon:        {resolve.Spec("spec", "icon")},
				resolve.FieldIconColor:   {resolve.Spec("spec", "iconColor")},
				resolve.FieldInfo:        {resolve.Spec("spec", "info")},
				resolve.FieldURL:         {resolve.Spec("spec", "url")},
				resolve.FieldTargetBlank: {resolve.Spec("spec", "targetBlank")},
				resolve.FieldLocation:    {resolve.Spec("spec", "location")},
				resolve.FieldEnabled:     {resolve.Spec("spec", "enabled")},
				resolve.FieldTags:        {resolve.Spec("spec", "tags")},
			},
			Required: []resolve.Field{resolve.FieldName, resolve.FieldURL},
		},
	}
}

func (a *Adapter) Name() string {
	return "application"
}

func (a *Adapter) Selector() types.Selector {
	return types.Selector{GVR: v1alpha1.ApplicationGVR(), Kind: v1alpha1.ApplicationKind}
}

func (a *Adapter) Extract(obj *unstructured.Unstructured) (types.Descriptor, error) {
	d, err := a.builder.Build(obj)
	if err != nil {
		return types.Descriptor{}, fmt.Errorf("application: %w", err)
	}
	return d, nil
}

// Include always returns true: declaring an Application is the opt-in.
func (a *Adapter) Include(_ *unstructured.Unstructured, _ types.Descriptor, _ types.IncludeOptions) bool {
	return true
}
