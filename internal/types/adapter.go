package types

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Selector identifies the single external object kind an adapter reads.
type Selector struct {
	GVR  schema.GroupVersionResource
	Kind string
}

// String returns "group/version/resource" (or "version/resource" for the core group).
func (s Selector) String() string {
	if s.GVR.Group == "" {
		return s.GVR.Version + "/" + s.GVR.Resource
	}
	return s.GVR.Group + "/" + s.GVR.Version + "/" + s.GVR.Resource
}

// IncludeOptions carries the caller's per-request inclusion parameters.
type IncludeOptions struct {
	// Instance restricts results to objects tagged for this instance.
	// Untagged objects are always included. Empty means no restriction.
	Instance string
}

// Adapter maps one external object kind onto Descriptors.
//
// The discovery engine lists objects of Selector().GVR and hands each one to
// Extract, then asks Include whether the result belongs in the output.
//
// Implementations must be safe for concurrent use and must not mutate the
// objects they are given.
type Adapter interface {
	// Name returns a unique identifier for this adapter.
	// Used in configuration, metrics labels and logging.
	// Examples: "application", "ingress", "istio"
	Name() string

	// Selector returns the object kind this adapter reads.
	Selector() Selector

	// Extract resolves every Descriptor field from the object.
	//
	// Contract:
	//   - Returns an error wrapping ErrMalformed when a field the adapter
	//     treats as required is absent. The engine skips that object only.
	//   - Must not panic.
	Extract(obj *unstructured.Unstructured) (Descriptor, error)

	// Include reports whether an extracted Descriptor is surfaced.
	// Routing kinds use it for the opt-in gate; all non-native kinds use it
	// for the instance filter.
	Include(obj *unstructured.Unstructured, d Descriptor, opts IncludeOptions) bool
}
