// Package testutil provides shared test helpers for the signpost project.
// Import this in test files to avoid duplicating fixture loading, object builders and fake clients.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"sigs.k8s.io/yaml"

	"github.com/potooio/signpost/api/v1alpha1"
)

// GVRs of the kinds the built-in adapters read.
var (
	ApplicationGVR    = v1alpha1.ApplicationGVR()
	BookmarkGVR       = v1alpha1.BookmarkGVR()
	HajimariGVR       = schema.GroupVersionResource{Group: "hajimari.io", Version: "v1alpha1", Resource: "applications"}
	IngressGVR        = schema.GroupVersionResource{Group: "networking.k8s.io", Version: "v1", Resource: "ingresses"}
	RouteGVR          = schema.GroupVersionResource{Group: "route.openshift.io", Version: "v1", Resource: "routes"}
	VirtualServiceGVR = schema.GroupVersionResource{Group: "networking.istio.io", Version: "v1", Resource: "virtualservices"}
	HTTPRouteGVR      = schema.GroupVersionResource{Group: "gateway.networking.k8s.io", Version: "v1", Resource: "httproutes"}
)

var builtinKindsByGVR = map[schema.GroupVersionResource]string{
	ApplicationGVR:    v1alpha1.ApplicationKind,
	BookmarkGVR:       v1alpha1.BookmarkKind,
	HajimariGVR:       "Application",
	IngressGVR:        "Ingress",
	RouteGVR:          "Route",
	VirtualServiceGVR: "VirtualService",
	HTTPRouteGVR:      "HTTPRoute",
}

// LoadFixture reads a YAML file and returns it as an Unstructured object.
// Fails the test immediately if the file can't be read or parsed.
func LoadFixture(t *testing.T, path string) *unstructured.Unstructured {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read fixture %s", path)
	obj := &unstructured.Unstructured{}
	require.NoError(t, yaml.Unmarshal(data, &obj.Object), "failed to parse fixture %s", path)
	return obj
}

// NewObject builds an unstructured object of the given kind.
// annotations and spec may be nil.
func NewObject(gvr schema.GroupVersionResource, namespace, name string, annotations map[string]string, spec map[string]interface{}) *unstructured.Unstructured {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{}}
	obj.SetAPIVersion(gvr.GroupVersion().String())
	obj.SetKind(builtinKindsByGVR[gvr])
	obj.SetNamespace(namespace)
	obj.SetName(name)
	if annotations != nil {
		obj.SetAnnotations(annotations)
	}
	if spec != nil {
		obj.Object["spec"] = spec
	}
	return obj
}

// NewApplication builds a native Application from its typed spec.
func NewApplication(t *testing.T, namespace, name string, spec v1alpha1.ApplicationSpec) *unstructured.Unstructured {
	t.Helper()
	app := &v1alpha1.Application{
		TypeMeta:   metav1.TypeMeta{APIVersion: v1alpha1.GroupVersion.String(), Kind: v1alpha1.ApplicationKind},
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name},
		Spec:       spec,
	}
	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(app)
	require.NoError(t, err)
	return &unstructured.Unstructured{Object: content}
}

// NewBookmark builds a native Bookmark from its typed spec.
func NewBookmark(t *testing.T, namespace, name string, spec v1alpha1.BookmarkSpec) *unstructured.Unstructured {
	t.Helper()
	bm := &v1alpha1.Bookmark{
		TypeMeta:   metav1.TypeMeta{APIVersion: v1alpha1.GroupVersion.String(), Kind: v1alpha1.BookmarkKind},
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name},
		Spec:       spec,
	}
	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(bm)
	require.NoError(t, err)
	return &unstructured.Unstructured{Object: content}
}

// ListKinds returns the list kind of every built-in adapter's resource, for
// dynamicfake.NewSimpleDynamicClientWithCustomListKinds.
func ListKinds() map[schema.GroupVersionResource]string {
	out := make(map[schema.GroupVersionResource]string, len(builtinKindsByGVR))
	for gvr, kind := range builtinKindsByGVR {
		out[gvr] = kind + "List"
	}
	return out
}

// NewFakeDynamicClient creates a fake dynamic client that can list every
// built-in kind and pre-populates it with objects via the client API so that
// namespace + GVR routing works correctly.
func NewFakeDynamicClient(t *testing.T, objects ...*unstructured.Unstructured) *dynamicfake.FakeDynamicClient {
	t.Helper()
	return NewFakeDynamicClientFor(t, nil, objects...)
}

// NewFakeDynamicClientFor is NewFakeDynamicClient restricted to the listable
// GVRs given; nil means all built-in kinds. Listing any other GVR makes the
// fake client panic, which simulates a kind the cluster does not serve.
func NewFakeDynamicClientFor(t *testing.T, listable []schema.GroupVersionResource, objects ...*unstructured.Unstructured) *dynamicfake.FakeDynamicClient {
	t.Helper()
	s := runtime.NewScheme()
	for gvr, kind := range builtinKindsByGVR {
		s.AddKnownTypeWithName(gvr.GroupVersion().WithKind(kind), &unstructured.Unstructured{})
		s.AddKnownTypeWithName(gvr.GroupVersion().WithKind(kind+"List"), &unstructured.UnstructuredList{})
	}

	listKinds := ListKinds()
	if listable != nil {
		listKinds = make(map[schema.GroupVersionResource]string, len(listable))
		for _, gvr := range listable {
			listKinds[gvr] = builtinKindsByGVR[gvr] + "List"
		}
	}
	client := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(s, listKinds)

	ctx := context.Background()
	for _, obj := range objects {
		gvr, _ := meta.UnsafeGuessKindToResource(obj.GroupVersionKind())
		_, err := client.Resource(gvr).Namespace(obj.GetNamespace()).Create(ctx, obj, metav1.CreateOptions{})
		require.NoError(t, err, "failed to seed %s %s/%s", gvr.Resource, obj.GetNamespace(), obj.GetName())
	}
	return client
}
