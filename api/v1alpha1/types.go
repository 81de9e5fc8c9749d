package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// GroupVersion is the API group and version of Signpost's native kinds.
var GroupVersion = schema.GroupVersion{Group: "signpost.potoo.io", Version: "v1alpha1"}

// Resource names as served by the API server.
const (
	ApplicationResource = "applications"
	BookmarkResource    = "bookmarks"
)

// Kinds.
const (
	ApplicationKind = "Application"
	BookmarkKind    = "Bookmark"
)

// ApplicationGVR returns the GroupVersionResource of the Application kind.
func ApplicationGVR() schema.GroupVersionResource {
	return GroupVersion.WithResource(ApplicationResource)
}

// BookmarkGVR returns the GroupVersionResource of the Bookmark kind.
func BookmarkGVR() schema.GroupVersionResource {
	return GroupVersion.WithResource(BookmarkResource)
}

// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Namespaced,shortName=spapp
// +kubebuilder:printcolumn:name="Group",type=string,JSONPath=`.spec.group`
// +kubebuilder:printcolumn:name="URL",type=string,JSONPath=`.spec.url`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// Application declares a launchable link directly. Unlike Ingresses and
// routes, it needs no opt-in annotation: every Application is listed.
type Application struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec ApplicationSpec `json:"spec"`
}

type ApplicationSpec struct {
	// Name is the display name. Lowercased when listed.
	Name string `json:"name"`

	// Group is the display group. Defaults to the object's namespace.
	// +optional
	Group string `json:"group,omitempty"`

	// Icon is an icon reference such as "mdi:home".
	// +optional
	Icon string `json:"icon,omitempty"`

	// IconColor is a CSS color name or hex value.
	// +optional
	IconColor string `json:"iconColor,omitempty"`

	// Info is a free-form subtitle.
	// +optional
	Info string `json:"info,omitempty"`

	// URL is the link target.
	URL string `json:"url"`

	// TargetBlank opens the link in a new tab when true.
	// +optional
	TargetBlank *bool `json:"targetBlank,omitempty"`

	// Location is the sort weight within the group. 0 means unset.
	// +kubebuilder:default=1000
	// +optional
	Location int `json:"location,omitempty"`

	// Enabled is carried through to clients; it does not gate listing.
	// +optional
	Enabled *bool `json:"enabled,omitempty"`

	// Tags is a comma-separated tag list for role-scoped dashboards.
	// +optional
	Tags string `json:"tags,omitempty"`
}

// +kubebuilder:object:root=true
type ApplicationList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Application `json:"items"`
}

// ---

// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Namespaced,shortName=bm

// Bookmark is a link to something outside the cluster, listed separately
// from Applications.
type Bookmark struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec BookmarkSpec `json:"spec"`
}

type BookmarkSpec struct {
	Name string `json:"name"`

	// +optional
	Group string `json:"group,omitempty"`

	// +optional
	Icon string `json:"icon,omitempty"`

	URL string `json:"url"`

	// +optional
	TargetBlank *bool `json:"targetBlank,omitempty"`

	// +optional
	Location int `json:"location,omitempty"`
}

// +kubebuilder:object:root=true
type BookmarkList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Bookmark `json:"items"`
}
