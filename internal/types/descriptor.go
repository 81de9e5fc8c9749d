package types

import (
	"errors"
	"sort"
	"strings"

	"k8s.io/utils/ptr"
)

// DefaultLocation is the sort weight of a Descriptor that does not declare one.
// A declared location of 0 is treated as unset and normalized to this value.
const DefaultLocation = 1000

// ErrMalformed marks an object that is missing a field its adapter requires.
// Adapters wrap it; callers check with errors.Is.
var ErrMalformed = errors.New("malformed object")

// Descriptor is the normalized, source-agnostic representation of an
// application or bookmark discovered in the cluster.
type Descriptor struct {
	// Display identity, lowercased.
	Name  string `json:"name"`
	Group string `json:"group"`

	// Presentation hints.
	Icon      string `json:"icon,omitempty"`
	IconColor string `json:"iconColor,omitempty"`
	Info      string `json:"info,omitempty"`

	// Link target.
	URL         string `json:"url"`
	TargetBlank *bool  `json:"targetBlank,omitempty"`

	// Location is the sort weight within a group; lower sorts first.
	Location int `json:"location"`

	// Enabled doubles as the inclusion gate for routing kinds.
	Enabled *bool `json:"enabled,omitempty"`

	// Tags is a comma-separated list consumed by the tag filter only.
	Tags string `json:"tags,omitempty"`

	// Source names the adapter that produced this Descriptor.
	Source string `json:"source,omitempty"`

	// Reference back to the Kubernetes object it was read from.
	Namespace    string `json:"namespace,omitempty"`
	ResourceName string `json:"resourceName,omitempty"`
}

// NormalizeLocation maps the legacy "unset" value 0 to DefaultLocation.
func NormalizeLocation(location int) int {
	if location == 0 {
		return DefaultLocation
	}
	return location
}

// TagList returns the Descriptor's tags split on commas, trimmed and lowercased.
// Empty entries are dropped.
func (d Descriptor) TagList() []string {
	if strings.TrimSpace(d.Tags) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(d.Tags, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Equal reports whether two Descriptors are structurally identical.
// Tri-state fields compare by value: two unset fields are equal,
// unset and false are not.
func (d Descriptor) Equal(o Descriptor) bool {
	return d.Name == o.Name &&
		d.Group == o.Group &&
		d.Icon == o.Icon &&
		d.IconColor == o.IconColor &&
		d.Info == o.Info &&
		d.URL == o.URL &&
		ptr.Equal(d.TargetBlank, o.TargetBlank) &&
		d.Location == o.Location &&
		ptr.Equal(d.Enabled, o.Enabled) &&
		d.Tags == o.Tags &&
		d.Source == o.Source &&
		d.Namespace == o.Namespace &&
		d.ResourceName == o.ResourceName
}

// Compare orders Descriptors by group (case-insensitive), then location
// ascending, then name (case-insensitive). It returns a negative number when
// a sorts before b, a positive number when after, and 0 on a key tie.
func Compare(a, b Descriptor) int {
	if c := strings.Compare(strings.ToLower(a.Group), strings.ToLower(b.Group)); c != 0 {
		return c
	}
	if a.Location != b.Location {
		if a.Location < b.Location {
			return -1
		}
		return 1
	}
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

// SortDescriptors sorts ds in place by Compare. The sort is stable so that
// full key ties keep their input order.
func SortDescriptors(ds []Descriptor) {
	sort.SliceStable(ds, func(i, j int) bool {
		return Compare(ds[i], ds[j]) < 0
	})
}

// Group is a named bucket of Descriptors that share the same Group field,
// in the order the global sort produced them.
type Group struct {
	Name        string       `json:"name"`
	Descriptors []Descriptor `json:"applications"`
}
