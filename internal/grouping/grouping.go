// Package grouping applies the tag filter to a sorted Descriptor list and
// partitions it into Groups.
package grouping

import (
	"strings"

	"github.com/potooio/signpost/internal/types"
)

// FilterByTags returns the Descriptors visible under the given tag filter,
// preserving order.
//
// Untagged Descriptors are always kept. A tagged Descriptor is kept only when
// one of its tags matches one of the filter tags, case-insensitively. With an
// empty filter every tagged Descriptor is hidden.
func FilterByTags(ds []types.Descriptor, filter []string) []types.Descriptor {
	want := make(map[string]struct{}, len(filter))
	for _, f := range filter {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			want[f] = struct{}{}
		}
	}

	out := make([]types.Descriptor, 0, len(ds))
	for _, d := range ds {
		tags := d.TagList()
		if len(tags) == 0 {
			out = append(out, d)
			continue
		}
		for _, t := range tags {
			if _, ok := want[t]; ok {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// Group partitions ds in a single pass. Groups appear in order of first
// encounter and each keeps its Descriptors in input order, so a sorted input
// yields groups in sort order.
func Group(ds []types.Descriptor) []types.Group {
	groups := []types.Group{}
	index := make(map[string]int)
	for _, d := range ds {
		i, ok := index[d.Group]
		if !ok {
			i = len(groups)
			index[d.Group] = i
			groups = append(groups, types.Group{Name: d.Group})
		}
		groups[i].Descriptors = append(groups[i].Descriptors, d)
	}
	return groups
}

// Build filters ds by tags and groups the result.
func Build(ds []types.Descriptor, filter []string) []types.Group {
	return Group(FilterByTags(ds, filter))
}
