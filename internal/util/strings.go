package util

import "strings"

// UniqueStrings returns a deduplicated copy of the slice preserving insertion order.
// Blank entries are dropped. Returns nil when nothing remains.
func UniqueStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(s))
	result := make([]string, 0, len(s))
	for _, v := range s {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, exists := seen[v]; !exists {
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// SplitCSV splits a comma-separated string into trimmed, non-empty items.
func SplitCSV(s string) []string {
	var result []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
