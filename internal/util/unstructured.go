package util

import (
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// SafeNestedString returns the string at the given field path, or "" if missing/wrong type.
func SafeNestedString(obj map[string]interface{}, fields ...string) string {
	if obj == nil {
		return ""
	}
	val, found, err := unstructured.NestedString(obj, fields...)
	if err != nil || !found {
		return ""
	}
	return val
}

// SafeNestedStringSlice returns the []string at the given field path, or nil if missing.
func SafeNestedStringSlice(obj map[string]interface{}, fields ...string) []string {
	if obj == nil {
		return nil
	}
	val, found, err := unstructured.NestedStringSlice(obj, fields...)
	if err != nil || !found {
		return nil
	}
	return val
}

// HasNestedField reports whether any value (including an empty map) exists
// at the given field path.
func HasNestedField(obj map[string]interface{}, fields ...string) bool {
	if obj == nil {
		return false
	}
	val, found, err := unstructured.NestedFieldNoCopy(obj, fields...)
	return err == nil && found && val != nil
}

// MetadataValue returns the value of key from the object's annotations, or
// from its labels when no annotation carries it.
func MetadataValue(obj *unstructured.Unstructured, key string) (string, bool) {
	if obj == nil {
		return "", false
	}
	if v, ok := obj.GetAnnotations()[key]; ok {
		return v, true
	}
	if v, ok := obj.GetLabels()[key]; ok {
		return v, true
	}
	return "", false
}

// ParseBool parses a boolean the way strconv does, tolerating surrounding
// whitespace. Returns nil for anything unparsable.
func ParseBool(s string) *bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &b
}

// ParseInt parses a decimal integer, tolerating surrounding whitespace.
func ParseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
