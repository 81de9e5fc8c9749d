package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/potooio/signpost/internal/util"
)

// Field names a resolvable Descriptor field.
type Field string

const (
	FieldName        Field = "name"
	FieldGroup       Field = "group"
	FieldIcon        Field = "icon"
	FieldIconColor   Field = "iconColor"
	FieldInfo        Field = "info"
	FieldURL         Field = "url"
	FieldTargetBlank Field = "targetBlank"
	FieldLocation    Field = "location"
	FieldEnabled     Field = "enabled"
	FieldTags        Field = "tags"
	FieldInstance    Field = "instance"
)

// Lookup resolves one field from one stratum. It returns false when the
// stratum has no value for the object.
type Lookup func(obj *unstructured.Unstructured) (string, bool)

// Chain is an ordered list of Lookups; the first hit wins.
type Chain []Lookup

// Resolve walks the chain and returns the first value found.
func (c Chain) Resolve(obj *unstructured.Unstructured) (string, bool) {
	for _, lookup := range c {
		if lookup == nil {
			continue
		}
		if v, ok := lookup(obj); ok {
			return v, true
		}
	}
	return "", false
}

// Table maps each field to its resolution chain. Fields without an entry
// resolve straight to their generic default.
type Table map[Field]Chain

// Metadata returns a Lookup over the given annotation/label keys, in order.
// Empty values are treated as absent.
func Metadata(keys ...string) Lookup {
	return func(obj *unstructured.Unstructured) (string, bool) {
		for _, key := range keys {
			if v, ok := util.MetadataValue(obj, key); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v), true
			}
		}
		return "", false
	}
}

// Lower wraps a Lookup so that its value is lowercased.
func Lower(l Lookup) Lookup {
	return func(obj *unstructured.Unstructured) (string, bool) {
		v, ok := l(obj)
		return strings.ToLower(v), ok
	}
}

// Spec returns a Lookup reading a scalar at the given path of the object.
// Booleans and numbers are rendered in their canonical string form so that
// the Builder parses every stratum the same way.
func Spec(path ...string) Lookup {
	return func(obj *unstructured.Unstructured) (string, bool) {
		if obj == nil {
			return "", false
		}
		raw, found, err := unstructured.NestedFieldNoCopy(obj.Object, path...)
		if err != nil || !found || raw == nil {
			return "", false
		}
		var s string
		switch v := raw.(type) {
		case string:
			s = strings.TrimSpace(v)
		case bool:
			s = strconv.FormatBool(v)
		case int64:
			s = strconv.FormatInt(v, 10)
		case int32:
			s = strconv.FormatInt(int64(v), 10)
		case int:
			s = strconv.Itoa(v)
		case float64:
			s = strconv.FormatInt(int64(v), 10)
		default:
			return "", false
		}
		return s, s != ""
	}
}

// Derived wraps a function that computes a value from the object's payload.
func Derived(fn func(obj *unstructured.Unstructured) (string, bool)) Lookup {
	return fn
}

// Const returns a Lookup that always yields v. Useful as the last element of
// a chain that must never come up empty, such as a default protocol.
func Const(v string) Lookup {
	return func(*unstructured.Unstructured) (string, bool) {
		return v, v != ""
	}
}

// MissingFieldError reports a required field that no stratum could resolve.
type MissingFieldError struct {
	Field     Field
	Namespace string
	Name      string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s/%s: required field %q not set", e.Namespace, e.Name, e.Field)
}
