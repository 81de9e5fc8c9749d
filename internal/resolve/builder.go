package resolve

import (
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/utils/ptr"

	"github.com/potooio/signpost/internal/types"
	"github.com/potooio/signpost/internal/util"
)

// Unwrap lets callers match a MissingFieldError with errors.Is(err, types.ErrMalformed).
func (e *MissingFieldError) Unwrap() error {
	return types.ErrMalformed
}

// Builder resolves a Descriptor from an object using a Table.
type Builder struct {
	// Source is the adapter name stamped on every Descriptor.
	Source string

	// Table holds the resolution chain per field.
	Table Table

	// Required lists fields that must resolve from the Table. When one does
	// not, Build fails with a MissingFieldError instead of using the default.
	Required []Field
}

// Build resolves every field of the Descriptor.
func (b Builder) Build(obj *unstructured.Unstructured) (types.Descriptor, error) {
	d := types.Descriptor{
		Source:       b.Source,
		Namespace:    obj.GetNamespace(),
		ResourceName: obj.GetName(),
		Location:     types.DefaultLocation,
	}

	for _, f := range b.Required {
		if _, ok := b.Table[f].Resolve(obj); !ok {
			return types.Descriptor{}, &MissingFieldError{
				Field:     f,
				Namespace: obj.GetNamespace(),
				Name:      obj.GetName(),
			}
		}
	}

	d.Name = strings.ToLower(b.stringOr(obj, FieldName, obj.GetName()))
	d.Group = strings.ToLower(b.stringOr(obj, FieldGroup, obj.GetNamespace()))
	d.Icon = strings.ToLower(b.stringOr(obj, FieldIcon, ""))
	d.IconColor = b.stringOr(obj, FieldIconColor, "")
	d.Info = b.stringOr(obj, FieldInfo, "")
	d.URL = b.stringOr(obj, FieldURL, "")
	d.Tags = b.stringOr(obj, FieldTags, "")

	if v, ok := b.Table[FieldTargetBlank].Resolve(obj); ok {
		d.TargetBlank = util.ParseBool(v)
	}
	if v, ok := b.Table[FieldEnabled].Resolve(obj); ok {
		d.Enabled = util.ParseBool(v)
	}
	if v, ok := b.Table[FieldLocation].Resolve(obj); ok {
		if n, ok := util.ParseInt(v); ok {
			d.Location = types.NormalizeLocation(n)
		}
	}

	return d, nil
}

func (b Builder) stringOr(obj *unstructured.Unstructured, f Field, fallback string) string {
	if v, ok := b.Table[f].Resolve(obj); ok {
		return v
	}
	return fallback
}

// OptedIn reports whether the Descriptor carries an explicit true enable flag.
func OptedIn(d types.Descriptor) bool {
	return ptr.Deref(d.Enabled, false)
}

// MatchesInstance reports whether an object tagged with the given instance
// value belongs to the requested instance. The tag may list several
// comma-separated instances. Untagged objects and empty requests always match.
func MatchesInstance(tagged, requested string) bool {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return true
	}
	instances := util.SplitCSV(tagged)
	if len(instances) == 0 {
		return true
	}
	for _, inst := range instances {
		if strings.EqualFold(inst, requested) {
			return true
		}
	}
	return false
}

// Gate is the inclusion predicate shared by non-native adapters.
type Gate struct {
	// OnlyAnnotated requires an explicit true enable flag.
	OnlyAnnotated bool

	// Instance resolves the object's instance tag.
	Instance Chain
}

// Include applies the opt-in gate and the instance filter.
func (g Gate) Include(obj *unstructured.Unstructured, d types.Descriptor, opts types.IncludeOptions) bool {
	if g.OnlyAnnotated && !OptedIn(d) {
		return false
	}
	tagged, _ := g.Instance.Resolve(obj)
	return MatchesInstance(tagged, opts.Instance)
}
