package resolve

import "github.com/potooio/signpost/internal/annotations"

// MetadataTable returns the metadata-label stratum for every field, in the
// key order defined by package annotations. Adapters for kinds that are not
// link declarations start from it and append their structural lookups.
func MetadataTable() Table {
	return Table{
		FieldName:        {Metadata(annotations.AppNameKeys...)},
		FieldGroup:       {Metadata(annotations.GroupKeys...)},
		FieldIcon:        {Metadata(annotations.IconKeys...)},
		FieldIconColor:   {Metadata(annotations.IconColorKeys...)},
		FieldInfo:        {Metadata(annotations.InfoKeys...)},
		FieldURL:         {MetadataURL()},
		FieldTargetBlank: {Metadata(annotations.TargetBlankKeys...)},
		FieldLocation:    {Metadata(annotations.LocationKeys...)},
		FieldEnabled:     {Metadata(annotations.EnableKeys...)},
		FieldTags:        {Metadata(annotations.TagsKeys...)},
		FieldInstance:    {Metadata(annotations.InstanceKeys...)},
	}
}

// MetadataURL is the url stratum of the metadata labels. Unlike structural
// URLs, which are kept as written, label URLs are lowercased.
func MetadataURL() Lookup {
	return Lower(Metadata(annotations.URLKeys...))
}

// With returns a copy of t where each field in overrides replaces the
// existing chain.
func (t Table) With(overrides Table) Table {
	out := make(Table, len(t)+len(overrides))
	for f, c := range t {
		out[f] = c
	}
	for f, c := range overrides {
		out[f] = c
	}
	return out
}
