// Package resolve implements the layered field resolution shared by all
// source adapters.
//
// Every Descriptor field is resolved by an ordered Chain of Lookups. An
// adapter declares, per field, which strata it uses and in what order:
//
//   - Metadata: recognised annotation/label keys (see package annotations),
//     Signpost's own keys first, then Hajimari's, then Forecastle's.
//   - Spec: a path into the object's own payload.
//   - Derived: a function computing the value from the payload, used for
//     URLs of routing objects.
//
// The first Lookup that yields a non-empty value wins. When the whole chain
// comes up empty the generic defaults apply: the object's name for Name, its
// namespace for Group, DefaultLocation for Location, and unset for the rest.
//
// A Builder turns a Table of chains into a Descriptor and applies the
// normalizations every adapter shares: lowercased name, group and icon, and
// location 0 mapped to DefaultLocation.
package resolve
