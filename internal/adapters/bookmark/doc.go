// Package bookmark provides the source adapter for Signpost's native
// Bookmark kind.
//
// Handles GVR: {"signpost.potoo.io", "v1alpha1", "bookmarks"}
//
// Bookmarks point outside the cluster. spec.name and spec.url are required.
// Like Applications they are always listed.
package bookmark
