// Package hajimari provides a source adapter for Hajimari's Application
// custom resource, so that clusters migrating from Hajimari keep their links.
//
// # Parsing
//
// Handles GVR: {"hajimari.io", "v1alpha1", "applications"}
//
// Fields come from spec. spec.name, spec.group and spec.url are required.
// The instance tag is read from the metadata keys first and spec.instance
// second.
//
// # Input example
//
//	apiVersion: hajimari.io/v1alpha1
//	kind: Application
//	metadata:
//	  name: sonarr
//	  namespace: media
//	spec:
//	  name: Sonarr
//	  group: Media
//	  icon: mdi:television
//	  url: https://sonarr.example.com
//	  location: 0
package hajimari
