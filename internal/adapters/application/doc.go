// Package application provides the source adapter for Signpost's native
// Application kind.
//
// # Parsing
//
// Handles GVR: {"signpost.potoo.io", "v1alpha1", "applications"}
//
// Every field comes from the object's spec. spec.name and spec.url are
// required; objects missing either are skipped as malformed. The group
// falls back to the object's namespace.
//
// Native objects are always listed: there is no opt-in annotation and no
// instance filter.
//
// # Input example
//
//	apiVersion: signpost.potoo.io/v1alpha1
//	kind: Application
//	metadata:
//	  name: grafana
//	  namespace: monitoring
//	spec:
//	  name: Grafana
//	  group: Observability
//	  icon: mdi:chart-line
//	  url: https://grafana.example.com
//	  location: 10
package application
