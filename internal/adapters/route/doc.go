// Package route provides a source adapter for OpenShift Route objects.
//
// # Parsing
//
// Handles GVR: {"route.openshift.io", "v1", "routes"}
//
// Fields come from the metadata keys in package annotations. When no url key
// is set the URL is derived from the Route itself:
//   - scheme: https when spec.tls is present, else http
//   - host: spec.host, defaulting to localhost
//   - path: spec.path, appended verbatim
//
// # Inclusion
//
// Same opt-in gate and instance filter as the ingress adapter.
//
// # Input example
//
//	apiVersion: route.openshift.io/v1
//	kind: Route
//	metadata:
//	  name: console
//	  namespace: openshift-console
//	  annotations:
//	    signpost.potoo.io/enable: "true"
//	spec:
//	  host: console.apps.example.com
//	  path: /dashboards
//	  tls:
//	    termination: edge
package route
