// Package ingress provides a source adapter for networking.k8s.io/v1 Ingress
// objects.
//
// # Parsing
//
// Handles GVR: {"networking.k8s.io", "v1", "ingresses"}
//
// Every field comes from the metadata keys in package annotations. The URL
// is never synthesized from spec.rules: it must be set through a url key.
// An Ingress that is opted in but carries no url key is malformed and
// skipped.
//
// # Inclusion
//
// With OnlyAnnotated set (the default) an Ingress is listed only when its
// resolved enable flag is literally true. The instance filter applies to
// every Ingress.
//
// # Input example
//
//	apiVersion: networking.k8s.io/v1
//	kind: Ingress
//	metadata:
//	  name: grafana
//	  namespace: monitoring
//	  annotations:
//	    signpost.potoo.io/enable: "true"
//	    signpost.potoo.io/url: https://grafana.example.com
//	    hajimari.io/icon: mdi:chart-line
package ingress
