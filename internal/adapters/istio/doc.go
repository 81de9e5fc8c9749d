// Package istio provides a source adapter for Istio VirtualService objects.
//
// # Parsing
//
// Handles GVR: {"networking.istio.io", "v1", "virtualservices"}
//
// Fields come from the metadata keys in package annotations. When no url key
// is set the URL is <protocol>://<host>, where protocol is the protocol key
// or the configured default, and host is spec.hosts[0] or localhost.
//
// # Input example
//
//	apiVersion: networking.istio.io/v1
//	kind: VirtualService
//	metadata:
//	  name: kiali
//	  namespace: istio-system
//	  annotations:
//	    signpost.potoo.io/enable: "true"
//	    signpost.potoo.io/protocol: https
//	spec:
//	  hosts:
//	  - kiali.example.com
//	  gateways:
//	  - istio-system/public
package istio
