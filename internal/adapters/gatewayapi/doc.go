// Package gatewayapi provides a source adapter for Gateway API HTTPRoute
// objects.
//
// Handles GVR: {"gateway.networking.k8s.io", "v1", "httproutes"}
//
// Resolution matches the istio adapter, with the host list read from
// spec.hostnames instead of spec.hosts.
package gatewayapi
