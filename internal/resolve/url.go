package resolve

import (
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/potooio/signpost/internal/util"
)

// DefaultHost is used when a routing object declares no host.
const DefaultHost = "localhost"

// URL joins a protocol, host and optional path into a link target.
// The protocol may be given as "https" or "https://"; it defaults to http.
// The host is lowercased and defaults to DefaultHost. The path is appended
// verbatim.
func URL(protocol, host, path string) string {
	scheme := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(protocol)), "://")
	if scheme == "" {
		scheme = "http"
	}
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		host = DefaultHost
	}
	return scheme + "://" + host + path
}

// FirstHost returns the first non-empty host of a host list, or DefaultHost.
func FirstHost(hosts []string) string {
	for _, h := range hosts {
		if h = strings.TrimSpace(h); h != "" {
			return h
		}
	}
	return DefaultHost
}

// HostListURL returns a Lookup deriving a URL from the first host of the
// string list at path, with the scheme resolved by protocol.
func HostListURL(protocol Chain, path ...string) Lookup {
	return func(obj *unstructured.Unstructured) (string, bool) {
		if obj == nil {
			return "", false
		}
		scheme, _ := protocol.Resolve(obj)
		hosts := util.SafeNestedStringSlice(obj.Object, path...)
		return URL(scheme, FirstHost(hosts), ""), true
	}
}
