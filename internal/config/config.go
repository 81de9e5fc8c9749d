// Package config loads Signpost's configuration from a YAML file, with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/yaml"

	"github.com/potooio/signpost/internal/util"
)

// Config is the top-level configuration.
type Config struct {
	// NamespaceSelector scopes every list call.
	NamespaceSelector NamespaceSelector `json:"namespaceSelector"`

	// LabelSelector, when set, is applied to every list call.
	LabelSelector string `json:"labelSelector,omitempty"`

	// Instance is this Signpost's instance name, used as the default
	// instance filter for API requests that do not name one.
	Instance string `json:"instance,omitempty"`

	// QueryTimeout bounds each adapter's list call.
	QueryTimeout metav1.Duration `json:"queryTimeout"`

	// Workers bounds how many adapters are queried concurrently.
	Workers int `json:"workers"`

	// CacheTTL is how long an aggregation result is reused by the API.
	// Zero disables caching.
	CacheTTL metav1.Duration `json:"cacheTTL"`

	// RefreshInterval is how often the event watcher re-aggregates.
	RefreshInterval metav1.Duration `json:"refreshInterval"`

	// ListenAddress is the HTTP listen address.
	ListenAddress string `json:"listenAddress"`

	// AllowedOrigins lists the CORS origins allowed to call the API.
	// Empty allows any origin.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`

	Adapters Adapters `json:"adapters"`
}

// NamespaceSelector selects either every namespace or an explicit list.
type NamespaceSelector struct {
	Any        bool     `json:"any"`
	MatchNames []string `json:"matchNames,omitempty"`
}

// Namespaces returns the namespace scope: nil for all namespaces.
func (s NamespaceSelector) Namespaces() []string {
	if s.Any {
		return nil
	}
	return util.UniqueStrings(s.MatchNames)
}

// Toggle enables or disables an adapter.
type Toggle struct {
	Enabled bool `json:"enabled"`
}

// RoutingToggle configures an adapter for routing objects.
type RoutingToggle struct {
	Enabled       bool `json:"enabled"`
	OnlyAnnotated bool `json:"onlyAnnotated"`
}

// MeshToggle configures an adapter that derives URLs from a host list.
type MeshToggle struct {
	Enabled         bool   `json:"enabled"`
	OnlyAnnotated   bool   `json:"onlyAnnotated"`
	DefaultProtocol string `json:"defaultProtocol,omitempty"`
}

// Adapters holds per-adapter settings.
type Adapters struct {
	Application Toggle        `json:"application"`
	Bookmark    Toggle        `json:"bookmark"`
	Hajimari    Toggle        `json:"hajimari"`
	Ingress     RoutingToggle `json:"ingress"`
	Route       RoutingToggle `json:"route"`
	Istio       MeshToggle    `json:"istio"`
	GatewayAPI  MeshToggle    `json:"gatewayapi"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		NamespaceSelector: NamespaceSelector{Any: true},
		QueryTimeout:      metav1.Duration{Duration: 10 * time.Second},
		Workers:           4,
		CacheTTL:          metav1.Duration{Duration: 5 * time.Second},
		RefreshInterval:   metav1.Duration{Duration: 30 * time.Second},
		ListenAddress:     ":8080",
		Adapters: Adapters{
			Application: Toggle{Enabled: true},
			Bookmark:    Toggle{Enabled: true},
			Hajimari:    Toggle{Enabled: false},
			Ingress:     RoutingToggle{Enabled: true, OnlyAnnotated: true},
			Route:       RoutingToggle{Enabled: false, OnlyAnnotated: true},
			Istio:       MeshToggle{Enabled: false, OnlyAnnotated: true, DefaultProtocol: "http"},
			GatewayAPI:  MeshToggle{Enabled: false, OnlyAnnotated: true, DefaultProtocol: "http"},
		},
	}
}

// Load reads the configuration at path on top of the defaults and applies
// environment overrides. An empty path yields the defaults plus overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Environment variables recognised by applyEnvOverrides.
const (
	EnvNamespaces      = "SIGNPOST_NAMESPACES"
	EnvLabelSelector   = "SIGNPOST_LABEL_SELECTOR"
	EnvInstance        = "SIGNPOST_INSTANCE"
	EnvQueryTimeout    = "SIGNPOST_QUERY_TIMEOUT"
	EnvWorkers         = "SIGNPOST_WORKERS"
	EnvCacheTTL        = "SIGNPOST_CACHE_TTL"
	EnvRefreshInterval = "SIGNPOST_REFRESH_INTERVAL"
	EnvListenAddress   = "SIGNPOST_LISTEN_ADDRESS"
	EnvAdapters        = "SIGNPOST_ADAPTERS"
)

// applyEnvOverrides applies environment variable overrides.
// SIGNPOST_NAMESPACES is a comma-separated list; "*" selects all namespaces.
// SIGNPOST_ADAPTERS is a comma-separated list of adapter names to enable;
// every adapter not listed is disabled.
func (c *Config) applyEnvOverrides(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvNamespaces); ok {
		names := util.SplitCSV(v)
		if len(names) == 1 && names[0] == "*" {
			c.NamespaceSelector = NamespaceSelector{Any: true}
		} else {
			c.NamespaceSelector = NamespaceSelector{MatchNames: names}
		}
	}
	if v, ok := lookup(EnvLabelSelector); ok {
		c.LabelSelector = v
	}
	if v, ok := lookup(EnvInstance); ok {
		c.Instance = v
	}
	if v, ok := lookup(EnvListenAddress); ok && v != "" {
		c.ListenAddress = v
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}

	durations := []struct {
		env string
		dst *metav1.Duration
	}{
		{EnvQueryTimeout, &c.QueryTimeout},
		{EnvCacheTTL, &c.CacheTTL},
		{EnvRefreshInterval, &c.RefreshInterval},
	}
	for _, d := range durations {
		v, ok := lookup(d.env)
		if !ok || v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.env, err)
		}
		d.dst.Duration = parsed
	}

	if v, ok := lookup(EnvAdapters); ok {
		if err := c.Adapters.enableOnly(util.SplitCSV(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvAdapters, err)
		}
	}
	return nil
}

func (a *Adapters) enableOnly(names []string) error {
	flags := a.enabledFlags()
	for _, p := range flags {
		*p = false
	}
	for _, name := range names {
		p, ok := flags[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown adapter %q", name)
		}
		*p = true
	}
	return nil
}

func (a *Adapters) enabledFlags() map[string]*bool {
	return map[string]*bool{
		"application": &a.Application.Enabled,
		"bookmark":    &a.Bookmark.Enabled,
		"hajimari":    &a.Hajimari.Enabled,
		"ingress":     &a.Ingress.Enabled,
		"route":       &a.Route.Enabled,
		"istio":       &a.Istio.Enabled,
		"gatewayapi":  &a.GatewayAPI.Enabled,
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.QueryTimeout.Duration <= 0 {
		errs = append(errs, fmt.Errorf("queryTimeout must be positive, got %s", c.QueryTimeout.Duration))
	}
	if c.CacheTTL.Duration < 0 {
		errs = append(errs, fmt.Errorf("cacheTTL must not be negative, got %s", c.CacheTTL.Duration))
	}
	if c.RefreshInterval.Duration <= 0 {
		errs = append(errs, fmt.Errorf("refreshInterval must be positive, got %s", c.RefreshInterval.Duration))
	}
	if c.ListenAddress == "" {
		errs = append(errs, errors.New("listenAddress must not be empty"))
	}
	if c.LabelSelector != "" {
		if _, err := labels.Parse(c.LabelSelector); err != nil {
			errs = append(errs, fmt.Errorf("labelSelector: %w", err))
		}
	}
	if !c.NamespaceSelector.Any && len(c.NamespaceSelector.MatchNames) == 0 {
		errs = append(errs, errors.New("namespaceSelector: set any: true or list matchNames"))
	}
	for i, ns := range c.NamespaceSelector.MatchNames {
		if strings.TrimSpace(ns) == "" {
			errs = append(errs, fmt.Errorf("namespaceSelector.matchNames[%d] must not be blank", i))
		}
	}
	for name, proto := range map[string]string{
		"istio":      c.Adapters.Istio.DefaultProtocol,
		"gatewayapi": c.Adapters.GatewayAPI.DefaultProtocol,
	} {
		switch strings.TrimSuffix(strings.ToLower(proto), "://") {
		case "", "http", "https":
		default:
			errs = append(errs, fmt.Errorf("adapters.%s.defaultProtocol must be http or https, got %q", name, proto))
		}
	}
	return errors.Join(errs...)
}
