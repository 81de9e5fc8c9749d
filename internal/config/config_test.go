package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.NamespaceSelector.Any)
	assert.Nil(t, cfg.NamespaceSelector.Namespaces())
	assert.Equal(t, 10*time.Second, cfg.QueryTimeout.Duration)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, ":8080", cfg.ListenAddress)
	assert.True(t, cfg.Adapters.Application.Enabled)
	assert.True(t, cfg.Adapters.Ingress.Enabled)
	assert.True(t, cfg.Adapters.Ingress.OnlyAnnotated)
	assert.False(t, cfg.Adapters.Route.Enabled)
	assert.Equal(t, "http", cfg.Adapters.Istio.DefaultProtocol)
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvWorkers, "")

	cfg, err := Load("testdata/full.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"media", "monitoring"}, cfg.NamespaceSelector.Namespaces())
	assert.Equal(t, "app.kubernetes.io/part-of=homelab", cfg.LabelSelector)
	assert.Equal(t, "blue", cfg.Instance)
	assert.Equal(t, 3*time.Second, cfg.QueryTimeout.Duration)
	assert.Equal(t, 2, cfg.Workers)
	assert.Zero(t, cfg.CacheTTL.Duration)
	assert.Equal(t, time.Minute, cfg.RefreshInterval.Duration)
	assert.Equal(t, ":9090", cfg.ListenAddress)
	assert.Equal(t, []string{"https://home.example.com"}, cfg.AllowedOrigins)

	assert.True(t, cfg.Adapters.Hajimari.Enabled)
	assert.False(t, cfg.Adapters.Ingress.OnlyAnnotated)
	assert.True(t, cfg.Adapters.Istio.Enabled)
	assert.True(t, cfg.Adapters.Istio.OnlyAnnotated, "unset fields keep their defaults")
	assert.Equal(t, "https", cfg.Adapters.Istio.DefaultProtocol)
	assert.True(t, cfg.Adapters.Application.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load("testdata/unknown_field.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	t.Setenv(EnvListenAddress, ":7000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ListenAddress)
	assert.Equal(t, 4, cfg.Workers)
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnvOverrides(envMap(map[string]string{
		EnvNamespaces:      "media, docs",
		EnvLabelSelector:   "tier=frontend",
		EnvInstance:        "green",
		EnvQueryTimeout:    "2s",
		EnvWorkers:         "8",
		EnvCacheTTL:        "1s",
		EnvRefreshInterval: "10s",
		EnvAdapters:        "route, Istio",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"media", "docs"}, cfg.NamespaceSelector.Namespaces())
	assert.Equal(t, "tier=frontend", cfg.LabelSelector)
	assert.Equal(t, "green", cfg.Instance)
	assert.Equal(t, 2*time.Second, cfg.QueryTimeout.Duration)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, time.Second, cfg.CacheTTL.Duration)
	assert.Equal(t, 10*time.Second, cfg.RefreshInterval.Duration)

	assert.False(t, cfg.Adapters.Application.Enabled)
	assert.False(t, cfg.Adapters.Ingress.Enabled)
	assert.True(t, cfg.Adapters.Route.Enabled)
	assert.True(t, cfg.Adapters.Istio.Enabled)
}

func TestApplyEnvOverrides_AllNamespaces(t *testing.T) {
	cfg := Default()
	cfg.NamespaceSelector = NamespaceSelector{MatchNames: []string{"a"}}
	require.NoError(t, cfg.applyEnvOverrides(envMap(map[string]string{EnvNamespaces: "*"})))
	assert.True(t, cfg.NamespaceSelector.Any)
}

func TestApplyEnvOverrides_Errors(t *testing.T) {
	tests := map[string]map[string]string{
		"bad workers":  {EnvWorkers: "many"},
		"bad duration": {EnvQueryTimeout: "soon"},
		"bad adapter":  {EnvAdapters: "ingress,nginx"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, cfg.applyEnvOverrides(envMap(env)))
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Workers = 0
	cfg.QueryTimeout.Duration = 0
	cfg.CacheTTL.Duration = -time.Second
	cfg.ListenAddress = ""
	cfg.NamespaceSelector = NamespaceSelector{}
	cfg.Adapters.Istio.DefaultProtocol = "gopher"
	cfg.LabelSelector = "app in (("

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "workers")
	assert.Contains(t, msg, "queryTimeout")
	assert.Contains(t, msg, "cacheTTL")
	assert.Contains(t, msg, "listenAddress")
	assert.Contains(t, msg, "namespaceSelector")
	assert.Contains(t, msg, "adapters.istio.defaultProtocol")
	assert.Contains(t, msg, "labelSelector")
}

func TestValidate_BlankNamespace(t *testing.T) {
	cfg := Default()
	cfg.NamespaceSelector = NamespaceSelector{MatchNames: []string{"media", " "}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "namespaceSelector.matchNames[1] must not be blank")

	assert.Equal(t, []string{"media"}, cfg.NamespaceSelector.Namespaces())
}
