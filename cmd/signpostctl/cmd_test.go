package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "signpostctl", cmd.Use)

	for _, name := range []string{"output", "config", "namespace", "instance", "adapters", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
	assert.Equal(t, "o", cmd.PersistentFlags().Lookup("output").Shorthand)
	assert.Equal(t, "n", cmd.PersistentFlags().Lookup("namespace").Shorthand)

	var subcommands []string
	for _, c := range cmd.Commands() {
		subcommands = append(subcommands, c.Name())
	}
	assert.Subset(t, subcommands, []string{"list", "groups", "get", "bookmarks", "adapters"})
}

func TestGroupsCmd(t *testing.T) {
	cmd := groupsCmd(&globalFlags{})
	assert.Equal(t, "groups", cmd.Use)
	assert.NotEmpty(t, cmd.Long)
	require.NotNil(t, cmd.Flags().Lookup("tags"))
}

func TestGetCmd(t *testing.T) {
	cmd := getCmd(&globalFlags{})
	assert.Equal(t, "get GROUP NAME", cmd.Use)
	assert.Error(t, cmd.Args(cmd, []string{"only-one"}))
	assert.NoError(t, cmd.Args(cmd, []string{"media", "sonarr"}))
}

// fakeKubeconfig returns the path to a kubeconfig file that points at a
// non-routable server. getClient() will succeed (a valid config exists),
// but any API call would fail with a connection error.
func fakeKubeconfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	kc := filepath.Join(dir, "kubeconfig")
	content := `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://192.0.2.1:6443
    insecure-skip-tls-verify: true
  name: fake
contexts:
- context:
    cluster: fake
    user: fake
  name: fake
current-context: fake
users:
- name: fake
  user:
    token: fake-token
`
	require.NoError(t, os.WriteFile(kc, []byte(content), 0600))
	return kc
}

func TestDefaultGetClient(t *testing.T) {
	t.Setenv("KUBECONFIG", fakeKubeconfig(t))
	client, err := defaultGetClient()
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestRunListNoKubeconfig(t *testing.T) {
	t.Setenv("KUBECONFIG", "/nonexistent/kubeconfig")
	t.Setenv("HOME", "/nonexistent")
	t.Setenv("KUBERNETES_SERVICE_HOST", "")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"list"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create client")
}
