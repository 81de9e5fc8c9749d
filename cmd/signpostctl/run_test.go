package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/dynamic"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/potooio/signpost/api/v1alpha1"
	"github.com/potooio/signpost/internal/annotations"
	"github.com/potooio/signpost/internal/testutil"
	"github.com/potooio/signpost/internal/types"
)

// setFakeClient installs a fake dynamic client for the duration of the test
// and restores the original getClientFunc on cleanup.
func setFakeClient(t *testing.T, client dynamic.Interface) {
	t.Helper()
	orig := getClientFunc
	getClientFunc = func() (dynamic.Interface, error) {
		return client, nil
	}
	t.Cleanup(func() { getClientFunc = orig })
}

func clusterObjects(t *testing.T) []*unstructured.Unstructured {
	return []*unstructured.Unstructured{
		testutil.NewApplication(t, "media", "sonarr", v1alpha1.ApplicationSpec{
			Name: "Sonarr", Group: "Media", URL: "https://sonarr.example.com", Enabled: ptr.To(true),
		}),
		testutil.NewApplication(t, "media", "radarr", v1alpha1.ApplicationSpec{
			Name: "Radarr", Group: "Media", URL: "https://radarr.example.com", Location: 1,
		}),
		testutil.NewApplication(t, "ops", "grafana", v1alpha1.ApplicationSpec{
			Name: "Grafana", URL: "https://grafana.example.com", Tags: "ops",
		}),
		testutil.NewObject(testutil.IngressGVR, "docs", "wiki", map[string]string{
			annotations.Enable: "true",
			annotations.URL:    "https://wiki.example.com",
		}, nil),
		testutil.NewObject(testutil.IngressGVR, "docs", "internal", nil, nil),
		testutil.NewBookmark(t, "links", "k8s", v1alpha1.BookmarkSpec{
			Name: "Kubernetes", Group: "Reference", URL: "https://kubernetes.io",
		}),
	}
}

// run executes the CLI with args against the fake cluster and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	setFakeClient(t, testutil.NewFakeDynamicClient(t, clusterObjects(t)...))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunList_JSON(t *testing.T) {
	out, err := run(t, "list", "-o", "json")
	require.NoError(t, err)

	var result ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 4, result.Total, "bookmarks and unannotated ingresses are excluded")

	var names []string
	for _, d := range result.Items {
		names = append(names, d.Group+"/"+d.Name)
	}
	assert.Equal(t, []string{"docs/wiki", "media/radarr", "media/sonarr", "ops/grafana"}, names)
}

func TestRunList_Table(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "GROUP")
	assert.Contains(t, out, "https://sonarr.example.com")
	assert.Contains(t, out, "media/sonarr")
	assert.NotContains(t, out, "kubernetes")
}

func TestRunList_NamespaceAndAdapterFlags(t *testing.T) {
	out, err := run(t, "list", "-n", "docs", "--adapters", "ingress", "-o", "json")
	require.NoError(t, err)

	var result ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "wiki", result.Items[0].Name)
	assert.Equal(t, "ingress", result.Items[0].Source)
}

func TestRunList_BlankNamespaceIgnored(t *testing.T) {
	out, err := run(t, "list", "-n", "media,", "-o", "json")
	require.NoError(t, err)

	var result ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.Total)
	for _, d := range result.Items {
		assert.Equal(t, "media", d.Namespace)
	}
}

func TestRunList_OnlyBookmarkAdapterSelected(t *testing.T) {
	out, err := run(t, "list", "--adapters", "bookmark", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items": [], "total": 0}`, out)
}

func TestRunGroups(t *testing.T) {
	out, err := run(t, "groups", "-o", "json")
	require.NoError(t, err)

	var result GroupsResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	var names []string
	for _, g := range result.Groups {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"docs", "media"}, names, "tagged grafana hidden without --tags")

	out, err = run(t, "groups", "--tags", "OPS")
	require.NoError(t, err)
	assert.Contains(t, out, "ops (1)")
	assert.Contains(t, out, "grafana")
}

func TestRunGet(t *testing.T) {
	out, err := run(t, "get", "MEDIA", "Sonarr", "-o", "yaml")
	require.NoError(t, err)

	var d types.Descriptor
	require.NoError(t, yaml.Unmarshal([]byte(out), &d))
	assert.Equal(t, "sonarr", d.Name)
	assert.Equal(t, types.DefaultLocation, d.Location)
	assert.Equal(t, ptr.To(true), d.Enabled)

	out, err = run(t, "get", "media", "sonarr")
	require.NoError(t, err)
	assert.Contains(t, out, "ENABLED:")
	assert.Contains(t, out, "media/sonarr")
}

func TestRunGet_NotFound(t *testing.T) {
	_, err := run(t, "get", "media", "lidarr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "media/lidarr not found")
}

func TestRunGet_WrongArgs(t *testing.T) {
	_, err := run(t, "get", "media")
	assert.Error(t, err)
}

func TestRunBookmarks(t *testing.T) {
	out, err := run(t, "bookmarks", "-o", "json")
	require.NoError(t, err)

	var result ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "kubernetes", result.Items[0].Name)
	assert.Equal(t, "reference", result.Items[0].Group)
}

func TestRunBookmarks_Disabled(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "signpost.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("adapters:\n  bookmark: {enabled: false}\n"), 0600))

	_, err := run(t, "bookmarks", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enabled")
}

func TestRunAdapters(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "signpost.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
adapters:
  hajimari: {enabled: true}
  route: {enabled: true, onlyAnnotated: true}
`), 0600))

	out, err := run(t, "adapters", "--config", cfg, "-o", "json")
	require.NoError(t, err)

	var result AdaptersResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	var names []string
	for _, a := range result.Adapters {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"application", "bookmark", "hajimari", "ingress", "route"}, names)
	assert.Equal(t, "bookmarks", result.Adapters[1].Serves)
	assert.Equal(t, "routes.route.openshift.io", result.Adapters[4].Resource)
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "signpost.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("workers: 0\n"), 0600))

	_, err := run(t, "list", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
