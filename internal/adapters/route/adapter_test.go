package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/potooio/signpost/internal/annotations"
	"github.com/potooio/signpost/internal/testutil"
	"github.com/potooio/signpost/internal/types"
)

func TestName(t *testing.T) {
	assert.Equal(t, "route", New(Options{}).Name())
}

func TestSelector(t *testing.T) {
	sel := New(Options{}).Selector()
	assert.Equal(t, "route.openshift.io/v1/routes", sel.String())
	assert.Equal(t, "Route", sel.Kind)
}

func TestExtract_DerivedURL(t *testing.T) {
	tests := []struct {
		fixture string
		wantURL string
	}{
		{"testdata/tls.yaml", "https://console.apps.example.com/Dashboards"},
		{"testdata/plain.yaml", "http://docs.apps.example.com"},
		{"testdata/no_host.yaml", "http://localhost"},
	}
	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			obj := testutil.LoadFixture(t, tt.fixture)
			d, err := New(Options{OnlyAnnotated: true}).Extract(obj)
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, d.URL)
		})
	}
}

func TestExtract_URLKeyBeatsDerivation(t *testing.T) {
	obj := testutil.LoadFixture(t, "testdata/tls.yaml")
	ann := obj.GetAnnotations()
	ann[annotations.URL] = "https://Custom.example.com/x"
	obj.SetAnnotations(ann)

	d, err := New(Options{}).Extract(obj)
	require.NoError(t, err)
	assert.Equal(t, "https://custom.example.com/x", d.URL)
}

func TestExtract_MetadataFields(t *testing.T) {
	obj := testutil.LoadFixture(t, "testdata/tls.yaml")

	d, err := New(Options{}).Extract(obj)
	require.NoError(t, err)
	assert.Equal(t, "console", d.Name)
	assert.Equal(t, "platform", d.Group)
	assert.Equal(t, "route", d.Source)
}

func TestInclude(t *testing.T) {
	a := New(Options{OnlyAnnotated: true})

	enabled := testutil.LoadFixture(t, "testdata/plain.yaml")
	d, err := a.Extract(enabled)
	require.NoError(t, err)
	assert.True(t, a.Include(enabled, d, types.IncludeOptions{}), "enable flag from labels counts")

	plain := testutil.NewObject(testutil.RouteGVR, "dev", "hidden", nil, map[string]interface{}{"host": "hidden.example.com"})
	d, err = a.Extract(plain)
	require.NoError(t, err)
	assert.False(t, a.Include(plain, d, types.IncludeOptions{}))

	open := New(Options{OnlyAnnotated: false})
	d, err = open.Extract(plain)
	require.NoError(t, err)
	assert.True(t, open.Include(plain, d, types.IncludeOptions{}))
}
