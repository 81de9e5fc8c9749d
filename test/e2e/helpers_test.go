//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/rand"
	"k8s.io/client-go/kubernetes"

	"github.com/potooio/signpost/api/v1alpha1"
	"github.com/potooio/signpost/internal/types"
)

const (
	// testNamespacePrefix is the prefix for test namespace names.
	testNamespacePrefix = "signpost-e2e-"

	// e2eLabel marks resources created by E2E tests for cleanup.
	e2eLabel = "signpost-e2e"

	// serverNamespace is the namespace where Signpost is deployed.
	serverNamespace = "signpost-system"

	// serverDeploymentName is the name of the Signpost deployment.
	serverDeploymentName = "signpost"

	// defaultPollInterval is the default interval for polling loops.
	defaultPollInterval = 1 * time.Second

	// defaultTimeout covers the server's cache TTL plus a few list rounds.
	defaultTimeout = 30 * time.Second
)

// waitForCondition polls until conditionFn returns true or the timeout expires.
func waitForCondition(t *testing.T, timeout, interval time.Duration, conditionFn func() (bool, error)) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		ok, err := conditionFn()
		if err != nil {
			t.Logf("waitForCondition: %v", err)
		}
		if ok {
			return
		}
		time.Sleep(interval)
	}
	t.Fatalf("waitForCondition: timed out after %v", timeout)
}

// createTestNamespace creates a labeled namespace with a random suffix and
// deletes it when the test ends.
func createTestNamespace(t *testing.T, clientset kubernetes.Interface) string {
	t.Helper()
	name := testNamespacePrefix + rand.String(6)

	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name:   name,
			Labels: map[string]string{e2eLabel: "true"},
		},
	}
	_, err := clientset.CoreV1().Namespaces().Create(context.Background(), ns, metav1.CreateOptions{})
	require.NoError(t, err, "failed to create test namespace %s", name)
	t.Logf("Created test namespace: %s", name)

	t.Cleanup(func() {
		err := clientset.CoreV1().Namespaces().Delete(context.Background(), name, metav1.DeleteOptions{})
		if err != nil {
			t.Logf("Warning: failed to delete namespace %s: %v", name, err)
		}
	})
	return name
}

// createIngress creates an Ingress with a single host rule and the given
// annotations.
func createIngress(t *testing.T, namespace, name, host string, annotations map[string]string) {
	t.Helper()
	pathType := networkingv1.PathTypePrefix
	ing := &networkingv1.Ingress{
		ObjectMeta: metav1.ObjectMeta{
			Name:        name,
			Namespace:   namespace,
			Annotations: annotations,
			Labels:      map[string]string{e2eLabel: "true"},
		},
		Spec: networkingv1.IngressSpec{
			Rules: []networkingv1.IngressRule{{
				Host: host,
				IngressRuleValue: networkingv1.IngressRuleValue{
					HTTP: &networkingv1.HTTPIngressRuleValue{
						Paths: []networkingv1.HTTPIngressPath{{
							Path:     "/",
							PathType: &pathType,
							Backend: networkingv1.IngressBackend{
								Service: &networkingv1.IngressServiceBackend{
									Name: name,
									Port: networkingv1.ServiceBackendPort{Number: 80},
								},
							},
						}},
					},
				},
			}},
		},
	}
	_, err := sharedClientset.NetworkingV1().Ingresses(namespace).Create(context.Background(), ing, metav1.CreateOptions{})
	require.NoError(t, err, "failed to create ingress %s/%s", namespace, name)
}

// createApplication creates a native Application.
func createApplication(t *testing.T, namespace, name string, spec v1alpha1.ApplicationSpec) {
	t.Helper()
	app := &v1alpha1.Application{
		TypeMeta:   metav1.TypeMeta{APIVersion: v1alpha1.GroupVersion.String(), Kind: v1alpha1.ApplicationKind},
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name},
		Spec:       spec,
	}
	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(app)
	require.NoError(t, err)

	_, err = sharedDynamicClient.Resource(v1alpha1.ApplicationGVR()).Namespace(namespace).Create(
		context.Background(), &unstructured.Unstructured{Object: content}, metav1.CreateOptions{},
	)
	require.NoError(t, err, "failed to create application %s/%s", namespace, name)
}

// apiGet issues a GET against the Signpost API and returns the status code
// and body.
func apiGet(t *testing.T, path string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(apiBaseURL + path)
	require.NoError(t, err, "GET %s", path)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

// waitForApplication polls the API until group/name is listed and returns it.
func waitForApplication(t *testing.T, group, name string) types.Descriptor {
	t.Helper()
	var d types.Descriptor
	waitForCondition(t, defaultTimeout, defaultPollInterval, func() (bool, error) {
		status, body := apiGet(t, fmt.Sprintf("/api/v1/applications/%s/%s", group, name))
		if status != http.StatusOK {
			return false, nil
		}
		return true, json.Unmarshal(body, &d)
	})
	return d
}

// assertNeverListed checks that group/name stays absent for the whole of
// the cache window.
func assertNeverListed(t *testing.T, group, name string) {
	t.Helper()
	deadline := time.Now().Add(defaultTimeout / 2)
	for time.Now().Before(deadline) {
		status, _ := apiGet(t, fmt.Sprintf("/api/v1/applications/%s/%s", group, name))
		require.Equal(t, http.StatusNotFound, status, "%s/%s must not be listed", group, name)
		time.Sleep(defaultPollInterval)
	}
}

// listGroups fetches the grouped application list.
func listGroups(t *testing.T, query string) []types.Group {
	t.Helper()
	status, body := apiGet(t, "/api/v1/applications"+query)
	require.Equal(t, http.StatusOK, status)
	var groups []types.Group
	require.NoError(t, json.Unmarshal(body, &groups))
	return groups
}
