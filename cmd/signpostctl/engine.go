package main

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/potooio/signpost/internal/adapters"
	"github.com/potooio/signpost/internal/config"
	"github.com/potooio/signpost/internal/discovery"
	"github.com/potooio/signpost/internal/util"
)

// getClientFunc is the function used to create a Kubernetes dynamic client.
// It can be overridden in tests to inject a fake client.
var getClientFunc = defaultGetClient

// getClient creates a Kubernetes dynamic client.
func getClient() (dynamic.Interface, error) {
	return getClientFunc()
}

func defaultGetClient() (dynamic.Interface, error) {
	// Use in-cluster config or kubeconfig
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		rules,
		&clientcmd.ConfigOverrides{},
	).ClientConfig()
	if err != nil {
		return nil, err
	}

	return dynamic.NewForConfig(restConfig)
}

// session bundles what a subcommand needs to run a query.
type session struct {
	cfg    *config.Config
	engine *discovery.Engine
	query  discovery.Query
}

// loadRegistry builds the adapter registry from the configuration.
func loadRegistry(flags *globalFlags) (*config.Config, *adapters.Registry, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	registry, err := adapters.NewBuiltinRegistry(cfg.Adapters)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build adapters: %w", err)
	}
	return cfg, registry, nil
}

// newSession loads the configuration, connects to the cluster and builds the
// query the flags describe.
func newSession(flags *globalFlags) (*session, error) {
	cfg, registry, err := loadRegistry(flags)
	if err != nil {
		return nil, err
	}

	client, err := getClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	logger := zap.NewNop()
	if flags.verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}

	engine := discovery.NewEngine(logger, client, registry, discovery.Options{
		Workers:       cfg.Workers,
		QueryTimeout:  cfg.QueryTimeout.Duration,
		LabelSelector: cfg.LabelSelector,
	})

	namespaces := cfg.NamespaceSelector.Namespaces()
	if len(flags.namespaces) > 0 {
		namespaces = util.UniqueStrings(flags.namespaces)
		if len(namespaces) == 0 {
			return nil, errors.New("--namespace: no namespace names given")
		}
	}
	instance := cfg.Instance
	if flags.instance != "" {
		instance = flags.instance
	}

	return &session{
		cfg:    cfg,
		engine: engine,
		query: discovery.Query{
			Adapters: flags.adapters,
			Scope:    discovery.Scope{Namespaces: namespaces},
			Instance: instance,
		},
	}, nil
}

// applicationQuery narrows the query to non-bookmark adapters. The second
// result is false when no such adapter is selected.
func (s *session) applicationQuery() (discovery.Query, bool) {
	q := s.query
	sources := s.engine.Registry().ApplicationSources()
	if len(q.Adapters) == 0 {
		q.Adapters = sources
		return q, len(sources) > 0
	}
	var selected []string
	for _, name := range q.Adapters {
		if name != adapters.BookmarkAdapter {
			selected = append(selected, name)
		}
	}
	q.Adapters = selected
	return q, len(selected) > 0
}
