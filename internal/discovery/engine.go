package discovery

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"

	"github.com/potooio/signpost/internal/adapters"
	"github.com/potooio/signpost/internal/grouping"
	"github.com/potooio/signpost/internal/metrics"
	"github.com/potooio/signpost/internal/types"
	"github.com/potooio/signpost/internal/util"
)

// Defaults applied by NewEngine to zero Options fields.
const (
	DefaultWorkers      = 4
	DefaultQueryTimeout = 10 * time.Second
)

// Options tunes how the Engine queries the cluster.
type Options struct {
	// Workers bounds how many adapters list concurrently.
	Workers int

	// QueryTimeout bounds one adapter's list calls.
	QueryTimeout time.Duration

	// LabelSelector is passed to every list call. Empty selects everything.
	LabelSelector string
}

// Scope restricts which namespaces are read.
type Scope struct {
	// Namespaces is an explicit allow-list. Empty means all namespaces.
	Namespaces []string
}

// Query selects what one aggregation reads.
type Query struct {
	// Adapters names the active adapters, in merge order. Empty means every
	// registered adapter in registration order.
	Adapters []string

	Scope Scope

	// Instance restricts results to objects tagged for this instance.
	Instance string
}

// Engine aggregates Descriptors from every active adapter.
//
// Each call lists fresh from the cluster; the Engine keeps no state between
// calls besides its configuration and is safe for concurrent use.
type Engine struct {
	logger   *zap.Logger
	client   dynamic.Interface
	registry *adapters.Registry
	opts     Options
}

// NewEngine creates a new discovery engine.
func NewEngine(logger *zap.Logger, client dynamic.Interface, registry *adapters.Registry, opts Options) *Engine {
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = DefaultQueryTimeout
	}
	return &Engine{
		logger:   logger.Named("discovery"),
		client:   client,
		registry: registry,
		opts:     opts,
	}
}

// Registry returns the adapter registry the Engine reads from.
func (e *Engine) Registry() *adapters.Registry {
	return e.registry
}

// Aggregate lists every active adapter and returns the merged, sorted
// Descriptors. A failing adapter contributes nothing; the failure is logged
// and counted but never returned. The result is never nil.
func (e *Engine) Aggregate(ctx context.Context, q Query) []types.Descriptor {
	start := time.Now()
	defer func() { metrics.ObserveAggregation(time.Since(start)) }()

	active, unknown := e.registry.Select(q.Adapters)
	for _, name := range unknown {
		e.logger.Warn("Ignoring unknown adapter", zap.String("adapter", name))
	}
	if len(active) == 0 {
		e.logger.Debug("No active adapters")
		return []types.Descriptor{}
	}

	// One slot per adapter so that the merge order does not depend on
	// completion order.
	results := make([][]types.Descriptor, len(active))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, a := range active {
		g.Go(func() error {
			results[i] = e.collect(gctx, a, q)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	merged := make([]types.Descriptor, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}
	types.SortDescriptors(merged)

	e.logger.Debug("Aggregation complete",
		zap.Int("adapters", len(active)),
		zap.Int("descriptors", len(merged)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return merged
}

// AggregateGroups aggregates, applies the tag filter and groups the result.
func (e *Engine) AggregateGroups(ctx context.Context, q Query, tags []string) []types.Group {
	return grouping.Build(e.Aggregate(ctx, q), tags)
}

// FindByGroupAndName aggregates and returns the first Descriptor whose group
// and name match, case-insensitively.
func (e *Engine) FindByGroupAndName(ctx context.Context, q Query, group, name string) (types.Descriptor, bool) {
	return Find(e.Aggregate(ctx, q), group, name)
}

// Find returns the first Descriptor in ds whose group and name match,
// case-insensitively.
func Find(ds []types.Descriptor, group, name string) (types.Descriptor, bool) {
	for _, d := range ds {
		if strings.EqualFold(d.Group, group) && strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return types.Descriptor{}, false
}

// collect runs one adapter: list, extract, include.
func (e *Engine) collect(ctx context.Context, a types.Adapter, q Query) (out []types.Descriptor) {
	name := a.Name()
	sel := a.Selector()
	logger := e.logger.With(zap.String("adapter", name), zap.String("gvr", sel.String()))

	// Recover from panics: the fake dynamic client in tests panics when a
	// resource has no registered list kind instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Source unavailable", zap.Any("recovered", r))
			metrics.RecordAdapterError(name, metrics.ReasonPanic)
			out = nil
		}
	}()

	start := time.Now()
	objs, err := e.list(ctx, sel.GVR, q.Scope)
	if err != nil {
		reason := classify(err)
		logger.Warn("Failed to list source objects", zap.String("reason", reason), zap.Error(err))
		metrics.RecordAdapterError(name, reason)
		return nil
	}

	opts := types.IncludeOptions{Instance: q.Instance}
	for i := range objs {
		obj := &objs[i]
		d, err := a.Extract(obj)
		if err != nil {
			logger.Debug("Skipping malformed object",
				zap.String("namespace", obj.GetNamespace()),
				zap.String("name", obj.GetName()),
				zap.Error(err),
			)
			metrics.RecordAdapterError(name, metrics.ReasonMalformed)
			continue
		}
		if !a.Include(obj, d, opts) {
			continue
		}
		out = append(out, d)
	}

	metrics.RecordList(name, len(objs), len(out), time.Since(start))
	return out
}

// list returns every object of gvr within the scope, ordered by namespace
// and name. All list calls for one adapter share a single QueryTimeout.
func (e *Engine) list(ctx context.Context, gvr schema.GroupVersionResource, scope Scope) ([]unstructured.Unstructured, error) {
	ctx, cancel := context.WithTimeout(ctx, e.opts.QueryTimeout)
	defer cancel()

	listOpts := metav1.ListOptions{LabelSelector: e.opts.LabelSelector}
	namespaces := util.UniqueStrings(scope.Namespaces)
	if len(scope.Namespaces) > 0 && len(namespaces) == 0 {
		// An allow-list of blank names selects nothing. Listing namespace ""
		// would read every namespace.
		return nil, nil
	}

	var items []unstructured.Unstructured
	if len(namespaces) == 0 {
		list, err := e.client.Resource(gvr).List(ctx, listOpts)
		if err != nil {
			return nil, err
		}
		items = list.Items
	} else {
		for _, ns := range namespaces {
			list, err := e.client.Resource(gvr).Namespace(ns).List(ctx, listOpts)
			if err != nil {
				return nil, err
			}
			items = append(items, list.Items...)
		}
	}

	// Full ties in the final sort keep merge order, so merge order must not
	// depend on how the server happened to return the list.
	slices.SortFunc(items, func(a, b unstructured.Unstructured) int {
		return cmp.Or(
			strings.Compare(a.GetNamespace(), b.GetNamespace()),
			strings.Compare(a.GetName(), b.GetName()),
		)
	})
	return items, nil
}

// classify maps a list error to a metrics reason.
func classify(err error) string {
	switch {
	case apierrors.IsForbidden(err):
		return metrics.ReasonForbidden
	case apierrors.IsNotFound(err):
		return metrics.ReasonNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return metrics.ReasonTimeout
	default:
		return metrics.ReasonList
	}
}
