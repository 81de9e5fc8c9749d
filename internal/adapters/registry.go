package adapters

import (
	"fmt"
	"slices"
	"sync"

	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/potooio/signpost/internal/types"
)

// Registry maintains the set of active adapters, keyed by name and by the
// GVR each one reads. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]types.Adapter                      // name → adapter
	gvrMap   map[schema.GroupVersionResource]types.Adapter // GVR → adapter
	order    []string                                      // registration order
}

// NewRegistry creates an empty adapter registry.
// Call Register() to add adapters, then hand it to the discovery engine.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]types.Adapter),
		gvrMap:   make(map[schema.GroupVersionResource]types.Adapter),
	}
}

// Register adds an adapter to the registry.
// Returns an error if the name or the adapter's GVR is already registered.
func (r *Registry) Register(adapter types.Adapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := adapter.Name()
	if _, exists := r.adapters[name]; exists {
		return fmt.Errorf("adapter %q already registered", name)
	}

	gvr := adapter.Selector().GVR
	if existing, exists := r.gvrMap[gvr]; exists {
		return fmt.Errorf("GVR %s already registered to adapter %q, cannot register to %q",
			gvr.String(), existing.Name(), name)
	}

	r.gvrMap[gvr] = adapter
	r.adapters[name] = adapter
	r.order = append(r.order, name)
	return nil
}

// ForName returns the adapter with the given name, or nil if none.
func (r *Registry) ForName(name string) types.Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.adapters[name]
}

// All returns all registered adapters in registration order.
func (r *Registry) All() []types.Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]types.Adapter, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.adapters[name])
	}
	return result
}

// Names returns the names of all registered adapters in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Select returns the adapters with the given names, in the order given.
// A nil or empty names slice selects every registered adapter. Names with no
// registered adapter are returned separately; duplicates are dropped.
func (r *Registry) Select(names []string) (selected []types.Adapter, unknown []string) {
	if len(names) == 0 {
		return r.All(), nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if a, ok := r.adapters[name]; ok {
			selected = append(selected, a)
		} else {
			unknown = append(unknown, name)
		}
	}
	return selected, unknown
}
