package providers

import (
	"fmt"
	"sort"

	"github.com/upb/llm-router/models"
	"github.com/upb/llm-router/services"
)

// Registry maps provider ids to adapters.
// It is built once at startup and read-only afterwards, so lookups need no locking.
type Registry struct {
	adapters map[models.ProviderID]Adapter
}

// NewRegistry creates a registry from adapters.
// A nil adapter, an empty id or a duplicate id is a configuration error.
func NewRegistry(adapters ...Adapter) (*Registry, error) {
	r := &Registry{adapters: make(map[models.ProviderID]Adapter, len(adapters))}

	for _, adapter := range adapters {
		if adapter == nil {
			return nil, services.NewConfigError("adapter cannot be nil", nil)
		}

		id := adapter.ID()
		if id == "" {
			return nil, services.NewConfigError("adapter id cannot be empty", nil)
		}

		if _, exists := r.adapters[id]; exists {
			return nil, services.NewConfigError(fmt.Sprintf("adapter %q already registered", id), nil).
				WithDetail(services.DetailProvider, string(id))
		}

		r.adapters[id] = adapter
	}

	return r, nil
}

// Get retrieves an adapter by id
func (r *Registry) Get(id models.ProviderID) (Adapter, error) {
	adapter, exists := r.adapters[id]
	if !exists {
		return nil, services.NewUnknownProviderError(string(id))
	}
	return adapter, nil
}

// EndpointFor returns the endpoint of the adapter for id, or "" when unregistered
func (r *Registry) EndpointFor(id models.ProviderID) string {
	adapter, exists := r.adapters[id]
	if !exists {
		return ""
	}
	return adapter.Endpoint()
}

// Require checks that every id has a registered adapter
func (r *Registry) Require(ids ...models.ProviderID) error {
	var missing []string
	for _, id := range ids {
		if _, exists := r.adapters[id]; !exists {
			missing = append(missing, string(id))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return services.NewConfigError(fmt.Sprintf("no adapter registered for %v", missing), nil).
			WithDetail("missing", missing)
	}
	return nil
}

// IDs returns all registered provider ids in sorted order
func (r *Registry) IDs() []models.ProviderID {
	ids := make([]models.ProviderID, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AdapterBuilder is a function that creates an adapter from its configuration
type AdapterBuilder func(config Config) (Adapter, error)

// RegistryBuilder helps build a registry with multiple adapters
type RegistryBuilder struct {
	builders map[models.ProviderID]AdapterBuilder
}

// NewRegistryBuilder creates a new registry builder
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		builders: make(map[models.ProviderID]AdapterBuilder),
	}
}

// WithAdapterBuilder registers an adapter builder
func (rb *RegistryBuilder) WithAdapterBuilder(id models.ProviderID, builder AdapterBuilder) *RegistryBuilder {
	rb.builders[id] = builder
	return rb
}

// Build creates adapters for every configured id and returns the registry.
// Configured ids without a builder are a configuration error.
func (rb *RegistryBuilder) Build(configs map[models.ProviderID]Config) (*Registry, error) {
	ids := make([]models.ProviderID, 0, len(configs))
	for id := range configs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	adapters := make([]Adapter, 0, len(ids))
	for _, id := range ids {
		builder, exists := rb.builders[id]
		if !exists {
			return nil, services.NewConfigError(fmt.Sprintf("no builder for provider %q", id), nil).
				WithDetail(services.DetailProvider, string(id))
		}

		adapter, err := builder(configs[id])
		if err != nil {
			return nil, services.NewConfigError(fmt.Sprintf("failed to build provider %s", id), err).
				WithDetail(services.DetailProvider, string(id))
		}
		adapters = append(adapters, adapter)
	}

	return NewRegistry(adapters...)
}
