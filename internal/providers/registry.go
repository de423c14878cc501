package providers

import "fmt"

// Registry is the single dispatch point from a provider name to its
// adapter.
type Registry struct {
	adapters map[Name]Adapter
}

func NewRegistry(vercel *VercelAdapter, netlify *NetlifyAdapter, railway *RailwayAdapter) *Registry {
	return &Registry{
		adapters: map[Name]Adapter{
			NameVercel:  vercel,
			NameNetlify: netlify,
			NameRailway: railway,
		},
	}
}

// Get returns the adapter for the named provider.
func (r *Registry) Get(name Name) (Adapter, error) {
	adapter, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return adapter, nil
}

// Supported reports whether the named provider has an adapter.
func (r *Registry) Supported(name Name) bool {
	_, ok := r.adapters[name]
	return ok
}
