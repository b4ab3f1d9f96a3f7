package saferoute

import (
	"path"

	"github.com/rohanthewiz/serr"
)

// Registry is a named collection of routes, so link construction can be
// centralized and looked up by name from anywhere in an application.
// Define routes at startup; lookups and URL building are read-only after
// that and safe for concurrent use.
type Registry struct {
	routes map[string]*Route
	names  []string // registration order, for List
}

// RouteInfo describes a registered route for inspection purposes:
// route table dumps, documentation generation, tests.
type RouteInfo struct {
	Name     string
	Template string
	Params   []string
}

// NewRegistry creates an empty route registry.
func NewRegistry() *Registry {
	return &Registry{
		routes: make(map[string]*Route, 16),
	}
}

// Add registers an already-constructed route under a name.
// Registering the same name twice is a definition error.
func (reg *Registry) Add(name string, r *Route) error {
	if _, exists := reg.routes[name]; exists {
		return serr.New("route name already registered", "name", name)
	}
	reg.routes[name] = r
	reg.names = append(reg.names, name)
	return nil
}

// Define constructs a route from the template and registers it.
func (reg *Registry) Define(name string, template string, opts ...RouteOptions) (*Route, error) {
	r, err := NewRoute(template, opts...)
	if err != nil {
		return nil, serr.Wrap(err, "could not define route "+name)
	}
	if err = reg.Add(name, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Route returns the named route, or nil if it was never registered.
func (reg *Registry) Route(name string) *Route {
	return reg.routes[name]
}

// URL builds the named route's path for the given arguments.
func (reg *Registry) URL(name string, args ...Args) (string, error) {
	r := reg.routes[name]
	if r == nil {
		return "", serr.New("unknown route", "name", name)
	}
	return r.URL(args...)
}

// List returns the registered routes in registration order.
func (reg *Registry) List() []RouteInfo {
	out := make([]RouteInfo, 0, len(reg.names))
	for _, name := range reg.names {
		r := reg.routes[name]
		out = append(out, RouteInfo{
			Name:     name,
			Template: r.Template(),
			Params:   r.Params(),
		})
	}
	return out
}

// Group returns a definition scope that prefixes every template with the
// given path prefix. Groups can be nested to build hierarchical URL
// structures, e.g. reg.Group("/api").Group("/v1").
func (reg *Registry) Group(prefix string) *Group {
	return &Group{prefix: prefix, registry: reg}
}

// Group is a route-definition scope with a common template prefix.
// Routes defined through a group are registered on the parent registry
// under their own names; only the template is prefixed.
type Group struct {
	// prefix is the template path prefix for all routes defined in this group
	prefix string
	// registry is the parent registry routes are registered on
	registry *Registry
}

// Group creates a sub-group with an additional prefix.
func (g *Group) Group(prefix string) *Group {
	return &Group{
		// Combine parent and child prefixes for proper URL construction
		prefix:   path.Join(g.prefix, prefix),
		registry: g.registry,
	}
}

// Define constructs a route from the prefixed template and registers it.
func (g *Group) Define(name string, template string, opts ...RouteOptions) (*Route, error) {
	return g.registry.Define(name, path.Join(g.prefix, template), opts...)
}
