// Package saferoute builds internal links from path templates with named
// placeholder segments, enforcing at route definition time that every
// placeholder is covered by a schema and at invocation time that every
// required parameter is supplied.
//
// Templates use bracket notation: /shop/[id], /docs/[...slug],
// /files/[[...path]]. Routes are defined once (typically at package level
// with Must) and invoked any number of times; invocation is a pure string
// transformation with no shared mutable state, so a Route may be used from
// any number of goroutines.
package saferoute

import (
	"strings"

	"github.com/rohanthewiz/saferoute/consts"
	"github.com/rohanthewiz/saferoute/core/qs"
	"github.com/rohanthewiz/saferoute/core/tmpl"
	"github.com/rohanthewiz/serr"
)

// QueryValues is the encoded form of a search payload. The route only
// needs to detect "no entries" and obtain the string form.
type QueryValues interface {
	Len() int
	String() string
}

// QueryEncoder converts a search payload into an encoded query form.
// The default encoder lives in core/qs; any encoder honoring
// "Len()==0 iff the payload serializes to an empty string" may be
// substituted via RouteOptions.
type QueryEncoder interface {
	Encode(values map[string]any) QueryValues
}

// defaultEncoder adapts qs.Encoder's concrete return type to QueryValues.
type defaultEncoder struct {
	enc qs.Encoder
}

func (d defaultEncoder) Encode(values map[string]any) QueryValues {
	return d.enc.Encode(values)
}

// RouteOptions configures route construction.
type RouteOptions struct {
	// Params validates path parameters. Required whenever the template has
	// placeholder tokens; its field set must equal the template's
	// parameter set exactly.
	Params Schema

	// Search validates the search payload. A route without a Search schema
	// rejects any search payload at invocation.
	Search Schema

	// SearchRequired makes omitting the search payload an invocation error.
	SearchRequired bool

	// Encoder overrides the default query encoder.
	Encoder QueryEncoder
}

// Args carries one invocation's values: path parameters keyed by the
// template's parameter names, and the search payload for the query string.
type Args struct {
	Params map[string]any
	Search map[string]any
}

// Route is a compiled link builder for one path template.
// All state is fixed at construction; invocations are independent.
type Route struct {
	tmpl           *tmpl.Template
	schemas        Schemas
	searchRequired bool
	encoder        QueryEncoder
	required       []string
}

// NewRoute parses the template and constructs a Route.
//
// A leading slash is added to the template if missing. Construction fails
// when the template does not parse, when it has placeholder tokens but no
// params schema was given, or when the params schema's field set differs
// from the template's parameter set. A route with unvalidated dynamic
// segments is a programming error surfaced here, at definition time, not
// on some later request path.
func NewRoute(path string, opts ...RouteOptions) (*Route, error) {
	opt := RouteOptions{}
	if len(opts) == 1 {
		opt = opts[0]
	}

	t, err := tmpl.Parse(path)
	if err != nil {
		return nil, err
	}

	if t.HasParams() && opt.Params == nil {
		return nil, serr.New("route has dynamic segments but no params schema",
			"template", t.Source())
	}

	if opt.Params != nil {
		if err = checkFieldSet(t, opt.Params); err != nil {
			return nil, err
		}
	}

	var required []string
	for _, name := range t.Params() {
		if isRequired(t, name) {
			required = append(required, name)
		}
	}

	enc := opt.Encoder
	if enc == nil {
		enc = defaultEncoder{}
	}

	return &Route{
		tmpl:           t,
		schemas:        Schemas{Params: opt.Params, Search: opt.Search},
		searchRequired: opt.SearchRequired,
		encoder:        enc,
		required:       required,
	}, nil
}

// Must returns the route or panics on a definition error.
// Intended for package-level route variables, so a bad definition fails
// at program start:
//
//	var ShopItem = saferoute.Must(saferoute.NewRoute("/shop/[id]",
//		saferoute.RouteOptions{Params: saferoute.Fields("id")}))
func Must(r *Route, err error) *Route {
	if err != nil {
		panic(err)
	}
	return r
}

// checkFieldSet verifies the schema declares exactly the template's
// parameter set. The source ecosystem proves this at compile time from the
// template literal; here it is an eager definition-time assertion.
func checkFieldSet(t *tmpl.Template, schema Schema) error {
	params := t.Params()
	fields := schema.Fields()

	var missing, extra []string
	for _, p := range params {
		if !contains(fields, p) {
			missing = append(missing, p)
		}
	}
	for _, f := range fields {
		if !contains(params, f) {
			extra = append(extra, f)
		}
	}

	if len(missing) > 0 {
		return serr.New("params schema is missing template parameters",
			"template", t.Source(), "missing", strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		return serr.New("params schema declares fields not in the template",
			"template", t.Source(), "extra", strings.Join(extra, ", "))
	}
	return nil
}

// isRequired reports whether any token for the name must receive a value.
func isRequired(t *tmpl.Template, name string) bool {
	for _, tok := range t.Tokens() {
		if tok.Name == name && !tok.Optional() {
			return true
		}
	}
	return false
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// URL builds the path for one invocation.
//
// Every required parameter must be present, supplied values must satisfy
// the params schema, and a search payload is accepted only when the route
// declares a search schema. The encoded query string is appended after "?"
// only when it is non-empty, so the result contains at most one "?" and
// always begins with "/".
func (r *Route) URL(args ...Args) (string, error) {
	a := Args{}
	if len(args) == 1 {
		a = args[0]
	}

	for _, name := range r.required {
		if v, ok := a.Params[name]; !ok || v == nil {
			return "", serr.New("missing required route parameter",
				"param", name, "template", r.tmpl.Source())
		}
	}

	if r.schemas.Params != nil {
		if err := r.schemas.Params.Validate(a.Params); err != nil {
			return "", serr.Wrap(err, "invalid params for route "+r.tmpl.Source())
		}
	} else if len(a.Params) > 0 {
		return "", serr.New("route takes no parameters", "template", r.tmpl.Source())
	}

	if r.searchRequired && len(a.Search) == 0 {
		return "", serr.New("missing required search params", "template", r.tmpl.Source())
	}
	if len(a.Search) > 0 {
		if r.schemas.Search == nil {
			return "", serr.New("route takes no search params", "template", r.tmpl.Source())
		}
		if err := r.schemas.Search.Validate(a.Search); err != nil {
			return "", serr.Wrap(err, "invalid search params for route "+r.tmpl.Source())
		}
	}

	path := r.tmpl.Render(a.Params)

	encoded := r.encoder.Encode(a.Search)
	if encoded.Len() > 0 {
		return path + consts.StrQuestion + encoded.String(), nil
	}
	return path, nil
}

// MustURL builds the path or panics. Convenient inside view code where a
// failure means the call site itself is wrong.
func (r *Route) MustURL(args ...Args) string {
	s, err := r.URL(args...)
	if err != nil {
		panic(err)
	}
	return s
}

// Schemas returns the schema bundle the route was constructed with,
// unchanged across invocations.
func (r *Route) Schemas() Schemas {
	return r.schemas
}

// Template returns the normalized template string.
func (r *Route) Template() string {
	return r.tmpl.Source()
}

// Params returns the distinct parameter names extracted from the template,
// in order of first appearance.
func (r *Route) Params() []string {
	return r.tmpl.Params()
}
