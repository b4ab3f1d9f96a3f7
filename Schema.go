package saferoute

import (
	"github.com/rohanthewiz/serr"
)

// Schema describes the expected shape of a set of named route values,
// either path parameters or search params. Implementations declare their
// field names so a route can verify, at definition time, that a params
// schema covers exactly the parameters its template extracts.
type Schema interface {
	// Fields returns the declared field names.
	Fields() []string

	// Validate checks the supplied values against the schema.
	// Presence of individual fields is the route's concern (the template
	// knows which tokens are optional); Validate rejects unknown keys and
	// runs any per-field checks on the values that are present.
	Validate(values map[string]any) error
}

// Schemas bundles the validators attached to a route.
// Either member may be nil: Params is nil only for fully static templates,
// Search is nil for routes that take no query payload.
type Schemas struct {
	Params Schema
	Search Schema
}

// Field pairs a field name with an optional value check.
type Field struct {
	Name  string
	Check func(value any) error
}

// Fields builds a presence-only schema from field names.
func Fields(names ...string) Schema {
	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = Field{Name: name}
	}
	return &fieldSchema{fields: fields}
}

// FieldsWith builds a schema whose fields carry value checks.
func FieldsWith(fields ...Field) Schema {
	return &fieldSchema{fields: fields}
}

type fieldSchema struct {
	fields []Field
}

func (fs *fieldSchema) Fields() []string {
	names := make([]string, len(fs.fields))
	for i, f := range fs.fields {
		names[i] = f.Name
	}
	return names
}

func (fs *fieldSchema) Validate(values map[string]any) error {
	for key, val := range values {
		field, ok := fs.lookup(key)
		if !ok {
			return serr.New("unknown field", "field", key)
		}
		if field.Check == nil {
			continue
		}
		if err := field.Check(val); err != nil {
			return serr.Wrap(err, "invalid value for field "+key)
		}
	}
	return nil
}

func (fs *fieldSchema) lookup(name string) (Field, bool) {
	for _, f := range fs.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
