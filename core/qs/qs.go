package qs

import (
	"fmt"
	"maps"
	"net/url"
	"reflect"
	"slices"
	"strings"
)

// Pair is one key/value entry of an encoded query string, held unescaped.
type Pair struct {
	Key   string
	Value string
}

// Values is the ordered result of encoding a search payload.
// Order is canonical (keys sorted at every nesting level), so encoding the
// same payload always yields the same string.
type Values struct {
	pairs []Pair
}

// Len returns the number of encoded entries.
// A search payload serializes to an empty query string iff Len is zero.
func (v Values) Len() int {
	return len(v.pairs)
}

// Pairs returns a copy of the entries in encoding order.
func (v Values) Pairs() []Pair {
	out := make([]Pair, len(v.pairs))
	copy(out, v.pairs)
	return out
}

// String renders the entries as a percent-escaped query string,
// without a leading "?".
func (v Values) String() string {
	b := strings.Builder{}
	for i, p := range v.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Encoder converts a search payload into canonical Values.
//
// Conversion rules:
//   - keys are visited in sorted order
//   - slice values repeat the key: tag=a&tag=b
//   - nested maps flatten with bracket keys: filter[color]=red
//   - nil values are dropped
//   - everything else uses its default string form
//
// The zero value is ready to use.
type Encoder struct{}

// Encode flattens the payload into ordered Values.
func (Encoder) Encode(values map[string]any) Values {
	v := Values{}
	for _, k := range slices.Sorted(maps.Keys(values)) {
		v.add(k, values[k])
	}
	return v
}

func (v *Values) add(key string, val any) {
	switch x := val.(type) {
	case nil:

	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(x)) {
			v.add(key+"["+k+"]", x[k])
		}

	case []string:
		for _, el := range x {
			v.pairs = append(v.pairs, Pair{Key: key, Value: el})
		}

	case []any:
		for _, el := range x {
			v.add(key, el)
		}

	case string:
		v.pairs = append(v.pairs, Pair{Key: key, Value: x})

	default:
		rv := reflect.ValueOf(val)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := 0; i < rv.Len(); i++ {
				v.add(key, rv.Index(i).Interface())
			}
			return
		}
		v.pairs = append(v.pairs, Pair{Key: key, Value: fmt.Sprint(x)})
	}
}
