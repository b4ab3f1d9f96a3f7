package tmpl

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/rohanthewiz/saferoute/consts"
	"github.com/rohanthewiz/serr"
)

// Template represents a parsed path template for link generation.
// The template is split once, at definition time, into alternating literal
// chunks and placeholder tokens; rendering is then a single pass that
// interleaves them with supplied values.
//
// Structure example for the template /shop/[category]/item/[...rest]:
//
//	literals: ["/shop/", "/item/", ""]
//	tokens:   [{[category] category Param}, {[...rest] rest CatchAll}]
//
// literals always has exactly one more entry than tokens, so
// literal[0] token[0] literal[1] token[1] ... literal[n] reconstructs the
// source when every token renders as its Raw text.
type Template struct {
	source   string
	literals []string
	tokens   []Token
}

// Parse scans a path template and extracts its placeholder tokens.
// A leading slash is added if missing. Three notations are recognized:
//
//	[name]       required single segment
//	[...name]    required catch-all (one or more segments)
//	[[...name]]  optional catch-all
//
// Bracket text that does not form a well-formed token is a definition
// error, not a literal: emitting a link with a half-open bracket is
// always a bug at the definition site.
func Parse(path string) (*Template, error) {
	if !strings.HasPrefix(path, consts.StrSlash) {
		path = consts.StrSlash + path
	}

	t := &Template{source: path}
	last := 0 // start of the current literal chunk

	for i := 0; i < len(path); {
		switch path[i] {
		case consts.RuneRightBracket:
			return nil, serr.New("invalid template: unmatched ']'", "template", path)

		case consts.RuneLeftBracket:
			tok, end, err := scanToken(path, i)
			if err != nil {
				return nil, serr.Wrap(err, "invalid template "+path)
			}

			t.literals = append(t.literals, path[last:i])
			t.tokens = append(t.tokens, tok)
			i = end
			last = end

		default:
			i++
		}
	}

	t.literals = append(t.literals, path[last:])
	return t, nil
}

// scanToken reads one bracket token starting at path[start] (which is '[')
// and returns the token plus the index just past its closing bracket(s).
func scanToken(path string, start int) (Token, int, error) {
	double := start+1 < len(path) && path[start+1] == consts.RuneLeftBracket

	open := start + 1
	closer := "]"
	if double {
		open++
		closer = "]]"
	}

	rel := strings.Index(path[open:], closer)
	if rel < 0 {
		return Token{}, 0, serr.New("unterminated token", "at", path[start:])
	}
	inner := path[open : open+rel]
	end := open + rel + len(closer)

	if strings.ContainsAny(inner, "[]") {
		return Token{}, 0, serr.New("nested brackets in token", "token", path[start:end])
	}

	kind := KindParam
	name := inner

	if strings.HasPrefix(inner, consts.StrEllipsis) {
		name = inner[len(consts.StrEllipsis):]
		kind = KindCatchAll
		if double {
			kind = KindOptionalCatchAll
		}
	} else if double {
		return Token{}, 0, serr.New("double-bracket token must be a catch-all", "token", path[start:end])
	}

	if err := checkParamName(name); err != nil {
		return Token{}, 0, err
	}

	return Token{Raw: path[start:end], Name: name, Kind: kind}, end, nil
}

// checkParamName enforces identifier-style parameter names.
func checkParamName(name string) error {
	if name == "" {
		return serr.New("empty parameter name")
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || (i > 0 && c >= '0' && c <= '9') {
			continue
		}
		return serr.New("invalid parameter name", "name", name)
	}
	return nil
}

// Source returns the normalized template string.
func (t *Template) Source() string {
	return t.source
}

// HasParams reports whether the template contains any placeholder tokens.
func (t *Template) HasParams() bool {
	return len(t.tokens) > 0
}

// Tokens returns a copy of the template's tokens in template order.
func (t *Template) Tokens() []Token {
	out := make([]Token, len(t.tokens))
	copy(out, t.tokens)
	return out
}

// Params returns the distinct parameter names in order of first appearance.
func (t *Template) Params() []string {
	var names []string
	for _, tok := range t.tokens {
		seen := false
		for _, n := range names {
			if n == tok.Name {
				seen = true
				break
			}
		}
		if !seen {
			names = append(names, tok.Name)
		}
	}
	return names
}

// Render substitutes values into the template and returns the path.
//
// Substitution rules:
//   - slice values join their elements with "/" (catch-alls spanning
//     multiple segments)
//   - an absent optional catch-all strips its segment, including the
//     slash that introduced it
//   - an absent required value leaves the token's bracket text unchanged;
//     presence checking belongs to the caller, not this layer
//
// The result always begins with "/". Render never fails.
func (t *Template) Render(values map[string]any) string {
	if len(t.tokens) == 0 {
		return t.source
	}

	b := strings.Builder{}
	b.Grow(len(t.source))

	for i, tok := range t.tokens {
		lit := t.literals[i]

		val, ok := values[tok.Name]
		if !ok || val == nil {
			if tok.Optional() {
				// Drop the segment along with its leading slash.
				b.WriteString(strings.TrimSuffix(lit, consts.StrSlash))
				continue
			}
			b.WriteString(lit)
			b.WriteString(tok.Raw)
			continue
		}

		b.WriteString(lit)
		b.WriteString(stringify(val))
	}

	b.WriteString(t.literals[len(t.literals)-1])

	if b.Len() == 0 {
		return consts.StrSlash
	}
	return b.String()
}

// stringify converts a substitution value to its path form.
func stringify(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, consts.StrSlash)
	case []any:
		parts := make([]string, len(v))
		for i, el := range v {
			parts[i] = stringify(el)
		}
		return strings.Join(parts, consts.StrSlash)
	case fmt.Stringer:
		return v.String()
	}

	// Other slice kinds ([]int etc.) still join with "/".
	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = stringify(rv.Index(i).Interface())
		}
		return strings.Join(parts, consts.StrSlash)
	}

	return fmt.Sprint(val)
}
