package tmpl

// TokenKind classifies a placeholder token by its bracket notation.
// The kind determines both how many path segments the token may consume
// and what happens when no value is supplied for it at render time.
type TokenKind int

const (
	// KindParam is a required single segment: [name]
	KindParam TokenKind = iota

	// KindCatchAll is a required catch-all consuming one or more segments: [...name]
	KindCatchAll

	// KindOptionalCatchAll is an optional catch-all: [[...name]]
	// When no value is supplied, the whole segment is stripped from the output.
	KindOptionalCatchAll
)

// Token represents one placeholder extracted from a path template.
//
// Example:
//
//	Template: /docs/[...slug]
//	Token:    {Raw: "[...slug]", Name: "slug", Kind: KindCatchAll}
//
// Raw keeps the original bracket text so a missing required value can be
// echoed back verbatim into the rendered path.
type Token struct {
	Raw  string
	Name string
	Kind TokenKind
}

// Optional reports whether the token may be omitted at render time.
func (tok Token) Optional() bool {
	return tok.Kind == KindOptionalCatchAll
}
