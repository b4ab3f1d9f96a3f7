//go:build property

package saferoute_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rohanthewiz/saferoute"
)

// TestRouteProperties validates the invariants of URL construction over
// generated inputs.
func TestRouteProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	itemRoute := saferoute.Must(saferoute.NewRoute("/shop/[id]", saferoute.RouteOptions{
		Params: saferoute.Fields("id"),
		Search: saferoute.Fields("q", "page"),
	}))

	docsRoute := saferoute.Must(saferoute.NewRoute("/docs/[...slug]",
		saferoute.RouteOptions{Params: saferoute.Fields("slug")}))

	// Property: repeated invocation with the same arguments yields the
	// same string.
	properties.Property("URL construction is deterministic", prop.ForAll(
		func(id string, q string, page int) bool {
			args := saferoute.Args{
				Params: map[string]any{"id": id},
				Search: map[string]any{"q": q, "page": page},
			}

			first, err := itemRoute.URL(args)
			if err != nil {
				return false
			}
			for i := 0; i < 5; i++ {
				again, err := itemRoute.URL(args)
				if err != nil || again != first {
					return false
				}
			}
			return true
		},
		gen.Identifier(),
		gen.Identifier(),
		gen.IntRange(0, 9999),
	))

	// Property: output always begins with "/" and holds at most one "?",
	// present exactly when a search payload was supplied.
	properties.Property("output shape: leading slash, single '?'", prop.ForAll(
		func(id string, withSearch bool, q string) bool {
			args := saferoute.Args{Params: map[string]any{"id": id}}
			if withSearch {
				args.Search = map[string]any{"q": q}
			}

			u, err := itemRoute.URL(args)
			if err != nil {
				return false
			}
			if !strings.HasPrefix(u, "/") {
				return false
			}

			marks := strings.Count(u, "?")
			if withSearch {
				return marks == 1
			}
			return marks == 0
		},
		gen.Identifier(),
		gen.Bool(),
		gen.Identifier(),
	))

	// Property: a catch-all joins its elements with "/" in order.
	properties.Property("catch-all joins segments in order", prop.ForAll(
		func(parts []string) bool {
			if len(parts) == 0 {
				return true
			}

			u, err := docsRoute.URL(saferoute.Args{
				Params: map[string]any{"slug": parts},
			})
			if err != nil {
				return false
			}
			return u == "/docs/"+strings.Join(parts, "/")
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}
