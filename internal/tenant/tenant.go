// Package tenant resolves the active shop from a URL path.
//
// The first path segment names the tenant, except for a small reserved
// set of literals that denote non-tenant routes. Reserved or empty
// segments mean no tenant is active.
package tenant

// Reserved literals that can never be tenant ids. They are route names
// in the screen table: single-card deep links, the cart, the welcome
// screen and the not-found page.
var reserved = map[string]bool{
	"card":    true,
	"cart":    true,
	"welcome": true,
	"oups":    true,
}

// Reserved reports whether the segment is a reserved route literal.
func Reserved(segment string) bool {
	return reserved[segment]
}

// FromPath extracts the tenant id from a URL path. Returns "" when the
// first non-empty segment is reserved or the path has no segments.
// Extraction only looks at segment one, so trailing depth is irrelevant:
// /{id}/card/123 and /{id} resolve identically.
func FromPath(path string) string {
	seg := FirstSegment(path)
	if seg == "" || reserved[seg] {
		return ""
	}
	return seg
}

// FirstSegment returns the first non-empty slash-separated segment.
func FirstSegment(path string) string {
	start := 0
	for start < len(path) && path[start] == '/' {
		start++
	}
	end := start
	for end < len(path) && path[end] != '/' {
		end++
	}
	return path[start:end]
}
