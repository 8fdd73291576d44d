// Package query models the platform's search requests.
//
// Two backends exist: the latest-listing endpoint and the thread search
// form. LatestSearchQuery and ThreadSearchQuery are the concrete shapes each
// backend accepts; HandiworkSearchQuery is the unified request callers build,
// which a Resolver turns into exactly one concrete shape.
package query

import (
	"sort"
	"strings"

	"github.com/pranesh-j/handiwork/internal/result"
)

// DefaultBaseURL is the platform root used when no other base is configured
const DefaultBaseURL = "https://f95zone.to"

const (
	latestPath = "/sam/latest_alpha/latest_data.php"
	searchPath = "/search/search/"
)

const (
	// MaxLatestTags is the most tags the latest-listing endpoint filters on.
	MaxLatestTags = 5
	// MaxLatestPrefixes is the most prefixes the latest-listing endpoint filters on.
	MaxLatestPrefixes = 10
)

// Backend identifies one of the platform's search mechanisms
type Backend string

const (
	BackendLatest Backend = "latest"
	BackendThread Backend = "thread"
)

// Categories lists the category names every query shape accepts
var Categories = []string{"games", "mods", "comics", "animations", "assets"}

// Query is a concrete, backend-specific search request. The set of
// implementations is closed: *LatestSearchQuery and *ThreadSearchQuery.
type Query interface {
	Backend() Backend
	// Validate returns every constraint the query violates; nil means valid.
	Validate() []Violation
	// URL validates the query and serialises it against baseURL.
	URL(baseURL string) result.Result[string]
	// CreateURL is URL(DefaultBaseURL).
	CreateURL() result.Result[string]

	sealed()
}

// Violation names a field and the constraint it breaks
type Violation struct {
	Field   string
	Message string
}

// violationsError folds violations into a single InvalidQuery failure
func violationsError(vs []Violation) *result.Error {
	fields := make([]string, 0, len(vs))
	msgs := make([]string, 0, len(vs))
	seen := make(map[string]bool)
	for _, v := range vs {
		if !seen[v.Field] {
			fields = append(fields, v.Field)
			seen[v.Field] = true
		}
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	sort.Strings(fields)
	return result.InvalidQuery(strings.Join(fields, ","), strings.Join(msgs, "; "))
}

func isCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// buildURL validates q and appends the encoded params to baseURL+path
func buildURL(q Query, baseURL, path string, p *params) result.Result[string] {
	if vs := q.Validate(); len(vs) > 0 {
		return result.Failure[string](violationsError(vs))
	}
	return result.Success(strings.TrimRight(baseURL, "/") + path + "?" + p.Encode())
}
